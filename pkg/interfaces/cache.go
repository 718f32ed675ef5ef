package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the minimal key/value contract used by the index and the
// component renderer. A zero ttl means the entry never expires.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
