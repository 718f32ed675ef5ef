// Package cache provides the in-memory CacheProvider shared by the article
// index and the component renderer.
package cache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// DefaultCleanupInterval controls how often expired entries are purged.
const DefaultCleanupInterval = 10 * time.Minute

// Memory is a CacheProvider backed by patrickmn/go-cache. Entries stored with
// a zero ttl never expire and must be removed explicitly.
type Memory struct {
	store *gocache.Cache
}

// NewMemory builds an empty cache. A non-positive cleanup interval disables
// the janitor goroutine.
func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (m *Memory) Get(_ context.Context, key string) (any, error) {
	value, found := m.store.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	expiration := gocache.NoExpiration
	if ttl > 0 {
		expiration = ttl
	}
	m.store.Set(key, value, expiration)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.store.Flush()
	return nil
}

// Len reports the number of stored entries, including expired ones not yet purged.
func (m *Memory) Len() int {
	return m.store.ItemCount()
}

var _ interfaces.CacheProvider = (*Memory)(nil)
