package index

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/goliatone/go-newsroom/internal/cache"
	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// DefaultTag is the invalidation tag under which the collection is cached.
const DefaultTag = "news-index"

const cacheKeyPrefix = "index:"

// Config controls caching of the scanned collection.
type Config struct {
	// Production enables caching. Outside production every call rescans.
	Production bool
	// Tag names the cache entry dropped by Invalidate. Defaults to DefaultTag.
	Tag string
	// TTL bounds how long a cached collection is served. Zero keeps it until invalidated.
	TTL time.Duration
}

// Service serves the sorted article collection, rebuilding it on demand.
type Service struct {
	scanner *Scanner
	store   interfaces.CacheProvider
	logger  interfaces.Logger
	cfg     Config
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for scan diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCache sets the cache holding the collection in production.
func WithCache(store interfaces.CacheProvider) ServiceOption {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// NewService constructs an index over fsys, whose root is the content root.
func NewService(fsys fs.FS, cfg Config, opts ...ServiceOption) *Service {
	if strings.TrimSpace(cfg.Tag) == "" {
		cfg.Tag = DefaultTag
	}
	s := &Service{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil && cfg.Production {
		s.store = cache.NewMemory(0)
	}
	s.scanner = NewScanner(fsys, s.logger)
	return s
}

// Tag reports the invalidation tag of the cached collection.
func (s *Service) Tag() string {
	return s.cfg.Tag
}

// List returns every record, newest first. The returned slice is a copy.
func (s *Service) List(ctx context.Context) ([]interfaces.ArticleRecord, error) {
	if s.cachingEnabled() {
		if cached, err := s.store.Get(ctx, s.cacheKey()); err == nil {
			if records, ok := cached.([]interfaces.ArticleRecord); ok {
				return clone(records), nil
			}
		}
	}

	records, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cachingEnabled() {
		if err := s.store.Set(ctx, s.cacheKey(), records, s.cfg.TTL); err != nil {
			logging.WithError(s.logger, err).Warn("index.cache.store_failed")
		}
	}
	return clone(records), nil
}

// Query lists the collection and applies the query's filters.
func (s *Service) Query(ctx context.Context, query interfaces.ArticleQuery) ([]interfaces.ArticleRecord, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(records, query), nil
}

// Invalidate drops the cached collection when tag names it. Unknown tags are
// ignored and reported as false.
func (s *Service) Invalidate(ctx context.Context, tag string) (bool, error) {
	if strings.TrimSpace(tag) != s.cfg.Tag {
		logging.WithFields(s.logger, map[string]any{"tag": tag}).Debug("index.cache.invalidate_ignored")
		return false, nil
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, s.cacheKey()); err != nil {
			return false, err
		}
	}
	logging.WithFields(s.logger, map[string]any{"tag": tag}).Info("index.cache.invalidated")
	return true, nil
}

func (s *Service) build(ctx context.Context) ([]interfaces.ArticleRecord, error) {
	started := time.Now()
	records, err := s.scanner.Scan(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logging.WithError(s.logger, err).Warn("index.scan.failed")
		return []interfaces.ArticleRecord{}, nil
	}
	sorted := SortByDate(records)

	logging.WithFields(s.logger, map[string]any{
		"records":  len(sorted),
		"duration": time.Since(started).String(),
	}).Info("index.scan.completed")
	return sorted, nil
}

func (s *Service) cachingEnabled() bool {
	return s.cfg.Production && s.store != nil
}

func (s *Service) cacheKey() string {
	return cacheKeyPrefix + s.cfg.Tag
}

var _ interfaces.ArticleIndex = (*Service)(nil)
