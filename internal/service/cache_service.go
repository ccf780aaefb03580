package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/pkg/config"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
)

// cacheStore abstracts the Redis-backed cache repository.
type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService coordinates report caching, instrumentation and invalidation.
// A nil receiver or disabled configuration degrades to a no-op so callers
// never need to branch on cache availability.
type CacheService struct {
	store   cacheStore
	metrics *MetricsService
	logger  *zap.Logger
	enabled bool
	ttl     time.Duration
}

// NewCacheService constructs a cache service honoring the analytics
// configuration. Passing a nil store disables caching outright.
func NewCacheService(store cacheStore, metrics *MetricsService, logger *zap.Logger, cfg config.AnalyticsConfig) *CacheService {
	enabled := cfg.CacheEnabled && store != nil
	return &CacheService{
		store:   store,
		metrics: metrics,
		logger:  logger,
		enabled: enabled,
		ttl:     cfg.CacheTTL,
	}
}

// Enabled reports whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled
}

// Get attempts to load a cached report. It returns true on a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}

	start := time.Now()
	err := s.store.Get(ctx, key, dest)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.RecordCacheOperation(false, elapsed)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	s.metrics.RecordCacheOperation(true, elapsed)
	return true
}

// Set stores a report payload using the configured TTL. Failures are logged
// and swallowed: a cold cache is never an error for the caller.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}

	start := time.Now()
	if err := s.store.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.metrics.ObserveCacheWrite(time.Since(start))
}

// InvalidatePattern drops cached entries matching the pattern. Used after
// planning mutations so conflict and workload reports are recomputed.
func (s *CacheService) InvalidatePattern(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}

	if err := s.store.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
