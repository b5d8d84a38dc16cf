package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache memoises fn by key. Errors are returned and never cached.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) (V, error)
	shouldSkipCache bool
}

func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, shouldSkipCache: shouldSkipCache}
}

// Get returns the cached value for key, computing and storing it on a miss.
// The bool reports a cache hit.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, bool, error) {
	if r.shouldSkipCache {
		v, err := r.fn(ctx, input)
		return v, false, err
	}
	if v, ok := r.cache.Get(ctx, key); ok {
		return v, true, nil
	}

	v, err := r.fn(ctx, input)
	if err != nil {
		return v, false, err
	}
	r.cache.Set(ctx, key, v, ttl)
	return v, false, nil
}

// Invalidate drops every memoised value.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context) error {
	return r.cache.Flush(ctx)
}
