// Package kvstore defines the string key/value store that history and the
// theme preference persist into.
package kvstore

import (
	"context"

	"github.com/mockbanker/mockbanker/internal/cachemanager"
)

// Store holds string values by key. Get reports absence through found
// rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is a process-local Store. Values never expire.
type Memory struct {
	cache cachemanager.CacheManager[string, string]
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cache: cachemanager.NewInMemoryCacheManager[string, string]("kvstore", cachemanager.NoExpiration, 0),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.cache.Get(ctx, key)
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.cache.Set(ctx, key, value, cachemanager.NoExpiration)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	return m.cache.Delete(ctx, key)
}
