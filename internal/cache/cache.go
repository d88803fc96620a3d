package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Repository stores serialized calculation results by key. A miss and a
// backend failure on Get both report false; callers recompute either way.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// KeyPrefix namespaces every key written by this package.
const KeyPrefix = "taxcalc:"

// Key hashes parts into a compact, fixed-length cache key.
func Key(parts ...string) string {
	h := xxhash.New()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.WriteString("\x00")
		}
		_, _ = h.WriteString(p)
	}
	return KeyPrefix + strconv.FormatUint(h.Sum64(), 16)
}

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

type entry struct {
	value   string
	expires time.Time // zero means never
}

// MemoryCache is a process-local Repository safe for concurrent use.
type MemoryCache struct {
	mu        sync.RWMutex
	data      map[string]entry
	ttl       time.Duration
	nextSweep time.Time
}

// NewMemoryCache creates an empty cache; a ttl of 0 keeps entries forever.
// With a ttl, Set drops expired entries at most once per ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	m := &MemoryCache{data: make(map[string]entry), ttl: ttl}
	if ttl > 0 {
		m.nextSweep = nowFunc().Add(ttl)
	}
	return m
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && !nowFunc().Before(e.expires) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return "", false
	}
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	now := nowFunc()
	e := entry{value: value}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ttl > 0 && !now.Before(m.nextSweep) {
		m.sweep(now)
	}
	m.data[key] = e
	return nil
}

// sweep deletes expired entries. Callers hold the write lock.
func (m *MemoryCache) sweep(now time.Time) {
	for k, e := range m.data {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.data, k)
		}
	}
	m.nextSweep = now.Add(m.ttl)
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Describe names the backend for logs.
func Describe(r Repository) string {
	switch c := r.(type) {
	case *MemoryCache:
		return "memory"
	case *RedisCache:
		return "redis " + c.client.Options().Addr
	case nil:
		return "disabled"
	default:
		return fmt.Sprintf("%T", r)
	}
}
