// Package memory implementa cache.Client in-process sobre go-cache.
package memory

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/gatekeep/internal/cache"
)

type Mem struct {
	c *gocache.Cache

	// go-cache no tiene INCR atómico con TTL; serializamos acá.
	mu sync.Mutex
}

// New crea un cache en memoria con el TTL por defecto dado.
func New(defaultTTL time.Duration) *Mem {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Mem{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Mem) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", cache.ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

func (m *Mem) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *Mem) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.c.Get(key); ok {
		// IncrementInt64 conserva la expiración de la ventana
		return m.c.IncrementInt64(key, 1)
	}
	m.c.Set(key, int64(1), ttl)
	return 1, nil
}

func (m *Mem) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Mem) Ping(ctx context.Context) error { return nil }
func (m *Mem) Close() error                   { return nil }
