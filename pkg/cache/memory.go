package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Memory struct {
	client *gocache.Cache
}

func NewMemory() *Memory {
	return &Memory{client: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool) {
	v, ok := m.client.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.client.Set(key, value, ttl)
	return nil
}

func (m *Memory) Del(ctx context.Context, key string) error {
	m.client.Delete(key)
	return nil
}
