// Package cache holds short-lived server state: the Ollama tags listing and
// the progress of background model pulls. Backed by Redis when REDIS_URL is
// set, by an in-process cache otherwise.
package cache

import (
	"context"
	"time"
)

type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
