package services

import (
	"context"
	"time"
)

// CacheService is the slice of the redis client the services depend on.
// pkg/cache.RedisCache satisfies it.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Increment(ctx context.Context, key string, expiration time.Duration) (int64, error)
}
