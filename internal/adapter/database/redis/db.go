package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"mygene/internal/core/port"
)

type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository connects to the Redis named by url (redis://...) and
// returns a cache backend on top of it.
func NewRedisRepository(ctx context.Context, url string) (port.CacheRepository, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisRepository{client: client}, nil
}

func (r *redisRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, port.ErrCacheMiss
	}

	if err != nil {
		return nil, err
	}

	return value, nil
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	var cursor uint64

	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", 100).Result()

		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}

		if next == 0 {
			return nil
		}

		cursor = next
	}
}

func (r *redisRepository) Close() error {
	return r.client.Close()
}
