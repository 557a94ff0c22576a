package slot

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portal:slot:"

// RedisRepository stores slot values as plain Redis strings.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository wraps an existing client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func redisKey(visitorID, key string) string {
	return redisKeyPrefix + visitorID + ":" + key
}

func (r *RedisRepository) Get(ctx context.Context, visitorID, key string) (string, error) {
	val, err := r.client.Get(ctx, redisKey(visitorID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisRepository) Set(ctx context.Context, visitorID, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, redisKey(visitorID, key), value, ttl).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, visitorID, key string) error {
	return r.client.Del(ctx, redisKey(visitorID, key)).Err()
}
