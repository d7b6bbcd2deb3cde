package out

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	rewardout "prayerlog/internal/modules/reward/port/out"
)

const redisKeyPrefix = "prayerlog:"

type RedisKeyValueStore struct {
	client *redis.Client
}

type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// NewRedisKeyValueStore connects and pings the server once so a bad address
// fails at startup instead of on the first level-up.
func NewRedisKeyValueStore(ctx context.Context, opts RedisOptions) (rewardout.KeyValueStore, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", opts.Address, err)
	}
	return &RedisKeyValueStore{client: client}, client.Close, nil
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisKeyValueStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
