package keystore

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"ekoshield/internal/platform/redis"
)

// RedisStore persists the API key in redis so it survives restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, StorageKey).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get api key: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, apiKey string) error {
	if err := s.client.Set(ctx, StorageKey, apiKey, 0).Err(); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, StorageKey).Err(); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}
