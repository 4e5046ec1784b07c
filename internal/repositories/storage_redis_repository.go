package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStorageRepository is a Redis implementation of StorageRepository.
// Values never expire.
type RedisStorageRepository struct {
	client *redis.Client
}

// NewRedisStorageRepository creates a new instance of RedisStorageRepository.
func NewRedisStorageRepository(client *redis.Client) *RedisStorageRepository {
	return &RedisStorageRepository{
		client: client,
	}
}

// NewRedisClient parses a redis:// URL and returns a client for it.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Get retrieves the value stored under key. A missing key is not an error.
func (r *RedisStorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (r *RedisStorageRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *RedisStorageRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}
	return nil
}
