package cacheinfra

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps encoded values in Redis. Entries are written without an
// expiration and only disappear through Delete.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing client. The caller owns the client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// HasKey reports whether key exists.
func (s *RedisStore) HasKey(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, redisError(err, "exists", key)
	}
	return n > 0, nil
}

// Get decodes the value stored under key into dest.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, redisError(err, "get", key)
	}
	if err := Decode(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key with no expiration.
func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return redisError(err, "set", key)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return redisError(err, "del", key)
	}
	return nil
}

func redisError(err error, op, key string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "redis "+op+" "+key)
}
