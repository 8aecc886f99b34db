package session

import (
	"context"
	"fmt"
	"time"

	dbredis "github.com/octabyte/hostel-gommon/db/redis"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "hostel:session"

// RedisStore keeps session keys under "<prefix>:<key>". A server that acts on
// behalf of several users gives each one its own prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, found, err := dbredis.Get(ctx, s.client, s.key(key))
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return v, found, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := dbredis.Set(ctx, s.client, s.key(key), value, s.ttl); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := dbredis.Del(ctx, s.client, full...); err != nil {
		return fmt.Errorf("failed to delete session keys from redis: %w", err)
	}
	return nil
}
