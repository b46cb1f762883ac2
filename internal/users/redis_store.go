package users

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store with JSON values under "user:<sub>".
// Records never expire; the user store is durable state, not a cache.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed user store. Prefix may be empty.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "user:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(sub string) string { return s.prefix + sub }

func (s *RedisStore) Get(ctx context.Context, sub string) (map[string]interface{}, error) {
	b, err := s.client.Get(ctx, s.key(sub)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var rec map[string]interface{}
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RedisStore) Set(ctx context.Context, sub string, record map[string]interface{}) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sub), b, 0).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			b, err := s.client.Get(ctx, k).Bytes()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				return nil, err
			}
			var rec map[string]interface{}
			if err := json.Unmarshal(b, &rec); err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
