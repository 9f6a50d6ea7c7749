package blob

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each blob as a plain string value under its key.
// Content types are not retained; the catalog layer serves JSON either way.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotExist
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, prefix string) ([]string, error) {
	// KEYS is fine here: the blob keyspace holds a handful of documents
	// and images, not a cache-sized dataset.
	keys, err := s.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
