package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/johanneslochmann/qtorm/cache"
	redis "github.com/redis/go-redis/v9"
)

var _ cache.Store = &Store{}

// StoreOption is a function type for configuring a Store.
type StoreOption func(store *Store)

// Store keeps each row in a redis hash, one hash field per non-null column.
// Values come back as strings; the orm fields convert them on Scan.
type Store struct {
	prefix     string // redis 中 key 的前缀
	client     redis.Cmdable
	expiration time.Duration // 过期时间
}

// NewStore creates a new instance of the Store struct.
// It takes a redis.Cmdable client as the first argument and optional StoreOptions as the rest of the arguments.
func NewStore(client redis.Cmdable, opts ...StoreOption) *Store {
	res := &Store{
		client:     client,
		prefix:     "qtorm",
		expiration: time.Minute * 15,
	}

	for _, opt := range opts {
		opt(res)
	}

	return res
}

// WithPrefix sets the key prefix of the store.
func WithPrefix(prefix string) StoreOption {
	return func(store *Store) {
		store.prefix = prefix
	}
}

// WithExpiration sets the expiration duration for the Store.
func WithExpiration(expiration time.Duration) StoreOption {
	return func(store *Store) {
		store.expiration = expiration
	}
}

// key generates a unique key for the given row key by combining it with the store's prefix.
func (s *Store) key(key string) string {
	return fmt.Sprintf("%s_%s", s.prefix, key)
}

// Get reads the hash of the row. An empty hash is a miss.
func (s *Store) Get(ctx context.Context, key string) (map[string]any, error) {
	vals, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, cache.ErrMiss
	}

	res := make(map[string]any, len(vals))
	for k, v := range vals {
		res[k] = v
	}
	return res, nil
}

// Set replaces the hash of the row and refreshes its expiration.
func (s *Store) Set(ctx context.Context, key string, row map[string]any) error {
	vals := make(map[string]any, len(row))
	for k, v := range row {
		// NULL 不写入，读取的时候缺失的列就是 NULL
		if v == nil {
			continue
		}
		vals[k] = v
	}

	k := s.key(key)
	// 先删再写，保证旧的列不会残留
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		if len(vals) > 0 {
			pipe.HSet(ctx, k, vals)
			pipe.PExpire(ctx, k, s.expiration)
		}
		return nil
	})
	return err
}

// Remove removes a row from the store based on the provided key.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.Del(ctx, s.key(key)).Result()
	return err
}
