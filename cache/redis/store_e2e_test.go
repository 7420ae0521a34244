//go:build e2e

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/johanneslochmann/qtorm/cache"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	s := NewStore(client, WithPrefix("qtorm-test"), WithExpiration(time.Minute))
	ctx := context.Background()
	key := cache.Key("users", uuid.New().String())

	_, err := s.Get(ctx, key)
	assert.Equal(t, cache.ErrMiss, err)

	require.NoError(t, s.Set(ctx, key, map[string]any{
		"id":   int64(5),
		"name": "Alice",
		"age":  nil,
	}))

	// redis 里面取出来的都是字符串，NULL 列不存在
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "5", "name": "Alice"}, got)

	require.NoError(t, s.Remove(ctx, key))
	_, err = s.Get(ctx, key)
	assert.Equal(t, cache.ErrMiss, err)
}
