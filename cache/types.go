package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrMiss 代表缓存中没有这一行
var ErrMiss = errors.New("cache: row not found")

// Store caches table rows keyed by table and primary key.
// A row maps column names to driver values; null columns may be omitted.
type Store interface {
	// Get 获取一行数据，没有的时候返回 ErrMiss
	Get(ctx context.Context, key string) (map[string]any, error)
	// Set 存入一行数据，已有的会被覆盖
	Set(ctx context.Context, key string, row map[string]any) error
	// Remove 删除一行数据，不存在也不会返回错误
	Remove(ctx context.Context, key string) error
}

// Key builds the cache key of a row.
func Key(table string, pk any) string {
	return fmt.Sprintf("%s:%v", table, pk)
}
