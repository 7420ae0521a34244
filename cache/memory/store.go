package memory

import (
	"context"
	"sync"
	"time"

	"github.com/johanneslochmann/qtorm/cache"
	gocache "github.com/patrickmn/go-cache"
)

var _ cache.Store = &Store{}

type Store struct {
	// go-cache 本身是并发安全的，这里的锁保证 copy 和写入是一个整体
	mutex sync.RWMutex
	c     *gocache.Cache
	// 利用一个内存缓存来帮助我们管理过期时间
	expiration time.Duration
}

// NewStore creates a new Store instance.
// The expiration parameter specifies the duration for which the cached rows
// stay valid.
func NewStore(expiration time.Duration) *Store {
	return &Store{
		c:          gocache.New(expiration, time.Second),
		expiration: expiration,
	}
}

// Get returns a copy of the cached row.
func (s *Store) Get(ctx context.Context, key string) (map[string]any, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	val, ok := s.c.Get(key)
	if !ok {
		return nil, cache.ErrMiss
	}
	return copyRow(val.(map[string]any)), nil
}

// Set stores a copy of row, so later changes by the caller do not leak in.
func (s *Store) Set(ctx context.Context, key string, row map[string]any) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.c.Set(key, copyRow(row), s.expiration)
	return nil
}

// Remove removes a row from the store by its key.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.c.Delete(key)
	return nil
}

func copyRow(row map[string]any) map[string]any {
	res := make(map[string]any, len(row))
	for k, v := range row {
		res[k] = v
	}
	return res
}
