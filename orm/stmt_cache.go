package orm

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// stmtCache 缓存预编译语句，被淘汰的语句会被关闭
type stmtCache struct {
	// 防止同一条语句被并发 prepare 多次
	mutex sync.Mutex
	c     *lru.Cache
}

func newStmtCache(size int, db *DB) (*stmtCache, error) {
	c, err := lru.NewWithEvict(size, func(key interface{}, value interface{}) {
		if err := value.(*sql.Stmt).Close(); err != nil {
			db.logger.Warn("orm: close statement", slog.Any("sql", key), slog.Any("err", err))
		}
	})
	if err != nil {
		return nil, err
	}
	return &stmtCache{c: c}, nil
}

func (s *stmtCache) get(ctx context.Context, db *sql.DB, query string) (*sql.Stmt, error) {
	if val, ok := s.c.Get(query); ok {
		return val.(*sql.Stmt), nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	// double check
	if val, ok := s.c.Get(query); ok {
		return val.(*sql.Stmt), nil
	}
	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	s.c.Add(query, stmt)
	return stmt, nil
}

func (s *stmtCache) len() int {
	return s.c.Len()
}

// purge 关闭所有缓存的语句
func (s *stmtCache) purge() {
	s.c.Purge()
}
