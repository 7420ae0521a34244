package orm

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/johanneslochmann/qtorm/cache"
	"github.com/johanneslochmann/qtorm/orm/internal/valuer"
)

type DBOption func(*DB)

// DB 是 sql.DB 的装饰器，同时携带方言、中间件等公共配置
type DB struct {
	core
	db    *sql.DB
	stmts *stmtCache
}

// Open opens a database with a database/sql driver. The dialect is derived
// from the driver name unless DBWithDialect overrides it.
func Open(driver string, dsn string, opts ...DBOption) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	d, err := DialectFor(driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	// 用户传入的 option 可以覆盖默认的方言
	opts = append([]DBOption{DBWithDialect(d)}, opts...)
	return OpenDB(db, opts...)
}

// OpenDB wraps an existing *sql.DB. The default dialect is SQLite3.
func OpenDB(db *sql.DB, opts ...DBOption) (*DB, error) {
	res := &DB{
		core: core{
			dialect:    SQLite3,
			valCreator: valuer.NewScannerValue,
			logger:     slog.Default(),
		},
		db: db,
	}

	for _, opt := range opts {
		opt(res)
	}

	return res, nil
}

// MustOpen creates a new DB with the provided options.
// If the creation fails, it panics.
func MustOpen(driver string, dsn string, opts ...DBOption) *DB {
	db, err := Open(driver, dsn, opts...)
	if err != nil {
		panic(err)
	}
	return db
}

func DBWithDialect(d Dialect) DBOption {
	return func(db *DB) {
		db.dialect = d
	}
}

// DBWithMiddlewares 中间件按照传入的顺序执行，第一个在最外层
func DBWithMiddlewares(mdls ...Middleware) DBOption {
	return func(db *DB) {
		db.mdls = mdls
	}
}

// DBWithLogger sets the logger driver errors are reported to.
func DBWithLogger(l *slog.Logger) DBOption {
	return func(db *DB) {
		db.logger = l
	}
}

// DBWithCache enables the row cache used by Model.Load.
func DBWithCache(c cache.Store) DBOption {
	return func(db *DB) {
		db.cache = c
	}
}

// DBWithStmtCache keeps up to size prepared statements for statements
// executed directly on the DB. Transactions do not use the cache.
func DBWithStmtCache(size int) DBOption {
	return func(db *DB) {
		sc, err := newStmtCache(size, db)
		if err != nil {
			// 只有 size <= 0 的时候才会出错，此时就不使用缓存
			db.logger.Warn("orm: statement cache disabled", slog.Int("size", size), slog.Any("err", err))
			return
		}
		db.stmts = sc
	}
}

// BeginTx 开启事务
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, db: db}, nil
}

// DoTx 将 fn 包在事务里面执行：fn 返回 error 或者 panic 的时候回滚，否则提交
func (db *DB) DoTx(ctx context.Context,
	fn func(ctx context.Context, tx *Tx) error,
	opts *sql.TxOptions) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	panicked := true
	defer func() {
		if panicked || err != nil {
			if e := tx.Rollback(); e != nil {
				db.logger.Error("orm: rollback failed", slog.Any("err", e))
			}
		} else {
			err = tx.Commit()
		}
	}()
	err = fn(ctx, tx)
	panicked = false
	return err
}

// Close closes the cached statements and the underlying pool.
func (db *DB) Close() error {
	if db.stmts != nil {
		db.stmts.purge()
	}
	return db.db.Close()
}

func (db *DB) getCore() core {
	return db.core
}

func (db *DB) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query = db.dialect.rebind(query)
	if db.stmts != nil {
		stmt, err := db.stmts.get(ctx, db.db, query)
		if err != nil {
			return nil, err
		}
		return stmt.QueryContext(ctx, args...)
	}
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query = db.dialect.rebind(query)
	if db.stmts != nil {
		stmt, err := db.stmts.get(ctx, db.db, query)
		if err != nil {
			return nil, err
		}
		return stmt.ExecContext(ctx, args...)
	}
	return db.db.ExecContext(ctx, query, args...)
}
