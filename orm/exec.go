package orm

import (
	"context"
	"database/sql"

	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

// returner 由需要通过 RETURNING 取回主键的 builder 实现
type returner interface {
	returningKey() bool
}

// chain 把中间件套在 handler 外面，第一个中间件在最外层
func chain(c core, handler Handler) Handler {
	for i := len(c.mdls) - 1; i >= 0; i-- {
		handler = c.mdls[i](handler)
	}
	return handler
}

// exec 执行一条写语句
func exec(ctx context.Context, sess Session, c core, qc *QueryContext) Result {
	var root Handler = func(ctx context.Context, qc *QueryContext) *QueryResult {
		q, err := qc.Builder.Build()
		if err != nil {
			return &QueryResult{Err: err}
		}
		if r, ok := qc.Builder.(returner); ok && r.returningKey() {
			res, err := execReturning(ctx, sess, q)
			return &QueryResult{Result: res, Err: err}
		}
		res, err := sess.execContext(ctx, q.SQL, q.Args...)
		return &QueryResult{Result: res, Err: err}
	}

	qr := chain(c, root)(ctx, qc)
	if qr == nil {
		return Result{err: errs.ErrNilQueryResult}
	}
	var res sql.Result
	if qr.Result != nil {
		res, _ = qr.Result.(sql.Result)
	}
	return Result{
		err: qr.Err,
		res: res,
	}
}

// execReturning 读取 RETURNING 返回的所有主键，只保留最后一个，
// 和 LastInsertId 的语义保持一致
func execReturning(ctx context.Context, sess Session, q *Query) (sql.Result, error) {
	rows, err := sess.queryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res returningResult
	for rows.Next() {
		if err = rows.Scan(&res.lastID); err != nil {
			return nil, err
		}
		res.rows++
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// query 执行一条查询语句，调用者负责关闭 rows
func query(ctx context.Context, sess Session, c core, qc *QueryContext) (*sql.Rows, error) {
	var root Handler = func(ctx context.Context, qc *QueryContext) *QueryResult {
		q, err := qc.Builder.Build()
		if err != nil {
			return &QueryResult{Err: err}
		}
		rows, err := sess.queryContext(ctx, q.SQL, q.Args...)
		return &QueryResult{Result: rows, Err: err}
	}

	qr := chain(c, root)(ctx, qc)
	if qr == nil {
		return nil, errs.ErrNilQueryResult
	}
	rows, _ := qr.Result.(*sql.Rows)
	if qr.Err != nil {
		if rows != nil {
			_ = rows.Close()
		}
		return nil, qr.Err
	}
	if rows == nil {
		return nil, errs.ErrNoRows
	}
	return rows, nil
}
