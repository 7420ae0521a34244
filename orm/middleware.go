package orm

import (
	"context"
)

// QueryContext 中间件的上下文，冗余了 Builder 和 Model，
// 因为在执行 sql 之前，有的中间件就需要使用这些信息
type QueryContext struct {
	// Type 声明语句类型。即 SELECT, UPDATE, DELETE, INSERT 和 CREATE
	Type string

	// Builder 每次 Build 都会重新构造 SQL，中间件可以放心调用
	Builder QueryBuilder
	// qc.Model.TableName() 为了有的中间件在拦截时需要 Model 信息
	Model *Model
}

type QueryResult struct {
	// Result 在不同的语句里面，类型是不同的
	// SELECT 是 *sql.Rows，其它情况下是 sql.Result
	Result any
	Err    error
}

type Middleware func(next Handler) Handler

type Handler func(ctx context.Context, qc *QueryContext) *QueryResult
