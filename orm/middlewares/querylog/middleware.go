package querylog

import (
	"context"
	"log/slog"

	"github.com/johanneslochmann/qtorm/orm"
)

type MiddlewareBuilder struct {
	logFunc func(query string, args []any)
}

// NewBuilder 默认使用 slog 输出到 debug 级别
func NewBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logFunc: func(query string, args []any) {
			slog.Debug("orm: sql", slog.String("sql", query), slog.Any("args", args))
		},
	}
}

// LogFunc 替换默认的输出方式
func (m *MiddlewareBuilder) LogFunc(fn func(query string, args []any)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

func (m *MiddlewareBuilder) Build() orm.Middleware {
	return func(next orm.Handler) orm.Handler {
		return func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
			q, err := qc.Builder.Build()
			if err != nil {
				return &orm.QueryResult{
					Err: err,
				}
			}
			if m.logFunc != nil {
				m.logFunc(q.SQL, q.Args)
			}
			return next(ctx, qc)
		}
	}
}
