package recover

import (
	"context"
	"errors"
	"fmt"

	"github.com/johanneslochmann/qtorm/orm"
)

// ErrPanic is wrapped by the error returned for a recovered panic.
var ErrPanic = errors.New("orm: panic")

type MiddlewareBuilder struct {
	// LogFunc 可选，万一 LogFunc 也 panic，那我们也无能为力了
	LogFunc func(ctx context.Context, qc *orm.QueryContext, err any)
}

// Build turns a panic further down the chain into an error result.
func (m *MiddlewareBuilder) Build() orm.Middleware {
	return func(next orm.Handler) orm.Handler {
		return func(ctx context.Context, qc *orm.QueryContext) (res *orm.QueryResult) {
			defer func() {
				if r := recover(); r != nil {
					if m.LogFunc != nil {
						m.LogFunc(ctx, qc, r)
					}
					res = &orm.QueryResult{
						Err: fmt.Errorf("%w: %v", ErrPanic, r),
					}
				}
			}()
			return next(ctx, qc)
		}
	}
}
