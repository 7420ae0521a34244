package recover

import (
	"context"
	"testing"

	"github.com/johanneslochmann/qtorm/orm"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareBuilder_Build(t *testing.T) {
	var logged any
	builder := &MiddlewareBuilder{
		LogFunc: func(ctx context.Context, qc *orm.QueryContext, err any) {
			logged = err
		},
	}

	h := builder.Build()(func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
		panic("发生 panic 了")
	})
	res := h(context.Background(), &orm.QueryContext{Type: "INSERT"})
	assert.ErrorIs(t, res.Err, ErrPanic)
	assert.Equal(t, "发生 panic 了", logged)

	h = builder.Build()(func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
		return &orm.QueryResult{Result: 1}
	})
	res = h(context.Background(), &orm.QueryContext{Type: "INSERT"})
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, res.Result)
}
