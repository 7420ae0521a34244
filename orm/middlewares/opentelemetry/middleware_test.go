package opentelemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/johanneslochmann/qtorm/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type fakeBuilder struct{}

func (fakeBuilder) Build() (*orm.Query, error) {
	return &orm.Query{SQL: `DELETE FROM "users" WHERE "id"=?;`, Args: []any{1}}, nil
}

func TestMiddlewareBuilder_Build(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	mdl := MiddlewareBuilder{Tracer: tp.Tracer("test")}.Build()

	mockErr := errors.New("mock error")
	var inner trace.SpanContext
	h := mdl(func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
		inner = trace.SpanContextFromContext(ctx)
		return &orm.QueryResult{Err: mockErr}
	})
	res := h(context.Background(), &orm.QueryContext{
		Type:    "DELETE",
		Builder: fakeBuilder{},
		Model:   orm.NewModel("users"),
	})
	assert.Equal(t, mockErr, res.Err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "DELETE-users", span.Name())
	assert.Equal(t, span.SpanContext().SpanID(), inner.SpanID())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String("sql", `DELETE FROM "users" WHERE "id"=?;`))
	assert.Contains(t, span.Attributes(), attribute.String("table", "users"))
}
