package errhdl

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/johanneslochmann/qtorm/orm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestTranslators(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "mysql duplicate",
			err:     &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
			wantErr: orm.ErrDuplicateKey,
		},
		{
			name:    "mysql foreign key",
			err:     &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
			wantErr: orm.ErrConstraint,
		},
		{
			name:    "sqlite unique",
			err:     sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			wantErr: orm.ErrDuplicateKey,
		},
		{
			name:    "sqlite not null",
			err:     sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull},
			wantErr: orm.ErrConstraint,
		},
		{
			name:    "postgres duplicate",
			err:     &pq.Error{Code: "23505"},
			wantErr: orm.ErrDuplicateKey,
		},
		{
			name:    "postgres foreign key",
			err:     &pq.Error{Code: "23503"},
			wantErr: orm.ErrConstraint,
		},
	}

	h := NewMiddlewareBuilder().Build()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := h(func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
				return &orm.QueryResult{Err: tc.err}
			})(context.Background(), &orm.QueryContext{Type: "INSERT"})
			assert.ErrorIs(t, res.Err, tc.wantErr)
			// 原始的错误依旧可以取出来
			assert.ErrorIs(t, res.Err, tc.err)
		})
	}
}

func TestMiddlewareBuilder_Unknown(t *testing.T) {
	mockErr := errors.New("mock error")
	h := NewMiddlewareBuilder().Build()(func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
		return &orm.QueryResult{Err: mockErr}
	})
	res := h(context.Background(), &orm.QueryContext{})
	assert.Equal(t, mockErr, res.Err)
}

func TestMiddlewareBuilder_AddTranslator(t *testing.T) {
	mockErr := errors.New("mock error")
	h := NewMiddlewareBuilder().AddTranslator(func(err error) error {
		if errors.Is(err, mockErr) {
			return orm.ErrConstraint
		}
		return nil
	}).Build()(func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
		return &orm.QueryResult{Err: mockErr}
	})
	res := h(context.Background(), &orm.QueryContext{})
	assert.Equal(t, orm.ErrConstraint, res.Err)
}
