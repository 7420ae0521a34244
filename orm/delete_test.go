package orm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/johanneslochmann/qtorm/orm/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleter_Build(t *testing.T) {
	m := newUserModel(t)

	testCases := []struct {
		name      string
		dialect   Dialect
		pk        any
		wantQuery *Query
	}{
		{
			name:    "sqlite3",
			dialect: SQLite3,
			pk:      int64(5),
			wantQuery: &Query{
				SQL:  `DELETE FROM "users" WHERE "id"=?;`,
				Args: []any{int64(5)},
			},
		},
		{
			name:    "mysql",
			dialect: MySQL,
			pk:      int64(16),
			wantQuery: &Query{
				SQL:  "DELETE FROM `users` WHERE `id`=?;",
				Args: []any{int64(16)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := (&deleter{m: m.Model, dialect: tc.dialect, pk: tc.pk}).Build()
			require.NoError(t, err)
			assert.Equal(t, tc.wantQuery, q)
		})
	}
}

func TestModel_Remove(t *testing.T) {
	mockErr := errors.New("mock error")

	testCases := []struct {
		name    string
		mockErr error
	}{
		{
			name: "success",
		},
		{
			// 失败的时候主键一样被置为 NULL
			name:    "failure",
			mockErr: mockErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := mockDB(t)
			m := storedUser(t, 5)

			exp := mock.ExpectExec(`DELETE FROM "users" WHERE "id"=?;`).WithArgs(int64(5))
			if tc.mockErr != nil {
				exp.WillReturnError(tc.mockErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := m.Remove(context.Background(), db)
			assert.Equal(t, tc.mockErr, err)
			assert.True(t, m.id.IsNull())
			// 其它字段不受影响
			assert.Equal(t, "Alice", m.name.Get())
		})
	}
}

func TestModel_RemoveNullKey(t *testing.T) {
	db, _ := mockDB(t)
	m := newUserModel(t)
	assert.Equal(t, errs.ErrNullPrimaryKey, m.Remove(context.Background(), db))
	assert.True(t, m.id.IsNull())
}

func TestModel_RemoveSQLite(t *testing.T) {
	ctx := context.Background()
	db := memoryDB(t)
	m := newUserModel(t)
	require.NoError(t, m.CreateTable(ctx, db))

	m.name.Set("Alice")
	require.NoError(t, m.Save(ctx, db))
	id := m.id.Get()

	require.NoError(t, m.Remove(ctx, db))
	assert.True(t, m.id.IsNull())
	assert.Equal(t, errs.ErrNoRows, newUserModel(t).Load(ctx, db, id))

	// 主键已经是 NULL，再次保存会插入新的一行
	require.NoError(t, m.Save(ctx, db))
	assert.NotEqual(t, id, m.id.Get())
}
