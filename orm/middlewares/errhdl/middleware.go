package errhdl

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/johanneslochmann/qtorm/orm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Translator returns the translated error, or nil when err is not
// recognized.
type Translator func(err error) error

type MiddlewareBuilder struct {
	translators []Translator
}

// NewMiddlewareBuilder 默认注册 mysql, sqlite3 和 postgres 的翻译
func NewMiddlewareBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		translators: []Translator{MySQL, SQLite3, Postgres},
	}
}

// AddTranslator 注册自定义的翻译，按注册顺序尝试，第一个命中的生效
func (m *MiddlewareBuilder) AddTranslator(t Translator) *MiddlewareBuilder {
	m.translators = append(m.translators, t)
	return m
}

func (m *MiddlewareBuilder) Build() orm.Middleware {
	return func(next orm.Handler) orm.Handler {
		return func(ctx context.Context, qc *orm.QueryContext) *orm.QueryResult {
			res := next(ctx, qc)
			if res.Err == nil {
				return res
			}
			for _, t := range m.translators {
				if err := t(res.Err); err != nil {
					// 只修改 Err，这样其它中间件还能继续操作 Result
					res.Err = err
					break
				}
			}
			return res
		}
	}
}

func wrap(sentinel error, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}

// MySQL translates go-sql-driver/mysql server errors.
func MySQL(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return nil
	}
	switch me.Number {
	case 1062:
		return wrap(orm.ErrDuplicateKey, err)
	case 1048, 1451, 1452, 3819:
		return wrap(orm.ErrConstraint, err)
	default:
		return nil
	}
}

// SQLite3 translates mattn/go-sqlite3 constraint errors.
func SQLite3(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) || se.Code != sqlite3.ErrConstraint {
		return nil
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return wrap(orm.ErrDuplicateKey, err)
	default:
		return wrap(orm.ErrConstraint, err)
	}
}

// Postgres translates lib/pq errors of the integrity constraint class.
func Postgres(err error) error {
	var pe *pq.Error
	if !errors.As(err, &pe) {
		return nil
	}
	switch {
	case pe.Code == "23505":
		return wrap(orm.ErrDuplicateKey, err)
	case pe.Code.Class() == "23":
		return wrap(orm.ErrConstraint, err)
	default:
		return nil
	}
}
