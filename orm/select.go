package orm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/johanneslochmann/qtorm/cache"
	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

// selector 按主键读取一行
type selector struct {
	m       *Model
	dialect Dialect
	pk      any
}

// Build generates SELECT a, b FROM t WHERE id=?;
func (s *selector) Build() (*Query, error) {
	b := builder{dialect: s.dialect}
	b.sb.WriteString("SELECT ")
	b.buildColumns(s.m.fields)
	b.sb.WriteString(" FROM ")
	b.quote(s.m.tableName)
	b.buildPKCondition(s.m.fields[s.m.pk], s.pk)
	b.sb.WriteByte(';')
	return b.query(), nil
}

// Load reads the row whose primary key is id into the fields of the model.
// It returns ErrNoRows when no such row exists. After a successful load no
// field is marked modified.
func (m *Model) Load(ctx context.Context, sess Session, id any) error {
	if err := m.checkInit(); err != nil {
		return err
	}
	c := sess.getCore()

	if c.cache != nil {
		row, err := c.cache.Get(ctx, m.cacheKey(id))
		switch {
		case err == nil:
			if err = c.valCreator(modelTarget{m: m}).SetRow(row); err == nil {
				m.ResetModified()
				return nil
			}
			c.logger.Warn("orm: dropping unusable cached row",
				slog.String("table", m.tableName),
				slog.Any("err", err))
		case !errors.Is(err, cache.ErrMiss):
			c.logger.Warn("orm: could not read cached row",
				slog.String("table", m.tableName),
				slog.Any("err", err))
		}
	}

	rows, err := query(ctx, sess, c, &QueryContext{
		Type: "SELECT",
		Builder: &selector{
			m:       m,
			dialect: c.dialect,
			pk:      id,
		},
		Model: m,
	})
	if err != nil {
		m.logError(c, "SELECT", "could not load object", err)
		return err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			m.logError(c, "SELECT", "could not load object", err)
			return err
		}
		return errs.ErrNoRows
	}
	if err = c.valCreator(modelTarget{m: m}).SetColumns(rows); err != nil {
		m.logError(c, "SELECT", "could not scan object", err)
		return err
	}
	m.ResetModified()

	if c.cache != nil {
		if err = c.cache.Set(ctx, m.cacheKey(id), m.row()); err != nil {
			c.logger.Warn("orm: could not cache row",
				slog.String("table", m.tableName),
				slog.Any("err", err))
		}
	}
	return nil
}
