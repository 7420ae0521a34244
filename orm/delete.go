package orm

import (
	"context"
	"log/slog"

	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

type deleter struct {
	m       *Model
	dialect Dialect
	// pk 在 Build 之前取出，因为 Remove 之后主键会被置为 NULL
	pk any
}

// Build generates DELETE FROM t WHERE id=?;
func (d *deleter) Build() (*Query, error) {
	b := builder{dialect: d.dialect}
	b.sb.WriteString("DELETE FROM ")
	b.quote(d.m.tableName)
	b.buildPKCondition(d.m.fields[d.m.pk], d.pk)
	b.sb.WriteByte(';')
	return b.query(), nil
}

// Remove deletes the row of the model. Afterwards the primary key is null,
// whether the statement succeeded or not; the error tells which.
func (m *Model) Remove(ctx context.Context, sess Session) error {
	if err := m.checkInit(); err != nil {
		return err
	}
	pk := m.fields[m.pk]
	if pk.IsNull() {
		return errs.ErrNullPrimaryKey
	}

	c := sess.getCore()
	val := pk.Data()
	res := exec(ctx, sess, c, &QueryContext{
		Type: "DELETE",
		Builder: &deleter{
			m:       m,
			dialect: c.dialect,
			pk:      val,
		},
		Model: m,
	})
	// 无论成功与否，内存中的对象都和数据库脱离关系
	pk.SetNull(true)

	if err := res.Err(); err != nil {
		m.logError(c, "DELETE", "could not delete object", err)
		return err
	}

	if c.cache != nil {
		if err := c.cache.Remove(ctx, m.cacheKey(val)); err != nil {
			c.logger.Warn("orm: could not invalidate cached row",
				slog.String("table", m.tableName),
				slog.Any("err", err))
		}
	}
	return nil
}
