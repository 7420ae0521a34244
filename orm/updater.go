package orm

import (
	"context"

	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

// updater 只更新被修改过的字段
type updater struct {
	m       *Model
	dialect Dialect
}

// Build 构造 UPDATE t SET a=?, b=? WHERE id=?;
func (u *updater) Build() (*Query, error) {
	fields := u.m.modifiedFields()
	if len(fields) == 0 {
		return nil, errs.ErrNoUpdatedColumns
	}

	b := builder{dialect: u.dialect}
	b.sb.WriteString("UPDATE ")
	b.quote(u.m.tableName)
	b.sb.WriteString(" SET ")
	b.args = make([]any, 0, len(fields)+1)
	for i, f := range fields {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.quote(f.Name())
		b.sb.WriteString("=?")
		b.addArgs(f.Data())
	}

	pk := u.m.fields[u.m.pk]
	b.buildPKCondition(pk, pk.Data())
	b.sb.WriteByte(';')
	return b.query(), nil
}

// Save inserts the model when its primary key is null and updates the
// modified columns otherwise. An update without modified fields issues no
// statement.
func (m *Model) Save(ctx context.Context, sess Session) error {
	if err := m.checkInit(); err != nil {
		return err
	}
	if m.fields[m.pk].IsNull() {
		return m.Insert(ctx, sess)
	}
	if len(m.modifiedFields()) == 0 {
		return nil
	}

	c := sess.getCore()
	res := exec(ctx, sess, c, &QueryContext{
		Type: "UPDATE",
		Builder: &updater{
			m:       m,
			dialect: c.dialect,
		},
		Model: m,
	})
	if err := res.Err(); err != nil {
		m.logError(c, "UPDATE", "could not update object", err)
		return err
	}

	m.ResetModified()
	m.invalidate(ctx, c)
	return nil
}
