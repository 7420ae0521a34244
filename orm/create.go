package orm

import (
	"context"
)

// creator 构造建表语句，每个字段一行
type creator struct {
	m       *Model
	dialect Dialect
}

// Build generates
//
//	CREATE TABLE t (
//	    a TYPE,
//	    b TYPE
//	);
func (c *creator) Build() (*Query, error) {
	b := builder{dialect: c.dialect}
	b.sb.WriteString("CREATE TABLE ")
	b.quote(c.m.tableName)
	b.sb.WriteString(" (\n")
	for i, f := range c.m.fields {
		if i > 0 {
			b.sb.WriteString(",\n")
		}
		b.sb.WriteString("    ")
		b.quote(f.Name())
		b.sb.WriteByte(' ')
		b.sb.WriteString(f.SQLDescription(c.dialect))
	}
	b.sb.WriteString("\n);")
	return b.query(), nil
}

// CreateTableSQL renders the CREATE TABLE statement of the model in the
// column order of its fields.
func (m *Model) CreateTableSQL(d Dialect) (string, error) {
	if err := m.checkInit(); err != nil {
		return "", err
	}
	q, err := (&creator{m: m, dialect: d}).Build()
	if err != nil {
		return "", err
	}
	return q.SQL, nil
}

// CreateTable executes the CREATE TABLE statement of the model.
func (m *Model) CreateTable(ctx context.Context, sess Session) error {
	if err := m.checkInit(); err != nil {
		return err
	}
	c := sess.getCore()
	res := exec(ctx, sess, c, &QueryContext{
		Type: "CREATE",
		Builder: &creator{
			m:       m,
			dialect: c.dialect,
		},
		Model: m,
	})
	if err := res.Err(); err != nil {
		m.logError(c, "CREATE", "could not create table", err)
		return err
	}
	return nil
}
