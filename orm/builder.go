package orm

import (
	"strings"
)

// builder 是所有语句构造的公共部分
type builder struct {
	sb      strings.Builder // sb is used to build the SQL query string.
	args    []any           // args holds the arguments for the query.
	dialect Dialect
}

// quote 使用方言转义标识符
func (b *builder) quote(name string) {
	b.sb.WriteString(b.dialect.Quote(name))
}

// buildColumns writes the escaped names of fields joined by ", ".
func (b *builder) buildColumns(fields []Field) {
	for i, f := range fields {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.quote(f.Name())
	}
}

// buildPlaceholders writes (?, ?, ?) for n columns.
func (b *builder) buildPlaceholders(n int) {
	b.sb.WriteByte('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.sb.WriteByte('?')
	}
	b.sb.WriteByte(')')
}

// buildPKCondition writes WHERE <pk>=? and binds the key value.
func (b *builder) buildPKCondition(pk Field, val any) {
	b.sb.WriteString(" WHERE ")
	b.quote(pk.Name())
	b.sb.WriteString("=?")
	b.addArgs(val)
}

func (b *builder) addArgs(args ...any) {
	if b.args == nil {
		b.args = make([]any, 0, 8)
	}
	b.args = append(b.args, args...)
}

func (b *builder) query() *Query {
	return &Query{
		SQL:  b.sb.String(),
		Args: b.args,
	}
}
