package orm

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gotomicro/ekit/slice"
	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

// inserter 构造一条多行的 INSERT 语句
type inserter struct {
	m       *Model
	rows    []snapshot // 缓存要插入的数据
	dialect Dialect
}

var _ returner = &inserter{}

// Build 构造 INSERT INTO t (a, b) VALUES (?, ?), (?, ?);
// 所有的行必须和当前字段的列集合一致，否则参数会错位
func (i *inserter) Build() (*Query, error) {
	if len(i.rows) == 0 {
		return nil, errs.ErrInsertZeroRow
	}

	cols := i.m.includedColumns()
	for idx, r := range i.rows {
		if !slices.Equal(r.cols, cols) {
			return nil, errs.NewErrInconsistentBatch(idx)
		}
	}

	b := builder{dialect: i.dialect}
	b.sb.WriteString("INSERT INTO ")
	b.quote(i.m.tableName)
	b.sb.WriteString(" (")
	b.buildColumns(slice.Map(cols, func(idx int, c int) Field {
		return i.m.fields[c]
	}))
	b.sb.WriteString(") VALUES ")

	b.args = make([]any, 0, len(cols)*len(i.rows))
	for idx, r := range i.rows {
		if idx > 0 {
			b.sb.WriteString(", ")
		}
		b.buildPlaceholders(len(cols))
		// 按行展开参数
		b.addArgs(r.vals...)
	}

	if i.returningKey() {
		b.sb.WriteString(" RETURNING ")
		b.quote(i.m.fields[i.m.pk].Name())
	}
	b.sb.WriteByte(';')
	return b.query(), nil
}

// returningKey 主键由数据库生成，而且方言不支持 LastInsertId
func (i *inserter) returningKey() bool {
	return i.dialect.returning() && !i.m.included(i.m.pk)
}

// SaveBatch inserts every batch row with one multi-row INSERT. On success
// the batch is emptied and, when the database assigns the key, the last
// generated key is stored in this model's primary key. On failure the
// batch is kept.
func (m *Model) SaveBatch(ctx context.Context, sess Session) error {
	if err := m.checkInit(); err != nil {
		return err
	}
	if len(m.batch) == 0 {
		return nil
	}
	if err := m.insertRows(ctx, sess, m.batch); err != nil {
		return err
	}
	m.batch = nil
	return nil
}

// Insert always creates a new row from the current values, whatever the
// state of the primary key. The pending batch is left untouched.
func (m *Model) Insert(ctx context.Context, sess Session) error {
	if err := m.checkInit(); err != nil {
		return err
	}
	if err := m.insertRows(ctx, sess, []snapshot{m.snapshot()}); err != nil {
		return err
	}
	m.ResetModified()
	m.invalidate(ctx, sess.getCore())
	return nil
}

func (m *Model) insertRows(ctx context.Context, sess Session, rows []snapshot) error {
	c := sess.getCore()
	ins := &inserter{
		m:       m,
		rows:    rows,
		dialect: c.dialect,
	}
	res := exec(ctx, sess, c, &QueryContext{
		Type:    "INSERT",
		Builder: ins,
		Model:   m,
	})
	if err := res.Err(); err != nil {
		m.logError(c, "INSERT", "could not save object", err)
		return err
	}

	// 主键是用户给的，不需要回填
	if m.included(m.pk) {
		return nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		m.logError(c, "INSERT", "could not read generated key", err)
		return err
	}
	return m.fields[m.pk].Scan(id)
}

func (m *Model) logError(c core, op string, msg string, err error) {
	c.logger.Error("orm: "+msg,
		slog.String("table", m.tableName),
		slog.String("op", op),
		slog.Any("err", err))
}

// invalidate 删除缓存中的这一行，缓存失败不影响持久化的结果
func (m *Model) invalidate(ctx context.Context, c core) {
	if c.cache == nil {
		return
	}
	pk := m.fields[m.pk]
	if pk.IsNull() {
		return
	}
	if err := c.cache.Remove(ctx, m.cacheKey(pk.Data())); err != nil {
		c.logger.Warn("orm: could not invalidate cached row",
			slog.String("table", m.tableName),
			slog.Any("err", err))
	}
}
