package orm

import (
	"strconv"
	"strings"

	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

var (
	MySQL      Dialect = &mysqlDialect{}
	SQLite3    Dialect = &sqlite3Dialect{}
	PostgreSQL Dialect = &postgresDialect{}
)

// Kind 字段的抽象类型，由方言决定具体的列类型
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindDouble
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Dialect 屏蔽不同数据库之间的差异：标识符转义、列类型、占位符以及主键回填方式
type Dialect interface {
	// Name 方言的名字，主要用于日志和监控
	Name() string
	// Quote escapes a table or column identifier.
	Quote(name string) string
	// ColumnType renders the column type of kind. size is the optional
	// length of string columns, 0 means unbounded.
	ColumnType(kind Kind, size int) string
	// AutoIncrementKey renders the whole definition of an auto-incrementing
	// primary key column.
	AutoIncrementKey(kind Kind) string

	// rebind 把 ? 占位符改写成方言自己的形式
	rebind(query string) string
	// returning 为 true 时，通过 RETURNING 取回生成的主键，而不是 LastInsertId
	returning() bool
}

// DialectFor returns the dialect used with a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite3", "sqlite":
		return SQLite3, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "pgx":
		return PostgreSQL, nil
	default:
		return nil, errs.NewErrUnsupportedDriver(driver)
	}
}

type standardSQL struct {
}

func (s standardSQL) quoteWith(q byte, name string) string {
	// 已经转义过的，就不再处理
	if len(name) >= 2 && name[0] == q && name[len(name)-1] == q {
		return name
	}
	parts := strings.Split(name, ".")
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteByte(q)
		sb.WriteString(strings.ReplaceAll(p, string(q), string([]byte{q, q})))
		sb.WriteByte(q)
	}
	return sb.String()
}

func (s standardSQL) rebind(query string) string {
	return query
}

func (s standardSQL) returning() bool {
	return false
}

func (s standardSQL) sizedString(size int, unbounded string) string {
	if size > 0 {
		return "VARCHAR(" + strconv.Itoa(size) + ")"
	}
	return unbounded
}

type mysqlDialect struct {
	standardSQL
}

func (m *mysqlDialect) Name() string {
	return "mysql"
}

func (m *mysqlDialect) Quote(name string) string {
	return m.quoteWith('`', name)
}

func (m *mysqlDialect) ColumnType(kind Kind, size int) string {
	switch kind {
	case KindString:
		if size <= 0 {
			size = 255
		}
		return m.sizedString(size, "")
	case KindInt:
		return "BIGINT"
	case KindDouble:
		return "DOUBLE"
	case KindDateTime:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

func (m *mysqlDialect) AutoIncrementKey(kind Kind) string {
	if kind != KindInt {
		return m.ColumnType(kind, 0) + " PRIMARY KEY"
	}
	return "BIGINT PRIMARY KEY AUTO_INCREMENT"
}

type sqlite3Dialect struct {
	standardSQL
}

func (s *sqlite3Dialect) Name() string {
	return "sqlite3"
}

func (s *sqlite3Dialect) Quote(name string) string {
	return s.quoteWith('"', name)
}

func (s *sqlite3Dialect) ColumnType(kind Kind, size int) string {
	switch kind {
	case KindString:
		return s.sizedString(size, "TEXT")
	case KindInt:
		return "INTEGER"
	case KindDouble:
		return "REAL"
	case KindDateTime:
		return "DATETIME"
	default:
		return "BLOB"
	}
}

func (s *sqlite3Dialect) AutoIncrementKey(kind Kind) string {
	// SQLite 只有 INTEGER PRIMARY KEY 才是 rowid 的别名
	if kind != KindInt {
		return s.ColumnType(kind, 0) + " PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

type postgresDialect struct {
	standardSQL
}

func (p *postgresDialect) Name() string {
	return "postgres"
}

func (p *postgresDialect) Quote(name string) string {
	return p.quoteWith('"', name)
}

func (p *postgresDialect) ColumnType(kind Kind, size int) string {
	switch kind {
	case KindString:
		return p.sizedString(size, "TEXT")
	case KindInt:
		return "BIGINT"
	case KindDouble:
		return "DOUBLE PRECISION"
	case KindDateTime:
		return "TIMESTAMP"
	default:
		return "BYTEA"
	}
}

func (p *postgresDialect) AutoIncrementKey(kind Kind) string {
	if kind != KindInt {
		return p.ColumnType(kind, 0) + " PRIMARY KEY"
	}
	return "BIGSERIAL PRIMARY KEY"
}

// rebind 将 ? 改写为 $1, $2 ...，引号内的内容保持不变
func (p *postgresDialect) rebind(query string) string {
	var (
		sb    strings.Builder
		n     int
		quote byte
	)
	sb.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '?':
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func (p *postgresDialect) returning() bool {
	return true
}
