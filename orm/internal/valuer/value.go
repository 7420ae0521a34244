package valuer

import "database/sql"

// Target 是结果集写入的目标，一般是一个 Model
type Target interface {
	// Column returns the scanner bound to the column name.
	Column(name string) (sql.Scanner, bool)
	// Columns lists the column names the target owns, in order.
	Columns() []string
}

// Value 是对 Target 的封装，负责把数据库或者缓存中的数据写进字段
type Value interface {
	// SetColumns 将当前行的数据设置到 Target 上
	SetColumns(rows *sql.Rows) error
	// SetRow 将缓存中的一行数据设置到 Target 上
	SetRow(row map[string]any) error
}

// Creator 本质上也可以看所是 factory 模式，极其简单的 factory 模式
type Creator func(t Target) Value
