package orm

import (
	"database/sql"
	"strings"
)

// Field 代表表中的一列：名字、类型、当前的值以及各种标记位
// Model 只会通过这个接口来操作字段
type Field interface {
	// Scan stores a raw driver value without marking the field modified.
	// A nil src makes the field null.
	sql.Scanner

	Name() string
	Kind() Kind
	// Data returns the current value as a driver value, nil when null.
	Data() any

	PrimaryKey() bool
	SetPrimaryKey(pk bool)
	AutoIncrement() bool
	SetAutoIncrement(ai bool)
	IsNull() bool
	SetNull(null bool)
	IsModified() bool
	SetModified(modified bool)

	// SQLDescription renders the column definition after the column name,
	// e.g. "INTEGER PRIMARY KEY AUTOINCREMENT".
	SQLDescription(d Dialect) string
}

// fieldBase 保存所有类型共有的部分
type fieldBase struct {
	name string

	primaryKey    bool
	autoIncrement bool
	notNull       bool
	unique        bool

	modified bool
	// 新建的字段没有值
	null bool
}

func newFieldBase(name string) fieldBase {
	return fieldBase{
		name: name,
		null: true,
	}
}

func (f *fieldBase) Name() string {
	return f.name
}

func (f *fieldBase) PrimaryKey() bool {
	return f.primaryKey
}

func (f *fieldBase) SetPrimaryKey(pk bool) {
	f.primaryKey = pk
}

func (f *fieldBase) AutoIncrement() bool {
	return f.autoIncrement
}

func (f *fieldBase) SetAutoIncrement(ai bool) {
	f.autoIncrement = ai
}

// NotNull 是否带 NOT NULL 约束
func (f *fieldBase) NotNull() bool {
	return f.notNull
}

func (f *fieldBase) SetNotNull(notNull bool) {
	f.notNull = notNull
}

// Unique 是否带 UNIQUE 约束
func (f *fieldBase) Unique() bool {
	return f.unique
}

func (f *fieldBase) SetUnique(unique bool) {
	f.unique = unique
}

func (f *fieldBase) IsNull() bool {
	return f.null
}

// SetNull only changes the null flag. Use Clear on the typed fields to
// null a value as a user change.
func (f *fieldBase) SetNull(null bool) {
	f.null = null
}

func (f *fieldBase) IsModified() bool {
	return f.modified
}

func (f *fieldBase) SetModified(modified bool) {
	f.modified = modified
}

// touch 用户修改了值
func (f *fieldBase) touch() {
	f.null = false
	f.modified = true
}

// describe renders the column definition shared by every kind.
func (f *fieldBase) describe(d Dialect, kind Kind, size int) string {
	if f.primaryKey && f.autoIncrement {
		return d.AutoIncrementKey(kind)
	}

	var sb strings.Builder
	sb.WriteString(d.ColumnType(kind, size))
	if f.primaryKey {
		sb.WriteString(" PRIMARY KEY")
		return sb.String()
	}
	if f.notNull {
		sb.WriteString(" NOT NULL")
	}
	if f.unique {
		sb.WriteString(" UNIQUE")
	}
	return sb.String()
}
