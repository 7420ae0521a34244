package orm

import (
	"database/sql"

	"github.com/gotomicro/ekit/slice"
	"github.com/johanneslochmann/qtorm/cache"
	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

// defaultPKName 没有声明主键的时候，自动生成的主键名
const defaultPKName = "id"

// ModelOpt is a function type that modifies a Model.
type ModelOpt func(m *Model)

// ModelWithTableNumber sets the table number tag of the model.
func ModelWithTableNumber(n int) ModelOpt {
	return func(m *Model) {
		m.tableNumber = n
	}
}

// snapshot 是 AddInBatch 时刻字段值的快照
// cols 记录了哪些字段参与了快照，用于在 SaveBatch 的时候校验
type snapshot struct {
	cols []int
	vals []any
}

// Model 代表一张表，以及把这张表的一行持久化的逻辑
//
// A Model is configured by registering fields and then calling Init, which
// adopts the first field flagged as primary key or prepends an
// auto-increment "id" field. A Model is not safe for concurrent use.
type Model struct {
	tableName   string
	tableNumber int

	// fields 的顺序就是 SQL 里面列的顺序
	fields []Field
	// pk 主键在 fields 里面的下标，Init 之前是 -1
	pk int

	batch []snapshot
}

func NewModel(tableName string, opts ...ModelOpt) *Model {
	m := &Model{
		tableName: tableName,
		pk:        -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) SetTableName(tableName string) {
	m.tableName = tableName
}

func (m *Model) TableName() string {
	return m.tableName
}

// Init locates the primary key or synthesizes one. It must be called once,
// after every field has been registered.
func (m *Model) Init() error {
	if m.initialized() {
		return errs.ErrAlreadyInitialized
	}

	// 第一个声明为主键的字段胜出，其余字段的主键标记被清除
	for i, f := range m.fields {
		if !f.PrimaryKey() {
			continue
		}
		if m.initialized() {
			f.SetPrimaryKey(false)
			continue
		}
		m.pk = i
	}
	if m.initialized() {
		return nil
	}

	id := NewIntField(defaultPKName)
	id.SetAutoIncrement(true)
	id.SetPrimaryKey(true)

	// 生成的主键总是第一列
	m.fields = append([]Field{id}, m.fields...)
	m.pk = 0
	return nil
}

func (m *Model) initialized() bool {
	return m.pk >= 0
}

func (m *Model) checkInit() error {
	if !m.initialized() {
		return errs.ErrNotInitialized
	}
	return nil
}

// AddField appends f to the column list.
func (m *Model) AddField(f Field) {
	m.fields = append(m.fields, f)
}

// StringField creates a string field and registers it.
func (m *Model) StringField(name string) *StringField {
	f := NewStringField(name)
	m.AddField(f)
	return f
}

func (m *Model) IntField(name string) *IntField {
	f := NewIntField(name)
	m.AddField(f)
	return f
}

func (m *Model) DoubleField(name string) *DoubleField {
	f := NewDoubleField(name)
	m.AddField(f)
	return f
}

func (m *Model) DateTimeField(name string) *DateTimeField {
	f := NewDateTimeField(name)
	m.AddField(f)
	return f
}

// ForeignKey creates an integer field referencing the primary key of target.
func (m *Model) ForeignKey(name string, target *Model) *ForeignKey {
	f := NewForeignKey(name, target)
	m.AddField(f)
	return f
}

// PK returns the primary key field, nil before Init.
func (m *Model) PK() Field {
	if !m.initialized() {
		return nil
	}
	return m.fields[m.pk]
}

func (m *Model) FieldsCount() int {
	return len(m.fields)
}

// Field returns the i-th field in column order.
func (m *Model) Field(i int) Field {
	return m.fields[i]
}

func (m *Model) FieldByName(name string) (Field, bool) {
	for _, f := range m.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// ForeignKeys returns the foreign key fields in column order.
func (m *Model) ForeignKeys() []*ForeignKey {
	var res []*ForeignKey
	for _, f := range m.fields {
		if fk, ok := f.(*ForeignKey); ok {
			res = append(res, fk)
		}
	}
	return res
}

// ResetModified clears the modified flag of every field.
func (m *Model) ResetModified() {
	for _, f := range m.fields {
		f.SetModified(false)
	}
}

func (m *Model) SetTableNumber(n int) {
	m.tableNumber = n
}

func (m *Model) TableNumber() int {
	return m.tableNumber
}

func (m *Model) ClearBatch() {
	m.batch = nil
}

// BatchSize is the number of rows waiting for SaveBatch.
func (m *Model) BatchSize() int {
	return len(m.batch)
}

// AddInBatch snapshots the current values as a new batch row. A null
// primary key is left out, the database assigns it.
func (m *Model) AddInBatch() error {
	if err := m.checkInit(); err != nil {
		return err
	}
	m.batch = append(m.batch, m.snapshot())
	return nil
}

func (m *Model) snapshot() snapshot {
	cols := m.includedColumns()
	return snapshot{
		cols: cols,
		vals: slice.Map(cols, func(idx int, c int) any {
			return m.fields[c].Data()
		}),
	}
}

// included 主键为 NULL 的时候由数据库生成，不参与 INSERT
func (m *Model) included(i int) bool {
	return !(i == m.pk && m.fields[i].IsNull())
}

func (m *Model) includedColumns() []int {
	cols := make([]int, 0, len(m.fields))
	for i := range m.fields {
		if m.included(i) {
			cols = append(cols, i)
		}
	}
	return cols
}

func (m *Model) modifiedFields() []Field {
	var res []Field
	for _, f := range m.fields {
		if f.IsModified() {
			res = append(res, f)
		}
	}
	return res
}

// row 当前的值，用于写缓存
func (m *Model) row() map[string]any {
	res := make(map[string]any, len(m.fields))
	for _, f := range m.fields {
		res[f.Name()] = f.Data()
	}
	return res
}

func (m *Model) cacheKey(pk any) string {
	return cache.Key(m.tableName, pk)
}

// modelTarget 让 valuer 可以把数据写进 Model 的字段
type modelTarget struct {
	m *Model
}

func (t modelTarget) Column(name string) (sql.Scanner, bool) {
	f, ok := t.m.FieldByName(name)
	if !ok {
		return nil, false
	}
	return f, true
}

func (t modelTarget) Columns() []string {
	return slice.Map(t.m.fields, func(idx int, f Field) string {
		return f.Name()
	})
}
