package orm

import (
	"time"

	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

var (
	_ Field = &StringField{}
	_ Field = &IntField{}
	_ Field = &DoubleField{}
	_ Field = &DateTimeField{}
	_ Field = &ForeignKey{}
)

// StringField 字符串列
type StringField struct {
	fieldBase
	val       string
	maxLength int
}

// NewStringField creates a detached field. Use Model.StringField to create
// and register one in a single step.
func NewStringField(name string) *StringField {
	return &StringField{fieldBase: newFieldBase(name)}
}

func (f *StringField) Kind() Kind {
	return KindString
}

func (f *StringField) Get() string {
	return f.val
}

func (f *StringField) Set(val string) {
	f.val = val
	f.touch()
}

// Clear 将值设置为 NULL
func (f *StringField) Clear() {
	f.val = ""
	f.null = true
	f.modified = true
}

// SetMaxLength bounds the column, rendered as VARCHAR(n).
func (f *StringField) SetMaxLength(n int) {
	f.maxLength = n
}

func (f *StringField) Data() any {
	if f.null {
		return nil
	}
	return f.val
}

func (f *StringField) Scan(src any) error {
	if src == nil {
		f.val, f.null = "", true
		return nil
	}
	v, ok := asString(src)
	if !ok {
		return errs.NewErrInvalidValue(f.name, src)
	}
	f.val, f.null = v, false
	return nil
}

func (f *StringField) SQLDescription(d Dialect) string {
	return f.describe(d, KindString, f.maxLength)
}

// IntField 整数列，使用 int64 保存
type IntField struct {
	fieldBase
	val int64
}

func NewIntField(name string) *IntField {
	return &IntField{fieldBase: newFieldBase(name)}
}

func (f *IntField) Kind() Kind {
	return KindInt
}

func (f *IntField) Get() int64 {
	return f.val
}

func (f *IntField) Set(val int64) {
	f.val = val
	f.touch()
}

func (f *IntField) Clear() {
	f.val = 0
	f.null = true
	f.modified = true
}

func (f *IntField) Data() any {
	if f.null {
		return nil
	}
	return f.val
}

func (f *IntField) Scan(src any) error {
	if src == nil {
		f.val, f.null = 0, true
		return nil
	}
	v, ok := asInt64(src)
	if !ok {
		return errs.NewErrInvalidValue(f.name, src)
	}
	f.val, f.null = v, false
	return nil
}

func (f *IntField) SQLDescription(d Dialect) string {
	return f.describe(d, KindInt, 0)
}

// DoubleField 浮点数列
type DoubleField struct {
	fieldBase
	val float64
}

func NewDoubleField(name string) *DoubleField {
	return &DoubleField{fieldBase: newFieldBase(name)}
}

func (f *DoubleField) Kind() Kind {
	return KindDouble
}

func (f *DoubleField) Get() float64 {
	return f.val
}

func (f *DoubleField) Set(val float64) {
	f.val = val
	f.touch()
}

func (f *DoubleField) Clear() {
	f.val = 0
	f.null = true
	f.modified = true
}

func (f *DoubleField) Data() any {
	if f.null {
		return nil
	}
	return f.val
}

func (f *DoubleField) Scan(src any) error {
	if src == nil {
		f.val, f.null = 0, true
		return nil
	}
	v, ok := asFloat64(src)
	if !ok {
		return errs.NewErrInvalidValue(f.name, src)
	}
	f.val, f.null = v, false
	return nil
}

func (f *DoubleField) SQLDescription(d Dialect) string {
	return f.describe(d, KindDouble, 0)
}

// DateTimeField 时间列
type DateTimeField struct {
	fieldBase
	val time.Time
}

func NewDateTimeField(name string) *DateTimeField {
	return &DateTimeField{fieldBase: newFieldBase(name)}
}

func (f *DateTimeField) Kind() Kind {
	return KindDateTime
}

func (f *DateTimeField) Get() time.Time {
	return f.val
}

func (f *DateTimeField) Set(val time.Time) {
	f.val = val
	f.touch()
}

func (f *DateTimeField) Clear() {
	f.val = time.Time{}
	f.null = true
	f.modified = true
}

func (f *DateTimeField) Data() any {
	if f.null {
		return nil
	}
	return f.val
}

func (f *DateTimeField) Scan(src any) error {
	if src == nil {
		f.val, f.null = time.Time{}, true
		return nil
	}
	v, ok := asTime(src)
	if !ok {
		return errs.NewErrInvalidValue(f.name, src)
	}
	f.val, f.null = v, false
	return nil
}

func (f *DateTimeField) SQLDescription(d Dialect) string {
	return f.describe(d, KindDateTime, 0)
}

// ForeignKey 是引用另一个 Model 主键的整数列
type ForeignKey struct {
	IntField
	target *Model
}

func NewForeignKey(name string, target *Model) *ForeignKey {
	return &ForeignKey{
		IntField: IntField{fieldBase: newFieldBase(name)},
		target:   target,
	}
}

// Target is the referenced model.
func (f *ForeignKey) Target() *Model {
	return f.target
}

func (f *ForeignKey) SetTarget(target *Model) {
	f.target = target
}

// SQLDescription appends a REFERENCES clause to the integer column.
func (f *ForeignKey) SQLDescription(d Dialect) string {
	desc := f.IntField.SQLDescription(d)
	if f.target == nil {
		return desc
	}
	// 目标表还没有 Init 的时候，使用默认生成的主键名
	pkName := defaultPKName
	if pk := f.target.PK(); pk != nil {
		pkName = pk.Name()
	}
	return desc + " REFERENCES " + d.Quote(f.target.TableName()) + "(" + d.Quote(pkName) + ")"
}
