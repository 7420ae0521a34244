package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRows 代表没有找到数据
	ErrNoRows = errors.New("orm: 未找到数据")

	ErrInsertZeroRow          = errors.New("orm: 插入 0 行")
	ErrNoUpdatedColumns       = errors.New("orm: 未指定更新的列")
	ErrTooManyReturnedColumns = errors.New("orm: 过多列")

	// ErrNotInitialized is returned when a model is used before Init.
	ErrNotInitialized = errors.New("orm: model is not initialized")
	// ErrAlreadyInitialized is returned by a second Init call.
	ErrAlreadyInitialized = errors.New("orm: model is already initialized")
	// ErrInconsistentBatch means the batch rows were snapshotted with
	// different column sets.
	ErrInconsistentBatch = errors.New("orm: batch rows have different columns")
	// ErrNullPrimaryKey is returned when an operation needs a primary key
	// value and the key is null.
	ErrNullPrimaryKey = errors.New("orm: primary key is null")
	// ErrNilQueryResult means a middleware returned no result.
	ErrNilQueryResult = errors.New("orm: middleware returned nil result")

	// ErrDuplicateKey and ErrConstraint are produced by error translation
	// middlewares from driver specific errors.
	ErrDuplicateKey = errors.New("orm: duplicate key")
	ErrConstraint   = errors.New("orm: constraint violation")
)

// NewErrUnknownColumn 返回代表未知列的错误
// 一般意味着结果集中的列没有对应的字段
func NewErrUnknownColumn(col string) error {
	return fmt.Errorf("orm: 未知列 %s", col)
}

// NewErrUnknownField 返回代表未知字段的错误
func NewErrUnknownField(name string) error {
	return fmt.Errorf("orm: 未知字段 %s", name)
}

// NewErrInvalidValue reports a value that can not be stored in a field.
func NewErrInvalidValue(field string, val any) error {
	return fmt.Errorf("orm: 字段 %s 不支持的值 %v (%T)", field, val, val)
}

// NewErrInconsistentBatch wraps ErrInconsistentBatch with the offending row.
func NewErrInconsistentBatch(row int) error {
	return fmt.Errorf("%w: row %d", ErrInconsistentBatch, row)
}

// NewErrUnsupportedDriver is returned when no dialect matches a driver name.
func NewErrUnsupportedDriver(driver string) error {
	return fmt.Errorf("orm: 不支持的驱动 %s", driver)
}
