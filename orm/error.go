package orm

import "github.com/johanneslochmann/qtorm/orm/internal/errs"

// 将内部的 sentinel error 暴露出去
var (
	// ErrNoRows 代表没有找到数据
	ErrNoRows = errs.ErrNoRows

	ErrNotInitialized     = errs.ErrNotInitialized
	ErrAlreadyInitialized = errs.ErrAlreadyInitialized
	ErrInconsistentBatch  = errs.ErrInconsistentBatch
	ErrNullPrimaryKey     = errs.ErrNullPrimaryKey
	ErrNilQueryResult     = errs.ErrNilQueryResult
	ErrNoUpdatedColumns   = errs.ErrNoUpdatedColumns
	ErrInsertZeroRow      = errs.ErrInsertZeroRow

	ErrTooManyReturnedColumns = errs.ErrTooManyReturnedColumns

	ErrDuplicateKey = errs.ErrDuplicateKey
	ErrConstraint   = errs.ErrConstraint
)
