package valuer

import (
	"database/sql"

	"github.com/johanneslochmann/qtorm/orm/internal/errs"
)

// scannerValue 利用字段本身实现的 sql.Scanner 完成映射
type scannerValue struct {
	t Target
}

var _ Creator = NewScannerValue

// NewScannerValue 返回一个封装好的，基于 sql.Scanner 实现的 Value
func NewScannerValue(t Target) Value {
	return scannerValue{t: t}
}

// SetColumns sets the values of the current row to the matching fields.
func (s scannerValue) SetColumns(rows *sql.Rows) error {
	columnNames, err := rows.Columns()
	if err != nil {
		return err
	}

	if len(columnNames) > len(s.t.Columns()) {
		return errs.ErrTooManyReturnedColumns
	}

	// 字段自己就是 Scanner，直接交给 rows.Scan
	colValues := make([]any, len(columnNames))
	for i, name := range columnNames {
		sc, ok := s.t.Column(name)
		if !ok {
			return errs.NewErrUnknownColumn(name)
		}
		colValues[i] = sc
	}

	return rows.Scan(colValues...)
}

// SetRow sets a cached row. Columns missing from the row become null.
func (s scannerValue) SetRow(row map[string]any) error {
	cols := s.t.Columns()
	if len(row) > len(cols) {
		return errs.ErrTooManyReturnedColumns
	}
	for name := range row {
		if _, ok := s.t.Column(name); !ok {
			return errs.NewErrUnknownColumn(name)
		}
	}

	for _, name := range cols {
		sc, _ := s.t.Column(name)
		// 缺失的列，意味着缓存里面存的是 NULL
		if err := sc.Scan(row[name]); err != nil {
			return err
		}
	}
	return nil
}
