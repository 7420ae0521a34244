package orm

import (
	"database/sql"
	"errors"
)

var errNoResult = errors.New("orm: 语句没有返回结果")

type Result struct {
	err error
	res sql.Result
}

// LastInsertId 重新 database sql 的 Result 方法 做一层拦截
func (r Result) LastInsertId() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.res == nil {
		return 0, errNoResult
	}
	return r.res.LastInsertId()
}

func (r Result) RowsAffected() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.res == nil {
		return 0, errNoResult
	}
	return r.res.RowsAffected()
}

func (r Result) Err() error {
	return r.err
}

// returningResult 用于 INSERT ... RETURNING，主键由结果集返回而不是 LastInsertId
type returningResult struct {
	lastID int64
	rows   int64
}

func (r returningResult) LastInsertId() (int64, error) {
	return r.lastID, nil
}

func (r returningResult) RowsAffected() (int64, error) {
	return r.rows, nil
}
