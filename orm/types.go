package orm

type Query struct {
	SQL  string
	Args []any
}

// QueryBuilder 构造 SQL，每次调用 Build 都会重新构造
type QueryBuilder interface {
	Build() (*Query, error)
}
