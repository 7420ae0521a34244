package orm

import (
	"log/slog"

	"github.com/johanneslochmann/qtorm/cache"
	"github.com/johanneslochmann/qtorm/orm/internal/valuer"
)

type core struct {
	dialect    Dialect
	valCreator valuer.Creator // 结果集映射到字段的实现
	mdls       []Middleware
	logger     *slog.Logger
	// cache 为 nil 的时候不使用缓存
	cache cache.Store
}
