package types

import (
	"errors"
	"fmt"
)

// 使用错误：调用方违反了接口契约，以 panic(*UsageError) 的方式快速失败
var (
	ErrNotOnMainContext    = errors.New("调用不在主执行上下文中")
	ErrPlacementNameReused = errors.New("广告位名称已绑定到不同的 app/zone")
	ErrAutoCacheEnabled    = errors.New("自动缓存已开启，不允许手动缓存")
	ErrAnimating           = errors.New("动画进行中不允许修改动画")
	ErrWrongCreativeKind   = errors.New("广告位类型与创意类型不匹配")
	ErrPlacementDestroyed  = errors.New("广告位已销毁")
)

// UsageError 描述一次契约违反
type UsageError struct {
	Op     string // 出错的操作
	Detail string // 附加说明
	Err    error  // 哨兵错误
}

// NewUsageError 创建使用错误
func NewUsageError(op string, err error, detail string) *UsageError {
	return &UsageError{Op: op, Detail: detail, Err: err}
}

func (e *UsageError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Detail)
}

func (e *UsageError) Unwrap() error { return e.Err }
