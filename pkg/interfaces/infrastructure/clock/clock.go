// Package clock provides clock and timer interfaces.
package clock

import "time"

// Clock 提供统一的时间源接口（基础设施层接口）
//
// 设计目标：
// - 可测试：支持可替换与Mock实现，定时器可由测试推进
// - 统一：广告位的重试与动画都通过同一个时钟调度
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64

	// UnixNano 获取当前Unix时间戳（纳秒）
	UnixNano() int64

	// AfterFunc 在 d 之后调用 f，返回可取消的定时器
	// f 在时钟自己的 goroutine 中执行，调用方负责把工作切回主执行上下文
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer 可取消的定时任务
type Timer interface {
	// Stop 取消尚未触发的定时任务，已触发或已取消时返回 false
	Stop() bool
}
