// Package mainloop 提供广告系统的单一串行执行上下文
//
// 📋 **主执行上下文**
//
// 所有广告位的状态只在一个绑定的 goroutine 上读写：
// - 公共接口在入口处调用 MustBeCurrent，越界调用立即 panic
// - 广告网络完成回调、定时器、动画结束都通过 Post 回投到主上下文
// - 同一广告位内部不加锁
//
// 🎯 **使用方式**
// - 宿主自己持有主 goroutine 时：在该 goroutine 上 Bind，然后周期性调用 RunPending
// - 否则由 Run 独占一个 goroutine 处理任务，直到 ctx 结束或 Close
package mainloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"

	infraClock "github.com/weisyn/adkit/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/adkit/pkg/types"
)

// ErrLoopClosed 主执行上下文已关闭
var ErrLoopClosed = errors.New("主执行上下文已关闭")

// Loop 单一串行执行上下文
type Loop struct {
	clock  infraClock.Clock
	logger log.Logger

	mu    sync.Mutex
	queue []func()

	wake     chan struct{}
	owner    atomic.Int64 // 绑定的 goroutine ID，0 表示未绑定
	closed   atomic.Bool
	executed atomic.Uint64
}

// New 创建主执行上下文，capacity 为任务队列的初始容量
func New(clk infraClock.Clock, logger log.Logger, capacity int) *Loop {
	if capacity <= 0 {
		capacity = 16
	}
	return &Loop{
		clock:  clk,
		logger: logger,
		queue:  make([]func(), 0, capacity),
		wake:   make(chan struct{}, 1),
	}
}

// Clock 返回调度使用的时钟
func (l *Loop) Clock() infraClock.Clock { return l.clock }

// Bind 把调用方 goroutine 绑定为主执行上下文
func (l *Loop) Bind() {
	l.owner.Store(goid.Get())
}

// IsCurrent 调用方是否处于主执行上下文
func (l *Loop) IsCurrent() bool {
	owner := l.owner.Load()
	return owner != 0 && owner == goid.Get()
}

// MustBeCurrent 不在主执行上下文时以使用错误 panic
func (l *Loop) MustBeCurrent(op string) {
	if !l.IsCurrent() {
		panic(types.NewUsageError(op, types.ErrNotOnMainContext, ""))
	}
}

// Post 把任务投递到主执行上下文，可在任意 goroutine 调用
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	if l.closed.Load() {
		return ErrLoopClosed
	}

	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// PostDelayed 在 d 之后把任务投递到主执行上下文
//
// 返回的定时器可以取消；已经投递进队列的任务不受取消影响，调用方需自行守卫。
func (l *Loop) PostDelayed(d time.Duration, fn func()) infraClock.Timer {
	return l.clock.AfterFunc(d, func() {
		if err := l.Post(fn); err != nil && l.logger != nil {
			l.logger.Debugf("延迟任务投递失败: %v", err)
		}
	})
}

// RunPending 在主执行上下文中执行队列里的全部任务（包括执行期间新投递的任务）
func (l *Loop) RunPending() int {
	l.MustBeCurrent("RunPending")

	n := 0
	for {
		fn := l.next()
		if fn == nil {
			return n
		}
		fn()
		l.executed.Add(1)
		n++
	}
}

// Run 绑定当前 goroutine 并持续处理任务，直到 ctx 结束或 Close
func (l *Loop) Run(ctx context.Context) error {
	l.Bind()
	if l.logger != nil {
		l.logger.Debug("主执行上下文开始运行")
	}

	for {
		l.RunPending()
		if l.closed.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close 关闭主执行上下文，之后的 Post 返回 ErrLoopClosed
func (l *Loop) Close() {
	if l.closed.Swap(true) {
		return
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending 当前排队的任务数
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Executed 累计执行的任务数
func (l *Loop) Executed() uint64 {
	return l.executed.Load()
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}
