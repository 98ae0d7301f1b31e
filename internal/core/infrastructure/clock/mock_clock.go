package clock

import (
	"sort"
	"sync"
	"time"

	infraClock "github.com/weisyn/adkit/pkg/interfaces/infrastructure/clock"
)

// MockClock 测试用时钟，时间可控
//
// AfterFunc 注册的定时器只会在 Advance 推进到期后，
// 在调用 Advance 的 goroutine 中按到期顺序同步触发。
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*mockTimer
	seq         uint64
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	seq      uint64
	fn       func()
	stopped  bool
	fired    bool
}

func NewMockClock(initial time.Time) *MockClock { return &MockClock{currentTime: initial} }

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *MockClock) Unix() int64                     { return c.Now().Unix() }
func (c *MockClock) UnixNano() int64                 { return c.Now().UnixNano() }

// AfterFunc 注册一个在 d 之后触发的定时器
func (c *MockClock) AfterFunc(d time.Duration, f func()) infraClock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &mockTimer{clock: c, deadline: c.currentTime.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance 推进时间，并触发所有到期的定时器
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.currentTime.Add(d)
	c.mu.Unlock()

	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	c.currentTime = target
	c.mu.Unlock()
}

// Pending 返回尚未触发且未取消的定时器数量
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// nextDue 取出下一个到期的定时器，并把当前时间推进到它的到期时刻
func (c *MockClock) nextDue(target time.Time) *mockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live

	sort.Slice(c.timers, func(i, j int) bool {
		if c.timers[i].deadline.Equal(c.timers[j].deadline) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].deadline.Before(c.timers[j].deadline)
	})

	if len(c.timers) == 0 || c.timers[0].deadline.After(target) {
		return nil
	}
	t := c.timers[0]
	t.fired = true
	if t.deadline.After(c.currentTime) {
		c.currentTime = t.deadline
	}
	return t
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Ensure接口实现满足 infraClock.Clock
var _ infraClock.Clock = (*MockClock)(nil)
