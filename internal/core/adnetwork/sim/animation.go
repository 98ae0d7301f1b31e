package sim

import (
	"time"

	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
)

// Tween 按固定时长结束的动画
//
// 结束回调总是异步投递到主执行上下文，即使时长为 0。
type Tween struct {
	loop     *mainloop.Loop
	name     string
	duration time.Duration
	starts   int
}

var _ adnetwork.Animation = (*Tween)(nil)

// NewTween 创建动画
func NewTween(loop *mainloop.Loop, name string, duration time.Duration) *Tween {
	return &Tween{loop: loop, name: name, duration: duration}
}

func (t *Tween) Start(onEnd func()) {
	t.starts++
	if t.duration <= 0 {
		_ = t.loop.Post(onEnd)
		return
	}
	t.loop.PostDelayed(t.duration, onEnd)
}

// Name 动画名称
func (t *Tween) Name() string { return t.name }

// Duration 动画时长
func (t *Tween) Duration() time.Duration { return t.duration }

// Starts 累计启动次数
func (t *Tween) Starts() int { return t.starts }
