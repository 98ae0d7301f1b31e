package ads

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	placementconfig "github.com/weisyn/adkit/internal/config/placement"
	"github.com/weisyn/adkit/internal/core/infrastructure/clock"
	logimpl "github.com/weisyn/adkit/internal/core/infrastructure/log"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/internal/core/lifecycle"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

const testScreen types.ScreenID = "level_screen"

// fakePort 记录调用的广告网络端口，回调由测试手动触发
type fakePort struct {
	spec     adnetwork.PortSpec
	cb       adnetwork.Callbacks
	requests []adnetwork.Request

	expired     bool
	minDelay    time.Duration
	defaultLife time.Duration
	sessionLife time.Duration
	visible     []bool
	paused      int
	resumed     int
	destroyed   bool

	// onStart 在 StartRequest 中同步执行，用于模拟同步限流
	onStart func(req adnetwork.Request)
}

func (p *fakePort) SetCallbacks(cb adnetwork.Callbacks) { p.cb = cb }

func (p *fakePort) StartRequest(req adnetwork.Request) {
	p.requests = append(p.requests, req)
	if p.onStart != nil {
		p.onStart(req)
	}
}

func (p *fakePort) IsCachedAdExpired() bool                { return p.expired }
func (p *fakePort) MinTimeUntilNextRequest() time.Duration { return p.minDelay }
func (p *fakePort) DefaultSessionLife() time.Duration      { return p.defaultLife }
func (p *fakePort) SetSessionLife(d time.Duration)         { p.sessionLife = d }
func (p *fakePort) ResetSessionLife()                      { p.sessionLife = p.defaultLife }
func (p *fakePort) SetVisible(v bool)                      { p.visible = append(p.visible, v) }
func (p *fakePort) ScreenPaused()                          { p.paused++ }
func (p *fakePort) ScreenResumed()                         { p.resumed++ }
func (p *fakePort) Destroy()                               { p.destroyed = true }

func (p *fakePort) lastRequest() adnetwork.Request {
	if len(p.requests) == 0 {
		return adnetwork.Request{}
	}
	return p.requests[len(p.requests)-1]
}

// fakePorts 按广告位名称创建 fakePort
type fakePorts struct {
	ports map[string]*fakePort
	err   error
}

func (f *fakePorts) NewPort(spec adnetwork.PortSpec) (adnetwork.Port, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := &fakePort{spec: spec, defaultLife: 30 * time.Second, sessionLife: 30 * time.Second}
	f.ports[spec.Placement] = p
	return p, nil
}

// recorder 按顺序记录收到的事件
type recorder struct {
	events []types.AdEvent
	log    []string

	onShow func(p placement.Placement, ev *types.ShowEvent)
}

func (r *recorder) record(ev types.AdEvent, label string) {
	r.events = append(r.events, ev)
	r.log = append(r.log, label)
}

func (r *recorder) OnCache(_ placement.Placement, ev *types.CacheEvent) { r.record(ev, "cache") }

func (r *recorder) OnShow(p placement.Placement, ev *types.ShowEvent) {
	if ev.IsRefresh() {
		r.record(ev, "show(refresh)")
	} else {
		r.record(ev, "show")
	}
	if r.onShow != nil {
		r.onShow(p, ev)
	}
}

func (r *recorder) OnFail(_ placement.Placement, ev *types.FailEvent) {
	r.record(ev, fmt.Sprintf("fail(throttled=%v)", ev.IsThrottled()))
}

func (r *recorder) OnHide(_ placement.Placement, ev *types.HideEvent) {
	if ev.IsRefresh() {
		r.record(ev, "hide(refresh)")
	} else {
		r.record(ev, "hide")
	}
}

func (r *recorder) OnClick(_ placement.Placement, ev *types.ClickEvent) { r.record(ev, "click") }

func (r *recorder) OnPresentFullscreen(_ placement.Placement, ev *types.PresentFullscreenEvent) {
	r.record(ev, "present")
}

func (r *recorder) OnDismissFullscreen(_ placement.Placement, ev *types.DismissFullscreenEvent) {
	r.record(ev, "dismiss")
}

// harness 一个测试用例的完整装配；主执行上下文绑定在调用 newHarness 的 goroutine 上
type harness struct {
	clk      *clock.MockClock
	loop     *mainloop.Loop
	registry *lifecycle.Registry
	bridge   *lifecycle.Bridge
	ports    *fakePorts
	factory  *Factory
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithConfig(t, placementconfig.New(nil))
}

func newHarnessWithConfig(t *testing.T, cfg *placementconfig.Config) *harness {
	t.Helper()
	logger := logimpl.NewNop()
	clk := clock.NewMockClock(time.Unix(0, 0).UTC())
	loop := mainloop.New(clk, logger, 0)
	loop.Bind()
	registry := lifecycle.NewRegistry(loop, logger)
	ports := &fakePorts{ports: make(map[string]*fakePort)}
	return &harness{
		clk:      clk,
		loop:     loop,
		registry: registry,
		bridge:   lifecycle.NewBridge(registry),
		ports:    ports,
		factory:  NewFactory(loop, ports, registry, cfg, NewRelay(nil), logger),
	}
}

// advance 推进模拟时钟并执行回投到主执行上下文的任务
func (h *harness) advance(d time.Duration) {
	h.clk.Advance(d)
	h.loop.RunPending()
}

func (h *harness) port(name string) *fakePort { return h.ports.ports[name] }

func (h *harness) interstitial(t *testing.T, name string, auto bool) (*Interstitial, *fakePort, *recorder) {
	t.Helper()
	i, err := h.factory.NewInterstitial(Options{Screen: testScreen, Name: name, ZoneID: "zone-" + name, AutoCache: auto})
	require.NoError(t, err)
	rec := &recorder{}
	i.AddListener(rec)
	return i, h.port(name), rec
}

func (h *harness) banner(t *testing.T, name string) (*Banner, *fakePort, *recorder) {
	t.Helper()
	b, err := h.factory.NewBanner(Options{Screen: testScreen, Name: name, ZoneID: "zone-" + name})
	require.NoError(t, err)
	rec := &recorder{}
	b.AddListener(rec)
	return b, h.port(name), rec
}

func (h *harness) animated(t *testing.T, name string, auto bool) (*AnimatedBanner, *fakePort, *recorder) {
	t.Helper()
	a, err := h.factory.NewAnimatedBanner(Options{Screen: testScreen, Name: name, ZoneID: "zone-" + name, AutoCache: auto})
	require.NoError(t, err)
	rec := &recorder{}
	a.AddListener(rec)
	return a, h.port(name), rec
}

// usageError 执行 fn 并返回其 panic 出的使用错误
func usageError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("非错误类型的 panic: %v", r)
		}
	}()
	fn()
	return nil
}

// requireUsageError 断言 fn 以指定的使用错误 panic
func requireUsageError(t *testing.T, want error, fn func()) {
	t.Helper()
	err := usageError(fn)
	require.Error(t, err)
	var usage *types.UsageError
	require.True(t, errors.As(err, &usage), "期望 *types.UsageError，实际 %T", err)
	require.ErrorIs(t, err, want)
}

// fakeAnimation 由测试手动结束的动画
type fakeAnimation struct {
	starts int
	onEnd  func()
}

func (a *fakeAnimation) Start(onEnd func()) {
	a.starts++
	a.onEnd = onEnd
}

func (a *fakeAnimation) finish() {
	end := a.onEnd
	a.onEnd = nil
	if end != nil {
		end()
	}
}

// animRecorder 记录动画结束回调
type animRecorder struct {
	intro int
	outro int
}

func (r *animRecorder) OnIntroAnimEnd(placement.AnimatedBanner) { r.intro++ }
func (r *animRecorder) OnOutroAnimEnd(placement.AnimatedBanner) { r.outro++ }
