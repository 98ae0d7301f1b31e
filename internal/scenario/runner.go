package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/weisyn/adkit/internal/app"
	"github.com/weisyn/adkit/internal/core/adnetwork/sim"
	"github.com/weisyn/adkit/internal/core/ads"
	"github.com/weisyn/adkit/internal/core/infrastructure/clock"
	"github.com/weisyn/adkit/internal/core/infrastructure/metrics"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/types"
)

// 时间线上的非广告事件
const (
	EntryAction     = "action"
	EntryRetry      = "retry"
	EntryUsageError = "usage_error"
)

// Entry 时间线条目
type Entry struct {
	At        time.Duration // 相对场景开始的模拟时间
	Placement string
	Event     string // 广告事件类型或 EntryAction / EntryRetry / EntryUsageError
	Detail    string
	Delivered bool // 广告事件是否交给了监听器
}

// Report 场景运行结果
type Report struct {
	Scenario    string
	Elapsed     time.Duration
	Timeline    []Entry
	Stats       []metrics.PlacementStats
	UsageErrors int
}

// handle 场景中创建的广告位
type handle struct {
	spec   PlacementSpec
	inter  *ads.Interstitial
	banner *ads.Banner
	anim   *ads.AnimatedBanner
}

// Runner 在模拟时钟上运行场景
//
// Runner 绑定调用方 goroutine 为主执行上下文，NewRunner 与 Run 必须在同一个 goroutine 上调用。
type Runner struct {
	app   app.App
	clock *clock.MockClock
	start time.Time

	handles map[string]*handle
	report  *Report

	onEvent func(placement string, ev types.AdEvent, delivered bool)
	onRetry func(placement string, delay time.Duration)
}

// NewRunner 创建场景运行器，应用必须使用模拟时钟并启用事件总线
func NewRunner(a app.App) (*Runner, error) {
	mock, ok := a.Clock().(*clock.MockClock)
	if !ok {
		return nil, errors.New("场景模拟需要模拟时钟（clock.type = mock）")
	}
	if a.EventBus() == nil || !a.EventBus().IsEnabled() {
		return nil, errors.New("场景模拟需要启用事件总线（event.enabled = true）")
	}
	a.Loop().Bind()

	r := &Runner{
		app:     a,
		clock:   mock,
		handles: make(map[string]*handle),
	}
	r.onEvent = r.recordEvent
	r.onRetry = r.recordRetry
	return r, nil
}

// Run 运行场景并返回时间线
func (r *Runner) Run(scn *Scenario) (*Report, error) {
	r.start = r.clock.Now()
	r.report = &Report{Scenario: scn.Name}

	if err := r.subscribe(); err != nil {
		return nil, err
	}
	defer r.unsubscribe()

	for _, spec := range scn.Placements {
		if err := r.create(spec); err != nil {
			return nil, err
		}
	}

	steps := append([]Step(nil), scn.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	tick := scn.tick()
	for _, step := range steps {
		r.advanceTo(step.At.Std(), tick)
		r.record(Entry{Placement: step.Target(), Event: EntryAction, Detail: step.Action, Delivered: true})
		if err := r.apply(step); err != nil {
			r.report.UsageErrors++
			r.record(Entry{Placement: step.Target(), Event: EntryUsageError, Detail: err.Error()})
		}
		r.app.Loop().RunPending()
	}
	r.advanceTo(scn.Duration.Std(), tick)

	r.report.Elapsed = r.elapsed()
	r.report.Stats = r.app.Metrics().Snapshot()
	r.app.Logger().Infof("场景 %s 运行完成，模拟时长 %s，事件 %d 条", scn.Name, r.report.Elapsed, len(r.report.Timeline))
	return r.report, nil
}

func (r *Runner) create(spec PlacementSpec) error {
	r.app.Network().Script(spec.Name, spec.outcomes()...)

	zone := spec.Zone
	if zone == "" {
		zone = "zone-" + spec.Name
	}
	opts := ads.Options{
		Screen:          types.ScreenID(spec.Screen),
		Name:            spec.Name,
		ZoneID:          zone,
		AutoCache:       spec.AutoCache,
		RefreshInterval: spec.Refresh.Std(),
	}

	h := &handle{spec: spec}
	var err error
	switch spec.Kind {
	case KindInterstitial:
		h.inter, err = r.app.Factory().NewInterstitial(opts)
	case KindBanner:
		h.banner, err = r.app.Factory().NewBanner(opts)
	case KindAnimatedBanner:
		h.anim, err = r.app.Factory().NewAnimatedBanner(opts)
		if err == nil {
			h.anim.SetAnimations(
				r.tween(spec.Name+":intro", spec.Intro.Std()),
				r.tween(spec.Name+":outro", spec.Outro.Std()),
			)
		}
	default:
		err = fmt.Errorf("%w: 广告位 %s 的类型 %q 未知", ErrInvalidScenario, spec.Name, spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("创建广告位 %s 失败: %w", spec.Name, err)
	}
	r.handles[spec.Name] = h
	return nil
}

func (r *Runner) tween(name string, d time.Duration) adnetwork.Animation {
	if d <= 0 {
		return nil
	}
	return sim.NewTween(r.app.Loop(), name, d)
}

// apply 执行一步宿主操作，使用错误转换为返回值
func (r *Runner) apply(step Step) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var usage *types.UsageError
			if e, ok := rec.(error); ok && errors.As(e, &usage) {
				err = usage
				return
			}
			panic(rec)
		}
	}()

	if step.Screen != "" {
		screen := types.ScreenID(step.Screen)
		switch step.Action {
		case ActionPause:
			r.app.Bridge().NotifyPaused(screen)
		case ActionResume:
			r.app.Bridge().NotifyResumed(screen)
		case ActionDestroy:
			r.app.Bridge().NotifyDestroyed(screen)
		}
		return nil
	}

	h, ok := r.handles[step.Placement]
	if !ok {
		return fmt.Errorf("广告位 %s 不存在", step.Placement)
	}
	switch step.Action {
	case ActionShow:
		switch {
		case h.inter != nil:
			h.inter.ShowAd()
		case h.banner != nil:
			h.banner.ShowAd()
		case h.anim != nil:
			h.anim.ShowAd()
		}
	case ActionHide:
		if h.anim != nil {
			h.anim.HideAd()
		}
	case ActionCache:
		switch {
		case h.inter != nil:
			h.inter.CacheAd()
		case h.anim != nil:
			h.anim.CacheAd()
		}
	default:
		return r.userAction(step)
	}
	return nil
}

// userAction 模拟用户对广告视图的操作
func (r *Runner) userAction(step Step) error {
	port, ok := r.app.Network().Port(step.Placement)
	if !ok {
		return fmt.Errorf("广告位 %s 没有广告网络端口", step.Placement)
	}
	switch step.Action {
	case ActionClick:
		port.Click()
	case ActionDismiss:
		port.DismissFullscreen()
	case ActionExpand:
		port.Expand()
	case ActionCollapse:
		port.Collapse()
	default:
		return fmt.Errorf("未知的操作 %q", step.Action)
	}
	return nil
}

func (r *Runner) advanceTo(target, tick time.Duration) {
	for {
		remaining := target - r.elapsed()
		if remaining <= 0 {
			break
		}
		r.clock.Advance(min(tick, remaining))
		r.app.Loop().RunPending()
	}
	r.app.Loop().RunPending()
}

func (r *Runner) elapsed() time.Duration { return r.clock.Now().Sub(r.start) }

func (r *Runner) record(e Entry) {
	e.At = r.elapsed()
	r.report.Timeline = append(r.report.Timeline, e)
}

func (r *Runner) subscribe() error {
	bus := r.app.EventBus()
	for _, kind := range types.AllAdEventKinds() {
		if err := bus.Subscribe(types.AdEventTopic(kind), r.onEvent); err != nil {
			return fmt.Errorf("订阅广告事件失败: %w", err)
		}
	}
	if err := bus.Subscribe(types.TopicAutoCacheRetry, r.onRetry); err != nil {
		return fmt.Errorf("订阅自动缓存重试失败: %w", err)
	}
	return nil
}

func (r *Runner) unsubscribe() {
	bus := r.app.EventBus()
	for _, kind := range types.AllAdEventKinds() {
		_ = bus.Unsubscribe(types.AdEventTopic(kind), r.onEvent)
	}
	_ = bus.Unsubscribe(types.TopicAutoCacheRetry, r.onRetry)
}

func (r *Runner) recordEvent(placement string, ev types.AdEvent, delivered bool) {
	r.record(Entry{Placement: placement, Event: string(ev.Kind()), Detail: Describe(ev), Delivered: delivered})
}

func (r *Runner) recordRetry(placement string, delay time.Duration) {
	r.record(Entry{Placement: placement, Event: EntryRetry, Detail: "等待 " + delay.String(), Delivered: true})
}

// Describe 广告事件的单行描述
func Describe(ev types.AdEvent) string {
	var parts []string
	failed := func(nets []string) {
		if len(nets) > 0 {
			parts = append(parts, "failed="+strings.Join(nets, ","))
		}
	}

	switch e := ev.(type) {
	case *types.CacheEvent:
		parts = append(parts, "network="+e.Network())
		failed(e.FailedNetworks())
	case *types.ShowEvent:
		parts = append(parts, "network="+e.Network())
		if e.IsFullscreen() {
			parts = append(parts, "fullscreen")
		}
		if e.IsRefresh() {
			parts = append(parts, "refresh")
		}
		failed(e.FailedNetworks())
	case *types.FailEvent:
		if e.IsThrottled() {
			parts = append(parts, "throttled")
		}
		parts = append(parts, "retry>="+e.MinRetryDelay().String())
		if e.WasFromCachingAttempt() {
			parts = append(parts, "caching")
		}
		failed(e.FailedNetworks())
	case *types.HideEvent:
		if e.IsRefresh() {
			parts = append(parts, "refresh")
		}
		if show := e.MatchingShow(); show != nil {
			parts = append(parts, "show="+show.Network())
		}
	case *types.ClickEvent:
		parts = append(parts, "network="+e.Network())
	case *types.PresentFullscreenEvent:
		if e.IsExpand() {
			parts = append(parts, "expand")
		}
	case *types.DismissFullscreenEvent:
		if e.IsCollapse() {
			parts = append(parts, "collapse")
		}
	}
	return strings.Join(parts, " ")
}
