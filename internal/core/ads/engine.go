package ads

import (
	"time"

	"github.com/google/uuid"

	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

// adHooks 广告位类型对缓存引擎事件的处理
//
// baseAd 上的 onXxx 方法是默认实现，各广告位类型在自己的 handleXxx 中按需调用。
type adHooks interface {
	handleCache(ev *types.CacheEvent)
	handleShow(ev *types.ShowEvent)
	handleFail(ev *types.FailEvent)
	handleHide(ev *types.HideEvent)
	handleDismiss(ev *types.DismissFullscreenEvent)
	handlePaused()
	handleResumed()
	handleDestroyed()
}

// baseConfig 构造 baseAd 所需的参数
type baseConfig struct {
	name      string
	appID     string
	zoneID    string
	kind      types.AdKind
	autoCache bool

	port   adnetwork.Port
	loop   *mainloop.Loop
	logger log.Logger
	relay  *Relay

	// retryFallback 非限流失败且端口没有给出等待时间时的重试间隔
	retryFallback time.Duration
}

// baseAd 缓存引擎，所有广告位类型共享
type baseAd struct {
	name      string
	appID     string
	zoneID    string
	kind      types.AdKind
	autoCache bool

	port   adnetwork.Port
	loop   *mainloop.Loop
	logger log.Logger
	relay  *Relay

	hooks adHooks
	self  placement.Placement

	cachingState types.CachingState
	lastCache    *types.CacheEvent
	lastShow     *types.ShowEvent

	requestID      string
	failedNetworks []string
	currentNetwork string

	targeting    string
	adParameters string

	listeners listenerSet
	destroyed bool

	retryFallback time.Duration
}

func newBaseAd(cfg baseConfig) *baseAd {
	return &baseAd{
		name:          cfg.name,
		appID:         cfg.appID,
		zoneID:        cfg.zoneID,
		kind:          cfg.kind,
		autoCache:     cfg.autoCache,
		port:          cfg.port,
		loop:          cfg.loop,
		logger:        cfg.logger.With("placement", cfg.name),
		relay:         cfg.relay,
		cachingState:  types.CachingIdle,
		retryFallback: cfg.retryFallback,
	}
}

// bind 绑定具体广告位类型并注册端口回调
func (b *baseAd) bind(self placement.Placement, hooks adHooks) {
	b.self = self
	b.hooks = hooks
	b.port.SetCallbacks(&portCallbacks{b: b})
}

// enter 公共方法入口检查
func (b *baseAd) enter(op string) {
	b.loop.MustBeCurrent(op)
	if b.destroyed {
		panic(types.NewUsageError(op, types.ErrPlacementDestroyed, b.name))
	}
}

// ============================================================================
//                              公共接口
// ============================================================================

func (b *baseAd) Name() string       { return b.name }
func (b *baseAd) Kind() types.AdKind { return b.kind }
func (b *baseAd) AppID() string      { return b.appID }
func (b *baseAd) ZoneID() string     { return b.zoneID }
func (b *baseAd) IsDestroyed() bool  { return b.destroyed }
func (b *baseAd) IsAutoCached() bool { return b.autoCache }

func (b *baseAd) CachingState() types.CachingState { return b.cachingState }

// AddListener 注册监听器，重复注册会收到重复回调
func (b *baseAd) AddListener(l placement.Listener) {
	b.enter("AddListener")
	b.listeners.add(l)
}

// RemoveListener 移除一次注册；分发中的事件仍按分发开始时的快照送达
func (b *baseAd) RemoveListener(l placement.Listener) {
	b.enter("RemoveListener")
	if !b.listeners.remove(l) {
		b.logger.Debug("移除的监听器未注册")
	}
}

func (b *baseAd) SetTargetingParameters(targeting string) {
	b.enter("SetTargetingParameters")
	b.targeting = targeting
}

func (b *baseAd) TargetingParameters() string { return b.targeting }

func (b *baseAd) SetAdParameters(params string) {
	b.enter("SetAdParameters")
	b.adParameters = params
}

func (b *baseAd) AdParameters() string { return b.adParameters }

// HasCachedAd 持有未过期的预缓存广告
func (b *baseAd) HasCachedAd() bool {
	return b.cachingState == types.CachingRetrieved && !b.port.IsCachedAdExpired()
}

// IsCachingAd 预缓存请求进行中
func (b *baseAd) IsCachingAd() bool {
	return b.cachingState == types.CachingRetrieving
}

// ============================================================================
//                              请求
// ============================================================================

// baseShowAd 请求并展示。端口持有预缓存时展示缓存内容
func (b *baseAd) baseShowAd() {
	b.setState(types.CachingIdle)
	b.failedNetworks = nil
	b.issue(adnetwork.ModeShow)
}

// baseCacheAd 预缓存；已持有未过期缓存时同步重发上一次的 CacheEvent
func (b *baseAd) baseCacheAd() {
	if b.HasCachedAd() {
		b.logger.Debug("已持有预缓存广告，重发缓存事件")
		b.hooks.handleCache(b.lastCache)
		return
	}
	b.setState(types.CachingRetrieving)
	b.issue(adnetwork.ModePrecache)
}

func (b *baseAd) issue(mode adnetwork.RequestMode) {
	b.requestID = uuid.NewString()
	b.logger.Debugf("发起广告请求 mode=%s request=%s", mode, b.requestID)
	b.port.StartRequest(adnetwork.Request{
		ID:           b.requestID,
		Mode:         mode,
		Placement:    b.name,
		Kind:         b.kind,
		AppID:        b.appID,
		ZoneID:       b.zoneID,
		Targeting:    b.targeting,
		AdParameters: b.adParameters,
	})
}

func (b *baseAd) setState(next types.CachingState) {
	if b.cachingState == next {
		return
	}
	b.logger.Debugf("缓存状态 %s -> %s", b.cachingState, next)
	b.cachingState = next
}

// ============================================================================
//                              默认事件处理
// ============================================================================

func (b *baseAd) onCache(ev *types.CacheEvent) {
	b.setState(types.CachingRetrieved)
	b.deliver(ev, false)
}

func (b *baseAd) onShow(ev *types.ShowEvent) {
	b.deliver(ev, false)
}

// onFail 回到 Idle；自动缓存发起的请求失败不交给监听器
func (b *baseAd) onFail(ev *types.FailEvent) {
	b.setState(types.CachingIdle)
	b.deliver(ev, b.autoCache && ev.WasFromCachingAttempt())
}

func (b *baseAd) onHide(ev *types.HideEvent) {
	b.deliver(ev, false)
	b.lastShow = nil
}

func (b *baseAd) onDismiss(ev *types.DismissFullscreenEvent) {
	b.deliver(ev, false)
}

func (b *baseAd) onPaused() {
	b.port.ScreenPaused()
	if b.cachingState == types.CachingRetrieving {
		b.setState(types.CachingIdle)
	}
}

func (b *baseAd) onResumed() {
	b.port.ScreenResumed()
}

func (b *baseAd) onDestroyed() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.port.Destroy()
	b.listeners = listenerSet{}
	b.logger.Debug("广告位已销毁")
}

// deliver 转发到事件总线并按注册顺序分发给监听器
func (b *baseAd) deliver(ev types.AdEvent, suppressed bool) {
	b.relay.publishEvent(b.name, ev, !suppressed)
	if suppressed {
		b.logger.Debugf("自动缓存请求的 %s 事件不通知监听器", ev.Kind())
		return
	}
	for _, l := range b.listeners.snapshot() {
		dispatch(l, b.self, ev)
	}
}

// ============================================================================
//                              端口回调
// ============================================================================

// portCallbacks 把广告网络端口的通知翻译成广告事件
type portCallbacks struct {
	b *baseAd
}

func (c *portCallbacks) accept(op string) bool {
	c.b.loop.MustBeCurrent(op)
	if c.b.destroyed {
		c.b.logger.Debugf("广告位已销毁，忽略端口回调 %s", op)
		return false
	}
	return true
}

func (c *portCallbacks) OnRequestStarted() {
	if c.accept("OnRequestStarted") {
		c.b.failedNetworks = nil
	}
}

func (c *portCallbacks) OnAttemptingNetwork(network string) {
	if c.accept("OnAttemptingNetwork") {
		c.b.currentNetwork = network
	}
}

func (c *portCallbacks) OnNetworkFailed(network string) {
	if c.accept("OnNetworkFailed") {
		c.b.failedNetworks = append(c.b.failedNetworks, network)
	}
}

// OnCreativeLoaded 展示模式请求完成；仍有展示中的广告时先发出刷新隐藏
func (c *portCallbacks) OnCreativeLoaded(network string, fullscreen bool) {
	if !c.accept("OnCreativeLoaded") {
		return
	}
	b := c.b
	refresh := b.lastShow != nil
	if refresh {
		b.hooks.handleHide(types.NewHideEvent(true, b.lastShow))
	}
	show := types.NewShowEvent(b.requestID, fullscreen, network, b.failedNetworks, refresh)
	b.lastShow = show
	b.hooks.handleShow(show)
}

func (c *portCallbacks) OnCreativeCached(network string) {
	if !c.accept("OnCreativeCached") {
		return
	}
	b := c.b
	b.lastCache = types.NewCacheEvent(b.requestID, network, b.failedNetworks)
	b.hooks.handleCache(b.lastCache)
}

func (c *portCallbacks) OnCreativeFailed(failedNetworks []string) {
	if !c.accept("OnCreativeFailed") {
		return
	}
	b := c.b
	if failedNetworks == nil {
		failedNetworks = b.failedNetworks
	}
	fromCaching := b.cachingState == types.CachingRetrieving
	b.hooks.handleFail(types.NewFailEvent(b.requestID, false, b.port.MinTimeUntilNextRequest(), fromCaching, failedNetworks))
}

func (c *portCallbacks) OnRequestThrottled(delay time.Duration) {
	if !c.accept("OnRequestThrottled") {
		return
	}
	b := c.b
	fromCaching := b.cachingState == types.CachingRetrieving
	b.logger.Debugf("请求被限流，最短等待 %s", delay)
	b.hooks.handleFail(types.NewFailEvent(b.requestID, true, delay, fromCaching, b.failedNetworks))
}

func (c *portCallbacks) OnClick(network string) {
	if c.accept("OnClick") {
		c.b.deliver(types.NewClickEvent(network), false)
	}
}

func (c *portCallbacks) OnFullscreenPresented(string) {
	if c.accept("OnFullscreenPresented") {
		c.b.deliver(types.NewPresentFullscreenEvent(false), false)
	}
}

func (c *portCallbacks) OnExpand(string) {
	if c.accept("OnExpand") {
		c.b.deliver(types.NewPresentFullscreenEvent(true), false)
	}
}

// OnFullscreenDismissed 全屏广告关闭，对应的展示结束
func (c *portCallbacks) OnFullscreenDismissed(string) {
	if !c.accept("OnFullscreenDismissed") {
		return
	}
	b := c.b
	matching := b.lastShow
	b.lastShow = nil
	b.hooks.handleDismiss(types.NewDismissFullscreenEvent(matching, false))
}

func (c *portCallbacks) OnCollapse(string) {
	if c.accept("OnCollapse") {
		c.b.deliver(types.NewDismissFullscreenEvent(c.b.lastShow, true), false)
	}
}

// ============================================================================
//                              界面生命周期
// ============================================================================

// screenObserver 接收宿主界面的暂停、恢复、销毁通知
type screenObserver struct {
	b *baseAd
}

func (o *screenObserver) Paused() {
	o.b.loop.MustBeCurrent("Paused")
	if !o.b.destroyed {
		o.b.hooks.handlePaused()
	}
}

func (o *screenObserver) Resumed() {
	o.b.loop.MustBeCurrent("Resumed")
	if !o.b.destroyed {
		o.b.hooks.handleResumed()
	}
}

func (o *screenObserver) Destroyed() {
	o.b.loop.MustBeCurrent("Destroyed")
	if !o.b.destroyed {
		o.b.hooks.handleDestroyed()
	}
}
