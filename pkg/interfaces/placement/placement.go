// Package placement 定义广告位的公共接口
//
// 📋 **广告位**
//
// 广告位在宿主界面上管理一个广告的完整生命周期：请求、预缓存、展示、失败恢复。
// 所有方法只能在主执行上下文中调用，否则以使用错误 panic。
package placement

import (
	"time"

	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/types"
)

// Listener 广告事件监听器
//
// 同一个监听器注册多次会收到多次回调。只关心部分事件时嵌入 ListenerFuncs。
type Listener interface {
	OnCache(p Placement, ev *types.CacheEvent)
	OnShow(p Placement, ev *types.ShowEvent)
	OnFail(p Placement, ev *types.FailEvent)
	OnHide(p Placement, ev *types.HideEvent)
	OnClick(p Placement, ev *types.ClickEvent)
	OnPresentFullscreen(p Placement, ev *types.PresentFullscreenEvent)
	OnDismissFullscreen(p Placement, ev *types.DismissFullscreenEvent)
}

// ListenerFuncs 可选回调的监听器适配器，未设置的回调为空操作
type ListenerFuncs struct {
	Cache             func(p Placement, ev *types.CacheEvent)
	Show              func(p Placement, ev *types.ShowEvent)
	Fail              func(p Placement, ev *types.FailEvent)
	Hide              func(p Placement, ev *types.HideEvent)
	Click             func(p Placement, ev *types.ClickEvent)
	PresentFullscreen func(p Placement, ev *types.PresentFullscreenEvent)
	DismissFullscreen func(p Placement, ev *types.DismissFullscreenEvent)
}

func (l *ListenerFuncs) OnCache(p Placement, ev *types.CacheEvent) {
	if l.Cache != nil {
		l.Cache(p, ev)
	}
}

func (l *ListenerFuncs) OnShow(p Placement, ev *types.ShowEvent) {
	if l.Show != nil {
		l.Show(p, ev)
	}
}

func (l *ListenerFuncs) OnFail(p Placement, ev *types.FailEvent) {
	if l.Fail != nil {
		l.Fail(p, ev)
	}
}

func (l *ListenerFuncs) OnHide(p Placement, ev *types.HideEvent) {
	if l.Hide != nil {
		l.Hide(p, ev)
	}
}

func (l *ListenerFuncs) OnClick(p Placement, ev *types.ClickEvent) {
	if l.Click != nil {
		l.Click(p, ev)
	}
}

func (l *ListenerFuncs) OnPresentFullscreen(p Placement, ev *types.PresentFullscreenEvent) {
	if l.PresentFullscreen != nil {
		l.PresentFullscreen(p, ev)
	}
}

func (l *ListenerFuncs) OnDismissFullscreen(p Placement, ev *types.DismissFullscreenEvent) {
	if l.DismissFullscreen != nil {
		l.DismissFullscreen(p, ev)
	}
}

// Placement 所有广告位共有的接口
type Placement interface {
	// Name 广告位名称
	Name() string
	// Kind 广告位类型
	Kind() types.AdKind
	// AppID 实际使用的发布者ID（集成测试模式下可能被替换）
	AppID() string
	// ZoneID 实际使用的广告位ID
	ZoneID() string

	// ShowAd 请求并展示广告
	ShowAd()

	// AddListener 注册监听器
	AddListener(l Listener)
	// RemoveListener 移除一个已注册的监听器（只移除一次注册）
	RemoveListener(l Listener)

	// SetTargetingParameters 设置定向参数，下一次请求生效
	SetTargetingParameters(targeting string)
	TargetingParameters() string
	// SetAdParameters 设置广告参数，下一次请求生效
	SetAdParameters(params string)
	AdParameters() string

	// IsDestroyed 广告位是否已随宿主界面销毁
	IsDestroyed() bool
}

// Cacheable 支持预缓存的广告位
type Cacheable interface {
	Placement

	// CacheAd 预缓存广告；已持有未过期缓存时同步重发 CacheEvent
	// 开启自动缓存时调用为使用错误
	CacheAd()
	// HasCachedAd 是否持有未过期的预缓存广告
	HasCachedAd() bool
	// IsCachingAd 是否有进行中的预缓存请求
	IsCachingAd() bool
	// IsAutoCached 是否由自动缓存接管
	IsAutoCached() bool
	// CachingState 当前缓存状态
	CachingState() types.CachingState
}

// Interstitial 插屏广告位
type Interstitial interface {
	Cacheable
}

// Banner 普通横幅广告位
type Banner interface {
	Placement

	// RefreshInterval 刷新间隔，0 表示使用广告网络默认值
	RefreshInterval() time.Duration
}

// AnimationListener 动画结束回调
type AnimationListener interface {
	OnIntroAnimEnd(b AnimatedBanner)
	OnOutroAnimEnd(b AnimatedBanner)
}

// AnimatedBanner 带入场/退场动画的横幅广告位
type AnimatedBanner interface {
	Cacheable

	// HideAd 隐藏广告（有退场动画时播放动画）
	HideAd()
	// IsVisible 视图是否可见
	IsVisible() bool
	// State 当前展示状态
	State() types.PresentationState
	// SetAnimations 设置入场/退场动画，nil 表示无动画；动画进行中调用为使用错误
	SetAnimations(intro, outro adnetwork.Animation)
	// SetAnimationListener 设置动画结束回调
	SetAnimationListener(l AnimationListener)
	// RefreshInterval 展示期间的刷新间隔，0 表示使用广告网络默认值
	RefreshInterval() time.Duration
}
