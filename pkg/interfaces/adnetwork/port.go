// Package adnetwork 定义广告网络端口（外部协作者边界）
//
// 📋 **广告网络端口**
//
// 端口负责实际的网络请求、中介与渲染，本系统只通过该接口发起请求，
// 并通过 Callbacks 接收完成通知。
//
// 🎯 **回调约定**
// - 所有 Callbacks 方法必须在主执行上下文中调用
// - 端口可以在 StartRequest 调用期间同步回调（例如同步限流）
// - 过期判定由端口负责（IsCachedAdExpired）
package adnetwork

import (
	"errors"
	"time"

	"github.com/weisyn/adkit/pkg/types"
)

// ErrUnavailable 端口无法为广告位提供服务（构造阶段错误）
var ErrUnavailable = errors.New("广告网络端口不可用")

// RequestMode 请求模式
type RequestMode int

const (
	// ModeShow 请求并立即展示（已有预缓存时展示缓存内容）
	ModeShow RequestMode = iota
	// ModePrecache 只预缓存，不展示
	ModePrecache
)

func (m RequestMode) String() string {
	switch m {
	case ModeShow:
		return "show"
	case ModePrecache:
		return "precache"
	default:
		return "unknown"
	}
}

// Request 一次广告请求
type Request struct {
	ID           string       // 请求ID（uuid）
	Mode         RequestMode  // 请求模式
	Placement    string       // 广告位名称
	Kind         types.AdKind // 广告位类型
	AppID        string       // 发布者应用ID
	ZoneID       string       // 广告位ID
	Targeting    string       // 定向参数
	AdParameters string       // 广告参数
}

// Callbacks 端口向广告位报告的完成与过程通知
type Callbacks interface {
	// OnRequestStarted 一次请求开始，之前的失败网络列表作废
	OnRequestStarted()
	// OnAttemptingNetwork 正在尝试某个广告网络
	OnAttemptingNetwork(network string)
	// OnNetworkFailed 单个广告网络失败，请求会继续尝试下一个
	OnNetworkFailed(network string)

	// OnCreativeLoaded 展示模式的请求已加载并展示
	OnCreativeLoaded(network string, fullscreen bool)
	// OnCreativeCached 预缓存模式的请求已完成
	OnCreativeCached(network string)
	// OnCreativeFailed 所有网络都未能填充
	OnCreativeFailed(failedNetworks []string)
	// OnRequestThrottled 请求被服务端限流，delay 为最小等待时长
	OnRequestThrottled(delay time.Duration)

	// OnClick 广告被点击
	OnClick(network string)
	// OnFullscreenPresented 全屏广告出现
	OnFullscreenPresented(network string)
	// OnFullscreenDismissed 全屏广告关闭
	OnFullscreenDismissed(network string)
	// OnExpand 横幅展开为全屏
	OnExpand(network string)
	// OnCollapse 横幅从全屏收起
	OnCollapse(network string)
}

// Port 广告网络端口
type Port interface {
	// SetCallbacks 绑定回调接收者，每个端口只绑定一次
	SetCallbacks(cb Callbacks)

	// StartRequest 发起请求
	StartRequest(req Request)

	// IsCachedAdExpired 预缓存的广告是否已过期（没有缓存时返回 true）
	IsCachedAdExpired() bool

	// MinTimeUntilNextRequest 距离允许下一次请求的最短时间
	MinTimeUntilNextRequest() time.Duration

	// DefaultSessionLife 默认刷新间隔
	DefaultSessionLife() time.Duration
	// SetSessionLife 设置刷新间隔
	SetSessionLife(d time.Duration)
	// ResetSessionLife 恢复默认刷新间隔
	ResetSessionLife()

	// SetVisible 设置广告视图是否可见
	SetVisible(visible bool)

	// ScreenPaused 宿主界面暂停
	ScreenPaused()
	// ScreenResumed 宿主界面恢复
	ScreenResumed()
	// Destroy 释放端口资源，之后不得再回调
	Destroy()
}

// PortSpec 创建端口所需的信息
type PortSpec struct {
	Placement string
	Kind      types.AdKind
	AppID     string
	ZoneID    string
}

// PortFactory 为新广告位创建端口
type PortFactory interface {
	NewPort(spec PortSpec) (Port, error)
}

// Animation 入场或退场动画（由外部动画子系统实现）
type Animation interface {
	// Start 开始动画，结束时在主执行上下文中调用 onEnd（恰好一次）
	Start(onEnd func())
}
