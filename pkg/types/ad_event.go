package types

import "time"

// EventKind 广告事件类型
type EventKind string

const (
	EventCache             EventKind = "cache"
	EventShow              EventKind = "show"
	EventFail              EventKind = "fail"
	EventHide              EventKind = "hide"
	EventClick             EventKind = "click"
	EventPresentFullscreen EventKind = "present_fullscreen"
	EventDismissFullscreen EventKind = "dismiss_fullscreen"
)

// AdEvent 所有广告事件的公共接口
//
// 事件创建后不可变：字段只能通过访问方法读取，切片返回副本。
type AdEvent interface {
	Kind() EventKind
}

func cloneNetworks(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ============================================================================
//                              缓存事件
// ============================================================================

// CacheEvent 预缓存成功
type CacheEvent struct {
	requestID      string
	network        string
	failedNetworks []string
}

// NewCacheEvent 创建预缓存成功事件
func NewCacheEvent(requestID, network string, failed []string) *CacheEvent {
	return &CacheEvent{requestID: requestID, network: network, failedNetworks: cloneNetworks(failed)}
}

func (e *CacheEvent) Kind() EventKind { return EventCache }

// RequestID 产生该事件的请求ID
func (e *CacheEvent) RequestID() string { return e.requestID }

// Network 成功填充的广告网络
func (e *CacheEvent) Network() string { return e.network }

// FailedNetworks 本次请求中先行失败的广告网络
func (e *CacheEvent) FailedNetworks() []string { return cloneNetworks(e.failedNetworks) }

// ============================================================================
//                              展示事件
// ============================================================================

// ShowEvent 广告已展示
type ShowEvent struct {
	requestID      string
	fullscreen     bool
	network        string
	failedNetworks []string
	refresh        bool
}

// NewShowEvent 创建展示事件
func NewShowEvent(requestID string, fullscreen bool, network string, failed []string, refresh bool) *ShowEvent {
	return &ShowEvent{
		requestID:      requestID,
		fullscreen:     fullscreen,
		network:        network,
		failedNetworks: cloneNetworks(failed),
		refresh:        refresh,
	}
}

func (e *ShowEvent) Kind() EventKind { return EventShow }

func (e *ShowEvent) RequestID() string { return e.requestID }

// IsFullscreen 是否为全屏（插屏）创意
func (e *ShowEvent) IsFullscreen() bool { return e.fullscreen }

func (e *ShowEvent) Network() string { return e.network }

func (e *ShowEvent) FailedNetworks() []string { return cloneNetworks(e.failedNetworks) }

// IsRefresh 是否替换了一个仍在展示的广告
func (e *ShowEvent) IsRefresh() bool { return e.refresh }

// ============================================================================
//                              失败事件
// ============================================================================

// FailEvent 请求失败或被限流
type FailEvent struct {
	requestID          string
	throttled          bool
	minRetryDelay      time.Duration
	fromCachingAttempt bool
	failedNetworks     []string
}

// NewFailEvent 创建失败事件
func NewFailEvent(requestID string, throttled bool, minRetryDelay time.Duration, fromCachingAttempt bool, failed []string) *FailEvent {
	return &FailEvent{
		requestID:          requestID,
		throttled:          throttled,
		minRetryDelay:      minRetryDelay,
		fromCachingAttempt: fromCachingAttempt,
		failedNetworks:     cloneNetworks(failed),
	}
}

func (e *FailEvent) Kind() EventKind { return EventFail }

func (e *FailEvent) RequestID() string { return e.requestID }

// IsThrottled 失败是否由服务端限流导致
func (e *FailEvent) IsThrottled() bool { return e.throttled }

// MinRetryDelay 下一次请求前至少需要等待的时长
func (e *FailEvent) MinRetryDelay() time.Duration { return e.minRetryDelay }

// WasFromCachingAttempt 失败是否来自预缓存请求
func (e *FailEvent) WasFromCachingAttempt() bool { return e.fromCachingAttempt }

func (e *FailEvent) FailedNetworks() []string { return cloneNetworks(e.failedNetworks) }

// ============================================================================
//                              其它事件
// ============================================================================

// HideEvent 广告被隐藏
type HideEvent struct {
	refresh      bool
	matchingShow *ShowEvent
}

// NewHideEvent 创建隐藏事件，matchingShow 为对应的展示事件（可能为 nil）
func NewHideEvent(refresh bool, matchingShow *ShowEvent) *HideEvent {
	return &HideEvent{refresh: refresh, matchingShow: matchingShow}
}

func (e *HideEvent) Kind() EventKind { return EventHide }

// IsRefresh 隐藏是否因为新广告替换旧广告
func (e *HideEvent) IsRefresh() bool { return e.refresh }

// MatchingShow 被隐藏的展示事件
func (e *HideEvent) MatchingShow() *ShowEvent { return e.matchingShow }

// ClickEvent 广告被点击
type ClickEvent struct {
	network string
}

func NewClickEvent(network string) *ClickEvent { return &ClickEvent{network: network} }

func (e *ClickEvent) Kind() EventKind { return EventClick }

func (e *ClickEvent) Network() string { return e.network }

// PresentFullscreenEvent 全屏内容出现（插屏展示或横幅展开）
type PresentFullscreenEvent struct {
	expand bool
}

func NewPresentFullscreenEvent(expand bool) *PresentFullscreenEvent {
	return &PresentFullscreenEvent{expand: expand}
}

func (e *PresentFullscreenEvent) Kind() EventKind { return EventPresentFullscreen }

// IsExpand 是否为横幅展开
func (e *PresentFullscreenEvent) IsExpand() bool { return e.expand }

// DismissFullscreenEvent 全屏内容关闭（插屏关闭或横幅收起）
type DismissFullscreenEvent struct {
	matchingShow *ShowEvent
	collapse     bool
}

func NewDismissFullscreenEvent(matchingShow *ShowEvent, collapse bool) *DismissFullscreenEvent {
	return &DismissFullscreenEvent{matchingShow: matchingShow, collapse: collapse}
}

func (e *DismissFullscreenEvent) Kind() EventKind { return EventDismissFullscreen }

func (e *DismissFullscreenEvent) MatchingShow() *ShowEvent { return e.matchingShow }

// IsCollapse 是否为横幅收起
func (e *DismissFullscreenEvent) IsCollapse() bool { return e.collapse }
