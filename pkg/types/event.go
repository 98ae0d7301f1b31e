// Package types provides event type definitions.
package types

// EventType 全局事件总线上的主题
type EventType string

// AdEventTopic 返回广告事件在全局事件总线上的主题，形如 "ad:show"
func AdEventTopic(kind EventKind) EventType {
	return EventType("ad:" + string(kind))
}

// AllAdEventKinds 全部广告事件类型，按固定顺序排列
func AllAdEventKinds() []EventKind {
	return []EventKind{
		EventCache,
		EventShow,
		EventFail,
		EventHide,
		EventClick,
		EventPresentFullscreen,
		EventDismissFullscreen,
	}
}

// TopicAutoCacheRetry 自动缓存安排重试时发布，参数为 (placement string, delay time.Duration)
const TopicAutoCacheRetry EventType = "autocache:retry"
