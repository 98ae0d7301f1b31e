// Package event 提供全局事件总线接口定义
//
// 🎯 **事件总线**
//
// 广告位把每个事件（包括被抑制、未投递给监听器的失败事件）
// 发布到主题 "ad:<kind>"，参数为 (placement string, event types.AdEvent, delivered bool)。
// 指标采集器与场景模拟器订阅这些主题。
//
// ⚠️ 同步处理器在发布方的调用栈中执行，处理器内不能再发布或订阅。
package event

import "github.com/weisyn/adkit/pkg/types"

// EventType 事件主题
type EventType = types.EventType

// AdEventHandler 广告事件处理器的标准签名
type AdEventHandler = func(placement string, ev types.AdEvent, delivered bool)

// EventBus 事件总线接口
type EventBus interface {
	// Subscribe 同步订阅
	Subscribe(eventType EventType, handler interface{}) error

	// SubscribeAsync 异步订阅，transactional 为 true 时同一处理器串行执行
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error

	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error

	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})

	// HasCallback 主题上是否有订阅者
	HasCallback(eventType EventType) bool

	// WaitAsync 等待异步处理器执行完毕
	WaitAsync()

	// IsEnabled 事件系统是否启用
	IsEnabled() bool
}
