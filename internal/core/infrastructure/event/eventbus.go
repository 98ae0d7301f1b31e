// 基于asaskevich/EventBus的全局事件总线实现

package event

import (
	"errors"
	"fmt"
	"sync"

	evbus "github.com/asaskevich/EventBus"
	eventconfig "github.com/weisyn/adkit/internal/config/event"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/event"
)

// ErrTooManySubscribers 主题订阅者数量超过配置上限
var ErrTooManySubscribers = errors.New("主题订阅者数量超过上限")

// EventBus 是基于asaskevich/EventBus的实现
//
// 在底层总线之上增加了：
// - 配置开关：未启用时订阅与发布静默成功
// - 每个主题的订阅者数量上限
type EventBus struct {
	bus    evbus.Bus           // 底层事件总线
	config *eventconfig.Config // 配置

	countMu     sync.Mutex
	subscribers map[event.EventType]int
}

// New 创建事件总线实例
// 所有事件总线实例必须通过此函数创建，确保配置被正确应用
func New(config *eventconfig.Config) event.EventBus {
	if config == nil {
		config = eventconfig.New(nil)
	}
	return &EventBus{
		bus:         evbus.New(),
		config:      config,
		subscribers: make(map[event.EventType]int),
	}
}

// IsEnabled 事件系统是否启用
func (eb *EventBus) IsEnabled() bool {
	return eb.config.IsEnabled()
}

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil // 如果事件系统未启用，静默成功
	}
	if err := eb.reserve(eventType); err != nil {
		return err
	}
	if err := eb.bus.Subscribe(string(eventType), handler); err != nil {
		eb.release(eventType)
		return err
	}
	return nil
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	if err := eb.reserve(eventType); err != nil {
		return err
	}
	if err := eb.bus.SubscribeAsync(string(eventType), handler, transactional); err != nil {
		eb.release(eventType)
		return err
	}
	return nil
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	if err := eb.bus.Unsubscribe(string(eventType), handler); err != nil {
		return err
	}
	eb.release(eventType)
	return nil
}

// Publish 实现发布
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.config.IsEnabled() {
		return
	}
	eb.bus.Publish(string(eventType), args...)
}

// HasCallback 主题上是否有订阅者
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.config.IsEnabled() {
		return false
	}
	return eb.bus.HasCallback(string(eventType))
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	if !eb.config.IsEnabled() {
		return
	}
	eb.bus.WaitAsync()
}

func (eb *EventBus) reserve(eventType event.EventType) error {
	eb.countMu.Lock()
	defer eb.countMu.Unlock()
	limit := eb.config.GetMaxSubscribers()
	if limit > 0 && eb.subscribers[eventType] >= limit {
		return fmt.Errorf("%w: %s (上限 %d)", ErrTooManySubscribers, eventType, limit)
	}
	eb.subscribers[eventType]++
	return nil
}

func (eb *EventBus) release(eventType event.EventType) {
	eb.countMu.Lock()
	defer eb.countMu.Unlock()
	if eb.subscribers[eventType] > 0 {
		eb.subscribers[eventType]--
	}
}
