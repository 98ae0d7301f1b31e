package ads

import (
	"time"

	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/adkit/pkg/types"
)

// Relay 把广告位事件转发到全局事件总线
//
// 主题为 types.AdEventTopic(kind)，参数为 (placement string, ev types.AdEvent, delivered bool)。
// 被自动缓存抑制、没有交给监听器的失败事件也会转发，delivered 为 false。
// 订阅者在主执行上下文中同步执行，不能在回调里再次发布或订阅。
type Relay struct {
	bus event.EventBus
}

// NewRelay 创建事件转发器，bus 为 nil 时转发为空操作
func NewRelay(bus event.EventBus) *Relay {
	return &Relay{bus: bus}
}

func (r *Relay) publishEvent(placementName string, ev types.AdEvent, delivered bool) {
	if r == nil || r.bus == nil || !r.bus.IsEnabled() {
		return
	}
	topic := types.AdEventTopic(ev.Kind())
	if !r.bus.HasCallback(topic) {
		return
	}
	r.bus.Publish(topic, placementName, ev, delivered)
}

func (r *Relay) publishRetry(placementName string, delay time.Duration) {
	if r == nil || r.bus == nil || !r.bus.IsEnabled() {
		return
	}
	if !r.bus.HasCallback(types.TopicAutoCacheRetry) {
		return
	}
	r.bus.Publish(types.TopicAutoCacheRetry, placementName, delay)
}
