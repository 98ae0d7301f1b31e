package event

// 事件系统配置默认值
const (
	// defaultEnabled 默认启用事件系统
	// 原因：指标采集与场景模拟器都订阅广告事件
	defaultEnabled = true

	// defaultMaxSubscribers 每个主题最大订阅者数量设为64
	defaultMaxSubscribers = 64
)
