package event

import "github.com/weisyn/adkit/pkg/types"

// EventOptions 事件转发配置选项
type EventOptions struct {
	Enabled        bool `json:"enabled"`         // 是否启用全局事件总线
	MaxSubscribers int  `json:"max_subscribers"` // 每个主题的最大订阅者数量
}

// Config 事件配置实现
type Config struct {
	options *EventOptions
}

// New 创建事件配置实现
func New(userConfig *types.UserEventConfig) *Config {
	// 1. 先创建完整的默认配置
	options := &EventOptions{
		Enabled:        defaultEnabled,
		MaxSubscribers: defaultMaxSubscribers,
	}

	// 2. 应用用户配置
	if userConfig != nil && userConfig.Enabled != nil {
		options.Enabled = *userConfig.Enabled
	}

	return &Config{options: options}
}

// NewFromOptions 直接使用已合并的选项
func NewFromOptions(options *EventOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// IsEnabled 是否启用事件系统
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}

// GetMaxSubscribers 获取每个主题的最大订阅者数量
func (c *Config) GetMaxSubscribers() int {
	return c.options.MaxSubscribers
}
