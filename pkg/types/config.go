// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
//
// 指针字段区分"未设置"与"设置为零值"：
// - nil: 用户未在配置文件中设置该字段，使用系统默认值
// - &value: 用户明确设置了该值，即使是零值也会被采用
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	AppID   *string `json:"app_id,omitempty"`   // 广告发布者应用ID
	Version *string `json:"version,omitempty"`  // 应用版本

	// DeviceID 当前设备标识，用于判定是否进入集成测试模式
	DeviceID *string `json:"device_id,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 事件转发配置
	Event *UserEventConfig `json:"event,omitempty"`

	// 时钟配置
	Clock *UserClockConfig `json:"clock,omitempty"`

	// 广告位配置
	Placement *UserPlacementConfig `json:"placement,omitempty"`

	// 集成测试模式配置
	Integration *UserIntegrationConfig `json:"integration,omitempty"`

	// 指标配置
	Metrics *UserMetricsConfig `json:"metrics,omitempty"`

	// 模拟广告网络配置
	Sim *UserSimConfig `json:"sim,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserEventConfig 用户事件转发配置
type UserEventConfig struct {
	Enabled *bool `json:"enabled,omitempty"` // 是否把广告事件转发到全局事件总线
}

// UserClockConfig 用户时钟配置
type UserClockConfig struct {
	Type *string `json:"type,omitempty"` // system | mock
}

// UserPlacementConfig 用户广告位配置
type UserPlacementConfig struct {
	// RefreshSeconds 横幅默认刷新间隔（秒），0 表示使用广告网络默认值
	RefreshSeconds *int `json:"refresh_seconds,omitempty"`

	// MainQueueSize 主执行上下文任务队列长度
	MainQueueSize *int `json:"main_queue_size,omitempty"`

	// DefaultRetryDelayMs 广告网络未给出重试间隔时使用的兜底值（毫秒）
	DefaultRetryDelayMs *int `json:"default_retry_delay_ms,omitempty"`
}

// UserIntegrationConfig 用户集成测试模式配置
type UserIntegrationConfig struct {
	Enabled   *bool    `json:"enabled,omitempty"`    // 是否启用集成测试模式
	DeviceIDs []string `json:"device_ids,omitempty"` // 启用集成测试模式的设备列表
	Network   *string  `json:"network,omitempty"`    // 集成测试使用的广告网络
}

// UserMetricsConfig 用户指标配置
type UserMetricsConfig struct {
	Enabled   *bool   `json:"enabled,omitempty"`   // 是否采集广告位指标
	Namespace *string `json:"namespace,omitempty"` // 指标命名空间
}

// UserSimConfig 用户模拟广告网络配置
type UserSimConfig struct {
	LatencyMs          *int    `json:"latency_ms,omitempty"`           // 请求完成的模拟延迟（毫秒）
	CreativeTTLSeconds *int    `json:"creative_ttl_seconds,omitempty"` // 预缓存广告的有效期（秒）
	SessionLifeSeconds *int    `json:"session_life_seconds,omitempty"` // 横幅默认刷新间隔（秒）
	Network            *string `json:"network,omitempty"`              // 默认填充的广告网络名称
}
