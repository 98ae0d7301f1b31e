package placement

import (
	"time"

	"github.com/weisyn/adkit/pkg/types"
)

// PlacementOptions 广告位配置选项
type PlacementOptions struct {
	AppID             string        `json:"app_id"`              // 发布者应用ID
	DeviceID          string        `json:"device_id"`           // 当前设备标识
	RefreshInterval   time.Duration `json:"refresh_interval"`    // 横幅刷新间隔，0 表示使用广告网络默认值
	MainQueueSize     int           `json:"main_queue_size"`     // 主执行上下文任务队列长度
	DefaultRetryDelay time.Duration `json:"default_retry_delay"` // 广告网络未给出重试间隔时的兜底值，0 表示不设兜底

	Integration IntegrationOptions `json:"integration"`
}

// IntegrationOptions 集成测试模式选项
type IntegrationOptions struct {
	Enabled   bool     `json:"enabled"`
	DeviceIDs []string `json:"device_ids"` // 为空表示对所有设备生效
	Network   string   `json:"network"`
}

// Config 广告位配置实现
type Config struct {
	options *PlacementOptions
}

// New 创建广告位配置
func New(appConfig *types.AppConfig) *Config {
	opts := &PlacementOptions{
		AppID:             defaultAppID,
		RefreshInterval:   defaultRefreshInterval,
		MainQueueSize:     defaultMainQueueSize,
		DefaultRetryDelay: defaultRetryDelay,
		Integration: IntegrationOptions{
			Network: defaultIntegrationNetwork,
		},
	}

	if appConfig == nil {
		return &Config{options: opts}
	}

	if appConfig.AppID != nil {
		opts.AppID = *appConfig.AppID
	}
	if appConfig.DeviceID != nil {
		opts.DeviceID = *appConfig.DeviceID
	}

	if pc := appConfig.Placement; pc != nil {
		if pc.RefreshSeconds != nil && *pc.RefreshSeconds >= 0 {
			opts.RefreshInterval = time.Duration(*pc.RefreshSeconds) * time.Second
		}
		if pc.MainQueueSize != nil && *pc.MainQueueSize > 0 {
			opts.MainQueueSize = *pc.MainQueueSize
		}
		if pc.DefaultRetryDelayMs != nil && *pc.DefaultRetryDelayMs >= 0 {
			opts.DefaultRetryDelay = time.Duration(*pc.DefaultRetryDelayMs) * time.Millisecond
		}
	}

	if ic := appConfig.Integration; ic != nil {
		if ic.Enabled != nil {
			opts.Integration.Enabled = *ic.Enabled
		}
		if len(ic.DeviceIDs) > 0 {
			opts.Integration.DeviceIDs = append([]string(nil), ic.DeviceIDs...)
		}
		if ic.Network != nil {
			opts.Integration.Network = *ic.Network
		}
	}

	return &Config{options: opts}
}

// NewFromOptions 直接使用已合并的选项
func NewFromOptions(options *PlacementOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *PlacementOptions { return c.options }

// GetAppID 获取发布者应用ID
func (c *Config) GetAppID() string { return c.options.AppID }

// GetRefreshInterval 获取横幅刷新间隔
func (c *Config) GetRefreshInterval() time.Duration { return c.options.RefreshInterval }

// GetMainQueueSize 获取主执行上下文任务队列长度
func (c *Config) GetMainQueueSize() int { return c.options.MainQueueSize }

// GetDefaultRetryDelay 获取兜底重试间隔
func (c *Config) GetDefaultRetryDelay() time.Duration { return c.options.DefaultRetryDelay }

// IsIntegrationModeForDevice 集成测试模式是否对当前设备生效
//
// 未配置设备列表时对所有设备生效；否则当前设备号必须有效且在列表中。
func (c *Config) IsIntegrationModeForDevice() bool {
	ic := c.options.Integration
	if !ic.Enabled {
		return false
	}
	if len(ic.DeviceIDs) == 0 {
		return true
	}
	if !isDeviceIDValid(c.options.DeviceID) {
		return false
	}
	for _, id := range ic.DeviceIDs {
		if id == c.options.DeviceID {
			return true
		}
	}
	return false
}

// ResolveZone 返回新广告位实际使用的 app/zone
//
// 集成测试模式对当前设备生效、且样例网络提供该类型广告位时，替换为样例广告位；
// 否则原样返回。第三个返回值表示是否发生了替换。
func (c *Config) ResolveZone(kind types.AdKind, appID, zoneID string) (string, string, bool) {
	if !c.IsIntegrationModeForDevice() {
		return appID, zoneID, false
	}
	network, ok := LookupIntegrationNetwork(c.options.Integration.Network)
	if !ok || network.IsDisabled() {
		return appID, zoneID, false
	}
	sample := network.ZoneFor(kind)
	if sample == "" {
		return appID, zoneID, false
	}
	return IntegrationAppID, sample, true
}
