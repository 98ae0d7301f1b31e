package metrics

import "github.com/weisyn/adkit/pkg/types"

// MetricsOptions 广告位指标配置
type MetricsOptions struct {
	Enabled   bool   `json:"enabled"`   // 是否采集广告位指标
	Namespace string `json:"namespace"` // 指标命名空间
}

// Config 指标配置实现
type Config struct {
	options *MetricsOptions
}

// New 创建指标配置
func New(userConfig *types.UserMetricsConfig) *Config {
	opts := &MetricsOptions{
		Enabled:   defaultEnabled,
		Namespace: defaultNamespace,
	}
	if userConfig != nil {
		if userConfig.Enabled != nil {
			opts.Enabled = *userConfig.Enabled
		}
		if userConfig.Namespace != nil && *userConfig.Namespace != "" {
			opts.Namespace = *userConfig.Namespace
		}
	}
	return &Config{options: opts}
}

// NewFromOptions 直接使用已合并的选项
func NewFromOptions(options *MetricsOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

func (c *Config) GetOptions() *MetricsOptions { return c.options }

func (c *Config) IsEnabled() bool { return c.options.Enabled }

func (c *Config) GetNamespace() string { return c.options.Namespace }
