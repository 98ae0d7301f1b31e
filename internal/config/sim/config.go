package sim

import (
	"time"

	"github.com/weisyn/adkit/pkg/types"
)

// SimOptions 模拟广告网络配置选项
type SimOptions struct {
	Latency      time.Duration `json:"latency"`       // 请求完成的模拟延迟
	CreativeTTL  time.Duration `json:"creative_ttl"`  // 预缓存广告的有效期
	SessionLife  time.Duration `json:"session_life"`  // 横幅默认刷新间隔
	Network      string        `json:"network"`       // 默认填充的广告网络
	MaxCreatives int           `json:"max_creatives"` // 创意存储预估条目数
}

// Config 模拟广告网络配置实现
type Config struct {
	options *SimOptions
}

// New 创建模拟广告网络配置
func New(userConfig *types.UserSimConfig) *Config {
	opts := &SimOptions{
		Latency:      defaultLatency,
		CreativeTTL:  defaultCreativeTTL,
		SessionLife:  defaultSessionLife,
		Network:      defaultNetwork,
		MaxCreatives: defaultMaxCreatives,
	}
	if userConfig == nil {
		return &Config{options: opts}
	}
	if userConfig.LatencyMs != nil && *userConfig.LatencyMs >= 0 {
		opts.Latency = time.Duration(*userConfig.LatencyMs) * time.Millisecond
	}
	if userConfig.CreativeTTLSeconds != nil && *userConfig.CreativeTTLSeconds > 0 {
		opts.CreativeTTL = time.Duration(*userConfig.CreativeTTLSeconds) * time.Second
	}
	if userConfig.SessionLifeSeconds != nil && *userConfig.SessionLifeSeconds > 0 {
		opts.SessionLife = time.Duration(*userConfig.SessionLifeSeconds) * time.Second
	}
	if userConfig.Network != nil && *userConfig.Network != "" {
		opts.Network = *userConfig.Network
	}
	return &Config{options: opts}
}

// NewFromOptions 直接使用已合并的选项
func NewFromOptions(options *SimOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

func (c *Config) GetOptions() *SimOptions { return c.options }

// GetLatency 获取模拟延迟
func (c *Config) GetLatency() time.Duration { return c.options.Latency }

// GetCreativeTTL 获取预缓存广告有效期
func (c *Config) GetCreativeTTL() time.Duration { return c.options.CreativeTTL }

// GetSessionLife 获取横幅默认刷新间隔
func (c *Config) GetSessionLife() time.Duration { return c.options.SessionLife }

// GetNetwork 获取默认填充的广告网络
func (c *Config) GetNetwork() string { return c.options.Network }

// GetMaxCreatives 获取创意存储预估条目数
func (c *Config) GetMaxCreatives() int { return c.options.MaxCreatives }
