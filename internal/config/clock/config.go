package clock

import (
	"os"

	"github.com/weisyn/adkit/pkg/types"
)

// ClockOptions 时钟配置
type ClockOptions struct {
	Type string `json:"type"` // system | mock
}

// Config 提供访问选项
type Config struct {
	options *ClockOptions
}

// New 创建配置，环境变量 ADKIT_CLOCK_TYPE 优先于用户配置
func New(userConfig *types.UserClockConfig) *Config {
	opts := &ClockOptions{Type: defaultType}

	if userConfig != nil && userConfig.Type != nil && *userConfig.Type != "" {
		opts.Type = *userConfig.Type
	}
	if v := os.Getenv(envClockType); v != "" {
		opts.Type = v
	}

	return &Config{options: opts}
}

func (c *Config) GetOptions() *ClockOptions { return c.options }

// IsMock 是否使用可控的模拟时钟
func (c *Config) IsMock() bool { return c.options.Type == TypeMock }
