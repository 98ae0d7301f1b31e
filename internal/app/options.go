package app

import (
	"github.com/weisyn/adkit/pkg/interfaces/config"
	"github.com/weisyn/adkit/pkg/types"
	"go.uber.org/fx"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 嵌入的配置内容（优先级高于configFilePath）
	embeddedConfig []byte

	// 用户配置（优先级最高）
	appConfig *types.AppConfig

	// 是否为主执行上下文分配专用 goroutine
	backgroundLoop bool

	// 额外的 fx 选项，场景模拟器和测试用于取出内部服务
	extra []fx.Option
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置 JSON 配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig 设置嵌入的配置内容（优先级高于WithConfigFile）
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithAppConfig 直接使用已构造的配置，忽略配置文件
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithBackgroundLoop 启动时为主执行上下文分配专用 goroutine
//
// 默认不启用：宿主在自己的主 goroutine 上调用 Loop().Bind() 并周期性 RunPending。
func WithBackgroundLoop() Option {
	return func(o *options) {
		o.backgroundLoop = true
	}
}

// WithFxOptions 追加 fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) {
		o.extra = append(o.extra, opts...)
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// GetAppConfig 返回应用程序配置
// 实现config.AppOptions接口的方法
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
