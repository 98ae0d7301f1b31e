// Package app 装配广告系统的全部模块
//
// 🚀 **应用引导 (Application Bootstrap)**
//
// 按层装配 fx 模块：
// - 基础设施层：配置、日志、时钟、事件总线、主执行上下文
// - 领域层：生命周期关联表、模拟广告网络、广告位工厂
// - 应用层：广告位指标
//
// 启动后通过 App 取得广告位工厂与生命周期桥。
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	configimpl "github.com/weisyn/adkit/internal/config"
	"github.com/weisyn/adkit/internal/core/adnetwork/sim"
	"github.com/weisyn/adkit/internal/core/ads"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/internal/core/infrastructure/metrics"
	infraClock "github.com/weisyn/adkit/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	lifecycleIface "github.com/weisyn/adkit/pkg/interfaces/lifecycle"
	"github.com/weisyn/adkit/pkg/types"
)

// configPathEnv 配置文件路径环境变量，优先级低于显式选项
const configPathEnv = "ADKIT_CONFIG_PATH"

// App 广告系统应用的对外接口
type App interface {
	// Loop 主执行上下文，宿主需在自己的主 goroutine 上 Bind（除非启用了后台运行）
	Loop() *mainloop.Loop
	// Clock 调度使用的时钟
	Clock() infraClock.Clock
	// Factory 广告位工厂
	Factory() *ads.Factory
	// Bridge 宿主界面生命周期桥
	Bridge() lifecycleIface.Bridge
	// Network 模拟广告网络
	Network() *sim.Network
	// EventBus 全局事件总线，广告事件在 "ad:<kind>" 主题上发布
	EventBus() event.EventBus
	// Metrics 广告位指标采集器
	Metrics() *metrics.Collector
	// Gatherer 指标注册表
	Gatherer() prometheus.Gatherer
	// Logger 根日志记录器
	Logger() log.Logger

	// Stop 停止应用
	Stop() error
}

// services 从 fx 容器中取出的服务
type services struct {
	Loop      *mainloop.Loop
	Clock     infraClock.Clock
	Factory   *ads.Factory
	Bridge    lifecycleIface.Bridge
	Network   *sim.Network
	EventBus  event.EventBus
	Collector *metrics.Collector
	Registry  *prometheus.Registry
	Logger    log.Logger
}

// internalApp 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
	svc       *services
}

func (a *internalApp) Loop() *mainloop.Loop          { return a.svc.Loop }
func (a *internalApp) Clock() infraClock.Clock       { return a.svc.Clock }
func (a *internalApp) Factory() *ads.Factory         { return a.svc.Factory }
func (a *internalApp) Bridge() lifecycleIface.Bridge { return a.svc.Bridge }
func (a *internalApp) Network() *sim.Network         { return a.svc.Network }
func (a *internalApp) EventBus() event.EventBus      { return a.svc.EventBus }
func (a *internalApp) Metrics() *metrics.Collector   { return a.svc.Collector }
func (a *internalApp) Gatherer() prometheus.Gatherer { return a.svc.Registry }
func (a *internalApp) Logger() log.Logger            { return a.svc.Logger }

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Start 加载配置并启动应用
func Start(appOptions ...Option) (App, error) {
	opts := newOptions(appOptions...)
	appConfig, err := loadAppConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := configimpl.ValidateAppConfig(appConfig); err != nil {
		return nil, err
	}
	opts.appConfig = appConfig
	return BootstrapApp(opts)
}

// loadAppConfig 按优先级确定用户配置：WithAppConfig > 嵌入配置 > 配置文件 > 环境变量指定的文件
//
// 没有任何配置来源时返回 nil，全部使用默认值。
func loadAppConfig(opts *options) (*types.AppConfig, error) {
	if opts.appConfig != nil {
		return opts.appConfig, nil
	}
	if len(opts.embeddedConfig) > 0 {
		return ParseConfig(opts.embeddedConfig)
	}

	path := opts.configFilePath
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path == "" {
		return nil, nil
	}
	return LoadConfigFile(path)
}

// LoadConfigFile 读取并解析 JSON 配置文件
func LoadConfigFile(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	appConfig, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return appConfig, nil
}

// ParseConfig 解析 JSON 配置
func ParseConfig(data []byte) (*types.AppConfig, error) {
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &appConfig, nil
}
