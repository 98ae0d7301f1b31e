package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	config "github.com/weisyn/adkit/internal/config"
	"github.com/weisyn/adkit/internal/core/adnetwork/sim"
	"github.com/weisyn/adkit/internal/core/ads"
	"github.com/weisyn/adkit/internal/core/infrastructure/clock"
	"github.com/weisyn/adkit/internal/core/infrastructure/event"
	log "github.com/weisyn/adkit/internal/core/infrastructure/log"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/internal/core/infrastructure/metrics"
	"github.com/weisyn/adkit/internal/core/lifecycle"
	configIface "github.com/weisyn/adkit/pkg/interfaces/config"
)

// Framework layers
const (
	// 基础设施层
	LayerInfrastructure = "infrastructure"
	// 领域层
	LayerDomain = "domain"
	// 应用层
	LayerApplication = "application"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
	svc   services
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configIface.AppOptions { return b.opts }),
		config.Module(),   // 1. 配置(不依赖其他)
		log.Module(),      // 2. 日志(依赖配置)
		clock.Module(),    // 3. 时钟(依赖配置)
		event.Module(),    // 4. 事件总线(依赖配置)
		mainloop.Module(), // 5. 主执行上下文(依赖时钟)
	}
}

// SetupDomainLayer 设置领域层模块
func (b *Bootstrap) SetupDomainLayer() []fx.Option {
	return []fx.Option{
		lifecycle.Module(), // 1. 生命周期关联表(依赖主执行上下文)
		sim.Module(),       // 2. 广告网络端口
		ads.Module(),       // 3. 广告位工厂(依赖端口、关联表、事件总线)
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	modules := []fx.Option{
		metrics.Module(),
	}
	if b.opts.backgroundLoop {
		modules = append(modules, mainloop.RunInBackground())
	}
	modules = append(modules, b.opts.extra...)
	return modules
}

// SetupModules 设置所有应用模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupDomainLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	return allModules
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() error {
	appOptions := []fx.Option{
		fx.Options(b.SetupModules()...),

		// 禁用fx内部日志
		fx.NopLogger,

		fx.Populate(
			&b.svc.Loop,
			&b.svc.Clock,
			&b.svc.Factory,
			&b.svc.Bridge,
			&b.svc.Network,
			&b.svc.EventBus,
			&b.svc.Collector,
			&b.svc.Registry,
			&b.svc.Logger,
		),
	}

	b.fxApp = fx.New(appOptions...)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("装配模块失败: %w", err)
	}
	return nil
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	b.svc.Logger.Info("广告系统已启动")
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// BootstrapApp 执行完整的引导过程并返回应用实例
func BootstrapApp(opts *options) (App, error) {
	bootstrap := NewBootstrap(opts)
	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, err
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()
	if err := bootstrap.StartApp(startupCtx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap, svc: &bootstrap.svc}, nil
}
