package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	metricsconfig "github.com/weisyn/adkit/internal/config/metrics"
	logimpl "github.com/weisyn/adkit/internal/core/infrastructure/log"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/config"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
)

// ModuleInput 指标模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider
	Loop      *mainloop.Loop
	EventBus  event.EventBus `optional:"true"`
	Logger    log.Logger     `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 指标模块输出服务
type ModuleOutput struct {
	fx.Out

	Registry  *prometheus.Registry
	Collector *Collector
}

// Module 返回指标模块
//
// 提供：
// - *prometheus.Registry: 广告位指标注册表（不使用全局默认注册表）
// - *Collector: 广告位指标采集器，应用启动时订阅、停止时取消订阅
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建注册表与采集器
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	cfg := metricsconfig.NewFromOptions(input.Provider.GetMetrics())
	logger := logimpl.NewModuleLogger(logimpl.OrGlobal(input.Logger), "metrics")

	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg.GetNamespace(), input.Loop, input.EventBus, logger)
	if err := collector.Register(registry); err != nil {
		return ModuleOutput{}, err
	}

	if cfg.IsEnabled() {
		input.Lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return collector.Start()
			},
			OnStop: func(context.Context) error {
				collector.Stop()
				return nil
			},
		})
	} else {
		logger.Info("广告位指标采集已关闭")
	}

	return ModuleOutput{Registry: registry, Collector: collector}, nil
}
