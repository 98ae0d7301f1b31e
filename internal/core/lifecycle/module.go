package lifecycle

import (
	"context"

	"go.uber.org/fx"

	logimpl "github.com/weisyn/adkit/internal/core/infrastructure/log"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	lifecycleIface "github.com/weisyn/adkit/pkg/interfaces/lifecycle"
)

// ModuleInput 生命周期模块输入依赖
type ModuleInput struct {
	fx.In

	Loop      *mainloop.Loop
	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 生命周期模块输出服务
type ModuleOutput struct {
	fx.Out

	Registry *Registry
	Bridge   lifecycleIface.Bridge
}

// Module 返回生命周期模块
func Module() fx.Option {
	return fx.Module("lifecycle",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建关联表与生命周期桥
func ProvideServices(input ModuleInput) ModuleOutput {
	logger := logimpl.NewModuleLogger(logimpl.OrGlobal(input.Logger), "lifecycle")
	registry := NewRegistry(input.Loop, logger)
	input.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			registry.Close()
			return nil
		},
	})
	return ModuleOutput{
		Registry: registry,
		Bridge:   NewBridge(registry),
	}
}
