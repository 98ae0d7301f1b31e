package sim

import (
	"context"

	"go.uber.org/fx"

	simconfig "github.com/weisyn/adkit/internal/config/sim"
	logimpl "github.com/weisyn/adkit/internal/core/infrastructure/log"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/config"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
)

// ModuleInput 模拟广告网络模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider
	Loop      *mainloop.Loop
	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 模拟广告网络模块输出服务
type ModuleOutput struct {
	fx.Out

	Network *Network
	Ports   adnetwork.PortFactory
}

// Module 返回模拟广告网络模块
func Module() fx.Option {
	return fx.Module("adnetwork-sim",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建模拟广告网络，应用停止时释放创意存储
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	logger := logimpl.NewModuleLogger(logimpl.OrGlobal(input.Logger), "adnetwork-sim")
	network, err := NewNetwork(input.Loop, simconfig.NewFromOptions(input.Provider.GetSim()), logger)
	if err != nil {
		return ModuleOutput{}, err
	}
	input.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return network.Close()
		},
	})
	return ModuleOutput{Network: network, Ports: network}, nil
}
