package ads

import (
	"go.uber.org/fx"

	placementconfig "github.com/weisyn/adkit/internal/config/placement"
	logimpl "github.com/weisyn/adkit/internal/core/infrastructure/log"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/internal/core/lifecycle"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
)

// ModuleInput 广告位模块输入依赖
type ModuleInput struct {
	fx.In

	Loop     *mainloop.Loop
	Registry *lifecycle.Registry
	Config   *placementconfig.Config
	Ports    adnetwork.PortFactory
	EventBus event.EventBus `optional:"true"`
	Logger   log.Logger     `optional:"true"`
}

// ModuleOutput 广告位模块输出服务
type ModuleOutput struct {
	fx.Out

	Relay   *Relay
	Factory *Factory
}

// Module 返回广告位模块
func Module() fx.Option {
	return fx.Module("ads",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建事件转发器与广告位工厂
func ProvideServices(input ModuleInput) ModuleOutput {
	logger := logimpl.NewModuleLogger(input.Logger, "ads")
	relay := NewRelay(input.EventBus)
	return ModuleOutput{
		Relay:   relay,
		Factory: NewFactory(input.Loop, input.Ports, input.Registry, input.Config, relay, logger),
	}
}
