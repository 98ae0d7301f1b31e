// Package event 提供事件管理功能
package event

import (
	"go.uber.org/fx"

	eventconfig "github.com/weisyn/adkit/internal/config/event"
	"github.com/weisyn/adkit/pkg/interfaces/config"
	eventInterface "github.com/weisyn/adkit/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider // 配置提供者
	Logger   log.Logger      `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 全局事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(CreateEventServices),
	)
}

// CreateEventServices 创建事件服务
func CreateEventServices(input ModuleInput) (ModuleOutput, error) {
	eventCfg := eventconfig.NewFromOptions(input.Provider.GetEvent())
	eventBus := New(eventCfg)

	if input.Logger != nil {
		input.Logger.With("module", "event").Infof("事件总线已初始化 (enabled=%v)", eventCfg.IsEnabled())
	}

	return ModuleOutput{
		EventBus: eventBus,
	}, nil
}
