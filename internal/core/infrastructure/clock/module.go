// Package clock 提供时钟与定时器实现
package clock

import (
	"time"

	clockconfig "github.com/weisyn/adkit/internal/config/clock"
	"github.com/weisyn/adkit/pkg/interfaces/config"
	infraClock "github.com/weisyn/adkit/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// ModuleInput 时钟模块输入依赖
type ModuleInput struct {
	fx.In

	Provider config.Provider
	Logger   log.Logger `optional:"true"`
}

// Module 返回时钟模块
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(ProvideClock),
	)
}

// ProvideClock 按配置选择系统时钟或模拟时钟
func ProvideClock(input ModuleInput) infraClock.Clock {
	opts := input.Provider.GetClock()
	if opts != nil && opts.Type == clockconfig.TypeMock {
		if input.Logger != nil {
			input.Logger.Info("使用模拟时钟，定时器只在显式推进时触发")
		}
		return NewMockClock(time.Unix(0, 0).UTC())
	}
	return NewSystemClock()
}
