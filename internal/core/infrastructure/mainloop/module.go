package mainloop

import (
	"context"

	"github.com/weisyn/adkit/pkg/interfaces/config"
	infraClock "github.com/weisyn/adkit/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// ModuleInput 主执行上下文模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider
	Clock     infraClock.Clock
	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// Module 返回主执行上下文模块
func Module() fx.Option {
	return fx.Module("mainloop",
		fx.Provide(ProvideLoop),
	)
}

// ProvideLoop 创建主执行上下文，应用停止时关闭
func ProvideLoop(input ModuleInput) *Loop {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "mainloop")
	}

	capacity := 0
	if opts := input.Provider.GetPlacement(); opts != nil {
		capacity = opts.MainQueueSize
	}

	loop := New(input.Clock, logger, capacity)
	input.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			loop.Close()
			return nil
		},
	})
	return loop
}

// RunInBackground 在应用启动时为主执行上下文分配专用 goroutine
//
// 宿主自己持有主 goroutine（调用 Bind + RunPending）时不要使用。
func RunInBackground() fx.Option {
	return fx.Invoke(func(loop *Loop, lc fx.Lifecycle) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					defer close(done)
					_ = loop.Run(ctx)
				}()
				return nil
			},
			OnStop: func(stopCtx context.Context) error {
				cancel()
				select {
				case <-done:
					return nil
				case <-stopCtx.Done():
					return stopCtx.Err()
				}
			},
		})
	})
}
