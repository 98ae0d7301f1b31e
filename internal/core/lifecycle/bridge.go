package lifecycle

import (
	lifecycleIface "github.com/weisyn/adkit/pkg/interfaces/lifecycle"
	"github.com/weisyn/adkit/pkg/types"
)

// Bridge 把宿主界面的生命周期信号转发给界面上的广告位
type Bridge struct {
	registry *Registry
}

var _ lifecycleIface.Bridge = (*Bridge)(nil)

// NewBridge 创建生命周期桥
func NewBridge(registry *Registry) *Bridge {
	return &Bridge{registry: registry}
}

// NotifyPaused 界面进入后台
func (b *Bridge) NotifyPaused(screen types.ScreenID) {
	b.registry.loop.MustBeCurrent("NotifyPaused")
	for _, obs := range b.registry.Observers(screen) {
		obs.Paused()
	}
}

// NotifyResumed 界面回到前台
func (b *Bridge) NotifyResumed(screen types.ScreenID) {
	b.registry.loop.MustBeCurrent("NotifyResumed")
	for _, obs := range b.registry.Observers(screen) {
		obs.Resumed()
	}
}

// NotifyDestroyed 界面销毁：按挂载的逆序销毁广告位，并移除界面
//
// 每个界面只应通知一次，重复通知只记录警告。
func (b *Bridge) NotifyDestroyed(screen types.ScreenID) {
	r := b.registry
	r.loop.MustBeCurrent("NotifyDestroyed")
	observers := r.Observers(screen)
	if len(observers) == 0 {
		r.logger.Warnf("界面 %s 未登记或已销毁", screen)
		return
	}
	r.removeScreen(screen)
	for i := len(observers) - 1; i >= 0; i-- {
		observers[i].Destroyed()
	}
	r.logger.Debugf("界面 %s 已销毁，释放 %d 个广告位", screen, len(observers))
}
