// Package lifecycle 连接宿主界面的生命周期与广告位
//
// 📋 **职责**
// - Registry：界面 → 广告位观察者 的关联，以及广告位名称 → app/zone 的绑定
// - Bridge：宿主调用的暂停、恢复、销毁入口，转发给界面上的全部广告位
//
// Registry 由应用的组合根（fx）持有，不存在进程级的全局状态。
// 所有方法都在主执行上下文中调用。
package lifecycle

import (
	"fmt"

	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	lifecycleIface "github.com/weisyn/adkit/pkg/interfaces/lifecycle"
	"github.com/weisyn/adkit/pkg/types"
)

// zoneBinding 广告位名称绑定的 app/zone
type zoneBinding struct {
	appID  string
	zoneID string
}

// Registry 界面与广告位的关联表
type Registry struct {
	loop   *mainloop.Loop
	logger log.Logger

	screens map[types.ScreenID][]lifecycleIface.ScreenObserver
	order   []types.ScreenID
	names   map[string]zoneBinding
}

// NewRegistry 创建关联表
func NewRegistry(loop *mainloop.Loop, logger log.Logger) *Registry {
	return &Registry{
		loop:    loop,
		logger:  logger,
		screens: make(map[types.ScreenID][]lifecycleIface.ScreenObserver),
		names:   make(map[string]zoneBinding),
	}
}

// Claim 把广告位名称绑定到 app/zone
//
// 名称在进程生命周期内只能对应一组 app/zone，重复使用同一组是允许的；
// 对应不同的 app/zone 时以使用错误 panic。
func (r *Registry) Claim(name, appID, zoneID string) {
	r.loop.MustBeCurrent("Claim")
	want := zoneBinding{appID: appID, zoneID: zoneID}
	if have, ok := r.names[name]; ok {
		if have != want {
			panic(types.NewUsageError("Claim", types.ErrPlacementNameReused,
				fmt.Sprintf("%s 已绑定 %s:%s，不能再绑定 %s:%s", name, have.appID, have.zoneID, appID, zoneID)))
		}
		return
	}
	r.names[name] = want
}

// Attach 把观察者挂到界面上
func (r *Registry) Attach(screen types.ScreenID, obs lifecycleIface.ScreenObserver) {
	r.loop.MustBeCurrent("Attach")
	if _, ok := r.screens[screen]; !ok {
		r.order = append(r.order, screen)
		r.logger.Debugf("登记宿主界面 %s", screen)
	}
	r.screens[screen] = append(r.screens[screen], obs)
}

// Detach 把观察者从界面上摘下，界面上不再有观察者时一并移除
func (r *Registry) Detach(screen types.ScreenID, obs lifecycleIface.ScreenObserver) {
	r.loop.MustBeCurrent("Detach")
	list := r.screens[screen]
	for i, o := range list {
		if o == obs {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		r.removeScreen(screen)
		return
	}
	r.screens[screen] = list
}

// Observers 界面上观察者的快照，按挂载顺序
func (r *Registry) Observers(screen types.ScreenID) []lifecycleIface.ScreenObserver {
	list := r.screens[screen]
	if len(list) == 0 {
		return nil
	}
	out := make([]lifecycleIface.ScreenObserver, len(list))
	copy(out, list)
	return out
}

// Screens 仍在登记中的界面，按登记顺序
func (r *Registry) Screens() []types.ScreenID {
	out := make([]types.ScreenID, len(r.order))
	copy(out, r.order)
	return out
}

// Bound 名称当前绑定的 app/zone
func (r *Registry) Bound(name string) (appID, zoneID string, ok bool) {
	b, ok := r.names[name]
	return b.appID, b.zoneID, ok
}

// Close 应用退出时调用，仍有未销毁的界面时记录错误
func (r *Registry) Close() {
	if len(r.order) > 0 {
		r.logger.Errorf("仍有 %d 个宿主界面未通知销毁: %v", len(r.order), r.order)
	}
}

func (r *Registry) removeScreen(screen types.ScreenID) {
	delete(r.screens, screen)
	for i, id := range r.order {
		if id == screen {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
}
