package ads

import (
	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

// listenerSet 监听器多重集合
//
// 同一监听器可以注册多次；分发时先拷贝，回调中增删监听器不影响本次分发。
type listenerSet struct {
	items []placement.Listener
}

func (s *listenerSet) add(l placement.Listener) {
	if l == nil {
		return
	}
	s.items = append(s.items, l)
}

// remove 移除第一次出现的注册，返回是否找到
func (s *listenerSet) remove(l placement.Listener) bool {
	for i, item := range s.items {
		if item == l {
			next := make([]placement.Listener, 0, len(s.items)-1)
			next = append(next, s.items[:i]...)
			next = append(next, s.items[i+1:]...)
			s.items = next
			return true
		}
	}
	return false
}

func (s *listenerSet) len() int { return len(s.items) }

func (s *listenerSet) snapshot() []placement.Listener {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]placement.Listener, len(s.items))
	copy(out, s.items)
	return out
}

// dispatch 按事件类型调用对应的回调
func dispatch(l placement.Listener, p placement.Placement, ev types.AdEvent) {
	switch e := ev.(type) {
	case *types.CacheEvent:
		l.OnCache(p, e)
	case *types.ShowEvent:
		l.OnShow(p, e)
	case *types.FailEvent:
		l.OnFail(p, e)
	case *types.HideEvent:
		l.OnHide(p, e)
	case *types.ClickEvent:
		l.OnClick(p, e)
	case *types.PresentFullscreenEvent:
		l.OnPresentFullscreen(p, e)
	case *types.DismissFullscreenEvent:
		l.OnDismissFullscreen(p, e)
	}
}
