package ads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

func TestListenerFanout(t *testing.T) {
	t.Run("监听器在回调中移除自己不影响其他监听器", func(t *testing.T) {
		h := newHarness(t)
		b, port, _ := h.banner(t, "footer")

		first := &recorder{}
		second := &recorder{}
		first.onShow = func(p placement.Placement, _ *types.ShowEvent) {
			p.RemoveListener(first)
		}
		b.AddListener(first)
		b.AddListener(second)

		b.ShowAd()
		require.NotPanics(t, func() { port.cb.OnCreativeLoaded("house", false) })

		assert.Equal(t, []string{"show"}, first.log)
		assert.Equal(t, []string{"show"}, second.log)

		port.cb.OnClick("house")
		assert.Equal(t, []string{"show"}, first.log, "移除后不再收到事件")
		assert.Equal(t, []string{"show", "click"}, second.log)
	})

	t.Run("按注册顺序分发", func(t *testing.T) {
		h := newHarness(t)
		b, port, _ := h.banner(t, "footer")

		var order []string
		b.AddListener(&placement.ListenerFuncs{Click: func(placement.Placement, *types.ClickEvent) { order = append(order, "a") }})
		b.AddListener(&placement.ListenerFuncs{Click: func(placement.Placement, *types.ClickEvent) { order = append(order, "b") }})
		b.AddListener(&placement.ListenerFuncs{Click: func(placement.Placement, *types.ClickEvent) { order = append(order, "c") }})

		port.cb.OnClick("house")
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("重复注册收到重复回调，移除只移除一次", func(t *testing.T) {
		h := newHarness(t)
		b, port, base := h.banner(t, "footer")
		b.AddListener(base)

		port.cb.OnClick("house")
		assert.Equal(t, []string{"click", "click"}, base.log)

		b.RemoveListener(base)
		port.cb.OnClick("house")
		assert.Equal(t, []string{"click", "click", "click"}, base.log)
	})

	t.Run("部分监听器未设置的回调为空操作", func(t *testing.T) {
		h := newHarness(t)
		b, port, _ := h.banner(t, "footer")

		var shows int
		b.AddListener(&placement.ListenerFuncs{Show: func(p placement.Placement, ev *types.ShowEvent) {
			assert.Equal(t, "footer", p.Name())
			shows++
		}})

		b.ShowAd()
		require.NotPanics(t, func() {
			port.cb.OnCreativeLoaded("house", false)
			port.cb.OnClick("house")
			port.cb.OnCreativeLoaded("house", false)
		})
		assert.Equal(t, 2, shows)
	})

	t.Run("监听器回调收到的是广告位本身", func(t *testing.T) {
		h := newHarness(t)
		b, port, _ := h.banner(t, "footer")

		var got placement.Placement
		b.AddListener(&placement.ListenerFuncs{Click: func(p placement.Placement, _ *types.ClickEvent) { got = p }})
		port.cb.OnClick("house")

		assert.Same(t, b, got)
	})
}

func TestListenerSet(t *testing.T) {
	var s listenerSet
	a := &recorder{}
	b := &recorder{}

	s.add(a)
	s.add(b)
	s.add(a)
	s.add(nil)
	assert.Equal(t, 3, s.len())

	snap := s.snapshot()
	assert.True(t, s.remove(a))
	assert.Len(t, snap, 3, "快照不受后续修改影响")
	assert.Equal(t, []placement.Listener{b, a}, s.snapshot())

	assert.True(t, s.remove(a))
	assert.False(t, s.remove(a))
	assert.Equal(t, []placement.Listener{b}, s.snapshot())
}
