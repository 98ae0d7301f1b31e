package ads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

func TestAnimatedBanner_FullCycle(t *testing.T) {
	h := newHarness(t)
	a, port, rec := h.animated(t, "header", false)
	intro := &fakeAnimation{}
	outro := &fakeAnimation{}
	anims := &animRecorder{}
	a.SetAnimations(intro, outro)
	a.SetAnimationListener(anims)

	var states []types.PresentationState
	track := func() { states = append(states, a.State()) }
	track()

	a.CacheAd()
	port.cb.OnCreativeCached("house")
	require.True(t, a.HasCachedAd())

	a.ShowAd()
	track()
	assert.Equal(t, adnetwork.ModeShow, port.lastRequest().Mode)

	port.cb.OnCreativeLoaded("house", false)
	track()
	assert.Equal(t, 1, intro.starts)
	assert.True(t, a.IsVisible())
	assert.Equal(t, []bool{true}, port.visible)

	intro.finish()
	track()
	assert.Equal(t, 1, anims.intro)

	a.HideAd()
	track()
	assert.Equal(t, 1, outro.starts)
	assert.NotContains(t, rec.log, "hide", "退场动画结束前不发出隐藏")

	outro.finish()
	track()
	assert.Equal(t, 1, anims.outro)
	assert.False(t, a.IsVisible())
	assert.Equal(t, []bool{true, false}, port.visible)

	assert.Equal(t, []types.PresentationState{
		types.Offscreen,
		types.ShowTriggered,
		types.IntroAnim,
		types.OnScreen,
		types.OutroAnim,
		types.Offscreen,
	}, states)
	assert.Equal(t, []string{"cache", "show", "hide"}, rec.log)

	hide := rec.events[2].(*types.HideEvent)
	assert.False(t, hide.IsRefresh())
	assert.Same(t, rec.events[1], hide.MatchingShow())
}

func TestAnimatedBanner_HideWithoutOutro(t *testing.T) {
	h := newHarness(t)
	a, port, rec := h.animated(t, "header", false)
	anims := &animRecorder{}
	a.SetAnimationListener(anims)

	a.ShowAd()
	port.cb.OnCreativeLoaded("house", false)
	require.Equal(t, types.OnScreen, a.State(), "没有入场动画时直接上屏")
	assert.Equal(t, 1, anims.intro)

	a.HideAd()
	assert.Equal(t, types.Offscreen, a.State())
	require.Equal(t, []string{"show", "hide"}, rec.log, "HideAd 返回前同步发出隐藏")
	assert.False(t, rec.events[1].(*types.HideEvent).IsRefresh())
	assert.Equal(t, 1, anims.outro)
}

func TestAnimatedBanner_Show(t *testing.T) {
	t.Run("预缓存进行中调用ShowAd，缓存完成后展示", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", false)
		a.CacheAd()

		a.ShowAd()
		assert.Equal(t, types.ShowTriggered, a.State())
		assert.Len(t, port.requests, 1)

		port.cb.OnCreativeCached("house")
		require.Len(t, port.requests, 2)
		assert.Equal(t, adnetwork.ModeShow, port.lastRequest().Mode)

		port.cb.OnCreativeLoaded("house", false)
		assert.Equal(t, types.OnScreen, a.State())
	})

	t.Run("重复调用ShowAd不发起新请求", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", false)
		a.ShowAd()
		a.ShowAd()
		assert.Len(t, port.requests, 1)
		assert.Equal(t, types.ShowTriggered, a.State())
	})

	t.Run("已上屏时调用ShowAd为刷新", func(t *testing.T) {
		h := newHarness(t)
		a, port, rec := h.animated(t, "header", false)
		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)

		a.ShowAd()
		require.Len(t, port.requests, 2)
		port.cb.OnCreativeLoaded("admob", false)
		assert.Equal(t, types.OnScreen, a.State())
		assert.Equal(t, []string{"show", "hide(refresh)", "show(refresh)"}, rec.log)
	})

	t.Run("展示时应用刷新间隔，隐藏后恢复默认", func(t *testing.T) {
		h := newHarness(t)
		a, err := h.factory.NewAnimatedBanner(Options{Screen: testScreen, Name: "header", ZoneID: "z", RefreshInterval: 12 * time.Second})
		require.NoError(t, err)
		port := h.port("header")

		a.ShowAd()
		assert.Equal(t, 12*time.Second, port.sessionLife)
		port.cb.OnCreativeLoaded("house", false)
		a.HideAd()
		assert.Equal(t, port.defaultLife, port.sessionLife)
	})

	t.Run("未配置刷新间隔时使用端口默认值", func(t *testing.T) {
		h := newHarness(t)
		a, _, _ := h.animated(t, "header", false)
		assert.Equal(t, 30*time.Second, a.RefreshInterval())
	})
}

func TestAnimatedBanner_Failures(t *testing.T) {
	t.Run("同步限流让等待中的展示回到Offscreen", func(t *testing.T) {
		h := newHarness(t)
		a, err := h.factory.NewAnimatedBanner(Options{Screen: testScreen, Name: "header", ZoneID: "z"})
		require.NoError(t, err)
		rec := &recorder{}
		a.AddListener(rec)
		port := h.port("header")
		port.onStart = func(adnetwork.Request) { port.cb.OnRequestThrottled(2 * time.Second) }

		a.ShowAd()
		assert.Equal(t, types.Offscreen, a.State())
		assert.Equal(t, types.CachingIdle, a.CachingState())
		assert.Equal(t, []string{"fail(throttled=true)"}, rec.log)
	})

	t.Run("刷新失败不影响已上屏的横幅", func(t *testing.T) {
		h := newHarness(t)
		a, port, rec := h.animated(t, "header", false)
		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)

		a.ShowAd()
		port.cb.OnCreativeFailed([]string{"admob"})
		assert.Equal(t, types.OnScreen, a.State())
		assert.Equal(t, []string{"show", "fail(throttled=false)"}, rec.log)
	})

	t.Run("上屏前隐藏直接回到Offscreen", func(t *testing.T) {
		h := newHarness(t)
		a, port, rec := h.animated(t, "header", false)
		a.ShowAd()
		a.HideAd()
		assert.Equal(t, types.Offscreen, a.State())

		port.cb.OnCreativeLoaded("house", false)
		assert.Equal(t, types.Offscreen, a.State())
		assert.Empty(t, rec.log)
	})

	t.Run("未展示就隐藏只记录警告", func(t *testing.T) {
		h := newHarness(t)
		a, _, rec := h.animated(t, "header", false)
		require.NotPanics(t, func() { a.HideAd() })
		assert.Equal(t, types.Offscreen, a.State())
		assert.Empty(t, rec.log)
	})
}

func TestAnimatedBanner_Animations(t *testing.T) {
	t.Run("动画进行中修改动画为使用错误", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", false)
		intro := &fakeAnimation{}
		a.SetAnimations(intro, nil)
		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)
		require.Equal(t, types.IntroAnim, a.State())

		requireUsageError(t, types.ErrAnimating, func() { a.SetAnimations(nil, nil) })

		intro.finish()
		require.NotPanics(t, func() { a.SetAnimations(nil, nil) })
	})

	t.Run("过期的入场动画结束回调被忽略", func(t *testing.T) {
		h := newHarness(t)
		a, port, rec := h.animated(t, "header", false)
		intro := &fakeAnimation{}
		outro := &fakeAnimation{}
		a.SetAnimations(intro, outro)
		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)

		staleIntro := intro.onEnd
		a.HideAd()
		require.Equal(t, types.OutroAnim, a.State())

		staleIntro()
		assert.Equal(t, types.OutroAnim, a.State())

		outro.finish()
		assert.Equal(t, types.Offscreen, a.State())
		assert.Equal(t, []string{"show", "hide"}, rec.log)
	})

	t.Run("监听器在展示回调中隐藏时放弃剩余动作", func(t *testing.T) {
		h := newHarness(t)
		a, port, rec := h.animated(t, "header", false)
		anims := &animRecorder{}
		a.SetAnimationListener(anims)
		rec.onShow = func(p placement.Placement, _ *types.ShowEvent) {
			p.(placement.AnimatedBanner).HideAd()
		}

		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)

		assert.Equal(t, types.Offscreen, a.State())
		assert.Equal(t, []string{"show", "hide"}, rec.log)
		assert.Equal(t, 0, anims.intro)
		assert.Equal(t, 1, anims.outro)
		assert.Equal(t, []bool{true, false}, port.visible)
	})
}

func TestAnimatedBanner_AutoCache(t *testing.T) {
	t.Run("恢复时预缓存，隐藏后重新预缓存", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", true)

		h.bridge.NotifyResumed(testScreen)
		require.Len(t, port.requests, 1)
		port.cb.OnCreativeCached("house")

		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)
		require.Len(t, port.requests, 2)

		a.HideAd()
		require.Len(t, port.requests, 3)
		assert.Equal(t, adnetwork.ModePrecache, port.lastRequest().Mode)
	})

	t.Run("可见时不安排失败重试", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", true)
		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)

		a.ShowAd()
		port.cb.OnRequestThrottled(time.Second)
		assert.Equal(t, 0, h.clk.Pending())
	})

	t.Run("重试触发时已可见则跳过", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", true)
		h.bridge.NotifyResumed(testScreen)
		port.cb.OnRequestThrottled(time.Second)
		require.Equal(t, 1, h.clk.Pending())

		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)
		require.True(t, a.IsVisible())
		requests := len(port.requests)

		h.advance(time.Second)
		assert.Len(t, port.requests, requests)
	})

	t.Run("恢复时不可见则恢复默认刷新间隔", func(t *testing.T) {
		h := newHarness(t)
		_, port, _ := h.animated(t, "header", true)
		port.sessionLife = time.Minute
		h.bridge.NotifyResumed(testScreen)
		assert.Equal(t, port.defaultLife, port.sessionLife)
	})

	t.Run("手动CacheAd为使用错误", func(t *testing.T) {
		h := newHarness(t)
		a, _, _ := h.animated(t, "header", true)
		requireUsageError(t, types.ErrAutoCacheEnabled, func() { a.CacheAd() })
	})
}

func TestAnimatedBanner_ReshowFromHideListener(t *testing.T) {
	reshow := func(a *AnimatedBanner) *placement.ListenerFuncs {
		return &placement.ListenerFuncs{Hide: func(_ placement.Placement, ev *types.HideEvent) {
			if !ev.IsRefresh() {
				a.ShowAd()
			}
		}}
	}

	t.Run("无退场动画", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", false)
		anims := &animRecorder{}
		a.SetAnimationListener(anims)
		a.AddListener(reshow(a))

		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)
		a.HideAd()

		assert.Equal(t, 1, anims.outro, "OnHide 中重新展示不影响退场结束回调")
		assert.Equal(t, types.ShowTriggered, a.State())
		assert.Equal(t, []bool{true, false}, port.visible)
	})

	t.Run("有退场动画", func(t *testing.T) {
		h := newHarness(t)
		a, port, _ := h.animated(t, "header", false)
		outro := &fakeAnimation{}
		a.SetAnimations(nil, outro)
		anims := &animRecorder{}
		a.SetAnimationListener(anims)
		a.AddListener(reshow(a))

		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)
		a.HideAd()
		require.Equal(t, types.OutroAnim, a.State())

		outro.finish()
		assert.Equal(t, 1, anims.outro)
		assert.Equal(t, types.ShowTriggered, a.State())
	})
}

func TestAnimatedBanner_FailDuringAnimation(t *testing.T) {
	t.Run("入场动画中失败回到Offscreen并发出隐藏", func(t *testing.T) {
		h := newHarness(t)
		a, port, rec := h.animated(t, "header", false)
		intro := &fakeAnimation{}
		a.SetAnimations(intro, nil)
		anims := &animRecorder{}
		a.SetAnimationListener(anims)

		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)
		require.Equal(t, types.IntroAnim, a.State())

		a.ShowAd()
		port.cb.OnCreativeFailed([]string{"admob"})
		assert.Equal(t, types.Offscreen, a.State())
		assert.False(t, a.IsVisible())
		assert.Equal(t, []bool{true, false}, port.visible)
		assert.Equal(t, []string{"show", "hide", "fail(throttled=false)"}, rec.log)

		intro.finish()
		assert.Equal(t, types.Offscreen, a.State())
		assert.Equal(t, 0, anims.intro, "过期的入场结束被忽略")
	})

	t.Run("退场动画中失败直接完成隐藏", func(t *testing.T) {
		h := newHarness(t)
		a, port, rec := h.animated(t, "header", false)
		outro := &fakeAnimation{}
		a.SetAnimations(nil, outro)
		anims := &animRecorder{}
		a.SetAnimationListener(anims)

		a.ShowAd()
		port.cb.OnCreativeLoaded("house", false)
		a.HideAd()
		require.Equal(t, types.OutroAnim, a.State())

		a.ShowAd()
		port.cb.OnCreativeFailed([]string{"admob"})
		assert.Equal(t, types.Offscreen, a.State())
		assert.Equal(t, 1, anims.outro)
		assert.Equal(t, []string{"show", "hide", "fail(throttled=false)"}, rec.log)

		outro.finish()
		assert.Equal(t, 1, anims.outro, "过期的退场结束被忽略")
		assert.Equal(t, []bool{true, false}, port.visible)
	})
}
