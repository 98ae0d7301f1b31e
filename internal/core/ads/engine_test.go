package ads

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	placementconfig "github.com/weisyn/adkit/internal/config/placement"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/types"
)

func TestCachingEngine_HasCachedAd(t *testing.T) {
	t.Run("只有Retrieved且未过期时才持有缓存", func(t *testing.T) {
		h := newHarness(t)
		i, port, _ := h.interstitial(t, "level_end", false)

		assert.False(t, i.HasCachedAd())
		i.CacheAd()
		assert.True(t, i.IsCachingAd())
		assert.False(t, i.HasCachedAd())

		port.cb.OnCreativeCached("house")
		assert.Equal(t, types.CachingRetrieved, i.CachingState())
		assert.True(t, i.HasCachedAd())

		port.expired = true
		assert.False(t, i.HasCachedAd(), "过期的缓存不算持有")
	})

	t.Run("调用ShowAd后立即不再持有缓存", func(t *testing.T) {
		h := newHarness(t)
		i, port, _ := h.interstitial(t, "level_end", false)
		i.CacheAd()
		port.cb.OnCreativeCached("house")
		require.True(t, i.HasCachedAd())

		i.ShowAd()
		assert.False(t, i.HasCachedAd())
		assert.Equal(t, types.CachingIdle, i.CachingState())
		assert.Equal(t, adnetwork.ModeShow, port.lastRequest().Mode)
	})
}

func TestCachingEngine_CacheAdIdempotent(t *testing.T) {
	h := newHarness(t)
	i, port, rec := h.interstitial(t, "level_end", false)

	i.CacheAd()
	port.cb.OnCreativeCached("house")
	require.Len(t, port.requests, 1)
	require.Len(t, rec.events, 1)

	i.CacheAd()
	assert.Len(t, port.requests, 1, "已缓存时不发起新请求")
	require.Len(t, rec.events, 2)
	assert.Same(t, rec.events[0], rec.events[1], "重发同一个 CacheEvent")
	assert.Equal(t, types.CachingRetrieved, i.CachingState())
}

func TestCachingEngine_ExpiredCacheRequestsAgain(t *testing.T) {
	h := newHarness(t)
	i, port, _ := h.interstitial(t, "level_end", false)

	i.CacheAd()
	port.cb.OnCreativeCached("house")
	port.expired = true

	i.CacheAd()
	assert.Len(t, port.requests, 2)
	assert.Equal(t, adnetwork.ModePrecache, port.lastRequest().Mode)
	assert.True(t, i.IsCachingAd())
}

func TestCachingEngine_RefreshOrdering(t *testing.T) {
	h := newHarness(t)
	b, port, rec := h.banner(t, "footer")

	b.ShowAd()
	port.cb.OnCreativeLoaded("house", false)
	port.cb.OnCreativeLoaded("admob", false)
	port.cb.OnCreativeLoaded("inmobi", false)

	assert.Equal(t, []string{"show", "hide(refresh)", "show(refresh)", "hide(refresh)", "show(refresh)"}, rec.log)

	first := rec.events[0].(*types.ShowEvent)
	hide := rec.events[1].(*types.HideEvent)
	second := rec.events[2].(*types.ShowEvent)
	assert.Same(t, first, hide.MatchingShow(), "刷新隐藏引用上一次展示")
	assert.Equal(t, "admob", second.Network())
	assert.Same(t, second, rec.events[3].(*types.HideEvent).MatchingShow())
	assert.Equal(t, types.CachingIdle, b.CachingState(), "展示请求不经过 Retrieved")
}

func TestCachingEngine_Failures(t *testing.T) {
	t.Run("预缓存被限流时回到Idle并标记来自缓存请求", func(t *testing.T) {
		h := newHarness(t)
		i, port, rec := h.interstitial(t, "level_end", false)
		i.CacheAd()
		port.cb.OnRequestThrottled(1500 * time.Millisecond)

		assert.Equal(t, types.CachingIdle, i.CachingState())
		require.Len(t, rec.events, 1)
		fail := rec.events[0].(*types.FailEvent)
		assert.True(t, fail.IsThrottled())
		assert.True(t, fail.WasFromCachingAttempt())
		assert.Equal(t, 1500*time.Millisecond, fail.MinRetryDelay(), "限流间隔原样传递")
	})

	t.Run("展示请求失败携带端口给出的重试间隔与失败网络", func(t *testing.T) {
		h := newHarness(t)
		b, port, rec := h.banner(t, "footer")
		port.minDelay = 2 * time.Second

		b.ShowAd()
		port.cb.OnRequestStarted()
		port.cb.OnAttemptingNetwork("admob")
		port.cb.OnNetworkFailed("admob")
		port.cb.OnCreativeFailed([]string{"admob", "inmobi"})

		require.Len(t, rec.events, 1)
		fail := rec.events[0].(*types.FailEvent)
		assert.False(t, fail.IsThrottled())
		assert.False(t, fail.WasFromCachingAttempt())
		assert.Equal(t, 2*time.Second, fail.MinRetryDelay())
		assert.Equal(t, []string{"admob", "inmobi"}, fail.FailedNetworks())
	})

	t.Run("预缓存成功事件带上先行失败的网络", func(t *testing.T) {
		h := newHarness(t)
		i, port, rec := h.interstitial(t, "level_end", false)
		i.CacheAd()
		port.cb.OnRequestStarted()
		port.cb.OnNetworkFailed("greystripe")
		port.cb.OnNetworkFailed("millenial")
		port.cb.OnAttemptingNetwork("house")
		port.cb.OnCreativeCached("house")

		cache := rec.events[0].(*types.CacheEvent)
		assert.Equal(t, "house", cache.Network())
		assert.Equal(t, []string{"greystripe", "millenial"}, cache.FailedNetworks())
		assert.Equal(t, port.lastRequest().ID, cache.RequestID())
	})
}

func TestCachingEngine_FullscreenCallbacks(t *testing.T) {
	h := newHarness(t)
	i, port, rec := h.interstitial(t, "level_end", false)

	i.ShowAd()
	port.cb.OnCreativeLoaded("house", true)
	port.cb.OnFullscreenPresented("house")
	port.cb.OnClick("house")
	port.cb.OnFullscreenDismissed("house")

	assert.Equal(t, []string{"show", "present", "click", "dismiss"}, rec.log)
	show := rec.events[0].(*types.ShowEvent)
	assert.True(t, show.IsFullscreen())
	assert.False(t, rec.events[1].(*types.PresentFullscreenEvent).IsExpand())
	dismiss := rec.events[3].(*types.DismissFullscreenEvent)
	assert.Same(t, show, dismiss.MatchingShow())
	assert.False(t, dismiss.IsCollapse())

	// 关闭后再次加载不是刷新
	i.ShowAd()
	port.cb.OnCreativeLoaded("house", true)
	assert.Equal(t, "show", rec.log[len(rec.log)-1])
}

func TestCachingEngine_ExpandCollapse(t *testing.T) {
	h := newHarness(t)
	b, port, rec := h.banner(t, "footer")
	b.ShowAd()
	port.cb.OnCreativeLoaded("richmedia", false)
	port.cb.OnExpand("richmedia")
	port.cb.OnCollapse("richmedia")

	assert.Equal(t, []string{"show", "present", "dismiss"}, rec.log)
	assert.True(t, rec.events[1].(*types.PresentFullscreenEvent).IsExpand())
	collapse := rec.events[2].(*types.DismissFullscreenEvent)
	assert.True(t, collapse.IsCollapse())
	assert.Same(t, rec.events[0], collapse.MatchingShow())
}

func TestCachingEngine_RequestParameters(t *testing.T) {
	cfg := placementconfig.NewFromOptions(&placementconfig.PlacementOptions{AppID: "app-1", DefaultRetryDelay: time.Second})
	h := newHarnessWithConfig(t, cfg)
	i, port, _ := h.interstitial(t, "level_end", false)

	i.SetTargetingParameters("age=30")
	i.SetAdParameters("level=3")
	i.CacheAd()

	req := port.lastRequest()
	assert.Equal(t, "app-1", req.AppID)
	assert.Equal(t, "zone-level_end", req.ZoneID)
	assert.Equal(t, "level_end", req.Placement)
	assert.Equal(t, types.KindInterstitial, req.Kind)
	assert.Equal(t, "age=30", req.Targeting)
	assert.Equal(t, "level=3", req.AdParameters)
	assert.NotEmpty(t, req.ID)

	i.CacheAd()
	assert.Len(t, port.requests, 2)
	assert.NotEqual(t, req.ID, port.lastRequest().ID, "每次请求使用新的请求ID")
}

func TestCachingEngine_MainContext(t *testing.T) {
	h := newHarness(t)
	i, port, _ := h.interstitial(t, "level_end", false)

	errs := make(chan error, 2)
	go func() {
		errs <- usageError(func() { i.ShowAd() })
		errs <- usageError(func() { port.cb.OnCreativeCached("house") })
	}()

	for n := 0; n < 2; n++ {
		err := <-errs
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotOnMainContext))
	}
	assert.Empty(t, port.requests)
	assert.Equal(t, types.CachingIdle, i.CachingState())
}

func TestCachingEngine_Lifecycle(t *testing.T) {
	t.Run("暂停时中断预缓存", func(t *testing.T) {
		h := newHarness(t)
		i, port, _ := h.interstitial(t, "level_end", false)
		i.CacheAd()

		h.bridge.NotifyPaused(testScreen)
		assert.Equal(t, 1, port.paused)
		assert.Equal(t, types.CachingIdle, i.CachingState())

		h.bridge.NotifyResumed(testScreen)
		assert.Equal(t, 1, port.resumed)
	})

	t.Run("销毁后公共调用为使用错误，端口回调被忽略", func(t *testing.T) {
		h := newHarness(t)
		i, port, rec := h.interstitial(t, "level_end", false)
		i.CacheAd()

		h.bridge.NotifyDestroyed(testScreen)
		assert.True(t, port.destroyed)
		assert.True(t, i.IsDestroyed())

		port.cb.OnCreativeCached("house")
		assert.Empty(t, rec.events)

		requireUsageError(t, types.ErrPlacementDestroyed, func() { i.ShowAd() })
		requireUsageError(t, types.ErrPlacementDestroyed, func() { i.CacheAd() })
	})
}

func TestFactory(t *testing.T) {
	t.Run("缺少宿主界面", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.factory.NewBanner(Options{Name: "footer", ZoneID: "z"})
		assert.ErrorIs(t, err, ErrMissingScreen)
	})

	t.Run("缺少名称", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.factory.NewBanner(Options{Screen: testScreen, ZoneID: "z"})
		assert.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("端口创建失败被包装返回", func(t *testing.T) {
		h := newHarness(t)
		h.ports.err = adnetwork.ErrUnavailable
		_, err := h.factory.NewInterstitial(Options{Screen: testScreen, Name: "level_end", ZoneID: "z"})
		assert.ErrorIs(t, err, adnetwork.ErrUnavailable)
	})

	t.Run("名称绑定不同的zone为使用错误", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.factory.NewBanner(Options{Screen: testScreen, Name: "footer", ZoneID: "z1"})
		require.NoError(t, err)

		_, err = h.factory.NewBanner(Options{Screen: "other", Name: "footer", ZoneID: "z1"})
		require.NoError(t, err, "同名同 zone 可以重复创建")

		requireUsageError(t, types.ErrPlacementNameReused, func() {
			_, _ = h.factory.NewBanner(Options{Screen: testScreen, Name: "footer", ZoneID: "z2"})
		})
	})

	t.Run("集成测试模式替换为样例广告位", func(t *testing.T) {
		cfg := placementconfig.NewFromOptions(&placementconfig.PlacementOptions{
			AppID:    "my-app",
			DeviceID: "device-1",
			Integration: placementconfig.IntegrationOptions{
				Enabled:   true,
				DeviceIDs: []string{"device-1"},
				Network:   "admob",
			},
		})
		h := newHarnessWithConfig(t, cfg)
		b, port, _ := h.banner(t, "footer")

		assert.Equal(t, placementconfig.IntegrationAppID, b.AppID())
		assert.Equal(t, "0655195179157254033", b.ZoneID())
		assert.Equal(t, b.ZoneID(), port.spec.ZoneID)
	})

	t.Run("横幅应用刷新间隔", func(t *testing.T) {
		h := newHarness(t)
		b, err := h.factory.NewBanner(Options{Screen: testScreen, Name: "footer", ZoneID: "z", RefreshInterval: 45 * time.Second})
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, b.RefreshInterval())
		assert.Equal(t, 45*time.Second, h.port("footer").sessionLife)
	})
}

func TestWrongCreativeKind(t *testing.T) {
	t.Run("插屏收到横幅创意", func(t *testing.T) {
		h := newHarness(t)
		i, port, _ := h.interstitial(t, "level_end", false)
		i.ShowAd()
		requireUsageError(t, types.ErrWrongCreativeKind, func() { port.cb.OnCreativeLoaded("house", false) })
	})

	t.Run("横幅收到插屏创意", func(t *testing.T) {
		h := newHarness(t)
		b, port, _ := h.banner(t, "footer")
		b.ShowAd()
		requireUsageError(t, types.ErrWrongCreativeKind, func() { port.cb.OnCreativeLoaded("house", true) })
	})
}
