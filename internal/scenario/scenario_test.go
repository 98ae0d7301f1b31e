package scenario

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/adkit/internal/app"
	"github.com/weisyn/adkit/pkg/types"
)

const retryScenario = `
name: 插屏限流后重试
duration: 20s
tick: 100ms
placements:
  - name: level_end
    kind: interstitial
    screen: game
    auto_cache: true
    script:
      - result: throttle
        delay: 10s
steps:
  - at: 0s
    screen: game
    action: resume
  - at: 15s
    placement: level_end
    action: show
  - at: 16s
    placement: level_end
    action: dismiss
`

func strPtr(s string) *string { return &s }

func startApp(t *testing.T) app.App {
	t.Helper()
	a, err := app.Start(app.WithAppConfig(&types.AppConfig{
		AppID: strPtr("demo-app"),
		Log:   &types.UserLogConfig{Level: strPtr("error")},
		Clock: &types.UserClockConfig{Type: strPtr("mock")},
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Stop() })
	return a
}

func find(timeline []Entry, placement, event string) []Entry {
	var out []Entry
	for _, e := range timeline {
		if e.Placement == placement && e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func TestParse(t *testing.T) {
	t.Run("解析时长与脚本", func(t *testing.T) {
		scn, err := Parse([]byte(retryScenario))
		require.NoError(t, err)
		assert.Equal(t, 20*time.Second, scn.Duration.Std())
		require.Len(t, scn.Placements, 1)
		require.Len(t, scn.Placements[0].Script, 1)
		assert.Equal(t, 10*time.Second, scn.Placements[0].Script[0].Delay.Std())
		assert.Len(t, scn.Steps, 3)
	})

	t.Run("合并报告所有问题", func(t *testing.T) {
		_, err := Parse([]byte(`
placements:
  - name: footer
    kind: banner
    screen: game
    auto_cache: true
  - name: footer
    kind: video
    screen: game
steps:
  - at: 1s
    placement: footer
    action: hide
  - at: 2s
    screen: menu
    action: resume
`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidScenario))
		for _, want := range []string{"auto_cache", "重复声明", "video", "hide", "menu"} {
			assert.Contains(t, err.Error(), want)
		}
	})

	t.Run("非法时长", func(t *testing.T) {
		_, err := Parse([]byte("duration: soon\nplacements: []\n"))
		assert.Error(t, err)
	})
}

func TestRunner(t *testing.T) {
	t.Run("限流失败被抑制并按延迟重试", func(t *testing.T) {
		a := startApp(t)
		scn, err := Parse([]byte(retryScenario))
		require.NoError(t, err)

		runner, err := NewRunner(a)
		require.NoError(t, err)
		report, err := runner.Run(scn)
		require.NoError(t, err)

		assert.Equal(t, 20*time.Second, report.Elapsed)
		assert.Zero(t, report.UsageErrors)

		fails := find(report.Timeline, "level_end", string(types.EventFail))
		require.Len(t, fails, 1)
		assert.False(t, fails[0].Delivered, "自动缓存的失败不交给监听器")
		assert.Contains(t, fails[0].Detail, "throttled")

		retries := find(report.Timeline, "level_end", EntryRetry)
		require.Len(t, retries, 1)
		assert.Equal(t, "等待 10s", retries[0].Detail)

		caches := find(report.Timeline, "level_end", string(types.EventCache))
		require.Len(t, caches, 2, "重试缓存一次，关闭后再补充一次")
		assert.Equal(t, 10400*time.Millisecond, caches[0].At)

		shows := find(report.Timeline, "level_end", string(types.EventShow))
		require.Len(t, shows, 1)
		assert.Contains(t, shows[0].Detail, "fullscreen")

		require.Len(t, report.Stats, 1)
		assert.Equal(t, 1, report.Stats[0].Suppressed)
		assert.Equal(t, 1, report.Stats[0].Retries)
	})

	t.Run("使用错误记录在时间线上", func(t *testing.T) {
		a := startApp(t)
		scn, err := Parse([]byte(`
name: 自动缓存时手动缓存
duration: 1s
placements:
  - name: level_end
    kind: interstitial
    screen: game
    auto_cache: true
steps:
  - at: 0s
    placement: level_end
    action: cache
`))
		require.NoError(t, err)

		runner, err := NewRunner(a)
		require.NoError(t, err)
		report, err := runner.Run(scn)
		require.NoError(t, err)

		assert.Equal(t, 1, report.UsageErrors)
		errs := find(report.Timeline, "level_end", EntryUsageError)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Detail, types.ErrAutoCacheEnabled.Error())
	})

	t.Run("动画横幅按动画时长进入与退出", func(t *testing.T) {
		a := startApp(t)
		scn, err := Parse([]byte(`
name: 动画横幅
duration: 5s
placements:
  - name: footer
    kind: animated_banner
    screen: game
    intro: 300ms
    outro: 300ms
steps:
  - at: 0s
    screen: game
    action: resume
  - at: 1s
    placement: footer
    action: show
  - at: 3s
    placement: footer
    action: hide
`))
		require.NoError(t, err)

		runner, err := NewRunner(a)
		require.NoError(t, err)
		report, err := runner.Run(scn)
		require.NoError(t, err)

		shows := find(report.Timeline, "footer", string(types.EventShow))
		require.Len(t, shows, 1)
		assert.Equal(t, 1200*time.Millisecond, shows[0].At)

		hides := find(report.Timeline, "footer", string(types.EventHide))
		require.Len(t, hides, 1)
		assert.Equal(t, 3300*time.Millisecond, hides[0].At, "退场动画结束后才发出隐藏事件")
	})
}

func TestDescribe(t *testing.T) {
	ev := types.NewFailEvent("r1", true, 5*time.Second, true, []string{"a", "b"})
	assert.Equal(t, "throttled retry>=5s caching failed=a,b", Describe(ev))
}
