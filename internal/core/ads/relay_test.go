package ads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/adkit/internal/config/event"
	eventimpl "github.com/weisyn/adkit/internal/core/infrastructure/event"
	"github.com/weisyn/adkit/pkg/types"
)

func TestRelay(t *testing.T) {
	t.Run("按事件类型转发到对应主题", func(t *testing.T) {
		bus := eventimpl.New(eventconfig.New(nil))
		relay := NewRelay(bus)

		var got []string
		var delivered []bool
		handler := func(placement string, ev types.AdEvent, ok bool) {
			got = append(got, placement+":"+string(ev.Kind()))
			delivered = append(delivered, ok)
		}
		require.NoError(t, bus.Subscribe(types.AdEventTopic(types.EventFail), handler))

		relay.publishEvent("level_end", types.NewCacheEvent("r1", "house", nil), true)
		relay.publishEvent("level_end", types.NewFailEvent("r2", true, 10*time.Second, true, nil), false)

		assert.Equal(t, []string{"level_end:" + string(types.EventFail)}, got)
		assert.Equal(t, []bool{false}, delivered)
	})

	t.Run("转发重试间隔", func(t *testing.T) {
		bus := eventimpl.New(eventconfig.New(nil))
		relay := NewRelay(bus)

		var delay time.Duration
		require.NoError(t, bus.Subscribe(types.TopicAutoCacheRetry, func(placement string, d time.Duration) {
			delay = d
		}))

		relay.publishRetry("level_end", 5*time.Second)
		assert.Equal(t, 5*time.Second, delay)
	})

	t.Run("总线未启用或为空时不转发", func(t *testing.T) {
		disabled := false
		bus := eventimpl.New(eventconfig.New(&types.UserEventConfig{Enabled: &disabled}))
		called := false
		require.NoError(t, bus.Subscribe(types.AdEventTopic(types.EventCache), func(string, types.AdEvent, bool) {
			called = true
		}))

		NewRelay(bus).publishEvent("footer", types.NewCacheEvent("r1", "house", nil), true)
		assert.False(t, called)

		var nilRelay *Relay
		assert.NotPanics(t, func() {
			nilRelay.publishEvent("footer", types.NewCacheEvent("r1", "house", nil), true)
			NewRelay(nil).publishRetry("footer", time.Second)
		})
	})
}
