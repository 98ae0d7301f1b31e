package ads

import (
	"time"

	infraClock "github.com/weisyn/adkit/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/adkit/pkg/types"
)

// autoCache 自动缓存调度
//
// 保持广告位预缓存：界面恢复、非刷新隐藏、失败后按重试间隔重新预缓存。
// 每个广告位最多一个待触发的重试，新的重试替换旧的。
type autoCache struct {
	b *baseAd

	// allowed 额外的触发条件，例如动画横幅要求不可见
	allowed func() bool

	timer      infraClock.Timer
	generation uint64
}

func newAutoCache(b *baseAd, allowed func() bool) *autoCache {
	return &autoCache{b: b, allowed: allowed}
}

// ready 当前是否需要并允许发起预缓存
func (s *autoCache) ready() bool {
	if s.b.destroyed || s.b.HasCachedAd() || s.b.IsCachingAd() {
		return false
	}
	return s.allowed == nil || s.allowed()
}

// refill 立即预缓存（恢复、隐藏时）
func (s *autoCache) refill(reason string) {
	if !s.ready() {
		return
	}
	s.b.logger.Debugf("自动缓存: %s后重新预缓存", reason)
	s.b.baseCacheAd()
}

// retryDelay 失败事件对应的重试间隔
//
// 默认使用失败事件给出的间隔；配置了兜底值时，普通失败在端口没有给出间隔时改用兜底值。
func (s *autoCache) retryDelay(ev *types.FailEvent) time.Duration {
	delay := ev.MinRetryDelay()
	if delay < 0 {
		delay = 0
	}
	if !ev.IsThrottled() && delay == 0 {
		delay = s.b.retryFallback
	}
	return delay
}

// scheduleRetry 在重试间隔后重新预缓存
func (s *autoCache) scheduleRetry(ev *types.FailEvent) {
	delay := s.retryDelay(ev)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.generation++
	gen := s.generation
	s.timer = s.b.loop.PostDelayed(delay, func() { s.fire(gen) })
	s.b.logger.Debugf("自动缓存: %s 后重试 (throttled=%v)", delay, ev.IsThrottled())
	s.b.relay.publishRetry(s.b.name, delay)
}

func (s *autoCache) fire(gen uint64) {
	if gen != s.generation {
		return
	}
	s.timer = nil
	if s.b.destroyed {
		s.b.logger.Debug("自动缓存: 广告位已销毁，放弃重试")
		return
	}
	if !s.ready() {
		s.b.logger.Debug("自动缓存: 重试触发时已有缓存或请求，跳过")
		return
	}
	s.b.baseCacheAd()
}

// pending 是否有待触发的重试
func (s *autoCache) pending() bool { return s.timer != nil }
