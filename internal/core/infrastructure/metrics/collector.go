// Package metrics 提供广告位指标采集
//
// 📊 **广告位指标 (Placement Metrics)**
//
// Collector 订阅全局事件总线上的广告事件主题，把事件计数、
// 失败原因与自动缓存重试间隔记录为 Prometheus 指标：
//   - <ns>_placement_events_total{placement,kind}
//   - <ns>_placement_fail_events_total{placement,throttled,suppressed}
//   - <ns>_autocache_retry_delay_seconds
//   - <ns>_mainloop_pending_tasks / <ns>_mainloop_executed_tasks_total
//
// 事件总线的处理器在发布方（主执行上下文）的调用栈中执行，
// 这里只做计数，不回调广告位。
package metrics

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/adkit/pkg/types"
)

// PlacementStats 单个广告位的事件计数快照
type PlacementStats struct {
	Placement  string
	Events     map[types.EventKind]int
	Suppressed int // 未投递给监听器的失败事件
	Retries    int // 自动缓存安排的重试次数
}

// Collector 广告位指标采集器
type Collector struct {
	bus    event.EventBus
	logger log.Logger

	events     *prometheus.CounterVec
	fails      *prometheus.CounterVec
	retryDelay prometheus.Histogram
	loop       prometheus.Collector

	// 订阅时使用的处理器，取消订阅需要同一个函数值
	onEvent event.AdEventHandler
	onRetry func(placement string, delay time.Duration)

	mu         sync.Mutex
	started    bool
	placements map[string]int // 广告位 -> 重试次数
}

// NewCollector 创建采集器，loop 为 nil 时不采集主执行上下文指标
func NewCollector(namespace string, loop *mainloop.Loop, bus event.EventBus, logger log.Logger) *Collector {
	c := &Collector{
		bus:    bus,
		logger: logger,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "placement",
			Name:      "events_total",
			Help:      "Ad events raised by placements, including suppressed failures",
		}, []string{"placement", "kind"}),
		fails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "placement",
			Name:      "fail_events_total",
			Help:      "Failed requests by throttling and listener suppression",
		}, []string{"placement", "throttled", "suppressed"}),
		retryDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "autocache",
			Name:      "retry_delay_seconds",
			Help:      "Delay before an auto-cache retry",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 300},
		}),
		placements: make(map[string]int),
	}
	if loop != nil {
		c.loop = mainloop.NewCollector(loop, namespace)
	}
	c.onEvent = c.handleEvent
	c.onRetry = c.handleRetry
	return c
}

// Register 把全部指标注册到 reg
func (c *Collector) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{c.events, c.fails, c.retryDelay}
	if c.loop != nil {
		collectors = append(collectors, c.loop)
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// Start 订阅广告事件主题
func (c *Collector) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.bus == nil {
		return nil
	}
	if !c.bus.IsEnabled() {
		c.logger.Warn("事件总线未启用，广告位指标不会更新")
		return nil
	}

	for _, kind := range types.AllAdEventKinds() {
		if err := c.bus.Subscribe(types.AdEventTopic(kind), c.onEvent); err != nil {
			c.unsubscribeLocked()
			return err
		}
	}
	if err := c.bus.Subscribe(types.TopicAutoCacheRetry, c.onRetry); err != nil {
		c.unsubscribeLocked()
		return err
	}
	c.started = true
	c.logger.Debug("广告位指标采集已启动")
	return nil
}

// Stop 取消订阅
func (c *Collector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return
	}
	c.unsubscribeLocked()
	c.started = false
}

func (c *Collector) unsubscribeLocked() {
	for _, kind := range types.AllAdEventKinds() {
		if c.bus.HasCallback(types.AdEventTopic(kind)) {
			_ = c.bus.Unsubscribe(types.AdEventTopic(kind), c.onEvent)
		}
	}
	if c.bus.HasCallback(types.TopicAutoCacheRetry) {
		_ = c.bus.Unsubscribe(types.TopicAutoCacheRetry, c.onRetry)
	}
}

func (c *Collector) handleEvent(placement string, ev types.AdEvent, delivered bool) {
	if ev == nil {
		return
	}
	c.track(placement)
	c.events.WithLabelValues(placement, string(ev.Kind())).Inc()

	if fail, ok := ev.(*types.FailEvent); ok {
		c.fails.WithLabelValues(
			placement,
			strconv.FormatBool(fail.IsThrottled()),
			strconv.FormatBool(!delivered),
		).Inc()
	}
}

func (c *Collector) handleRetry(placement string, delay time.Duration) {
	c.mu.Lock()
	c.placements[placement]++
	c.mu.Unlock()
	c.retryDelay.Observe(delay.Seconds())
}

func (c *Collector) track(placement string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.placements[placement]; !ok {
		c.placements[placement] = 0
	}
}

// Snapshot 按广告位名称排序的计数快照
func (c *Collector) Snapshot() []PlacementStats {
	c.mu.Lock()
	names := make([]string, 0, len(c.placements))
	retries := make(map[string]int, len(c.placements))
	for name, n := range c.placements {
		names = append(names, name)
		retries[name] = n
	}
	c.mu.Unlock()
	sort.Strings(names)

	stats := make([]PlacementStats, 0, len(names))
	for _, name := range names {
		s := PlacementStats{
			Placement: name,
			Events:    make(map[types.EventKind]int),
			Retries:   retries[name],
		}
		for _, kind := range types.AllAdEventKinds() {
			if n := counterValue(c.events.WithLabelValues(name, string(kind))); n > 0 {
				s.Events[kind] = n
			}
		}
		for _, throttled := range []string{"true", "false"} {
			s.Suppressed += counterValue(c.fails.WithLabelValues(name, throttled, "true"))
		}
		stats = append(stats, s)
	}
	return stats
}

func counterValue(counter prometheus.Counter) int {
	var m dto.Metric
	if err := counter.Write(&m); err != nil || m.Counter == nil {
		return 0
	}
	return int(m.Counter.GetValue())
}
