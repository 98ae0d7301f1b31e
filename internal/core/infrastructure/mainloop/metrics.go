package mainloop

import (
	"github.com/prometheus/client_golang/prometheus"
)

// loopCollector 暴露主执行上下文的队列深度与累计执行数
type loopCollector struct {
	loop *Loop

	pending  *prometheus.Desc
	executed *prometheus.Desc
}

// NewCollector 创建主执行上下文指标采集器
func NewCollector(loop *Loop, namespace string) prometheus.Collector {
	return &loopCollector{
		loop: loop,
		pending: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "mainloop", "pending_tasks"),
			"Tasks queued on the main context and not yet executed",
			nil, nil,
		),
		executed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "mainloop", "executed_tasks_total"),
			"Tasks executed on the main context",
			nil, nil,
		),
	}
}

func (c *loopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pending
	ch <- c.executed
}

func (c *loopCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(c.loop.Pending()))
	ch <- prometheus.MustNewConstMetric(c.executed, prometheus.CounterValue, float64(c.loop.Executed()))
}
