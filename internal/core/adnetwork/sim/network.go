// Package sim 提供脚本驱动的模拟广告网络
//
// 📋 **模拟广告网络**
//
// 实现 adnetwork.PortFactory 与 adnetwork.Port：
// - 每个广告位一条结果脚本（填充、无填充、限流），脚本用完后默认填充
// - 完成回调经主执行上下文延迟投递，可配置为同步回调
// - 预缓存的创意保存在 BigCache 中，按注入的时钟判定过期
// - 限流后在限流窗口内的请求同步返回剩余等待时间
//
// 用于测试与 adsim 场景模拟器。
package sim

import (
	"fmt"
	"strings"
	"sync"
	"time"

	simconfig "github.com/weisyn/adkit/internal/config/sim"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
)

// OutcomeKind 一次请求的结果类型
type OutcomeKind int

const (
	OutcomeFill     OutcomeKind = iota // 填充
	OutcomeNoFill                      // 所有网络都未填充
	OutcomeThrottle                    // 服务端限流
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFill:
		return "fill"
	case OutcomeNoFill:
		return "nofill"
	case OutcomeThrottle:
		return "throttle"
	default:
		return "unknown"
	}
}

// ParseOutcomeKind 解析场景文件中的结果类型
func ParseOutcomeKind(s string) (OutcomeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill", "":
		return OutcomeFill, nil
	case "nofill", "no_fill":
		return OutcomeNoFill, nil
	case "throttle":
		return OutcomeThrottle, nil
	default:
		return OutcomeFill, fmt.Errorf("未知的请求结果 %q（可选 fill | nofill | throttle）", s)
	}
}

// Outcome 脚本中的一次请求结果
type Outcome struct {
	Kind           OutcomeKind
	Network        string        // 填充的网络，空表示使用默认网络
	FailedNetworks []string      // 在最终结果之前失败的网络
	Delay          time.Duration // 限流时长
	Latency        time.Duration // 完成延迟，0 表示使用配置值
	Sync           bool          // 在 StartRequest 中同步回调
}

// Network 模拟广告网络
type Network struct {
	loop   *mainloop.Loop
	config *simconfig.Config
	logger log.Logger
	store  *creativeStore

	mu       sync.Mutex
	scripts  map[string][]Outcome
	ports    map[string]*Port
	requests map[string]int
}

var _ adnetwork.PortFactory = (*Network)(nil)

// NewNetwork 创建模拟广告网络
func NewNetwork(loop *mainloop.Loop, config *simconfig.Config, logger log.Logger) (*Network, error) {
	if config == nil {
		config = simconfig.New(nil)
	}
	store, err := newCreativeStore(loop.Clock(), logger, config.GetMaxCreatives())
	if err != nil {
		return nil, err
	}
	return &Network{
		loop:     loop,
		config:   config,
		logger:   logger,
		store:    store,
		scripts:  make(map[string][]Outcome),
		ports:    make(map[string]*Port),
		requests: make(map[string]int),
	}, nil
}

// Script 追加广告位的请求结果脚本
func (n *Network) Script(placement string, outcomes ...Outcome) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scripts[placement] = append(n.scripts[placement], outcomes...)
}

// NewPort 为广告位创建端口
func (n *Network) NewPort(spec adnetwork.PortSpec) (adnetwork.Port, error) {
	if spec.Placement == "" {
		return nil, fmt.Errorf("%w: 广告位名称为空", adnetwork.ErrUnavailable)
	}
	p := &Port{
		net:         n,
		spec:        spec,
		sessionLife: n.config.GetSessionLife(),
	}
	n.mu.Lock()
	n.ports[spec.Placement] = p
	n.mu.Unlock()
	n.logger.Debugf("创建模拟端口 %s (%s %s:%s)", spec.Placement, spec.Kind, spec.AppID, spec.ZoneID)
	return p, nil
}

// Port 返回广告位最近创建的端口
func (n *Network) Port(placement string) (*Port, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.ports[placement]
	return p, ok
}

// Requests 广告位累计发起的请求数
func (n *Network) Requests(placement string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.requests[placement]
}

// CachedCreatives 存储中的预缓存创意数
func (n *Network) CachedCreatives() int {
	return n.store.len()
}

// Close 释放创意存储
func (n *Network) Close() error {
	return n.store.close()
}

func (n *Network) countRequest(placement string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests[placement]++
}

// nextOutcome 取出脚本中的下一个结果，脚本为空时默认填充
func (n *Network) nextOutcome(placement string) Outcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	script := n.scripts[placement]
	if len(script) == 0 {
		return Outcome{Kind: OutcomeFill}
	}
	out := script[0]
	n.scripts[placement] = script[1:]
	return out
}

// schedule 按结果的延迟投递到主执行上下文
func (n *Network) schedule(out Outcome, fn func()) {
	if out.Sync {
		fn()
		return
	}
	latency := out.Latency
	if latency == 0 {
		latency = n.config.GetLatency()
	}
	if latency <= 0 {
		if err := n.loop.Post(fn); err != nil {
			n.logger.Warnf("投递模拟回调失败: %v", err)
		}
		return
	}
	n.loop.PostDelayed(latency, fn)
}

func (n *Network) network(out Outcome) string {
	if out.Network != "" {
		return out.Network
	}
	return n.config.GetNetwork()
}
