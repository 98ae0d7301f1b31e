package sim

import (
	"time"

	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/types"
)

// Port 模拟端口，所有方法都在主执行上下文中调用
type Port struct {
	net  *Network
	spec adnetwork.PortSpec
	cb   adnetwork.Callbacks

	sessionLife time.Duration
	visible     bool
	paused      bool
	destroyed   bool
	nextAllowed time.Time

	// showing 当前展示中的网络
	showing string
}

var _ adnetwork.Port = (*Port)(nil)

func (p *Port) SetCallbacks(cb adnetwork.Callbacks) { p.cb = cb }

// StartRequest 按脚本完成请求
//
// 展示请求优先使用未过期的预缓存创意；限流窗口内的请求同步返回限流。
func (p *Port) StartRequest(req adnetwork.Request) {
	if p.destroyed || p.cb == nil {
		return
	}
	n := p.net
	n.countRequest(p.spec.Placement)
	p.cb.OnRequestStarted()

	if req.Mode == adnetwork.ModeShow {
		if c, ok := n.store.take(p.spec.Placement); ok {
			n.logger.Debugf("%s 展示预缓存创意 (%s)", p.spec.Placement, c.Network)
			n.schedule(Outcome{}, func() {
				if p.destroyed {
					return
				}
				p.cb.OnAttemptingNetwork(c.Network)
				p.loaded(c.Network, c.Fullscreen)
			})
			return
		}
	}

	if wait := p.MinTimeUntilNextRequest(); wait > 0 {
		n.logger.Debugf("%s 仍在限流窗口内，剩余 %s", p.spec.Placement, wait)
		p.cb.OnRequestThrottled(wait)
		return
	}

	out := n.nextOutcome(p.spec.Placement)
	n.logger.Debugf("%s 请求 %s mode=%s 结果=%s", p.spec.Placement, req.ID, req.Mode, out.Kind)
	n.schedule(out, func() {
		if p.destroyed {
			return
		}
		p.complete(req, out)
	})
}

func (p *Port) complete(req adnetwork.Request, out Outcome) {
	n := p.net
	for _, failed := range out.FailedNetworks {
		p.cb.OnAttemptingNetwork(failed)
		p.cb.OnNetworkFailed(failed)
	}

	switch out.Kind {
	case OutcomeThrottle:
		p.nextAllowed = n.loop.Clock().Now().Add(out.Delay)
		p.cb.OnRequestThrottled(out.Delay)

	case OutcomeNoFill:
		failed := out.FailedNetworks
		if len(failed) == 0 {
			failed = []string{n.network(out)}
		}
		p.cb.OnCreativeFailed(failed)

	default:
		network := n.network(out)
		fullscreen := p.spec.Kind == types.KindInterstitial
		p.cb.OnAttemptingNetwork(network)
		if req.Mode == adnetwork.ModePrecache {
			c := creative{
				Network:    network,
				Fullscreen: fullscreen,
				RequestID:  req.ID,
				ExpiresAt:  n.loop.Clock().Now().Add(n.config.GetCreativeTTL()).UnixNano(),
			}
			if err := n.store.put(p.spec.Placement, c); err != nil {
				n.logger.Warnf("%s 保存预缓存创意失败: %v", p.spec.Placement, err)
				p.cb.OnCreativeFailed([]string{network})
				return
			}
			p.cb.OnCreativeCached(network)
			return
		}
		p.loaded(network, fullscreen)
	}
}

func (p *Port) loaded(network string, fullscreen bool) {
	p.showing = network
	p.cb.OnCreativeLoaded(network, fullscreen)
	if fullscreen && !p.destroyed {
		p.cb.OnFullscreenPresented(network)
	}
}

// IsCachedAdExpired 没有未过期的预缓存创意时返回 true
func (p *Port) IsCachedAdExpired() bool {
	_, ok := p.net.store.get(p.spec.Placement)
	return !ok
}

// MinTimeUntilNextRequest 限流窗口的剩余时间
func (p *Port) MinTimeUntilNextRequest() time.Duration {
	if p.nextAllowed.IsZero() {
		return 0
	}
	wait := p.nextAllowed.Sub(p.net.loop.Clock().Now())
	if wait < 0 {
		return 0
	}
	return wait
}

func (p *Port) DefaultSessionLife() time.Duration { return p.net.config.GetSessionLife() }
func (p *Port) SetSessionLife(d time.Duration)    { p.sessionLife = d }
func (p *Port) ResetSessionLife()                 { p.sessionLife = p.DefaultSessionLife() }

// SessionLife 当前刷新间隔
func (p *Port) SessionLife() time.Duration { return p.sessionLife }

func (p *Port) SetVisible(visible bool) { p.visible = visible }

// Visible 广告视图是否可见
func (p *Port) Visible() bool { return p.visible }

func (p *Port) ScreenPaused()  { p.paused = true }
func (p *Port) ScreenResumed() { p.paused = false }

// Paused 宿主界面是否处于暂停
func (p *Port) Paused() bool { return p.paused }

func (p *Port) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.net.store.remove(p.spec.Placement)
}

// Destroyed 端口是否已释放
func (p *Port) Destroyed() bool { return p.destroyed }

// ============================================================================
//                              用户操作模拟
// ============================================================================

// Click 模拟点击当前展示的广告
func (p *Port) Click() {
	if p.active() {
		p.cb.OnClick(p.showing)
	}
}

// DismissFullscreen 模拟关闭全屏广告
func (p *Port) DismissFullscreen() {
	if p.active() {
		p.cb.OnFullscreenDismissed(p.showing)
	}
}

// Expand 模拟横幅展开为全屏
func (p *Port) Expand() {
	if p.active() {
		p.cb.OnExpand(p.showing)
	}
}

// Collapse 模拟横幅从全屏收起
func (p *Port) Collapse() {
	if p.active() {
		p.cb.OnCollapse(p.showing)
	}
}

func (p *Port) active() bool {
	return !p.destroyed && p.cb != nil && p.showing != ""
}
