package ads

import (
	"time"

	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

// AnimatedBanner 可以随时显示、隐藏的横幅广告位
//
// 在缓存状态机之上叠加展示状态机（stepOverlay），
// 由 ShowAd/HideAd、缓存引擎事件和动画结束回调共同驱动。
type AnimatedBanner struct {
	*baseAd

	auto *autoCache

	state        types.PresentationState
	intro        adnetwork.Animation
	outro        adnetwork.Animation
	animSeq      uint64
	animListener placement.AnimationListener

	refreshInterval time.Duration
}

var _ placement.AnimatedBanner = (*AnimatedBanner)(nil)

func newAnimatedBanner(b *baseAd, refresh time.Duration) *AnimatedBanner {
	if refresh <= 0 {
		refresh = b.port.DefaultSessionLife()
	}
	a := &AnimatedBanner{
		baseAd:          b,
		state:           types.Offscreen,
		refreshInterval: refresh,
	}
	if b.autoCache {
		a.auto = newAutoCache(b, func() bool {
			return !a.state.IsVisible() && !a.state.IsPending()
		})
	}
	b.bind(a, a)
	return a
}

// ShowAd 展示横幅；已在屏幕上时刷新
func (a *AnimatedBanner) ShowAd() {
	a.enter("ShowAd")
	a.step(inputShowRequested, nil)
}

// HideAd 隐藏横幅；配置了退场动画时在动画结束后才发出 HideEvent
func (a *AnimatedBanner) HideAd() {
	a.enter("HideAd")
	a.step(inputHideRequested, nil)
}

// CacheAd 手动预缓存；开启自动缓存时为使用错误
func (a *AnimatedBanner) CacheAd() {
	a.enter("CacheAd")
	if a.autoCache {
		panic(types.NewUsageError("CacheAd", types.ErrAutoCacheEnabled, a.name))
	}
	a.baseCacheAd()
}

func (a *AnimatedBanner) IsVisible() bool                { return a.state.IsVisible() }
func (a *AnimatedBanner) State() types.PresentationState { return a.state }
func (a *AnimatedBanner) RefreshInterval() time.Duration { return a.refreshInterval }

// SetAnimations 设置入场、退场动画，nil 表示不播放
func (a *AnimatedBanner) SetAnimations(intro, outro adnetwork.Animation) {
	a.enter("SetAnimations")
	if a.state.IsAnimating() {
		panic(types.NewUsageError("SetAnimations", types.ErrAnimating, a.state.String()))
	}
	a.intro = intro
	a.outro = outro
}

func (a *AnimatedBanner) SetAnimationListener(l placement.AnimationListener) {
	a.enter("SetAnimationListener")
	a.animListener = l
}

// step 执行一次展示状态迁移
//
// 先更新状态再按顺序执行副作用；某个回调改变了状态时放弃剩余副作用。
func (a *AnimatedBanner) step(in overlayInput, show *types.ShowEvent) {
	prev := a.state
	st := stepOverlay(prev, in, overlayEnv{
		hasCachedAd: a.HasCachedAd(),
		retrieving:  a.IsCachingAd(),
		hasIntro:    a.intro != nil,
		hasOutro:    a.outro != nil,
	})

	if st.note != nil {
		if st.note.warn {
			a.logger.Warnf("%s (state=%s input=%s)", st.note.text, prev, in)
		} else {
			a.logger.Debug(st.note.text)
		}
	}
	if st.next != prev {
		a.logger.Debugf("展示状态 %s -> %s", prev, st.next)
		a.state = st.next
	}

	for _, effect := range effectOrder {
		if st.effects&effect == 0 {
			continue
		}
		if a.state != st.next {
			a.logger.Debugf("回调中展示状态已变为 %s，放弃剩余动作", a.state)
			return
		}
		a.run(effect, show)
	}
}

func (a *AnimatedBanner) run(effect overlayEffect, show *types.ShowEvent) {
	switch effect {
	case effectApplyRefresh:
		if a.refreshInterval > 0 {
			a.port.SetSessionLife(a.refreshInterval)
		}
	case effectBaseShow:
		a.baseShowAd()
	case effectSetVisible:
		a.port.SetVisible(true)
	case effectStartIntro:
		a.startAnimation(a.intro, inputIntroEnded)
	case effectDeliverShow:
		a.onShow(show)
	case effectIntroEnded:
		if a.animListener != nil {
			a.animListener.OnIntroAnimEnd(a)
		}
	case effectResetRefresh:
		a.port.ResetSessionLife()
	case effectStartOutro:
		a.startAnimation(a.outro, inputOutroEnded)
	case effectSetHidden:
		a.port.SetVisible(false)
	case effectEmitHide:
		a.handleHide(types.NewHideEvent(false, a.lastShow))
	case effectOutroEnded:
		if a.animListener != nil {
			a.animListener.OnOutroAnimEnd(a)
		}
	}
}

// startAnimation 开始动画；只有最近一次开始的动画的结束回调有效
func (a *AnimatedBanner) startAnimation(anim adnetwork.Animation, ended overlayInput) {
	a.animSeq++
	seq := a.animSeq
	anim.Start(func() {
		a.loop.MustBeCurrent("AnimationEnded")
		if a.destroyed {
			return
		}
		if seq != a.animSeq {
			a.logger.Warnf("忽略过期的动画结束回调 (input=%s)", ended)
			return
		}
		a.step(ended, nil)
	})
}

func (a *AnimatedBanner) handleCache(ev *types.CacheEvent) {
	a.onCache(ev)
	a.step(inputCached, nil)
}

func (a *AnimatedBanner) handleShow(ev *types.ShowEvent) {
	if ev.IsFullscreen() {
		panic(types.NewUsageError("OnCreativeLoaded", types.ErrWrongCreativeKind, "横幅广告位收到了插屏创意: "+a.name))
	}
	a.step(inputShown, ev)
}

func (a *AnimatedBanner) handleFail(ev *types.FailEvent) {
	if a.auto != nil && !a.HasCachedAd() && !a.IsVisible() {
		a.auto.scheduleRetry(ev)
	}
	a.step(inputFailed, nil)
	a.onFail(ev)
}

// handleHide 非刷新隐藏后重新预缓存；全屏展示的隐藏不触发
func (a *AnimatedBanner) handleHide(ev *types.HideEvent) {
	a.onHide(ev)
	if a.auto == nil || ev.IsRefresh() {
		return
	}
	if matching := ev.MatchingShow(); matching != nil && matching.IsFullscreen() {
		return
	}
	a.auto.refill("广告隐藏")
}

func (a *AnimatedBanner) handleDismiss(ev *types.DismissFullscreenEvent) { a.onDismiss(ev) }
func (a *AnimatedBanner) handlePaused()                                  { a.onPaused() }

func (a *AnimatedBanner) handleResumed() {
	if !a.IsVisible() {
		a.port.ResetSessionLife()
	}
	a.onResumed()
	if a.auto != nil {
		a.auto.refill("界面恢复")
	}
}

func (a *AnimatedBanner) handleDestroyed() { a.onDestroyed() }
