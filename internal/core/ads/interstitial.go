package ads

import (
	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

// Interstitial 插屏广告位
//
// 开启自动缓存后，ShowAd 在预缓存进行中时等待缓存完成再展示，
// 全屏广告关闭后立即预缓存下一条。
type Interstitial struct {
	*baseAd

	auto          *autoCache
	showTriggered bool
}

var _ placement.Interstitial = (*Interstitial)(nil)

func newInterstitial(b *baseAd) *Interstitial {
	i := &Interstitial{baseAd: b}
	if b.autoCache {
		i.auto = newAutoCache(b, nil)
	}
	b.bind(i, i)
	return i
}

// ShowAd 展示插屏广告
func (i *Interstitial) ShowAd() {
	i.enter("ShowAd")
	i.showAd()
}

func (i *Interstitial) showAd() {
	if !i.autoCache {
		i.baseShowAd()
		return
	}
	switch i.cachingState {
	case types.CachingRetrieving:
		i.logger.Debug("预缓存进行中，缓存完成后展示")
		i.showTriggered = true
	case types.CachingRetrieved:
		i.baseShowAd()
	default:
		// 上一次预缓存失败，正在等待重试
		i.logger.Debug("等待自动缓存重试，本次展示失败")
		i.onFail(types.NewFailEvent(i.requestID, false, i.port.MinTimeUntilNextRequest(), false, i.failedNetworks))
	}
}

// CacheAd 手动预缓存；开启自动缓存时为使用错误
func (i *Interstitial) CacheAd() {
	i.enter("CacheAd")
	if i.autoCache {
		panic(types.NewUsageError("CacheAd", types.ErrAutoCacheEnabled, i.name))
	}
	i.baseCacheAd()
}

func (i *Interstitial) handleCache(ev *types.CacheEvent) {
	i.onCache(ev)
	if i.showTriggered {
		i.showTriggered = false
		i.showAd()
	}
}

func (i *Interstitial) handleShow(ev *types.ShowEvent) {
	if !ev.IsFullscreen() {
		panic(types.NewUsageError("OnCreativeLoaded", types.ErrWrongCreativeKind, "插屏广告位收到了横幅创意: "+i.name))
	}
	i.onShow(ev)
}

func (i *Interstitial) handleFail(ev *types.FailEvent) {
	if i.auto != nil && !i.HasCachedAd() {
		i.auto.scheduleRetry(ev)
	}
	i.showTriggered = false
	i.onFail(ev)
}

func (i *Interstitial) handleHide(ev *types.HideEvent) { i.onHide(ev) }

// handleDismiss 全屏广告关闭即插屏的隐藏
func (i *Interstitial) handleDismiss(ev *types.DismissFullscreenEvent) {
	i.onDismiss(ev)
	if i.auto != nil && !ev.IsCollapse() {
		i.auto.refill("全屏广告关闭")
	}
}

func (i *Interstitial) handlePaused() { i.onPaused() }

func (i *Interstitial) handleResumed() {
	i.onResumed()
	i.showTriggered = false
	if i.auto != nil {
		i.auto.refill("界面恢复")
	}
}

func (i *Interstitial) handleDestroyed() { i.onDestroyed() }
