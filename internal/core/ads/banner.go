package ads

import (
	"time"

	"github.com/weisyn/adkit/pkg/interfaces/placement"
	"github.com/weisyn/adkit/pkg/types"
)

// Banner 常驻横幅广告位，没有预缓存和自动缓存
type Banner struct {
	*baseAd

	refreshInterval time.Duration
}

var _ placement.Banner = (*Banner)(nil)

func newBanner(b *baseAd, refresh time.Duration) *Banner {
	banner := &Banner{baseAd: b, refreshInterval: refresh}
	b.bind(banner, banner)
	if refresh > 0 {
		b.port.SetSessionLife(refresh)
	}
	return banner
}

// ShowAd 请求并展示横幅，之后由广告网络按刷新间隔刷新
func (b *Banner) ShowAd() {
	b.enter("ShowAd")
	b.baseShowAd()
}

// RefreshInterval 刷新间隔，0 表示使用广告网络默认值
func (b *Banner) RefreshInterval() time.Duration { return b.refreshInterval }

func (b *Banner) handleCache(ev *types.CacheEvent) { b.onCache(ev) }

func (b *Banner) handleShow(ev *types.ShowEvent) {
	if ev.IsFullscreen() {
		panic(types.NewUsageError("OnCreativeLoaded", types.ErrWrongCreativeKind, "横幅广告位收到了插屏创意: "+b.name))
	}
	b.onShow(ev)
}

func (b *Banner) handleFail(ev *types.FailEvent)                 { b.onFail(ev) }
func (b *Banner) handleHide(ev *types.HideEvent)                 { b.onHide(ev) }
func (b *Banner) handleDismiss(ev *types.DismissFullscreenEvent) { b.onDismiss(ev) }
func (b *Banner) handlePaused()                                  { b.onPaused() }
func (b *Banner) handleResumed()                                 { b.onResumed() }
func (b *Banner) handleDestroyed()                               { b.onDestroyed() }
