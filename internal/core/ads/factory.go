package ads

import (
	"fmt"
	"time"

	placementconfig "github.com/weisyn/adkit/internal/config/placement"
	"github.com/weisyn/adkit/internal/core/infrastructure/mainloop"
	"github.com/weisyn/adkit/internal/core/lifecycle"
	"github.com/weisyn/adkit/pkg/interfaces/adnetwork"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/adkit/pkg/types"
)

// Options 创建广告位的参数
type Options struct {
	Screen    types.ScreenID // 宿主界面
	Name      string         // 广告位名称，日志和事件中用来标识广告位
	ZoneID    string         // 广告位ID
	AutoCache bool           // 是否开启自动缓存（横幅不支持）

	// RefreshInterval 横幅刷新间隔，0 表示使用配置值，配置也为 0 时使用广告网络默认值
	RefreshInterval time.Duration
}

// Factory 创建广告位并把它们挂到宿主界面上
type Factory struct {
	loop     *mainloop.Loop
	ports    adnetwork.PortFactory
	registry *lifecycle.Registry
	config   *placementconfig.Config
	relay    *Relay
	logger   log.Logger
}

// NewFactory 创建广告位工厂
func NewFactory(loop *mainloop.Loop, ports adnetwork.PortFactory, registry *lifecycle.Registry,
	config *placementconfig.Config, relay *Relay, logger log.Logger) *Factory {
	if config == nil {
		config = placementconfig.New(nil)
	}
	return &Factory{
		loop:     loop,
		ports:    ports,
		registry: registry,
		config:   config,
		relay:    relay,
		logger:   logger,
	}
}

// NewInterstitial 创建插屏广告位
func (f *Factory) NewInterstitial(opts Options) (*Interstitial, error) {
	b, err := f.newBase("NewInterstitial", types.KindInterstitial, opts)
	if err != nil {
		return nil, err
	}
	i := newInterstitial(b)
	f.attach(opts.Screen, b)
	return i, nil
}

// NewBanner 创建常驻横幅广告位
func (f *Factory) NewBanner(opts Options) (*Banner, error) {
	opts.AutoCache = false
	b, err := f.newBase("NewBanner", types.KindBanner, opts)
	if err != nil {
		return nil, err
	}
	banner := newBanner(b, f.refreshInterval(opts))
	f.attach(opts.Screen, b)
	return banner, nil
}

// NewAnimatedBanner 创建可显示、隐藏的横幅广告位
func (f *Factory) NewAnimatedBanner(opts Options) (*AnimatedBanner, error) {
	b, err := f.newBase("NewAnimatedBanner", types.KindBanner, opts)
	if err != nil {
		return nil, err
	}
	a := newAnimatedBanner(b, f.refreshInterval(opts))
	f.attach(opts.Screen, b)
	return a, nil
}

func (f *Factory) refreshInterval(opts Options) time.Duration {
	if opts.RefreshInterval > 0 {
		return opts.RefreshInterval
	}
	return f.config.GetRefreshInterval()
}

// newBase 校验参数、绑定名称、创建端口
func (f *Factory) newBase(op string, kind types.AdKind, opts Options) (*baseAd, error) {
	f.loop.MustBeCurrent(op)

	if opts.Screen == "" {
		return nil, ErrMissingScreen
	}
	if opts.Name == "" {
		return nil, ErrMissingName
	}
	if f.ports == nil {
		return nil, ErrMissingPort
	}

	appID, zoneID, redirected := f.config.ResolveZone(kind, f.config.GetAppID(), opts.ZoneID)
	if redirected {
		f.logger.Infof("集成测试模式: 广告位 %s 使用样例广告位 %s:%s", opts.Name, appID, zoneID)
	}

	f.registry.Claim(opts.Name, appID, zoneID)

	port, err := f.ports.NewPort(adnetwork.PortSpec{
		Placement: opts.Name,
		Kind:      kind,
		AppID:     appID,
		ZoneID:    zoneID,
	})
	if err != nil {
		return nil, fmt.Errorf("创建广告位 %s 的端口失败: %w", opts.Name, err)
	}
	if port == nil {
		return nil, ErrMissingPort
	}

	return newBaseAd(baseConfig{
		name:          opts.Name,
		appID:         appID,
		zoneID:        zoneID,
		kind:          kind,
		autoCache:     opts.AutoCache,
		port:          port,
		loop:          f.loop,
		logger:        f.logger,
		relay:         f.relay,
		retryFallback: f.config.GetDefaultRetryDelay(),
	}), nil
}

func (f *Factory) attach(screen types.ScreenID, b *baseAd) {
	f.registry.Attach(screen, &screenObserver{b: b})
	f.logger.Debugf("广告位 %s (%s) 已挂到界面 %s", b.name, b.kind, screen)
}
