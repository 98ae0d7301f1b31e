package config

import (
	clockconfig "github.com/weisyn/adkit/internal/config/clock"
	eventconfig "github.com/weisyn/adkit/internal/config/event"
	logconfig "github.com/weisyn/adkit/internal/config/log"
	metricsconfig "github.com/weisyn/adkit/internal/config/metrics"
	placementconfig "github.com/weisyn/adkit/internal/config/placement"
	simconfig "github.com/weisyn/adkit/internal/config/sim"
	"github.com/weisyn/adkit/pkg/interfaces/config"
	"github.com/weisyn/adkit/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetAppConfig 获取原始用户配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *logconfig.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil {
		userLogConfig = p.appConfig.Log
	}
	return logconfig.New(userLogConfig).GetOptions()
}

// GetEvent 获取事件配置
func (p *Provider) GetEvent() *eventconfig.EventOptions {
	var userEventConfig *types.UserEventConfig
	if p.appConfig != nil {
		userEventConfig = p.appConfig.Event
	}
	return eventconfig.New(userEventConfig).GetOptions()
}

// GetClock 获取时钟配置
func (p *Provider) GetClock() *clockconfig.ClockOptions {
	var userClockConfig *types.UserClockConfig
	if p.appConfig != nil {
		userClockConfig = p.appConfig.Clock
	}
	return clockconfig.New(userClockConfig).GetOptions()
}

// GetPlacement 获取广告位配置
func (p *Provider) GetPlacement() *placementconfig.PlacementOptions {
	return placementconfig.New(p.appConfig).GetOptions()
}

// GetMetrics 获取指标配置
func (p *Provider) GetMetrics() *metricsconfig.MetricsOptions {
	var userMetricsConfig *types.UserMetricsConfig
	if p.appConfig != nil {
		userMetricsConfig = p.appConfig.Metrics
	}
	return metricsconfig.New(userMetricsConfig).GetOptions()
}

// GetSim 获取模拟广告网络配置
func (p *Provider) GetSim() *simconfig.SimOptions {
	var userSimConfig *types.UserSimConfig
	if p.appConfig != nil {
		userSimConfig = p.appConfig.Sim
	}
	return simconfig.New(userSimConfig).GetOptions()
}
