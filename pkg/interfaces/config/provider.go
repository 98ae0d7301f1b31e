// Package config provides configuration provider interfaces.
package config

import (
	clockconfig "github.com/weisyn/adkit/internal/config/clock"
	eventconfig "github.com/weisyn/adkit/internal/config/event"
	logconfig "github.com/weisyn/adkit/internal/config/log"
	metricsconfig "github.com/weisyn/adkit/internal/config/metrics"
	placementconfig "github.com/weisyn/adkit/internal/config/placement"
	simconfig "github.com/weisyn/adkit/internal/config/sim"
	"github.com/weisyn/adkit/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAppConfig 获取原始用户配置（可能为 nil）
	GetAppConfig() *types.AppConfig

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetEvent 获取事件配置
	GetEvent() *eventconfig.EventOptions

	// GetClock 获取时钟配置
	GetClock() *clockconfig.ClockOptions

	// GetPlacement 获取广告位配置（含集成测试模式）
	GetPlacement() *placementconfig.PlacementOptions

	// GetMetrics 获取指标配置
	GetMetrics() *metricsconfig.MetricsOptions

	// GetSim 获取模拟广告网络配置
	GetSim() *simconfig.SimOptions
}
