package config

import (
	"errors"
	"fmt"
	"strings"

	clockconfig "github.com/weisyn/adkit/internal/config/clock"
	placementconfig "github.com/weisyn/adkit/internal/config/placement"
	"github.com/weisyn/adkit/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "panic": true, "fatal": true,
}

// ValidateAppConfig 在启动时验证用户配置
//
// 只检查配置文件中实际出现的字段，nil 配置视为合法（全部使用默认值）。
// 所有问题合并为一个错误返回。
func ValidateAppConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}

	var errs []error

	if lc := appConfig.Log; lc != nil && lc.Level != nil {
		if !validLogLevels[strings.ToLower(*lc.Level)] {
			errs = append(errs, &ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("未知的日志级别 %q", *lc.Level),
			})
		}
	}

	if cc := appConfig.Clock; cc != nil && cc.Type != nil {
		switch *cc.Type {
		case clockconfig.TypeSystem, clockconfig.TypeMock:
		default:
			errs = append(errs, &ValidationError{
				Field:   "clock.type",
				Message: fmt.Sprintf("未知的时钟类型 %q（可选 system | mock）", *cc.Type),
			})
		}
	}

	if pc := appConfig.Placement; pc != nil {
		if pc.RefreshSeconds != nil && *pc.RefreshSeconds < 0 {
			errs = append(errs, &ValidationError{Field: "placement.refresh_seconds", Message: "刷新间隔不能为负数"})
		}
		if pc.MainQueueSize != nil && *pc.MainQueueSize <= 0 {
			errs = append(errs, &ValidationError{Field: "placement.main_queue_size", Message: "任务队列长度必须大于0"})
		}
		if pc.DefaultRetryDelayMs != nil && *pc.DefaultRetryDelayMs < 0 {
			errs = append(errs, &ValidationError{Field: "placement.default_retry_delay_ms", Message: "重试间隔不能为负数"})
		}
	}

	if ic := appConfig.Integration; ic != nil && ic.Network != nil {
		if _, ok := placementconfig.LookupIntegrationNetwork(*ic.Network); !ok {
			errs = append(errs, &ValidationError{
				Field:   "integration.network",
				Message: fmt.Sprintf("未知的集成测试网络 %q", *ic.Network),
			})
		}
	}

	if sc := appConfig.Sim; sc != nil {
		if sc.LatencyMs != nil && *sc.LatencyMs < 0 {
			errs = append(errs, &ValidationError{Field: "sim.latency_ms", Message: "模拟延迟不能为负数"})
		}
		if sc.CreativeTTLSeconds != nil && *sc.CreativeTTLSeconds <= 0 {
			errs = append(errs, &ValidationError{Field: "sim.creative_ttl_seconds", Message: "预缓存有效期必须大于0"})
		}
	}

	return errors.Join(errs...)
}
