// Package clock provides default configuration values for clock service.
package clock

const (
	// TypeSystem 系统时钟
	TypeSystem = "system"
	// TypeMock 模拟时钟，只在显式推进时前进（场景模拟与测试使用）
	TypeMock = "mock"

	// defaultType 默认时钟类型设为"system"
	// 原因：真实宿主中重试与动画都依赖墙上时间
	defaultType = TypeSystem

	// envClockType 覆盖时钟类型的环境变量
	envClockType = "ADKIT_CLOCK_TYPE"
)
