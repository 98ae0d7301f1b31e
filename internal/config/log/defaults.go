package log

import (
	"go.uber.org/zap/zapcore"
)

// 日志配置默认值
const (
	// defaultLogLevel 默认日志级别设为"info"
	// 原因：广告位状态迁移的警告与错误都在 info 以上，调试细节按需开启
	defaultLogLevel = "info"

	// defaultToConsole 默认启用控制台输出
	defaultToConsole = true

	// defaultFilePath 默认不写文件
	// 原因：库被嵌入宿主进程，落盘位置由宿主决定
	defaultFilePath = ""

	// defaultMaxSize 单个日志文件最大大小设为50MB
	defaultMaxSize = 50

	// defaultMaxBackups 最大备份文件数设为5
	defaultMaxBackups = 5

	// defaultMaxAge 日志文件最大保留天数设为14天
	defaultMaxAge = 14

	// defaultCompress 默认启用历史日志压缩
	defaultCompress = true

	// defaultEnableCaller 默认启用调用者信息
	defaultEnableCaller = true

	// defaultEnableStacktrace 默认对Error级别启用堆栈跟踪
	defaultEnableStacktrace = true
)

// 默认的日志级别映射
var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"panic": zapcore.PanicLevel,
	"fatal": zapcore.FatalLevel,
}
