package placement

import "time"

// 广告位配置默认值
const (
	// defaultAppID 默认发布者ID为空，由宿主在配置中提供
	defaultAppID = ""

	// defaultRefreshInterval 默认使用广告网络自身的刷新间隔
	defaultRefreshInterval time.Duration = 0

	// defaultMainQueueSize 主执行上下文任务队列长度设为256
	// 原因：完成回调与定时器回投的数量与广告位数量同阶，256 足够吸收突发
	defaultMainQueueSize = 256

	// defaultRetryDelay 默认不设兜底，重试间隔完全取自失败事件
	defaultRetryDelay time.Duration = 0

	// defaultIntegrationNetwork 集成测试模式默认使用自家样例广告
	defaultIntegrationNetwork = "house"
)
