package sim

import "time"

// 模拟广告网络默认值
const (
	// defaultLatency 请求完成的模拟延迟
	defaultLatency = 200 * time.Millisecond

	// defaultCreativeTTL 预缓存广告的有效期
	defaultCreativeTTL = 10 * time.Minute

	// defaultSessionLife 横幅默认刷新间隔
	defaultSessionLife = 30 * time.Second

	// defaultNetwork 默认填充的广告网络
	defaultNetwork = "house"

	// defaultMaxCreatives 创意存储预估条目数
	defaultMaxCreatives = 1024
)
