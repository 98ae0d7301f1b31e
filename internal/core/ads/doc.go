// Package ads 实现广告位的生命周期与缓存状态机
//
// 📋 **组成**
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Interstitial / Banner / AnimatedBanner   （广告位类型）     │
//	├──────────────────────────────────────────────────────────┤
//	│ overlay      展示状态机（仅动画横幅）                        │
//	│ autoCache    自动缓存调度（恢复、隐藏、失败后重新预缓存）        │
//	├──────────────────────────────────────────────────────────┤
//	│ baseAd       缓存状态机 Idle / Retrieving / Retrieved        │
//	│ listenerSet  监听器分发（注册顺序、迭代时拷贝）                  │
//	│ Relay        全局事件总线转发                               │
//	└──────────────────────────────────────────────────────────┘
//
// 🎯 **约定**
// - 所有公共方法、端口回调、动画结束回调都在主执行上下文（mainloop.Loop）中运行
// - 违反调用约定时以 *types.UsageError panic
// - 广告投放失败只通过 FailEvent 报告，从不返回错误
package ads
