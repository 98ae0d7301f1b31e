package types

// AdKind 广告位类型
type AdKind int

const (
	// KindBanner 横幅广告位（嵌入式，非全屏）
	KindBanner AdKind = iota
	// KindInterstitial 插屏广告位（全屏）
	KindInterstitial
)

// String 返回广告位类型名称
func (k AdKind) String() string {
	switch k {
	case KindBanner:
		return "banner"
	case KindInterstitial:
		return "interstitial"
	default:
		return "unknown"
	}
}

// CachingState 广告位缓存状态
//
// Idle → Retrieving → Retrieved，失败或被暂停时回到 Idle。
type CachingState int

const (
	// CachingIdle 没有进行中的预缓存，也没有持有缓存广告
	CachingIdle CachingState = iota
	// CachingRetrieving 预缓存请求进行中
	CachingRetrieving
	// CachingRetrieved 已持有预缓存广告（是否过期由广告网络端口判定）
	CachingRetrieved
)

// String 返回缓存状态名称
func (s CachingState) String() string {
	switch s {
	case CachingIdle:
		return "Idle"
	case CachingRetrieving:
		return "Retrieving"
	case CachingRetrieved:
		return "Retrieved"
	default:
		return "Unknown"
	}
}

// PresentationState 动画横幅的展示状态
//
// 只允许通过具名谓词判断（IsVisible / IsAnimating / IsPending），
// 不要对状态值做大小比较。
type PresentationState int

const (
	// Offscreen 不可见，没有待展示的请求
	Offscreen PresentationState = iota
	// ShowTriggered 已触发展示，等待广告加载完成
	ShowTriggered
	// IntroAnim 入场动画进行中
	IntroAnim
	// OnScreen 完全展示
	OnScreen
	// OutroAnim 退场动画进行中
	OutroAnim
)

// String 返回展示状态名称
func (s PresentationState) String() string {
	switch s {
	case Offscreen:
		return "Offscreen"
	case ShowTriggered:
		return "ShowTriggered"
	case IntroAnim:
		return "IntroAnim"
	case OnScreen:
		return "OnScreen"
	case OutroAnim:
		return "OutroAnim"
	default:
		return "Unknown"
	}
}

// IsVisible 广告视图当前是否可见（含入场/退场动画期间）
func (s PresentationState) IsVisible() bool {
	switch s {
	case IntroAnim, OnScreen, OutroAnim:
		return true
	default:
		return false
	}
}

// IsAnimating 是否处于入场或退场动画中
func (s PresentationState) IsAnimating() bool {
	switch s {
	case IntroAnim, OutroAnim:
		return true
	default:
		return false
	}
}

// IsPending 是否已触发展示但广告尚未到达
func (s PresentationState) IsPending() bool {
	return s == ShowTriggered
}
