package ads

import "github.com/weisyn/adkit/pkg/types"

// overlayInput 驱动展示状态机的输入
type overlayInput int

const (
	inputShowRequested overlayInput = iota // 调用 ShowAd
	inputCached                            // 收到 CacheEvent
	inputShown                             // 收到 ShowEvent
	inputIntroEnded                        // 入场动画结束
	inputHideRequested                     // 调用 HideAd
	inputOutroEnded                        // 退场动画结束
	inputFailed                            // 收到 FailEvent
)

func (in overlayInput) String() string {
	switch in {
	case inputShowRequested:
		return "show_requested"
	case inputCached:
		return "cached"
	case inputShown:
		return "shown"
	case inputIntroEnded:
		return "intro_ended"
	case inputHideRequested:
		return "hide_requested"
	case inputOutroEnded:
		return "outro_ended"
	case inputFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// overlayEffect 一次迁移要执行的副作用，按 effectOrder 的顺序执行
type overlayEffect uint32

const (
	effectApplyRefresh overlayEffect = 1 << iota // 设置展示期间的刷新间隔
	effectBaseShow                               // 走缓存引擎的展示请求
	effectSetVisible                             // 显示广告视图
	effectStartIntro                             // 开始入场动画
	effectDeliverShow                            // 把 ShowEvent 交给监听器
	effectIntroEnded                             // 通知动画监听器入场结束
	effectResetRefresh                           // 恢复默认刷新间隔
	effectStartOutro                             // 开始退场动画
	effectSetHidden                              // 隐藏广告视图
	effectOutroEnded                             // 通知动画监听器退场结束
	effectEmitHide                               // 发出非刷新的 HideEvent
)

// 退场结束回调先于 HideEvent，OnHide 中再次 ShowAd 时退场结束回调已经送达
var effectOrder = []overlayEffect{
	effectApplyRefresh,
	effectBaseShow,
	effectSetVisible,
	effectStartIntro,
	effectDeliverShow,
	effectIntroEnded,
	effectResetRefresh,
	effectStartOutro,
	effectSetHidden,
	effectOutroEnded,
	effectEmitHide,
}

// overlayEnv 迁移时需要的只读上下文
type overlayEnv struct {
	hasCachedAd bool
	retrieving  bool
	hasIntro    bool
	hasOutro    bool
}

// overlayNote 迁移附带的日志
type overlayNote struct {
	warn bool
	text string
}

// overlayStep 一次迁移的结果
type overlayStep struct {
	next    types.PresentationState
	effects overlayEffect
	note    *overlayNote
}

func moveTo(state types.PresentationState) overlayStep {
	return overlayStep{next: state}
}

func (s overlayStep) with(effects overlayEffect) overlayStep {
	s.effects |= effects
	return s
}

func (s overlayStep) warn(text string) overlayStep {
	s.note = &overlayNote{warn: true, text: text}
	return s
}

func (s overlayStep) info(text string) overlayStep {
	s.note = &overlayNote{text: text}
	return s
}

// stepOverlay 动画横幅的展示状态迁移，纯函数
func stepOverlay(state types.PresentationState, in overlayInput, env overlayEnv) overlayStep {
	switch in {
	case inputShowRequested:
		switch {
		case state.IsVisible():
			// 已上屏或正在退场：直接刷新
			return moveTo(state).with(effectBaseShow)
		case state.IsPending():
			return moveTo(state).warn("重复调用 ShowAd，展示已在等待中")
		case env.retrieving:
			return moveTo(types.ShowTriggered).info("预缓存尚未完成，缓存完成后展示")
		case env.hasCachedAd:
			return moveTo(types.ShowTriggered).with(effectApplyRefresh | effectBaseShow).info("展示预缓存广告")
		default:
			return moveTo(types.ShowTriggered).with(effectApplyRefresh | effectBaseShow).info("没有可用的预缓存，直接请求")
		}

	case inputCached:
		switch {
		case state.IsPending():
			return moveTo(state).with(effectApplyRefresh | effectBaseShow)
		case state == types.Offscreen:
			return moveTo(state)
		default:
			return moveTo(state).warn("预缓存完成时横幅状态异常: " + state.String())
		}

	case inputShown:
		switch state {
		case types.ShowTriggered:
			if env.hasIntro {
				return moveTo(types.IntroAnim).with(effectSetVisible | effectStartIntro | effectDeliverShow)
			}
			return moveTo(types.OnScreen).with(effectSetVisible | effectDeliverShow | effectIntroEnded)
		case types.OnScreen, types.IntroAnim:
			return moveTo(state).with(effectDeliverShow)
		default:
			return moveTo(state).warn("横幅状态为 " + state.String() + " 时收到展示回调，忽略")
		}

	case inputIntroEnded:
		if state != types.IntroAnim {
			return moveTo(state).warn("入场动画结束时已不在入场状态，忽略")
		}
		return moveTo(types.OnScreen).with(effectIntroEnded)

	case inputHideRequested:
		switch state {
		case types.Offscreen:
			return moveTo(state).warn("未调用 ShowAd 就调用 HideAd")
		case types.ShowTriggered:
			return moveTo(types.Offscreen).warn("广告上屏前被隐藏，展示仍会计数")
		case types.OutroAnim:
			return moveTo(state).warn("重复调用 HideAd")
		}
		step := moveTo(types.Offscreen).with(effectResetRefresh | effectSetHidden | effectOutroEnded | effectEmitHide)
		if env.hasOutro {
			step = moveTo(types.OutroAnim).with(effectResetRefresh | effectStartOutro)
		}
		if state == types.IntroAnim {
			step = step.warn("入场动画未结束就调用 HideAd")
		}
		return step

	case inputOutroEnded:
		if state != types.OutroAnim {
			return moveTo(state).warn("退场动画结束时已不在退场状态，忽略")
		}
		return moveTo(types.Offscreen).with(effectSetHidden | effectOutroEnded | effectEmitHide)

	case inputFailed:
		// 刷新失败不能让已上屏的横幅消失
		switch state {
		case types.ShowTriggered:
			return moveTo(types.Offscreen)
		case types.IntroAnim:
			return moveTo(types.Offscreen).with(effectSetHidden | effectEmitHide).warn("入场动画中请求失败，横幅下屏")
		case types.OutroAnim:
			return moveTo(types.Offscreen).with(effectSetHidden | effectOutroEnded | effectEmitHide).info("退场动画中请求失败，直接完成隐藏")
		}
		return moveTo(state)
	}
	return moveTo(state).warn("未知的展示输入: " + in.String())
}
