package ads

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weisyn/adkit/pkg/types"
)

func TestStepOverlay(t *testing.T) {
	tests := []struct {
		name    string
		state   types.PresentationState
		input   overlayInput
		env     overlayEnv
		next    types.PresentationState
		effects overlayEffect
		warns   bool
	}{
		{
			name:    "持有缓存时展示",
			state:   types.Offscreen,
			input:   inputShowRequested,
			env:     overlayEnv{hasCachedAd: true},
			next:    types.ShowTriggered,
			effects: effectApplyRefresh | effectBaseShow,
		},
		{
			name:  "预缓存中展示只等待",
			state: types.Offscreen,
			input: inputShowRequested,
			env:   overlayEnv{retrieving: true},
			next:  types.ShowTriggered,
		},
		{
			name:    "退场中再次展示视为刷新",
			state:   types.OutroAnim,
			input:   inputShowRequested,
			next:    types.OutroAnim,
			effects: effectBaseShow,
		},
		{
			name:    "展示回调开始入场动画",
			state:   types.ShowTriggered,
			input:   inputShown,
			env:     overlayEnv{hasIntro: true},
			next:    types.IntroAnim,
			effects: effectSetVisible | effectStartIntro | effectDeliverShow,
		},
		{
			name:  "退场中收到展示回调被忽略",
			state: types.OutroAnim,
			input: inputShown,
			next:  types.OutroAnim,
			warns: true,
		},
		{
			name:    "无退场动画时立即隐藏",
			state:   types.OnScreen,
			input:   inputHideRequested,
			next:    types.Offscreen,
			effects: effectResetRefresh | effectSetHidden | effectOutroEnded | effectEmitHide,
		},
		{
			name:    "入场中隐藏会告警",
			state:   types.IntroAnim,
			input:   inputHideRequested,
			env:     overlayEnv{hasOutro: true},
			next:    types.OutroAnim,
			effects: effectResetRefresh | effectStartOutro,
			warns:   true,
		},
		{
			name:  "等待中失败回到Offscreen",
			state: types.ShowTriggered,
			input: inputFailed,
			next:  types.Offscreen,
		},
		{
			name:    "入场中失败回到Offscreen并隐藏",
			state:   types.IntroAnim,
			input:   inputFailed,
			next:    types.Offscreen,
			effects: effectSetHidden | effectEmitHide,
			warns:   true,
		},
		{
			name:    "退场中失败直接完成隐藏",
			state:   types.OutroAnim,
			input:   inputFailed,
			next:    types.Offscreen,
			effects: effectSetHidden | effectOutroEnded | effectEmitHide,
		},
		{
			name:  "已上屏时失败保持不变",
			state: types.OnScreen,
			input: inputFailed,
			next:  types.OnScreen,
		},
		{
			name:  "过期的退场结束被忽略",
			state: types.OnScreen,
			input: inputOutroEnded,
			next:  types.OnScreen,
			warns: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := stepOverlay(tt.state, tt.input, tt.env)
			assert.Equal(t, tt.next, step.next)
			assert.Equal(t, tt.effects, step.effects)
			if tt.warns {
				if assert.NotNil(t, step.note) {
					assert.True(t, step.note.warn)
				}
			} else if step.note != nil {
				assert.False(t, step.note.warn)
			}
		})
	}
}

func TestEffectOrder_OutroEndedBeforeHide(t *testing.T) {
	index := func(effect overlayEffect) int {
		for i, e := range effectOrder {
			if e == effect {
				return i
			}
		}
		return -1
	}
	assert.Less(t, index(effectSetHidden), index(effectOutroEnded))
	assert.Less(t, index(effectOutroEnded), index(effectEmitHide))
}

func TestStepOverlay_NeverMovesBackwardOutsideFailure(t *testing.T) {
	// 一个展示、隐藏周期内的输入序列
	inputs := []overlayInput{
		inputShowRequested, inputCached, inputShown, inputIntroEnded, inputHideRequested, inputOutroEnded,
	}
	env := overlayEnv{hasIntro: true, hasOutro: true, retrieving: true}

	state := types.Offscreen
	var visited []types.PresentationState
	for _, in := range inputs {
		step := stepOverlay(state, in, env)
		if step.next != state {
			visited = append(visited, step.next)
		}
		state = step.next
		env.retrieving = false
	}

	assert.Equal(t, []types.PresentationState{
		types.ShowTriggered, types.IntroAnim, types.OnScreen, types.OutroAnim, types.Offscreen,
	}, visited)
}
