// Package scenario 解析并运行广告位场景脚本
//
// 🎬 **场景模拟**
//
// 场景是一份 YAML 文件：声明广告位、每个广告位的广告网络结果脚本，
// 以及按模拟时间排列的宿主操作（界面暂停/恢复/销毁、展示、隐藏、点击等）。
// Runner 在模拟时钟上推进时间，记录全局事件总线上的全部广告事件。
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/weisyn/adkit/internal/core/adnetwork/sim"
)

// 广告位类型
const (
	KindInterstitial   = "interstitial"
	KindBanner         = "banner"
	KindAnimatedBanner = "animated_banner"
)

// 宿主界面操作
const (
	ActionPause   = "pause"
	ActionResume  = "resume"
	ActionDestroy = "destroy"
)

// 广告位操作
const (
	ActionShow     = "show"
	ActionHide     = "hide"
	ActionCache    = "cache"
	ActionClick    = "click"
	ActionDismiss  = "dismiss"
	ActionExpand   = "expand"
	ActionCollapse = "collapse"
)

// defaultTick 推进模拟时钟的默认步长
const defaultTick = 100 * time.Millisecond

// ErrInvalidScenario 场景文件不合法
var ErrInvalidScenario = errors.New("场景不合法")

// Duration 以 Go 时长字符串（如 "1.5s"）表示的时长
type Duration time.Duration

// UnmarshalYAML 解析时长字符串
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Scenario 场景
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Duration    Duration        `yaml:"duration"` // 最后一步之后继续推进到该时刻
	Tick        Duration        `yaml:"tick"`     // 时钟推进步长
	Placements  []PlacementSpec `yaml:"placements"`
	Steps       []Step          `yaml:"steps"`
}

// PlacementSpec 广告位声明
type PlacementSpec struct {
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	Screen    string        `yaml:"screen"`
	Zone      string        `yaml:"zone"`
	AutoCache bool          `yaml:"auto_cache"`
	Refresh   Duration      `yaml:"refresh"`
	Intro     Duration      `yaml:"intro"`
	Outro     Duration      `yaml:"outro"`
	Script    []OutcomeSpec `yaml:"script"`
}

// OutcomeSpec 广告网络结果
type OutcomeSpec struct {
	Result  string   `yaml:"result"` // fill | nofill | throttle
	Network string   `yaml:"network"`
	Failed  []string `yaml:"failed"`
	Delay   Duration `yaml:"delay"`
	Latency Duration `yaml:"latency"`
	Sync    bool     `yaml:"sync"`
}

// Step 宿主操作
type Step struct {
	At        Duration `yaml:"at"`
	Screen    string   `yaml:"screen"`
	Placement string   `yaml:"placement"`
	Action    string   `yaml:"action"`
}

// Target 操作对象的描述
func (s Step) Target() string {
	if s.Placement != "" {
		return s.Placement
	}
	return "screen:" + s.Screen
}

// Load 读取并校验场景文件
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取场景文件失败: %w", err)
	}
	scn, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scn, nil
}

// Parse 解析并校验场景
func Parse(data []byte) (*Scenario, error) {
	var scn Scenario
	if err := yaml.Unmarshal(data, &scn); err != nil {
		return nil, fmt.Errorf("解析场景失败: %w", err)
	}
	if err := scn.Validate(); err != nil {
		return nil, err
	}
	return &scn, nil
}

// Validate 校验场景，所有问题合并为一个错误
func (s *Scenario) Validate() error {
	var errs []error
	invalid := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...)))
	}

	if s.Tick < 0 {
		invalid("tick 不能为负数")
	}
	if s.Duration < 0 {
		invalid("duration 不能为负数")
	}
	if len(s.Placements) == 0 {
		invalid("至少需要一个广告位")
	}

	placements := make(map[string]PlacementSpec, len(s.Placements))
	screens := make(map[string]bool)
	for i, p := range s.Placements {
		if p.Name == "" {
			invalid("placements[%d] 缺少 name", i)
			continue
		}
		if _, dup := placements[p.Name]; dup {
			invalid("广告位 %s 重复声明", p.Name)
		}
		placements[p.Name] = p
		if p.Screen == "" {
			invalid("广告位 %s 缺少 screen", p.Name)
		}
		screens[p.Screen] = true

		switch p.Kind {
		case KindInterstitial, KindAnimatedBanner:
		case KindBanner:
			if p.AutoCache {
				invalid("横幅 %s 不支持 auto_cache", p.Name)
			}
		default:
			invalid("广告位 %s 的类型 %q 未知（可选 %s | %s | %s）",
				p.Name, p.Kind, KindInterstitial, KindBanner, KindAnimatedBanner)
		}
		if p.Refresh < 0 || p.Intro < 0 || p.Outro < 0 {
			invalid("广告位 %s 的时长不能为负数", p.Name)
		}
		for j, o := range p.Script {
			if _, err := sim.ParseOutcomeKind(o.Result); err != nil {
				invalid("广告位 %s script[%d]: %v", p.Name, j, err)
			}
			if o.Delay < 0 || o.Latency < 0 {
				invalid("广告位 %s script[%d] 的时长不能为负数", p.Name, j)
			}
		}
	}

	for i, step := range s.Steps {
		if step.At < 0 {
			invalid("steps[%d] 的 at 不能为负数", i)
		}
		switch {
		case step.Placement != "" && step.Screen != "":
			invalid("steps[%d] 不能同时指定 screen 和 placement", i)
		case step.Screen != "":
			if !screens[step.Screen] {
				invalid("steps[%d] 引用了未声明的界面 %s", i, step.Screen)
			}
			if !isScreenAction(step.Action) {
				invalid("steps[%d] 的界面操作 %q 未知", i, step.Action)
			}
		case step.Placement != "":
			p, ok := placements[step.Placement]
			if !ok {
				invalid("steps[%d] 引用了未声明的广告位 %s", i, step.Placement)
				continue
			}
			if !placementSupports(p.Kind, step.Action) {
				invalid("steps[%d] 广告位 %s (%s) 不支持操作 %q", i, p.Name, p.Kind, step.Action)
			}
		default:
			invalid("steps[%d] 需要指定 screen 或 placement", i)
		}
	}

	return errors.Join(errs...)
}

func isScreenAction(action string) bool {
	switch action {
	case ActionPause, ActionResume, ActionDestroy:
		return true
	}
	return false
}

func placementSupports(kind, action string) bool {
	switch action {
	case ActionShow, ActionClick:
		return true
	case ActionHide, ActionExpand, ActionCollapse:
		return kind == KindAnimatedBanner || (kind == KindBanner && action != ActionHide)
	case ActionCache:
		return kind == KindInterstitial || kind == KindAnimatedBanner
	case ActionDismiss:
		return kind == KindInterstitial
	}
	return false
}

// outcomes 把结果脚本转换为模拟广告网络的结果
func (p PlacementSpec) outcomes() []sim.Outcome {
	out := make([]sim.Outcome, 0, len(p.Script))
	for _, o := range p.Script {
		kind, _ := sim.ParseOutcomeKind(o.Result)
		out = append(out, sim.Outcome{
			Kind:           kind,
			Network:        strings.TrimSpace(o.Network),
			FailedNetworks: o.Failed,
			Delay:          o.Delay.Std(),
			Latency:        o.Latency.Std(),
			Sync:           o.Sync,
		})
	}
	return out
}

func (s *Scenario) tick() time.Duration {
	if s.Tick <= 0 {
		return defaultTick
	}
	return s.Tick.Std()
}
