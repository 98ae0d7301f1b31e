package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/adkit/configs"
	"github.com/weisyn/adkit/internal/app"
	"github.com/weisyn/adkit/internal/app/version"
	"github.com/weisyn/adkit/internal/scenario"
	"github.com/weisyn/adkit/pkg/types"
)

var runFlags struct {
	Quiet bool // 只输出汇总
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml | 内置场景名>",
	Short: "运行场景并输出事件时间线",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scn, err := loadScenario(args[0])
		if err != nil {
			return err
		}
		appConfig, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := app.Start(app.WithAppConfig(appConfig))
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Stop(); err != nil {
				pterm.Warning.Printfln("停止应用时出错: %v", err)
			}
		}()

		runner, err := scenario.NewRunner(a)
		if err != nil {
			return err
		}
		report, err := runner.Run(scn)
		if err != nil {
			return err
		}

		renderReport(scn, report, runFlags.Quiet)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml | 内置场景名>...",
	Short: "校验场景文件",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if _, err := loadScenario(path); err != nil {
				pterm.Error.Println(err.Error())
				failed++
				continue
			}
			pterm.Success.Printfln("%s 校验通过", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d 个场景文件校验失败", failed)
		}
		return nil
	},
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "列出内置场景",
	Run: func(cmd *cobra.Command, args []string) {
		tableData := pterm.TableData{{"名称", "说明"}}
		for _, name := range configs.ScenarioNames() {
			data, err := configs.GetScenario(name)
			if err != nil {
				continue
			}
			scn, err := scenario.Parse(data)
			if err != nil {
				tableData = append(tableData, []string{name, "无效: " + err.Error()})
				continue
			}
			tableData = append(tableData, []string{name, scn.Name})
		}
		_ = pterm.DefaultTable.WithHasHeader(true).WithData(tableData).Render()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetFullVersion())
	},
}

func init() {
	runCmd.Flags().BoolVarP(&runFlags.Quiet, "quiet", "q", false, "只输出汇总，不输出时间线")
}

// loadScenario 读取场景文件；参数不是已存在的文件时按内置场景名查找
func loadScenario(arg string) (*scenario.Scenario, error) {
	if _, err := os.Stat(arg); err == nil {
		return scenario.Load(arg)
	}
	data, err := configs.GetScenario(arg)
	if err != nil {
		return nil, fmt.Errorf("场景 %s 既不是文件也不是内置场景（adsim examples 查看内置场景）", arg)
	}
	return scenario.Parse(data)
}

// loadConfig 读取配置文件（默认使用内置配置），并强制使用模拟时钟
func loadConfig() (*types.AppConfig, error) {
	path := globalFlags.ConfigFile
	if path == "" {
		path = os.Getenv("ADKIT_CONFIG_PATH")
	}

	var appConfig *types.AppConfig
	var err error
	if path != "" {
		appConfig, err = app.LoadConfigFile(path)
	} else {
		appConfig, err = app.ParseConfig(configs.GetAdsimConfig())
	}
	if err != nil {
		return nil, err
	}

	mock := "mock"
	appConfig.Clock = &types.UserClockConfig{Type: &mock}

	if globalFlags.Verbose {
		level := "debug"
		if appConfig.Log == nil {
			appConfig.Log = &types.UserLogConfig{}
		}
		appConfig.Log.Level = &level
	} else if appConfig.Log == nil || appConfig.Log.Level == nil {
		level := "warn"
		if appConfig.Log == nil {
			appConfig.Log = &types.UserLogConfig{}
		}
		appConfig.Log.Level = &level
	}
	return appConfig, nil
}

func renderReport(scn *scenario.Scenario, report *scenario.Report, quiet bool) {
	title := report.Scenario
	if title == "" {
		title = "未命名场景"
	}
	pterm.DefaultSection.Println(title)
	if scn.Description != "" {
		pterm.Info.Println(scn.Description)
	}

	if !quiet {
		tableData := pterm.TableData{{"时间", "广告位", "事件", "详情", "投递"}}
		for _, e := range report.Timeline {
			tableData = append(tableData, []string{
				e.At.String(),
				e.Placement,
				e.Event,
				e.Detail,
				deliveredMark(e),
			})
		}
		_ = pterm.DefaultTable.WithHasHeader(true).WithData(tableData).Render()
	}

	pterm.DefaultSection.Println("汇总")
	kinds := types.AllAdEventKinds()
	header := []string{"广告位"}
	for _, k := range kinds {
		header = append(header, string(k))
	}
	header = append(header, "抑制", "重试")

	summary := pterm.TableData{header}
	stats := report.Stats
	sort.Slice(stats, func(i, j int) bool { return stats[i].Placement < stats[j].Placement })
	for _, s := range stats {
		row := []string{s.Placement}
		for _, k := range kinds {
			row = append(row, fmt.Sprint(s.Events[k]))
		}
		row = append(row, fmt.Sprint(s.Suppressed), fmt.Sprint(s.Retries))
		summary = append(summary, row)
	}
	_ = pterm.DefaultTable.WithHasHeader(true).WithData(summary).Render()

	pterm.Info.Printfln("模拟时长 %s，时间线 %d 条", report.Elapsed, len(report.Timeline))
	if report.UsageErrors > 0 {
		pterm.Warning.Printfln("场景中有 %d 次使用错误", report.UsageErrors)
	}
}

func deliveredMark(e scenario.Entry) string {
	switch {
	case e.Event == scenario.EntryUsageError:
		return "!"
	case e.Delivered:
		return "✓"
	default:
		return "-"
	}
}
