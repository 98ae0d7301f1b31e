// adsim 在模拟时钟上运行广告位场景脚本
//
// 使用方式:
//
//	adsim run configs/scenarios/interstitial_retry.yaml --config configs/adsim.json
//	adsim run animated_banner
//	adsim validate configs/scenarios/*.yaml
//	adsim examples
//	adsim version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // JSON 配置文件
	Verbose    bool   // 输出调试日志
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "adsim",
	Short: "广告位场景模拟器",
	Long: `adsim - 广告位生命周期与缓存状态机的场景模拟器

在模拟时钟上驱动插屏、横幅与动画横幅广告位，
广告网络按场景脚本返回填充、无填充或限流，
输出全部广告事件的时间线与每个广告位的计数汇总。`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "JSON 配置文件 (默认读取 ADKIT_CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "输出调试日志")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(versionCmd)
}
