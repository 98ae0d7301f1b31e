// Package version provides version information for the application.
package version

import (
	"fmt"
	"runtime"
	"time"
)

// 构建时注入的变量，通过ldflags设置
var (
	// 语义化版本信息
	Version = "v0.1.0"

	// 构建信息
	BuildTime = "unknown"     // 构建时间戳（RFC3339格式）
	Commit    = "unknown"     // 源码提交
	BuildEnv  = "development" // 构建环境：development, testing, production
)

// BuildInfo 完整构建信息结构
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
	BuildEnv  string `json:"build_env"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo 获取完整构建信息
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		BuildEnv:  BuildEnv,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetFullVersion 获取完整版本信息（用于 adsim version 输出）
func GetFullVersion() string {
	info := GetBuildInfo()

	versionStr := fmt.Sprintf("adsim %s", info.Version)
	if info.BuildTime != "unknown" {
		if parsed, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
			versionStr += fmt.Sprintf("\n构建时间: %s", parsed.Format("2006-01-02 15:04:05 MST"))
		} else {
			versionStr += fmt.Sprintf("\n构建时间: %s", info.BuildTime)
		}
	}
	if info.Commit != "unknown" {
		versionStr += fmt.Sprintf("\n提交: %s", info.Commit)
	}
	versionStr += fmt.Sprintf("\n构建环境: %s", info.BuildEnv)
	versionStr += fmt.Sprintf("\nGo版本: %s", info.GoVersion)
	versionStr += fmt.Sprintf("\n平台: %s", info.Platform)
	return versionStr
}
