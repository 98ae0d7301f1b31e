package configs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// 默认的模拟器配置
//
//go:embed adsim.json
var adsimConfig []byte

// 内置的示例场景
//
//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// GetAdsimConfig 获取模拟器默认配置
func GetAdsimConfig() []byte {
	return adsimConfig
}

// ScenarioNames 内置场景名称（不含扩展名），按名称排序
func ScenarioNames() []string {
	entries, err := fs.ReadDir(scenarioFS, "scenarios")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// GetScenario 读取内置场景
func GetScenario(name string) ([]byte, error) {
	return scenarioFS.ReadFile("scenarios/" + name + ".yaml")
}
