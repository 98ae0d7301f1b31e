package placement

import (
	"strings"

	"github.com/weisyn/adkit/pkg/types"
)

// IntegrationNetwork 集成测试模式下使用的样例广告网络
type IntegrationNetwork struct {
	Name             string // 配置中使用的名称
	DisplayName      string // 展示名称
	BannerZone       string // 横幅样例广告位，空表示不提供
	InterstitialZone string // 插屏样例广告位，空表示不提供
}

// IntegrationAppID 所有样例广告位所属的发布者ID
const IntegrationAppID = "Js_mugok3kCBg8ABoJj_Cg"

// 集成测试样例网络表
var integrationNetworks = []IntegrationNetwork{
	{Name: "disabled"},
	{Name: "house", DisplayName: "House Ad", BannerZone: "0959195979157244033", InterstitialZone: "0656195979157244033"},
	{Name: "millenial", DisplayName: "Millenial", BannerZone: "0952195079157254033", InterstitialZone: "0052195179157254033"},
	{Name: "admob", DisplayName: "AdMob", BannerZone: "0655195179157254033", InterstitialZone: "0755195179157254033"},
	{Name: "greystripe", DisplayName: "Greystripe", BannerZone: "0955195179157254033", InterstitialZone: "0555195079157254033"},
	{Name: "inmobi", DisplayName: "InMobi", BannerZone: "0755195079157254033", InterstitialZone: "0855195079157254033"},
	{Name: "rewards_sample", DisplayName: "Rewards Sample", InterstitialZone: "0954195379157264033"},
	{Name: "richmedia", DisplayName: "Rich Media", BannerZone: "0355195379157234033"},
}

// LookupIntegrationNetwork 按名称（不区分大小写）查找样例网络
func LookupIntegrationNetwork(name string) (IntegrationNetwork, bool) {
	for _, n := range integrationNetworks {
		if strings.EqualFold(n.Name, name) {
			return n, true
		}
	}
	return IntegrationNetwork{}, false
}

// IsDisabled 是否为禁用占位网络（保留原始广告位）
func (n IntegrationNetwork) IsDisabled() bool {
	return n.BannerZone == "" && n.InterstitialZone == ""
}

// ZoneFor 返回指定广告位类型的样例广告位
func (n IntegrationNetwork) ZoneFor(kind types.AdKind) string {
	if kind == types.KindInterstitial {
		return n.InterstitialZone
	}
	return n.BannerZone
}

// isDeviceIDValid 排除空值与模拟器常见的占位设备号
func isDeviceIDValid(id string) bool {
	switch id {
	case "", "0", "000000000000000", "unknown":
		return false
	default:
		return true
	}
}
