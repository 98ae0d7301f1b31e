package types

// ScreenID 宿主界面的标识
//
// 广告位与界面是非拥有的关联关系：界面被销毁时，注册在其上的广告位随之销毁。
type ScreenID string
