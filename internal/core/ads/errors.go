package ads

import "errors"

// 构造阶段错误
var (
	ErrMissingScreen = errors.New("广告位缺少宿主界面")
	ErrMissingPort   = errors.New("广告位缺少广告网络端口")
	ErrMissingName   = errors.New("广告位名称不能为空")
)
