// Package lifecycle 定义宿主界面生命周期的接口
package lifecycle

import "github.com/weisyn/adkit/pkg/types"

// ScreenObserver 接收宿主界面生命周期通知
type ScreenObserver interface {
	// Paused 界面进入后台
	Paused()
	// Resumed 界面回到前台
	Resumed()
	// Destroyed 界面被销毁，之后不会再收到任何通知
	Destroyed()
}

// Bridge 宿主把界面生命周期信号交给广告系统的入口
type Bridge interface {
	NotifyPaused(screen types.ScreenID)
	NotifyResumed(screen types.ScreenID)
	NotifyDestroyed(screen types.ScreenID)
}
