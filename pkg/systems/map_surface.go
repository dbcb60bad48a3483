package systems

import (
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
)

// MapSurface 镜头过渡引擎驱动的渲染表面
//
// 引擎只通过该接口读取当前镜头、写入逐帧镜头参数以及进行屏幕投影。
// 所有调用都发生在帧循环所在的 goroutine 上。
type MapSurface interface {
	// CameraState 当前镜头参数
	CameraState() types.CameraPose

	// SetCamera 只写入 opts 中存在的字段
	SetCamera(opts types.CameraOptions)

	// Bounds 视口矩形（点）
	Bounds() types.Rect

	// Project 使用当前镜头将坐标投影为屏幕点
	Project(c geo.Coordinate) types.ScreenPoint

	// Unproject 使用当前镜头将屏幕点反投影为坐标
	Unproject(p types.ScreenPoint) geo.Coordinate

	// CameraForCoordinates 计算能在 padding 内完整显示所有坐标的镜头
	CameraForCoordinates(coords []geo.Coordinate, padding types.EdgeInsets, bearing, pitch float64) types.CameraOptions
}
