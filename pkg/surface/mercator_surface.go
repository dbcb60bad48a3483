// Package surface 提供无界面的参考渲染表面
//
// MercatorSurface 保存当前镜头参数，并基于 Web Mercator 提供屏幕点与坐标的互相投影、
// 以及按若干坐标拟合镜头的计算。它用于驱动过渡引擎的测试与演示程序；
// 真实地图引擎只需实现同样的方法即可替换它。
//
// 投影按俯视处理：俯仰角不会让投影变形，方位角旋转屏幕空间，
// 镜头中心落在扣除内边距后的安全区域中心。
package surface

import (
	"math"

	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
	"github.com/decker502/navcam/pkg/utils"
)

// Limits 渲染表面接受的镜头范围
type Limits struct {
	MinZoom  float64
	MaxZoom  float64
	MaxPitch float64
}

// DefaultLimits 缩放 [0, 22]，俯仰 [0, 85]
func DefaultLimits() Limits {
	return Limits{MinZoom: 0, MaxZoom: 22, MaxPitch: 85}
}

// MercatorSurface 参考渲染表面
type MercatorSurface struct {
	width  float64
	height float64
	limits Limits
	pose   types.CameraPose

	// revision 每次 SetCamera 递增，用于检测镜头是否被修改
	revision int
}

// NewMercatorSurface 创建指定尺寸（点）的渲染表面
func NewMercatorSurface(width, height float64, initial types.CameraPose) *MercatorSurface {
	s := &MercatorSurface{
		width:  width,
		height: height,
		limits: DefaultLimits(),
	}
	s.pose = s.clampPose(initial.Options().Sanitized().Apply(types.CameraPose{}))
	return s
}

// SetLimits 修改镜头范围并立即约束当前镜头
func (s *MercatorSurface) SetLimits(l Limits) {
	s.limits = l
	s.pose = s.clampPose(s.pose)
}

// Resize 修改视口尺寸
func (s *MercatorSurface) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// CameraState 返回当前镜头参数
func (s *MercatorSurface) CameraState() types.CameraPose {
	return s.pose
}

// SetCamera 写入存在的字段；越界的中心坐标与 NaN/±Inf 数值被忽略，保留原值
func (s *MercatorSurface) SetCamera(opts types.CameraOptions) {
	s.pose = s.clampPose(opts.Sanitized().Apply(s.pose))
	s.revision++
}

// Revision 返回镜头被写入的次数
func (s *MercatorSurface) Revision() int {
	return s.revision
}

// Bounds 视口矩形
func (s *MercatorSurface) Bounds() types.Rect {
	return types.Rect{Width: s.width, Height: s.height}
}

// Project 使用当前镜头将坐标投影为屏幕点
func (s *MercatorSurface) Project(c geo.Coordinate) types.ScreenPoint {
	pose := s.pose
	cw := geo.Project(pose.Center, pose.Zoom)
	pw := geo.Project(c, pose.Zoom)

	dx := wrapWorldDelta(pw.X-cw.X, geo.WorldSize(pose.Zoom))
	dy := pw.Y - cw.Y

	sin, cos := math.Sincos(pose.Bearing * math.Pi / 180)
	origin := s.Bounds().Inset(pose.Padding).Center()
	return types.ScreenPoint{
		X: origin.X + dx*cos + dy*sin,
		Y: origin.Y - dx*sin + dy*cos,
	}
}

// Unproject 使用当前镜头将屏幕点反投影为坐标
func (s *MercatorSurface) Unproject(p types.ScreenPoint) geo.Coordinate {
	pose := s.pose
	origin := s.Bounds().Inset(pose.Padding).Center()
	sx, sy := p.X-origin.X, p.Y-origin.Y

	sin, cos := math.Sincos(pose.Bearing * math.Pi / 180)
	dx := sx*cos - sy*sin
	dy := sx*sin + sy*cos

	cw := geo.Project(pose.Center, pose.Zoom)
	return geo.Unproject(geo.WorldPoint{X: cw.X + dx, Y: cw.Y + dy}, pose.Zoom)
}

// CameraForCoordinates 计算能在扣除 padding 的视口内完整显示所有坐标的镜头
//
// 参数:
//   - coords: 需要显示的坐标，为空时返回空请求
//   - padding: 视口内边距
//   - bearing: 镜头方位角，包围盒在旋转后的屏幕空间内计算
//   - pitch: 写入结果的俯仰角
//
// 返回:
//   - types.CameraOptions: Center/Zoom/Bearing/Pitch/Padding 已填充，Anchor 为空
func (s *MercatorSurface) CameraForCoordinates(coords []geo.Coordinate, padding types.EdgeInsets, bearing, pitch float64) types.CameraOptions {
	if len(coords) == 0 {
		return types.CameraOptions{}
	}

	sin, cos := math.Sincos(bearing * math.Pi / 180)
	ref := geo.Project(coords[0], 0)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range coords {
		w := geo.Project(c, 0)
		dx := wrapWorldDelta(w.X-ref.X, geo.TileSize)
		dy := w.Y - ref.Y
		rx := dx*cos + dy*sin
		ry := -dx*sin + dy*cos
		minX, maxX = math.Min(minX, rx), math.Max(maxX, rx)
		minY, maxY = math.Min(minY, ry), math.Max(maxY, ry)
	}

	// 包围盒中心旋转回世界空间
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	center := geo.Unproject(geo.WorldPoint{
		X: ref.X + cx*cos - cy*sin,
		Y: ref.Y + cx*sin + cy*cos,
	}, 0)

	availW := math.Max(s.width-padding.Left-padding.Right, 1)
	availH := math.Max(s.height-padding.Top-padding.Bottom, 1)
	spanW, spanH := maxX-minX, maxY-minY

	zoom := s.limits.MaxZoom
	if spanW > 0 || spanH > 0 {
		scale := math.Inf(1)
		if spanW > 0 {
			scale = math.Min(scale, availW/spanW)
		}
		if spanH > 0 {
			scale = math.Min(scale, availH/spanH)
		}
		zoom = utils.Clamp(math.Log2(scale), s.limits.MinZoom, s.limits.MaxZoom)
	}

	return types.CameraOptions{
		Center:  types.Ptr(center),
		Zoom:    types.Ptr(zoom),
		Bearing: types.Ptr(utils.WrapDegrees(bearing)),
		Pitch:   types.Ptr(utils.Clamp(pitch, 0, s.limits.MaxPitch)),
		Padding: types.Ptr(padding),
	}
}

func (s *MercatorSurface) clampPose(p types.CameraPose) types.CameraPose {
	p.Zoom = utils.Clamp(p.Zoom, s.limits.MinZoom, s.limits.MaxZoom)
	p.Pitch = utils.Clamp(p.Pitch, 0, s.limits.MaxPitch)
	p.Bearing = utils.WrapDegrees(p.Bearing)
	return p
}

// wrapWorldDelta 将横向世界差值折叠到半个世界宽度以内（跨越反子午线时取近路）
func wrapWorldDelta(dx, worldSize float64) float64 {
	if dx > worldSize/2 {
		return dx - worldSize
	}
	if dx < -worldSize/2 {
		return dx + worldSize
	}
	return dx
}
