package types

import (
	"fmt"
	"math"

	"github.com/decker502/navcam/pkg/geo"
)

// ScreenPoint 屏幕坐标（点），原点为视口左上角
type ScreenPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// IsFinite 两个分量都不是 NaN 或 ±Inf
func (p ScreenPoint) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Lerp 在两个屏幕点之间插值
func (p ScreenPoint) Lerp(to ScreenPoint, t float64) ScreenPoint {
	return ScreenPoint{X: p.X + (to.X-p.X)*t, Y: p.Y + (to.Y-p.Y)*t}
}

// EdgeInsets 视口四边的内边距（点）
type EdgeInsets struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Right  float64 `yaml:"right"`
}

// UniformInsets 四边相同的内边距
func UniformInsets(v float64) EdgeInsets {
	return EdgeInsets{Top: v, Left: v, Bottom: v, Right: v}
}

// IsFinite 四边都不是 NaN 或 ±Inf
func (e EdgeInsets) IsFinite() bool {
	return isFinite(e.Top) && isFinite(e.Left) && isFinite(e.Bottom) && isFinite(e.Right)
}

// Lerp 逐边插值
func (e EdgeInsets) Lerp(to EdgeInsets, t float64) EdgeInsets {
	return EdgeInsets{
		Top:    e.Top + (to.Top-e.Top)*t,
		Left:   e.Left + (to.Left-e.Left)*t,
		Bottom: e.Bottom + (to.Bottom-e.Bottom)*t,
		Right:  e.Right + (to.Right-e.Right)*t,
	}
}

// Rect 屏幕矩形
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Inset 向内收缩；负值表示向外扩张
func (r Rect) Inset(e EdgeInsets) Rect {
	return Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  r.Width - e.Left - e.Right,
		Height: r.Height - e.Top - e.Bottom,
	}
}

// Contains 点是否落在矩形内（含边界）；宽或高为负的矩形不包含任何点
func (r Rect) Contains(p ScreenPoint) bool {
	if r.Width < 0 || r.Height < 0 {
		return false
	}
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center 矩形中心
func (r Rect) Center() ScreenPoint {
	return ScreenPoint{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// CameraPose 完整的镜头参数
//
// Center/Zoom/Bearing/Pitch/Anchor 五元组唯一描述一个视角，Padding 描述视口安全区域。
// Bearing 取值 [0, 360)，Pitch 取值 [0, maxPitch]。
type CameraPose struct {
	Center  geo.Coordinate `yaml:"center"`
	Zoom    float64        `yaml:"zoom"`
	Bearing float64        `yaml:"bearing"`
	Pitch   float64        `yaml:"pitch"`
	Anchor  ScreenPoint    `yaml:"anchor"`
	Padding EdgeInsets     `yaml:"padding"`
}

// String 便于日志输出
func (p CameraPose) String() string {
	return fmt.Sprintf("center=(%.6f,%.6f) zoom=%.2f bearing=%.1f pitch=%.1f",
		p.Center.Latitude, p.Center.Longitude, p.Zoom, p.Bearing, p.Pitch)
}

// Options 将完整镜头参数转换为所有字段都存在的 CameraOptions
func (p CameraPose) Options() CameraOptions {
	return CameraOptions{
		Center:  Ptr(p.Center),
		Zoom:    Ptr(p.Zoom),
		Bearing: Ptr(p.Bearing),
		Pitch:   Ptr(p.Pitch),
		Anchor:  Ptr(p.Anchor),
		Padding: Ptr(p.Padding),
	}
}

// CameraOptions 镜头请求，所有字段均可缺省（nil）
type CameraOptions struct {
	Center  *geo.Coordinate `yaml:"center,omitempty"`
	Zoom    *float64        `yaml:"zoom,omitempty"`
	Bearing *float64        `yaml:"bearing,omitempty"`
	Pitch   *float64        `yaml:"pitch,omitempty"`
	Anchor  *ScreenPoint    `yaml:"anchor,omitempty"`
	Padding *EdgeInsets     `yaml:"padding,omitempty"`
}

// Ptr 返回值的指针，便于构造 CameraOptions
func Ptr[T any](v T) *T {
	return &v
}

// Pose 当所有字段都存在、中心坐标合法且数值有限时返回完整镜头参数
func (o CameraOptions) Pose() (CameraPose, bool) {
	if o.Center == nil || o.Zoom == nil || o.Bearing == nil ||
		o.Pitch == nil || o.Anchor == nil || o.Padding == nil {
		return CameraPose{}, false
	}
	if o.Sanitized() != o {
		return CameraPose{}, false
	}
	return CameraPose{
		Center:  *o.Center,
		Zoom:    *o.Zoom,
		Bearing: *o.Bearing,
		Pitch:   *o.Pitch,
		Anchor:  *o.Anchor,
		Padding: *o.Padding,
	}, true
}

// Sanitized 返回去掉非法字段后的请求：中心坐标越界，或任何分量为 NaN/±Inf 的字段置为 nil
//
// 字段指针在合法时原样保留，因此 o.Sanitized() == o 表示请求中没有非法字段。
func (o CameraOptions) Sanitized() CameraOptions {
	if o.Center != nil && !o.Center.IsValid() {
		o.Center = nil
	}
	if o.Zoom != nil && !isFinite(*o.Zoom) {
		o.Zoom = nil
	}
	if o.Bearing != nil && !isFinite(*o.Bearing) {
		o.Bearing = nil
	}
	if o.Pitch != nil && !isFinite(*o.Pitch) {
		o.Pitch = nil
	}
	if o.Anchor != nil && !o.Anchor.IsFinite() {
		o.Anchor = nil
	}
	if o.Padding != nil && !o.Padding.IsFinite() {
		o.Padding = nil
	}
	return o
}

// Apply 用已存在的字段覆盖 base，返回新的镜头参数
func (o CameraOptions) Apply(base CameraPose) CameraPose {
	if o.Center != nil {
		base.Center = *o.Center
	}
	if o.Zoom != nil {
		base.Zoom = *o.Zoom
	}
	if o.Bearing != nil {
		base.Bearing = *o.Bearing
	}
	if o.Pitch != nil {
		base.Pitch = *o.Pitch
	}
	if o.Anchor != nil {
		base.Anchor = *o.Anchor
	}
	if o.Padding != nil {
		base.Padding = *o.Padding
	}
	return base
}

// Equal 按值比较两个请求（字段存在性与取值都相同）
func (o CameraOptions) Equal(other CameraOptions) bool {
	return ptrEqual(o.Center, other.Center) &&
		ptrEqual(o.Zoom, other.Zoom) &&
		ptrEqual(o.Bearing, other.Bearing) &&
		ptrEqual(o.Pitch, other.Pitch) &&
		ptrEqual(o.Anchor, other.Anchor) &&
		ptrEqual(o.Padding, other.Padding)
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
