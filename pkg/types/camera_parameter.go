package types

import "strings"

// CameraParameter 一个可独立动画的镜头轴
type CameraParameter uint8

const (
	// ParameterCenter 中心点（连同内边距）
	ParameterCenter CameraParameter = 1 << iota
	// ParameterZoom 缩放级别
	ParameterZoom
	// ParameterBearing 方位角
	ParameterBearing
	// ParameterPitch 俯仰角（连同锚点）
	ParameterPitch
)

// CameraParameters 镜头轴集合
type CameraParameters uint8

// AllCameraParameters 全部四个轴，按固定顺序
var AllCameraParameters = []CameraParameter{ParameterCenter, ParameterZoom, ParameterBearing, ParameterPitch}

// String 返回轴名称
func (p CameraParameter) String() string {
	switch p {
	case ParameterCenter:
		return "center"
	case ParameterZoom:
		return "zoom"
	case ParameterBearing:
		return "bearing"
	case ParameterPitch:
		return "pitch"
	default:
		return "unknown"
	}
}

// NewCameraParameters 由若干轴构造集合
func NewCameraParameters(params ...CameraParameter) CameraParameters {
	var s CameraParameters
	for _, p := range params {
		s = s.Insert(p)
	}
	return s
}

// Contains 集合是否包含轴 p
func (s CameraParameters) Contains(p CameraParameter) bool {
	return s&CameraParameters(p) != 0
}

// Insert 返回加入 p 后的集合
func (s CameraParameters) Insert(p CameraParameter) CameraParameters {
	return s | CameraParameters(p)
}

// Remove 返回移除 p 后的集合
func (s CameraParameters) Remove(p CameraParameter) CameraParameters {
	return s &^ CameraParameters(p)
}

// IsEmpty 集合是否为空
func (s CameraParameters) IsEmpty() bool {
	return s == 0
}

// Intersects 两个集合是否有交集
func (s CameraParameters) Intersects(o CameraParameters) bool {
	return s&o != 0
}

// Len 集合大小
func (s CameraParameters) Len() int {
	n := 0
	for _, p := range AllCameraParameters {
		if s.Contains(p) {
			n++
		}
	}
	return n
}

// String 形如 "[center zoom]"
func (s CameraParameters) String() string {
	names := make([]string, 0, 4)
	for _, p := range AllCameraParameters {
		if s.Contains(p) {
			names = append(names, p.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
