package utils

import "math"

// WrapDegrees 将角度规范到 [0, 360)
func WrapDegrees(deg float64) float64 {
	w := math.Mod(deg, 360)
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}

// ShortestAngleDelta 返回从 current 旋转到 target 的最短角度差，范围 [-180, 180]
//
// 例如 current=10°, target=350° 时返回 -20°，而不是 340°。
func ShortestAngleDelta(target, current float64) float64 {
	d := math.Mod(target-current, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// LerpBearing 沿最短弧在两个方位角之间插值，结果规范到 [0, 360)
func LerpBearing(from, to, t float64) float64 {
	return WrapDegrees(from + ShortestAngleDelta(to, from)*t)
}
