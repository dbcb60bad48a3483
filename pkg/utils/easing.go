// Package utils 提供镜头动画使用的数学工具：时间曲线、插值与角度换算
package utils

import "math"

// Easing Functions (缓动曲线)
//
// 镜头动画使用三次贝塞尔时间曲线（与 CSS cubic-bezier 语义相同）：
// 起点 (0,0)、终点 (1,1) 固定，两个控制点决定速度变化。
// Ease 接受时间进度 t ∈ [0, 1]，返回动画进度 ∈ [0, 1]。
//
// 参考：https://cubic-bezier.com/

// CubicBezier 三次贝塞尔时间曲线
type CubicBezier struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// 预定义曲线
var (
	// CurveLinear 匀速（"snappy" 更新曲线）
	CurveLinear = CubicBezier{X1: 0, Y1: 0, X2: 1, Y2: 1}
	// CurveEaseInOut 慢入慢出
	CurveEaseInOut = CubicBezier{X1: 0.42, Y1: 0, X2: 0.58, Y2: 1}
	// CurveEaseIn 慢入
	CurveEaseIn = CubicBezier{X1: 0.42, Y1: 0, X2: 1, Y2: 1}
	// CurveEaseOut 慢出
	CurveEaseOut = CubicBezier{X1: 0, Y1: 0, X2: 0.58, Y2: 1}
)

const bezierEpsilon = 1e-7

// NewCubicBezier 创建三次贝塞尔曲线，控制点 X 坐标被限制在 [0, 1]
func NewCubicBezier(x1, y1, x2, y2 float64) CubicBezier {
	return CubicBezier{X1: Clamp(x1, 0, 1), Y1: y1, X2: Clamp(x2, 0, 1), Y2: y2}
}

// IsValid 控制点 X 坐标必须在 [0, 1] 内，否则曲线不是时间的函数
func (b CubicBezier) IsValid() bool {
	return b.X1 >= 0 && b.X1 <= 1 && b.X2 >= 0 && b.X2 <= 1 &&
		!math.IsNaN(b.Y1) && !math.IsNaN(b.Y2)
}

// Ease 返回时间进度 t 对应的动画进度
func (b CubicBezier) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if b.X1 == b.Y1 && b.X2 == b.Y2 {
		return t
	}
	return b.sampleY(b.solveX(t))
}

func (b CubicBezier) coefficients(p1, p2 float64) (a, bb, c float64) {
	c = 3 * p1
	bb = 3*(p2-p1) - c
	a = 1 - c - bb
	return a, bb, c
}

func (b CubicBezier) sampleX(s float64) float64 {
	a, bb, c := b.coefficients(b.X1, b.X2)
	return ((a*s+bb)*s + c) * s
}

func (b CubicBezier) sampleY(s float64) float64 {
	a, bb, c := b.coefficients(b.Y1, b.Y2)
	return ((a*s+bb)*s + c) * s
}

func (b CubicBezier) sampleDerivativeX(s float64) float64 {
	a, bb, c := b.coefficients(b.X1, b.X2)
	return (3*a*s+2*bb)*s + c
}

// solveX 求曲线参数 s 使 x(s) = x：先牛顿迭代，失败时退回二分
func (b CubicBezier) solveX(x float64) float64 {
	s := x
	for i := 0; i < 8; i++ {
		x2 := b.sampleX(s) - x
		if math.Abs(x2) < bezierEpsilon {
			return s
		}
		d := b.sampleDerivativeX(s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= x2 / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for lo < hi {
		x2 := b.sampleX(s)
		if math.Abs(x2-x) < bezierEpsilon {
			return s
		}
		if x > x2 {
			lo = s
		} else {
			hi = s
		}
		s = (hi-lo)/2 + lo
		if hi-lo < bezierEpsilon {
			break
		}
	}
	return s
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 内
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
