package utils

import (
	"math"
	"testing"
)

// TestCubicBezierEndpoints 所有曲线在端点处固定为 0 和 1
func TestCubicBezierEndpoints(t *testing.T) {
	curves := map[string]CubicBezier{
		"linear":    CurveLinear,
		"easeInOut": CurveEaseInOut,
		"easeIn":    CurveEaseIn,
		"easeOut":   CurveEaseOut,
	}

	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			if got := c.Ease(0); got != 0 {
				t.Errorf("Ease(0) = %v, want 0", got)
			}
			if got := c.Ease(1); got != 1 {
				t.Errorf("Ease(1) = %v, want 1", got)
			}
			if got := c.Ease(-0.5); got != 0 {
				t.Errorf("Ease(-0.5) = %v, want 0 (clamped)", got)
			}
			if got := c.Ease(1.5); got != 1 {
				t.Errorf("Ease(1.5) = %v, want 1 (clamped)", got)
			}
		})
	}
}

// TestCubicBezierLinear 线性曲线返回原值
func TestCubicBezierLinear(t *testing.T) {
	for _, x := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		if got := CurveLinear.Ease(x); math.Abs(got-x) > 1e-9 {
			t.Errorf("CurveLinear.Ease(%v) = %v, want %v", x, got, x)
		}
	}
}

// TestCubicBezierEaseInOut 慢入慢出曲线关于中点对称
func TestCubicBezierEaseInOut(t *testing.T) {
	if got := CurveEaseInOut.Ease(0.5); math.Abs(got-0.5) > 1e-5 {
		t.Errorf("Ease(0.5) = %v, want 0.5", got)
	}

	t.Run("开始慢于线性", func(t *testing.T) {
		for _, x := range []float64{0.1, 0.2, 0.3} {
			if got := CurveEaseInOut.Ease(x); got >= x {
				t.Errorf("Ease(%v) = %v, should be below linear", x, got)
			}
		}
	})

	t.Run("对称", func(t *testing.T) {
		for _, x := range []float64{0.1, 0.2, 0.35} {
			a := CurveEaseInOut.Ease(x)
			b := CurveEaseInOut.Ease(1 - x)
			if math.Abs(a+b-1) > 1e-5 {
				t.Errorf("Ease(%v)+Ease(%v) = %v, want 1", x, 1-x, a+b)
			}
		}
	})

	t.Run("单调递增", func(t *testing.T) {
		prev := 0.0
		for x := 0.01; x < 1; x += 0.01 {
			got := CurveEaseInOut.Ease(x)
			if got < prev {
				t.Fatalf("Ease not monotonic at %v: %v < %v", x, got, prev)
			}
			prev = got
		}
	})
}

// TestNewCubicBezierClampsX 控制点 X 被限制在 [0,1]
func TestNewCubicBezierClampsX(t *testing.T) {
	c := NewCubicBezier(-1, 0.2, 2, 0.8)
	if c.X1 != 0 || c.X2 != 1 {
		t.Errorf("NewCubicBezier did not clamp X: %+v", c)
	}
	if !c.IsValid() {
		t.Error("clamped curve should be valid")
	}
	if (CubicBezier{X1: 1.5, X2: 0.5}).IsValid() {
		t.Error("curve with X1 > 1 should be invalid")
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, expected float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{-5, 5, 0.25, -2.5},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.expected)
		}
	}
}
