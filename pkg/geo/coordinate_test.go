package geo

import (
	"math"
	"testing"
)

// TestDistance 测试 Haversine 距离
func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Coordinate
		expected float64
		epsilon  float64
	}{
		{"同一点", NewCoordinate(37.7749, -122.4194), NewCoordinate(37.7749, -122.4194), 0, 1e-9},
		{"赤道一度经度", NewCoordinate(0, 0), NewCoordinate(0, 1), MetersPerRadian * math.Pi / 180, 1e-6},
		{"子午线一度纬度", NewCoordinate(10, 5), NewCoordinate(11, 5), MetersPerRadian * math.Pi / 180, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.expected) > tt.epsilon {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}

	// 距离应满足对称性
	a, b := NewCoordinate(52.37, 4.89), NewCoordinate(51.92, 4.48)
	if math.Abs(Distance(a, b)-Distance(b, a)) > 1e-6 {
		t.Errorf("Distance is not symmetric: %v vs %v", Distance(a, b), Distance(b, a))
	}
}

// TestDirection 测试方位角计算
func TestDirection(t *testing.T) {
	origin := NewCoordinate(0, 0)
	tests := []struct {
		name     string
		to       Coordinate
		expected float64
	}{
		{"正北", NewCoordinate(1, 0), 0},
		{"正东", NewCoordinate(0, 1), 90},
		{"正南", NewCoordinate(-1, 0), 180},
		{"正西", NewCoordinate(0, -1), -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Direction(origin, tt.to)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Direction(origin, %v) = %v, want %v", tt.to, got, tt.expected)
			}
		})
	}
}

// TestCoordinateAtDistance 测试沿方位角偏移后的往返一致性
func TestCoordinateAtDistance(t *testing.T) {
	start := NewCoordinate(37.765469, -122.415279)
	for _, bearing := range []float64{0, 45, 90, 135, 180, -90} {
		moved := CoordinateAtDistance(start, 5000, bearing)

		if d := Distance(start, moved); math.Abs(d-5000) > 0.01 {
			t.Errorf("bearing %v: distance = %v, want 5000", bearing, d)
		}
		if !moved.IsValid() {
			t.Errorf("bearing %v: produced invalid coordinate %v", bearing, moved)
		}
	}
}

// TestCoordinateIsValid 测试坐标合法性检查
func TestCoordinateIsValid(t *testing.T) {
	tests := []struct {
		c     Coordinate
		valid bool
	}{
		{NewCoordinate(0, 0), true},
		{NewCoordinate(90, 180), true},
		{NewCoordinate(-90, -180), true},
		{NewCoordinate(91, 0), false},
		{NewCoordinate(0, 181), false},
		{NewCoordinate(math.NaN(), 0), false},
	}

	for _, tt := range tests {
		if got := tt.c.IsValid(); got != tt.valid {
			t.Errorf("%v.IsValid() = %v, want %v", tt.c, got, tt.valid)
		}
	}
}

// TestMetersPerPixelAtLatitude 测试每像素米数随缩放级别减半
func TestMetersPerPixelAtLatitude(t *testing.T) {
	z10 := MetersPerPixelAtLatitude(0, 10)
	z11 := MetersPerPixelAtLatitude(0, 11)
	if math.Abs(z10/z11-2) > 1e-9 {
		t.Errorf("expected one zoom level to halve meters per pixel, got ratio %v", z10/z11)
	}

	// 赤道 0 级：周长 / 512
	if got, want := MetersPerPixelAtLatitude(0, 0), EarthCircumference/TileSize; math.Abs(got-want) > 1e-6 {
		t.Errorf("MetersPerPixelAtLatitude(0, 0) = %v, want %v", got, want)
	}

	if MetersPerPixelAtLatitude(60, 10) >= z10 {
		t.Error("meters per pixel should shrink away from the equator")
	}
}
