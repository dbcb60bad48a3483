package surface

import (
	"math"
	"testing"

	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
)

func newTestSurface(bearing float64) *MercatorSurface {
	return NewMercatorSurface(400, 800, types.CameraPose{
		Center:  geo.NewCoordinate(37.765469, -122.415279),
		Zoom:    14,
		Bearing: bearing,
	})
}

func pointsClose(a, b types.ScreenPoint, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// TestProjectCenter 镜头中心投影到安全区域中心
func TestProjectCenter(t *testing.T) {
	s := newTestSurface(0)
	p := s.Project(s.CameraState().Center)
	if !pointsClose(p, types.ScreenPoint{X: 200, Y: 400}, 1e-6) {
		t.Errorf("center projected to %+v, want (200, 400)", p)
	}

	s.SetCamera(types.CameraOptions{Padding: types.Ptr(types.EdgeInsets{Top: 200})})
	p = s.Project(s.CameraState().Center)
	if !pointsClose(p, types.ScreenPoint{X: 200, Y: 500}, 1e-6) {
		t.Errorf("center with top padding projected to %+v, want (200, 500)", p)
	}
}

// TestProjectBearing 方位角 90° 时东方朝上
func TestProjectBearing(t *testing.T) {
	s := newTestSurface(90)
	east := geo.CoordinateAtDistance(s.CameraState().Center, 500, 90)
	p := s.Project(east)
	if math.Abs(p.X-200) > 0.5 {
		t.Errorf("east point x = %v, want ~200", p.X)
	}
	if p.Y >= 400 {
		t.Errorf("east point y = %v, want above center (< 400)", p.Y)
	}
}

// TestProjectUnprojectRoundTrip 投影往返一致
func TestProjectUnprojectRoundTrip(t *testing.T) {
	for _, bearing := range []float64{0, 33, 180, 271} {
		s := newTestSurface(bearing)
		s.SetCamera(types.CameraOptions{Padding: types.Ptr(types.EdgeInsets{Top: 100, Left: 20})})
		for _, pt := range []types.ScreenPoint{{X: 0, Y: 0}, {X: 123, Y: 456}, {X: 400, Y: 800}} {
			back := s.Project(s.Unproject(pt))
			if !pointsClose(back, pt, 1e-6) {
				t.Errorf("bearing %v: round trip %+v -> %+v", bearing, pt, back)
			}
		}
	}
}

// TestSetCameraClamps 写入时约束缩放、俯仰与方位角
func TestSetCameraClamps(t *testing.T) {
	s := newTestSurface(0)
	before := s.Revision()
	s.SetCamera(types.CameraOptions{
		Zoom:    types.Ptr(30.0),
		Pitch:   types.Ptr(120.0),
		Bearing: types.Ptr(-90.0),
	})

	pose := s.CameraState()
	if pose.Zoom != 22 {
		t.Errorf("Zoom: got %v, want 22", pose.Zoom)
	}
	if pose.Pitch != 85 {
		t.Errorf("Pitch: got %v, want 85", pose.Pitch)
	}
	if pose.Bearing != 270 {
		t.Errorf("Bearing: got %v, want 270", pose.Bearing)
	}
	if s.Revision() != before+1 {
		t.Errorf("Revision: got %d, want %d", s.Revision(), before+1)
	}

	// 非法中心坐标被忽略
	s.SetCamera(types.CameraOptions{Center: types.Ptr(geo.NewCoordinate(100, 0))})
	if s.CameraState().Center != pose.Center {
		t.Error("invalid center should be ignored")
	}
}

// TestCameraForCoordinates 拟合后所有坐标都在安全区域内
func TestCameraForCoordinates(t *testing.T) {
	s := newTestSurface(0)
	a := geo.NewCoordinate(37.70, -122.50)
	b := geo.NewCoordinate(37.80, -122.38)
	padding := types.UniformInsets(40)

	for _, bearing := range []float64{0, 45, 120} {
		opts := s.CameraForCoordinates([]geo.Coordinate{a, b}, padding, bearing, 30)
		if opts.Zoom == nil || opts.Center == nil {
			t.Fatalf("bearing %v: incomplete options %+v", bearing, opts)
		}
		if *opts.Pitch != 30 || *opts.Bearing != bearing {
			t.Errorf("bearing %v: pitch/bearing not carried over: %v %v", bearing, *opts.Pitch, *opts.Bearing)
		}

		s.SetCamera(opts)
		safe := s.Bounds().Inset(padding)
		for _, c := range []geo.Coordinate{a, b} {
			p := s.Project(c)
			grown := safe.Inset(types.UniformInsets(-1e-6))
			if !grown.Contains(p) {
				t.Errorf("bearing %v: %v projected to %+v outside %+v", bearing, c, p, safe)
			}
		}
	}

	if opts := s.CameraForCoordinates(nil, padding, 0, 0); opts.Zoom != nil {
		t.Error("empty coordinates should produce empty options")
	}

	single := s.CameraForCoordinates([]geo.Coordinate{a}, padding, 0, 0)
	if *single.Zoom != 22 {
		t.Errorf("single coordinate zoom: got %v, want max zoom 22", *single.Zoom)
	}
}

// TestSetCameraIgnoresNonFinite NaN/±Inf 字段保留原值，其余字段照常写入
func TestSetCameraIgnoresNonFinite(t *testing.T) {
	s := newTestSurface(45)
	before := s.CameraState()

	s.SetCamera(types.CameraOptions{
		Zoom:    types.Ptr(math.NaN()),
		Bearing: types.Ptr(math.Inf(1)),
		Pitch:   types.Ptr(30.0),
		Anchor:  types.Ptr(types.ScreenPoint{X: math.NaN(), Y: 10}),
		Padding: types.Ptr(types.EdgeInsets{Top: math.Inf(-1)}),
	})

	pose := s.CameraState()
	if pose.Zoom != before.Zoom || pose.Bearing != before.Bearing {
		t.Errorf("non-finite zoom/bearing written: zoom=%v bearing=%v", pose.Zoom, pose.Bearing)
	}
	if pose.Anchor != before.Anchor || pose.Padding != before.Padding {
		t.Errorf("non-finite anchor/padding written: %+v %+v", pose.Anchor, pose.Padding)
	}
	if pose.Pitch != 30 {
		t.Errorf("Pitch: got %v, want 30", pose.Pitch)
	}
}

// TestResize 视口尺寸改变后镜头中心投影到新的视口中心
func TestResize(t *testing.T) {
	s := newTestSurface(0)
	s.Resize(1000, 600)

	if got := s.Bounds(); got != (types.Rect{Width: 1000, Height: 600}) {
		t.Errorf("Bounds() = %+v, want 1000x600", got)
	}
	p := s.Project(s.CameraState().Center)
	if !pointsClose(p, types.ScreenPoint{X: 500, Y: 300}, 1e-6) {
		t.Errorf("center projected to %+v, want (500, 300)", p)
	}
}
