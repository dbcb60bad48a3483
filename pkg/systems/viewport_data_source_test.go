package systems

import (
	"testing"

	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/events"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/surface"
	"github.com/decker502/navcam/pkg/types"
)

func testRoute() []geo.Coordinate {
	route := []geo.Coordinate{sanFrancisco}
	for i := 1; i <= 10; i++ {
		route = append(route, geo.CoordinateAtDistance(sanFrancisco, float64(i)*1000, 30))
	}
	return route
}

func newTestDataSource() (*ViewportDataSource, *surface.MercatorSurface) {
	s := surface.NewMercatorSurface(400, 800, startPose())
	return NewViewportDataSource(s, config.DefaultCameraTransitionConfig().Viewport), s
}

// TestViewportFollowingOptions 跟随请求以车辆为中心并把锚点放在安全区域中心偏下
func TestViewportFollowingOptions(t *testing.T) {
	d, _ := newTestDataSource()
	padding := types.EdgeInsets{Top: 100, Bottom: 100}

	opts := d.FollowingOptions(ViewportState{Location: sanFrancisco, Course: 370, ViewportPadding: padding})
	pose, ok := opts.Pose()
	if !ok {
		t.Fatalf("following options incomplete: %+v", opts)
	}
	if pose.Center != sanFrancisco {
		t.Errorf("Center: got %v, want %v", pose.Center, sanFrancisco)
	}
	if pose.Bearing != 10 {
		t.Errorf("Bearing: got %v, want 10", pose.Bearing)
	}
	if pose.Zoom != 16.35 || pose.Pitch != 45 {
		t.Errorf("Zoom/Pitch: got %v/%v, want 16.35/45", pose.Zoom, pose.Pitch)
	}
	// 安全区域 y ∈ [100, 700]，中心 400，向下偏移 600*0.25
	if pose.Anchor != (types.ScreenPoint{X: 200, Y: 550}) {
		t.Errorf("Anchor: got %+v, want (200, 550)", pose.Anchor)
	}

	unknown := d.FollowingOptions(ViewportState{Location: sanFrancisco, Course: -1})
	if *unknown.Bearing != 0 {
		t.Errorf("unknown course bearing: got %v, want 0", *unknown.Bearing)
	}
}

// TestViewportOverviewOptions 总览请求容纳剩余路线，俯视朝北
func TestViewportOverviewOptions(t *testing.T) {
	d, s := newTestDataSource()
	route := testRoute()
	padding := types.UniformInsets(20)

	opts := d.OverviewOptions(ViewportState{Location: route[3], Route: route, ViewportPadding: padding})
	pose, ok := opts.Pose()
	if !ok {
		t.Fatalf("overview options incomplete: %+v", opts)
	}
	if pose.Pitch != 0 || pose.Bearing != 0 {
		t.Errorf("Pitch/Bearing: got %v/%v, want 0/0", pose.Pitch, pose.Bearing)
	}
	if pose.Zoom > 16.35 {
		t.Errorf("Zoom %v exceeds overview max", pose.Zoom)
	}

	s.SetCamera(opts)
	safe := s.Bounds().Inset(padding).Inset(types.UniformInsets(-1e-6))
	for _, c := range route[3:] {
		if p := s.Project(c); !safe.Contains(p) {
			t.Errorf("route point %v projected outside safe area: %+v", c, p)
		}
	}

	// 只有位置时缩放取上限
	alone := d.OverviewOptions(ViewportState{Location: sanFrancisco})
	if *alone.Zoom != 16.35 || geo.Distance(*alone.Center, sanFrancisco) > 0.01 {
		t.Errorf("location-only overview: zoom %v center %v", *alone.Zoom, *alone.Center)
	}
}

// TestRemainingRoute 从最近的顶点开始截取
func TestRemainingRoute(t *testing.T) {
	route := testRoute()
	got := RemainingRoute(route, geo.CoordinateAtDistance(route[4], 10, 120))
	if len(got) != len(route)-4 || got[0] != route[4] {
		t.Errorf("RemainingRoute: got %d points starting at %v", len(got), got[0])
	}
	if RemainingRoute(nil, sanFrancisco) != nil {
		t.Error("empty route should return nil")
	}
}

// TestViewportUpdatePublishesChanges 只有请求变化时才发布事件
func TestViewportUpdatePublishesChanges(t *testing.T) {
	d, _ := newTestDataSource()
	var received []events.ViewportOptionsChanged
	d.Changes().Subscribe(func(ev events.ViewportOptionsChanged) {
		received = append(received, ev)
	})

	state := ViewportState{Location: sanFrancisco, Course: 90, Route: testRoute()}
	d.Update(state)
	d.Update(state)
	if len(received) != 1 {
		t.Fatalf("events after identical updates: got %d, want 1", len(received))
	}

	state.Course = 100
	d.Update(state)
	if len(received) != 2 {
		t.Errorf("events after course change: got %d, want 2", len(received))
	}
	if !received[1].Options.Equal(d.Options()) {
		t.Error("published options should match Options()")
	}

	d.Update(ViewportState{Location: geo.NewCoordinate(91, 0)})
	if len(received) != 2 {
		t.Error("invalid location should be ignored")
	}
}
