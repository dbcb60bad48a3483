package systems

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/surface"
	"github.com/decker502/navcam/pkg/types"
)

// TestDebugOverlayGeometry 调试层的矩形与标记位置
func TestDebugOverlayGeometry(t *testing.T) {
	pose := startPose()
	pose.Padding = types.EdgeInsets{Top: 100, Bottom: 50}
	s := surface.NewMercatorSurface(400, 800, pose)

	following := types.CameraOptions{Center: types.Ptr(sanFrancisco)}
	overlay := DebugOverlayGeometry(s, types.NavigationCameraOptions{Following: following}, -40)

	if diff := cmp.Diff(types.Rect{Y: 100, Width: 400, Height: 650}, overlay.SafeArea); diff != "" {
		t.Errorf("SafeArea mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(types.Rect{X: -40, Y: 60, Width: 480, Height: 730}, overlay.DetourBounds); diff != "" {
		t.Errorf("DetourBounds mismatch (-want +got):\n%s", diff)
	}

	approx := cmpopts.EquateApprox(0, 1e-6)
	if diff := cmp.Diff(types.ScreenPoint{X: 200, Y: 425}, overlay.Center, approx); diff != "" {
		t.Errorf("Center mismatch (-want +got):\n%s", diff)
	}
	if overlay.FollowingCenter == nil {
		t.Fatal("FollowingCenter should be set")
	}
	if diff := cmp.Diff(overlay.Center, *overlay.FollowingCenter, approx); diff != "" {
		t.Errorf("FollowingCenter mismatch (-want +got):\n%s", diff)
	}
	if overlay.OverviewCenter != nil {
		t.Error("OverviewCenter should be nil for empty overview options")
	}
	if overlay.Anchor != pose.Anchor {
		t.Errorf("Anchor: got %+v, want %+v", overlay.Anchor, pose.Anchor)
	}
	if len(overlay.Lines) != 4 {
		t.Errorf("Lines: got %d, want 4", len(overlay.Lines))
	}

	invalid := types.CameraOptions{Center: types.Ptr(geo.NewCoordinate(95, 0))}
	if DebugOverlayGeometry(s, types.NavigationCameraOptions{Overview: invalid}, -40).OverviewCenter != nil {
		t.Error("invalid center should not produce a marker")
	}
}
