package systems

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
	"github.com/decker502/navcam/pkg/utils"
)

type updateChoice struct {
	Parameter types.CameraParameter
	Eased     bool
}

func choices(axes []UpdateAxis) []updateChoice {
	out := make([]updateChoice, 0, len(axes))
	for _, a := range axes {
		out = append(out, updateChoice{Parameter: a.Parameter, Eased: a.Eased})
	}
	return out
}

// TestPlanUpdateCurveSelection 缩小、大角度旋转、抬起俯仰时使用 eased 曲线
func TestPlanUpdateCurveSelection(t *testing.T) {
	cfg := config.DefaultCameraTransitionConfig().Update
	current := types.CameraPose{Center: sanFrancisco, Zoom: 15.26, Bearing: 10, Pitch: 30}

	tests := []struct {
		name   string
		target types.CameraOptions
		want   []updateChoice
	}{
		{
			name:   "zoom in is snappy",
			target: types.CameraOptions{Zoom: types.Ptr(16.0)},
			want:   []updateChoice{{types.ParameterZoom, false}},
		},
		{
			name:   "zoom within rounding is snappy",
			target: types.CameraOptions{Zoom: types.Ptr(15.21)},
			want:   []updateChoice{{types.ParameterZoom, false}},
		},
		{
			name:   "zoom out is eased",
			target: types.CameraOptions{Zoom: types.Ptr(15.15)},
			want:   []updateChoice{{types.ParameterZoom, true}},
		},
		{
			name:   "bearing across north is snappy",
			target: types.CameraOptions{Bearing: types.Ptr(350.0)},
			want:   []updateChoice{{types.ParameterBearing, false}},
		},
		{
			name:   "large rotation is eased",
			target: types.CameraOptions{Bearing: types.Ptr(100.0)},
			want:   []updateChoice{{types.ParameterBearing, true}},
		},
		{
			name:   "tilt up is eased",
			target: types.CameraOptions{Pitch: types.Ptr(45.0)},
			want:   []updateChoice{{types.ParameterPitch, true}},
		},
		{
			name:   "level off is snappy",
			target: types.CameraOptions{Pitch: types.Ptr(0.0)},
			want:   []updateChoice{{types.ParameterPitch, false}},
		},
		{
			name:   "anchor change moves pitch axis",
			target: types.CameraOptions{Anchor: types.Ptr(types.ScreenPoint{X: 10, Y: 10})},
			want:   []updateChoice{{types.ParameterPitch, false}},
		},
		{
			name: "all axes in order",
			target: types.CameraOptions{
				Center:  types.Ptr(geo.CoordinateAtDistance(sanFrancisco, 100, 0)),
				Zoom:    types.Ptr(14.0),
				Bearing: types.Ptr(20.0),
				Pitch:   types.Ptr(60.0),
			},
			want: []updateChoice{
				{types.ParameterCenter, false},
				{types.ParameterZoom, true},
				{types.ParameterBearing, false},
				{types.ParameterPitch, true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := choices(PlanUpdate(current, tt.target, types.CameraStateFollowing, cfg))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PlanUpdate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestPlanUpdateThresholds 跟随状态忽略微小变化，总览状态只忽略完全相同的值
func TestPlanUpdateThresholds(t *testing.T) {
	cfg := config.DefaultCameraTransitionConfig().Update
	current := types.CameraPose{Center: sanFrancisco, Zoom: 15, Bearing: 90, Pitch: 45}
	metersPerPoint := geo.MetersPerPixelAtLatitude(sanFrancisco.Latitude, 15)

	small := types.CameraOptions{
		Center:  types.Ptr(geo.CoordinateAtDistance(sanFrancisco, metersPerPoint, 0)),
		Bearing: types.Ptr(90.5),
		Pitch:   types.Ptr(45.5),
	}
	if got := PlanUpdate(current, small, types.CameraStateFollowing, cfg); len(got) != 0 {
		t.Errorf("following: small changes should be skipped, got %v", choices(got))
	}

	got := choices(PlanUpdate(current, small, types.CameraStateOverview, cfg))
	want := []updateChoice{
		{types.ParameterCenter, false},
		{types.ParameterBearing, false},
		{types.ParameterPitch, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overview mismatch (-want +got):\n%s", diff)
	}

	far := types.CameraOptions{Center: types.Ptr(geo.CoordinateAtDistance(sanFrancisco, metersPerPoint*3, 0))}
	if got := PlanUpdate(current, far, types.CameraStateFollowing, cfg); len(got) != 1 {
		t.Errorf("following: 3pt move should update center, got %v", choices(got))
	}

	same := current.Options()
	if got := PlanUpdate(current, same, types.CameraStateOverview, cfg); len(got) != 0 {
		t.Errorf("identical target should produce no updates, got %v", choices(got))
	}
}

// TestPlanUpdateCenterThresholdUsesTargetZoom 中心阈值按目标缩放换算：缩小后同样的位移不足 2 点
func TestPlanUpdateCenterThresholdUsesTargetZoom(t *testing.T) {
	cfg := config.DefaultCameraTransitionConfig().Update
	current := types.CameraPose{Center: sanFrancisco, Zoom: 15}
	metersPerPoint := geo.MetersPerPixelAtLatitude(sanFrancisco.Latitude, 15)
	moved := types.Ptr(geo.CoordinateAtDistance(sanFrancisco, metersPerPoint*3, 0))

	got := choices(PlanUpdate(current, types.CameraOptions{Center: moved, Zoom: types.Ptr(13.0)}, types.CameraStateFollowing, cfg))
	want := []updateChoice{{types.ParameterZoom, true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("zoom-out update mismatch (-want +got):\n%s", diff)
	}

	got = choices(PlanUpdate(current, types.CameraOptions{Center: moved, Zoom: types.Ptr(17.0)}, types.CameraStateFollowing, cfg))
	want = []updateChoice{{types.ParameterCenter, false}, {types.ParameterZoom, false}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("zoom-in update mismatch (-want +got):\n%s", diff)
	}
}

// TestPlanUpdateCurves 曲线取自配置
func TestPlanUpdateCurves(t *testing.T) {
	cfg := config.DefaultCameraTransitionConfig().Update
	current := types.CameraPose{Center: sanFrancisco, Zoom: 15}

	axes := PlanUpdate(current, types.CameraOptions{Zoom: types.Ptr(10.0)}, types.CameraStateFollowing, cfg)
	if len(axes) != 1 || axes[0].Curve != utils.CurveEaseInOut {
		t.Errorf("zoom out curve: got %+v, want ease-in-out", axes)
	}
	axes = PlanUpdate(current, types.CameraOptions{Zoom: types.Ptr(16.0)}, types.CameraStateFollowing, cfg)
	if len(axes) != 1 || axes[0].Curve != utils.CurveLinear {
		t.Errorf("zoom in curve: got %+v, want linear", axes)
	}
}

// TestShortestBearingScenario 10° 到 350° 沿 -20° 旋转
func TestShortestBearingScenario(t *testing.T) {
	if got := utils.ShortestAngleDelta(350, 10); got != -20 {
		t.Errorf("ShortestAngleDelta(350, 10): got %v, want -20", got)
	}
	if got := utils.ShortestAngleDelta(10, 350); got != 20 {
		t.Errorf("ShortestAngleDelta(10, 350): got %v, want 20", got)
	}
}
