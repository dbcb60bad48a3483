package systems

import (
	"math"

	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
	"github.com/decker502/navcam/pkg/utils"
)

// UpdateAxis 一次逐帧微调中需要重新定向的轴
type UpdateAxis struct {
	Parameter types.CameraParameter
	Curve     utils.CubicBezier

	// Eased 是否选用了慢入慢出曲线
	Eased bool
}

// PlanUpdate 选出需要微调的轴并为每个轴选择曲线
//
// 参数:
//   - current: 当前镜头
//   - target: 微调请求，缺省字段对应的轴不参与
//   - mode: 跟随状态下应用最小移动阈值，总览状态只跳过没有变化的轴
//   - cfg: 微调常量
//
// 返回:
//   - []UpdateAxis: 按 center/zoom/bearing/pitch 顺序排列
//
// 曲线选择:
//   - zoom: 目标低于当前缩放向下取一位小数时使用 eased（缩小）
//   - bearing: 最短角度差超过 EasedBearingThreshold 时使用 eased
//   - pitch: 目标大于当前俯仰时使用 eased（抬起）
func PlanUpdate(current types.CameraPose, target types.CameraOptions, mode types.NavigationCameraState, cfg config.UpdateConfig) []UpdateAxis {
	following := mode == types.CameraStateFollowing
	axes := make([]UpdateAxis, 0, len(types.AllCameraParameters))
	snappy := func(p types.CameraParameter) UpdateAxis {
		return UpdateAxis{Parameter: p, Curve: cfg.SnappyCurve}
	}
	eased := func(p types.CameraParameter) UpdateAxis {
		return UpdateAxis{Parameter: p, Curve: cfg.EasedCurve, Eased: true}
	}

	if centerMoved(current, target, following, cfg.MinimumCenterPixelThreshold) {
		axes = append(axes, snappy(types.ParameterCenter))
	}

	if target.Zoom != nil && *target.Zoom != current.Zoom {
		if *target.Zoom < math.Floor(current.Zoom*10)/10 {
			axes = append(axes, eased(types.ParameterZoom))
		} else {
			axes = append(axes, snappy(types.ParameterZoom))
		}
	}

	if target.Bearing != nil {
		delta := math.Abs(utils.ShortestAngleDelta(*target.Bearing, current.Bearing))
		if exceeds(delta, following, cfg.MinimumBearingThreshold) {
			if delta > cfg.EasedBearingThreshold {
				axes = append(axes, eased(types.ParameterBearing))
			} else {
				axes = append(axes, snappy(types.ParameterBearing))
			}
		}
	}

	pitchChanged := target.Pitch != nil &&
		exceeds(math.Abs(*target.Pitch-current.Pitch), following, cfg.MinimumPitchThreshold)
	anchorChanged := target.Anchor != nil && *target.Anchor != current.Anchor
	if pitchChanged || anchorChanged {
		if target.Pitch != nil && *target.Pitch > current.Pitch {
			axes = append(axes, eased(types.ParameterPitch))
		} else {
			axes = append(axes, snappy(types.ParameterPitch))
		}
	}

	return axes
}

// centerMoved 中心或内边距是否需要更新；跟随状态下中心移动不足阈值时忽略
// 阈值按目标中心的纬度与目标缩放换算为米
func centerMoved(current types.CameraPose, target types.CameraOptions, following bool, pixelThreshold float64) bool {
	if target.Padding != nil && *target.Padding != current.Padding {
		return true
	}
	if target.Center == nil || !target.Center.IsValid() {
		return false
	}

	meters := geo.Distance(current.Center, *target.Center)
	if !following {
		return meters > 0
	}
	zoom := current.Zoom
	if target.Zoom != nil {
		zoom = *target.Zoom
	}
	metersPerPoint := geo.MetersPerPixelAtLatitude(target.Center.Latitude, zoom)
	if metersPerPoint <= 0 {
		return meters > 0
	}
	return meters/metersPerPoint > pixelThreshold
}

func exceeds(delta float64, following bool, threshold float64) bool {
	if following {
		return delta >= threshold && delta > 0
	}
	return delta > 0
}
