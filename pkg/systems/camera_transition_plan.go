package systems

import (
	"math"

	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
	"github.com/decker502/navcam/pkg/utils"
)

// AxisPlan 单个轴在一个阶段中的时间安排
type AxisPlan struct {
	Parameter types.CameraParameter

	// Delta 变化量（中心：米，缩放：级，方位：最短角度差，俯仰：度）
	Delta float64

	Duration float64
	Delay    float64
	Curve    utils.CubicBezier
}

// End 该轴结束的时刻（相对阶段开始）
func (a AxisPlan) End() float64 {
	return a.Delay + a.Duration
}

// TransitionStage 一个阶段：四个轴同时启动，全部结束后阶段完成
type TransitionStage struct {
	Kind   types.TransitionKind
	From   types.CameraPose
	Target types.CameraPose
	Axes   []AxisPlan
}

// Duration 阶段总时长（最晚结束的轴）
func (s TransitionStage) Duration() float64 {
	d := 0.0
	for _, a := range s.Axes {
		d = math.Max(d, a.End())
	}
	return d
}

// Axis 按轴查找时间安排
func (s TransitionStage) Axis(p types.CameraParameter) (AxisPlan, bool) {
	for _, a := range s.Axes {
		if a.Parameter == p {
			return a, true
		}
	}
	return AxisPlan{}, false
}

// TransitionPlan 一次完整过渡的策略与各阶段时间安排
//
// 绕行过渡有两个阶段：第一阶段到达中间视角，第二阶段从中间视角放大到目标。
// 第二阶段在第一阶段结束时会以实际镜头重新规划，这里给出的是以中间视角为起点的预测。
type TransitionPlan struct {
	Kind   types.TransitionKind
	Mode   types.NavigationCameraState
	From   types.CameraPose
	Target types.CameraPose
	Stages []TransitionStage
}

// Duration 所有阶段时长之和
func (p TransitionPlan) Duration() float64 {
	d := 0.0
	for _, s := range p.Stages {
		d += s.Duration()
	}
	return d
}

// Midpoint 绕行过渡的中间视角
func (p TransitionPlan) Midpoint() (types.CameraPose, bool) {
	if p.Kind != types.TransitionViaMidpoint || len(p.Stages) == 0 {
		return types.CameraPose{}, false
	}
	return p.Stages[0].Target, true
}

// DetourBounds 目标中心必须落在该矩形内才采用单阶段过渡
//
// 视口四边各内缩 halo（halo 为负时向外膨胀，视口外侧的一圈仍视为可见），再扣除上下内边距。
func DetourBounds(bounds types.Rect, padding types.EdgeInsets, halo float64) types.Rect {
	return bounds.
		Inset(types.UniformInsets(halo)).
		Inset(types.EdgeInsets{Top: padding.Top, Bottom: padding.Bottom})
}

// IsTargetOffscreen 目标中心在当前镜头下是否落在 DetourBounds 之外
//
// 参数:
//   - surface: 渲染表面，用当前镜头投影目标
//   - target: 目标中心
//   - padding: 目标镜头的内边距
//   - halo: 视口膨胀量（点），负值向外膨胀
func IsTargetOffscreen(surface MapSurface, target geo.Coordinate, padding types.EdgeInsets, halo float64) bool {
	rect := DetourBounds(surface.Bounds(), padding, halo)
	return !rect.Contains(surface.Project(target))
}

// PlanTransition 根据当前镜头与目标计算过渡策略，不修改镜头
//
// 参数:
//   - surface: 渲染表面，只读取当前镜头、视口与投影
//   - target: 完整的目标镜头
//   - mode: CameraStateFollowing 或 CameraStateOverview；总览强制俯仰为 0 且不绕行
//   - cfg: 过渡常量
//
// 返回:
//   - TransitionPlan: 策略、各阶段目标与每个轴的时长/延迟
func PlanTransition(surface MapSurface, target types.CameraPose, mode types.NavigationCameraState, cfg *config.CameraTransitionConfig) TransitionPlan {
	current := surface.CameraState()
	target.Bearing = utils.WrapDegrees(target.Bearing)
	if mode == types.CameraStateOverview {
		target.Pitch = 0
	}

	plan := TransitionPlan{
		Mode:   mode,
		From:   current,
		Target: target,
	}

	if mode == types.CameraStateFollowing && IsTargetOffscreen(surface, target.Center, target.Padding, cfg.OffscreenHalo) {
		midpoint := midpointPose(surface, current, target)
		plan.Kind = types.TransitionViaMidpoint
		plan.Stages = []TransitionStage{
			planStage(types.TransitionViaMidpoint, current, midpoint, cfg.Midpoint),
			planStage(types.TransitionLowToHighZoom, midpoint, target, cfg.ZoomIn),
		}
		return plan
	}

	if target.Zoom > current.Zoom {
		plan.Kind = types.TransitionLowToHighZoom
		plan.Stages = []TransitionStage{planStage(plan.Kind, current, target, cfg.ZoomIn)}
	} else {
		plan.Kind = types.TransitionHighToLowZoom
		plan.Stages = []TransitionStage{planStage(plan.Kind, current, target, cfg.ZoomOut)}
	}
	return plan
}

// midpointPose 绕行第一阶段的目标：目标中心、俯仰为 0、方位不变，
// 缩放取能同时容纳当前中心与目标中心的级别（不会比当前更高）
func midpointPose(surface MapSurface, current, target types.CameraPose) types.CameraPose {
	zoom := current.Zoom
	fit := surface.CameraForCoordinates(
		[]geo.Coordinate{current.Center, target.Center},
		target.Padding,
		current.Bearing,
		0,
	)
	if fit.Zoom != nil {
		zoom = math.Min(*fit.Zoom, current.Zoom)
	}

	return types.CameraPose{
		Center:  target.Center,
		Zoom:    zoom,
		Bearing: current.Bearing,
		Pitch:   0,
		Anchor:  target.Anchor,
		Padding: target.Padding,
	}
}

// planStage 按常量表计算四个轴的时长与延迟
//
// 缩放轴是节奏轴（延迟 0），其余轴的延迟让它们与缩放轴同时收尾：
// delay = max(zoomEnd - duration - settleOffset, 0)
func planStage(kind types.TransitionKind, from, to types.CameraPose, timing config.TransitionTiming) TransitionStage {
	zoomDelta := to.Zoom - from.Zoom
	zoomDuration := timing.Zoom.Duration(zoomDelta)

	settle := func(duration, offset float64) float64 {
		return math.Max(zoomDuration-duration-offset, 0)
	}

	distance := geo.Distance(from.Center, to.Center)
	centerDuration := timing.Center.Duration(distance)

	bearingDelta := utils.ShortestAngleDelta(to.Bearing, from.Bearing)
	bearingDuration := timing.Bearing.Duration(bearingDelta)

	return TransitionStage{
		Kind:   kind,
		From:   from,
		Target: to,
		Axes: []AxisPlan{
			{
				Parameter: types.ParameterCenter,
				Delta:     distance,
				Duration:  centerDuration,
				Delay:     settle(centerDuration, timing.Center.SettleOffset),
				Curve:     timing.Curve,
			},
			{
				Parameter: types.ParameterZoom,
				Delta:     zoomDelta,
				Duration:  zoomDuration,
				Curve:     timing.Curve,
			},
			{
				Parameter: types.ParameterBearing,
				Delta:     bearingDelta,
				Duration:  bearingDuration,
				Delay:     settle(bearingDuration, timing.Bearing.SettleOffset),
				Curve:     timing.Curve,
			},
			{
				Parameter: types.ParameterPitch,
				Delta:     to.Pitch - from.Pitch,
				Duration:  timing.PitchDuration,
				Delay:     settle(timing.PitchDuration, timing.PitchSettleOffset),
				Curve:     timing.Curve,
			},
		},
	}
}
