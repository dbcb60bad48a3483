package systems

import (
	"math"

	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/events"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
	"github.com/decker502/navcam/pkg/utils"
)

// ViewportState 视口数据源的输入
type ViewportState struct {
	// Location 车辆位置
	Location geo.Coordinate

	// Course 行驶方向（度，正北为 0）；负值表示未知，镜头朝北
	Course float64

	// Route 完整路线，为空时总览只显示车辆位置
	Route []geo.Coordinate

	// ViewportPadding 视口被界面遮挡的内边距
	ViewportPadding types.EdgeInsets
}

// ViewportDataSource 根据车辆位置与路线生成跟随/总览镜头请求
//
// 每次 Update 产生的请求与上一次不同时发布 ViewportOptionsChanged 事件。
type ViewportDataSource struct {
	surface MapSurface
	config  config.ViewportConfig

	options types.NavigationCameraOptions
	changes *events.Bus[events.ViewportOptionsChanged]
}

// NewViewportDataSource 创建视口数据源
func NewViewportDataSource(surface MapSurface, cfg config.ViewportConfig) *ViewportDataSource {
	return &ViewportDataSource{
		surface: surface,
		config:  cfg,
		changes: events.NewBus[events.ViewportOptionsChanged](),
	}
}

// Changes 镜头请求变化事件
func (d *ViewportDataSource) Changes() *events.Bus[events.ViewportOptionsChanged] {
	return d.changes
}

// Options 最近一次计算的镜头请求
func (d *ViewportDataSource) Options() types.NavigationCameraOptions {
	return d.options
}

// SetConfig 替换视口参数，下一次 Update 生效
func (d *ViewportDataSource) SetConfig(cfg config.ViewportConfig) {
	d.config = cfg
}

// Update 重新计算镜头请求；位置非法时忽略
func (d *ViewportDataSource) Update(state ViewportState) {
	if !state.Location.IsValid() {
		return
	}

	next := types.NavigationCameraOptions{
		Following: d.FollowingOptions(state),
		Overview:  d.OverviewOptions(state),
	}
	if next.Equal(d.options) {
		return
	}
	d.options = next
	d.changes.Publish(events.ViewportOptionsChanged{Options: next})
}

// FollowingOptions 跟随镜头：以车辆为中心、朝行驶方向、锚点位于安全区域中心偏下
func (d *ViewportDataSource) FollowingOptions(state ViewportState) types.CameraOptions {
	bearing := 0.0
	if state.Course >= 0 {
		bearing = utils.WrapDegrees(state.Course)
	}

	safe := d.surface.Bounds().Inset(state.ViewportPadding)
	anchor := safe.Center()
	anchor.Y += safe.Height * d.config.FollowingAnchorOffset

	return types.CameraOptions{
		Center:  types.Ptr(state.Location),
		Zoom:    types.Ptr(d.config.FollowingZoom),
		Bearing: types.Ptr(bearing),
		Pitch:   types.Ptr(d.config.FollowingPitch),
		Anchor:  types.Ptr(anchor),
		Padding: types.Ptr(state.ViewportPadding),
	}
}

// OverviewOptions 总览镜头：俯视、朝北，容纳车辆位置与剩余路线，缩放不超过 OverviewMaxZoom
func (d *ViewportDataSource) OverviewOptions(state ViewportState) types.CameraOptions {
	coords := append([]geo.Coordinate{state.Location}, RemainingRoute(state.Route, state.Location)...)
	fit := d.surface.CameraForCoordinates(coords, state.ViewportPadding, 0, 0)

	center := state.Location
	if fit.Center != nil {
		center = *fit.Center
	}
	zoom := d.config.OverviewMaxZoom
	if fit.Zoom != nil {
		zoom = math.Min(*fit.Zoom, zoom)
	}

	return types.CameraOptions{
		Center:  types.Ptr(center),
		Zoom:    types.Ptr(zoom),
		Bearing: types.Ptr(0.0),
		Pitch:   types.Ptr(0.0),
		Anchor:  types.Ptr(d.surface.Bounds().Inset(state.ViewportPadding).Center()),
		Padding: types.Ptr(state.ViewportPadding),
	}
}

// RemainingRoute 返回路线中从距离 location 最近的顶点开始的部分
func RemainingRoute(route []geo.Coordinate, location geo.Coordinate) []geo.Coordinate {
	if len(route) == 0 {
		return nil
	}
	nearest, best := 0, math.Inf(1)
	for i, c := range route {
		if d := geo.Distance(c, location); d < best {
			nearest, best = i, d
		}
	}
	return route[nearest:]
}
