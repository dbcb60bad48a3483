// cmd/camera_showcase/vehicle.go
// 沿路线匀速行驶的模拟车辆

package main

import (
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/utils"
)

// Vehicle 模拟车辆，到达终点后从起点重新开始
type Vehicle struct {
	route   []geo.Coordinate
	speed   float64 // 米/秒
	segment int     // 当前所在路段起点下标
	offset  float64 // 在当前路段上已行驶的米数
}

// NewVehicle 创建位于路线起点的车辆
func NewVehicle(route []geo.Coordinate, speed float64) *Vehicle {
	return &Vehicle{route: route, speed: speed}
}

// Advance 前进 dt 秒
func (v *Vehicle) Advance(dt float64) {
	v.Move(v.speed * dt)
}

// Move 沿路线前进 meters 米
func (v *Vehicle) Move(meters float64) {
	if v.RouteLength() <= 0 {
		return
	}
	for meters > 0 {
		remaining := v.segmentLength() - v.offset
		if meters < remaining {
			v.offset += meters
			return
		}
		meters -= remaining
		v.segment++
		v.offset = 0
		if v.segment >= len(v.route)-1 {
			v.segment = 0
		}
	}
}

// Location 当前位置
func (v *Vehicle) Location() geo.Coordinate {
	from := v.route[v.segment]
	return geo.CoordinateAtDistance(from, v.offset, geo.Direction(from, v.route[v.segment+1]))
}

// Course 当前行驶方向 [0, 360)
func (v *Vehicle) Course() float64 {
	return utils.WrapDegrees(geo.Direction(v.route[v.segment], v.route[v.segment+1]))
}

// RouteLength 路线总长（米）
func (v *Vehicle) RouteLength() float64 {
	total := 0.0
	for i := 0; i+1 < len(v.route); i++ {
		total += geo.Distance(v.route[i], v.route[i+1])
	}
	return total
}

func (v *Vehicle) segmentLength() float64 {
	return geo.Distance(v.route[v.segment], v.route[v.segment+1])
}
