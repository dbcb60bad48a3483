package geo

import "math"

// TileSize Web Mercator 世界在 0 级缩放时的边长（屏幕点）
const TileSize = 512.0

// MaxMercatorLatitude Web Mercator 可表示的最大纬度
const MaxMercatorLatitude = 85.051128779806604

// WorldPoint 世界像素坐标（屏幕点），原点为世界左上角
type WorldPoint struct {
	X float64
	Y float64
}

// WorldSize 返回指定缩放级别下世界的边长（屏幕点）
func WorldSize(zoom float64) float64 {
	return TileSize * math.Exp2(zoom)
}

// Project 将坐标投影为指定缩放级别下的世界像素坐标
func Project(c Coordinate, zoom float64) WorldPoint {
	size := WorldSize(zoom)
	lat := toRadians(clampLatitude(c.Latitude))

	x := (c.Longitude + 180) / 360 * size
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * size
	return WorldPoint{X: x, Y: y}
}

// Unproject 将世界像素坐标反投影为经纬度
func Unproject(p WorldPoint, zoom float64) Coordinate {
	size := WorldSize(zoom)
	lon := p.X/size*360 - 180
	n := math.Pi - 2*math.Pi*p.Y/size
	lat := toDegrees(math.Atan(math.Sinh(n)))
	return Coordinate{Latitude: clampLatitude(lat), Longitude: normalizeLongitude(lon)}
}

// InterpolateCoordinate 在 Mercator 平面内对两点做线性插值
//
// 经度差超过 180° 时沿反子午线方向插值，避免绕地球一圈。
func InterpolateCoordinate(from, to Coordinate, t float64) Coordinate {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}

	a := Project(from, 0)
	b := Project(to, 0)

	dx := b.X - a.X
	if dx > TileSize/2 {
		dx -= TileSize
	} else if dx < -TileSize/2 {
		dx += TileSize
	}

	p := WorldPoint{X: a.X + dx*t, Y: a.Y + (b.Y-a.Y)*t}
	if p.X < 0 {
		p.X += TileSize
	} else if p.X > TileSize {
		p.X -= TileSize
	}
	return Unproject(p, 0)
}

func clampLatitude(lat float64) float64 {
	return math.Max(-MaxMercatorLatitude, math.Min(MaxMercatorLatitude, lat))
}
