// Package geo 提供导航镜头所需的测地计算工具
//
// 包括两点间的大圆距离、方位角、沿方位角偏移、每像素米数以及 Web Mercator 投影。
// 所有角度以度为单位，距离以米为单位。
package geo

import "math"

// MetersPerRadian 地球半径（米），与路线计算保持一致
const MetersPerRadian = 6_373_000.0

// EarthCircumference 赤道周长（米），用于每像素米数计算
const EarthCircumference = 2 * math.Pi * 6_378_137.0

// Coordinate 经纬度坐标（度）
type Coordinate struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// NewCoordinate 创建坐标
func NewCoordinate(latitude, longitude float64) Coordinate {
	return Coordinate{Latitude: latitude, Longitude: longitude}
}

// IsValid 检查坐标是否在合法经纬度范围内
func (c Coordinate) IsValid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance 返回两点间的 Haversine 距离（米）
func Distance(a, b Coordinate) float64 {
	lat1, lat2 := toRadians(a.Latitude), toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Pow(math.Sin(dLon/2), 2)*math.Cos(lat1)*math.Cos(lat2)
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)) * MetersPerRadian
}

// Direction 返回从 a 指向 b 的初始方位角，范围 (-180, 180]
func Direction(a, b Coordinate) float64 {
	lat1, lat2 := toRadians(a.Latitude), toRadians(b.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return toDegrees(math.Atan2(y, x))
}

// CoordinateAtDistance 返回从 c 出发、沿 direction 方位角移动 distance 米后的坐标
func CoordinateAtDistance(c Coordinate, distance, direction float64) Coordinate {
	d := distance / MetersPerRadian
	brng := toRadians(direction)
	lat1 := toRadians(c.Latitude)
	lon1 := toRadians(c.Longitude)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)

	return Coordinate{
		Latitude:  toDegrees(lat2),
		Longitude: normalizeLongitude(toDegrees(lon2)),
	}
}

// MetersPerPixelAtLatitude 返回指定纬度、缩放级别下每个屏幕点代表的米数
//
// 使用 512 点瓦片尺寸，与 Mercator 投影保持一致。
func MetersPerPixelAtLatitude(latitude, zoom float64) float64 {
	lat := clampLatitude(latitude)
	return math.Cos(toRadians(lat)) * EarthCircumference / WorldSize(zoom)
}

func normalizeLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
