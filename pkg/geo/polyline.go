package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedPolyline 编码折线被截断或包含非法字符
var ErrMalformedPolyline = errors.New("malformed encoded polyline")

// DecodePolyline 解码 Google 编码折线（精度 5 位小数）
//
// 参数:
//   - encoded: 编码后的折线字符串
//
// 返回:
//   - []Coordinate: 解码后的坐标序列，空字符串返回 nil
//   - error: 字符串被截断或包含非法字符时返回 ErrMalformedPolyline
func DecodePolyline(encoded string) ([]Coordinate, error) {
	if encoded == "" {
		return nil, nil
	}

	var coords []Coordinate
	index, lat, lon := 0, 0, 0

	for index < len(encoded) {
		latDelta, next, err := decodePolylineValue(encoded, index)
		if err != nil {
			return nil, err
		}
		lonDelta, next, err := decodePolylineValue(encoded, next)
		if err != nil {
			return nil, err
		}
		index = next
		lat += latDelta
		lon += lonDelta

		coords = append(coords, Coordinate{
			Latitude:  float64(lat) / 1e5,
			Longitude: float64(lon) / 1e5,
		})
	}

	return coords, nil
}

func decodePolylineValue(encoded string, index int) (int, int, error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, fmt.Errorf("%w: truncated at offset %d", ErrMalformedPolyline, index)
		}
		b := int(encoded[index]) - 63
		if b < 0 || b > 0x3f {
			return 0, index, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformedPolyline, encoded[index], index)
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// EncodePolyline 将坐标序列编码为 Google 编码折线（精度 5 位小数）
func EncodePolyline(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	buf := make([]byte, 0, len(coords)*6)
	prevLat, prevLon := 0, 0
	for _, c := range coords {
		lat := int(math.Round(c.Latitude * 1e5))
		lon := int(math.Round(c.Longitude * 1e5))
		buf = appendPolylineValue(buf, lat-prevLat)
		buf = appendPolylineValue(buf, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return string(buf)
}

func appendPolylineValue(buf []byte, v int) []byte {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		buf = append(buf, byte((0x20|(u&0x1f))+63))
		u >>= 5
	}
	return append(buf, byte(u+63))
}
