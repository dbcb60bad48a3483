package geo

import (
	"errors"
	"math"
	"testing"
)

// TestDecodePolyline 使用 Google 文档中的示例折线
func TestDecodePolyline(t *testing.T) {
	coords, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	if err != nil {
		t.Fatalf("DecodePolyline() error: %v", err)
	}

	expected := []Coordinate{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	if len(coords) != len(expected) {
		t.Fatalf("got %d coordinates, want %d", len(coords), len(expected))
	}
	for i := range expected {
		if math.Abs(coords[i].Latitude-expected[i].Latitude) > 1e-6 ||
			math.Abs(coords[i].Longitude-expected[i].Longitude) > 1e-6 {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], expected[i])
		}
	}
}

// TestEncodePolyline 编码应与示例一致
func TestEncodePolyline(t *testing.T) {
	got := EncodePolyline([]Coordinate{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	})
	if want := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"; got != want {
		t.Errorf("EncodePolyline() = %q, want %q", got, want)
	}

	if EncodePolyline(nil) != "" {
		t.Error("EncodePolyline(nil) should be empty")
	}
}

// TestDecodePolylineMalformed 测试截断与非法字符
func TestDecodePolylineMalformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"截断", "_p~iF~ps|U_"},
		{"只有纬度", "_p~iF"},
		{"非法字符", "_p~iF\x01ps|U"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePolyline(tt.encoded)
			if !errors.Is(err, ErrMalformedPolyline) {
				t.Errorf("DecodePolyline(%q) error = %v, want ErrMalformedPolyline", tt.encoded, err)
			}
		})
	}

	coords, err := DecodePolyline("")
	if err != nil || coords != nil {
		t.Errorf("DecodePolyline(\"\") = %v, %v; want nil, nil", coords, err)
	}
}
