// Package config 定义镜头过渡的可调常量，并负责 YAML 加载与校验
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/navcam/pkg/utils"
)

// ErrInvalidCameraTransitionConfig 配置值不在合理范围内
var ErrInvalidCameraTransitionConfig = errors.New("invalid camera transition config")

// AxisTiming 单个轴的时长映射：duration = clamp(delta / Speed, MinDuration, MaxDuration)
//
// SettleOffset 决定该轴相对缩放轴的收尾时刻：
// delay = max(zoomEnd - duration - SettleOffset, 0)
type AxisTiming struct {
	// Speed 每秒变化量（中心：米/秒，缩放：级/秒，方位：度/秒）
	Speed float64 `yaml:"speed"`

	// MinDuration 最短时长（秒）
	MinDuration float64 `yaml:"minDuration"`

	// MaxDuration 最长时长（秒）
	MaxDuration float64 `yaml:"maxDuration"`

	// SettleOffset 提前于缩放轴结束的秒数（负值表示稍晚结束）
	SettleOffset float64 `yaml:"settleOffset"`
}

// Duration 根据变化量计算时长
func (a AxisTiming) Duration(delta float64) float64 {
	if delta < 0 {
		delta = -delta
	}
	return utils.Clamp(delta/a.Speed, a.MinDuration, a.MaxDuration)
}

// TransitionTiming 一种过渡策略的完整常量表
type TransitionTiming struct {
	Center  AxisTiming `yaml:"center"`
	Zoom    AxisTiming `yaml:"zoom"`
	Bearing AxisTiming `yaml:"bearing"`

	// PitchDuration 俯仰角（连同锚点）的固定时长（秒）
	PitchDuration float64 `yaml:"pitchDuration"`

	// PitchSettleOffset 俯仰角相对缩放轴提前结束的秒数
	PitchSettleOffset float64 `yaml:"pitchSettleOffset"`

	// Curve 过渡使用的时间曲线
	Curve utils.CubicBezier `yaml:"curve"`
}

// UpdateConfig 跟随/总览状态下逐帧微调镜头的参数
type UpdateConfig struct {
	// Duration 每次微调动画时长（秒）
	Duration float64 `yaml:"duration"`

	// SnappyCurve 默认曲线
	SnappyCurve utils.CubicBezier `yaml:"snappyCurve"`

	// EasedCurve 缩小、大角度旋转、抬高俯仰时使用的曲线
	EasedCurve utils.CubicBezier `yaml:"easedCurve"`

	// EasedBearingThreshold 方位角差超过该值（度）时使用 EasedCurve
	EasedBearingThreshold float64 `yaml:"easedBearingThreshold"`

	// MinimumCenterPixelThreshold 跟随状态下中心移动小于该屏幕点数时不更新
	MinimumCenterPixelThreshold float64 `yaml:"minimumCenterPixelThreshold"`

	// MinimumBearingThreshold 跟随状态下方位角变化小于该值（度）时不更新
	MinimumBearingThreshold float64 `yaml:"minimumBearingThreshold"`

	// MinimumPitchThreshold 跟随状态下俯仰角变化小于该值（度）时不更新
	MinimumPitchThreshold float64 `yaml:"minimumPitchThreshold"`
}

// ViewportConfig 视口数据源生成跟随/总览镜头的参数
type ViewportConfig struct {
	FollowingZoom  float64 `yaml:"followingZoom"`
	FollowingPitch float64 `yaml:"followingPitch"`

	// FollowingAnchorOffset 锚点相对安全区域中心向下偏移的比例 [0, 0.5)
	FollowingAnchorOffset float64 `yaml:"followingAnchorOffset"`

	OverviewMaxZoom float64 `yaml:"overviewMaxZoom"`
}

// CameraTransitionConfig 镜头过渡引擎的全部可调常量
//
// 配置文件中缺省的字段保留 DefaultCameraTransitionConfig 中的值。
type CameraTransitionConfig struct {
	// ZoomIn 单阶段放大（低缩放 → 高缩放）
	ZoomIn TransitionTiming `yaml:"zoomIn"`

	// ZoomOut 单阶段缩小（高缩放 → 低缩放）
	ZoomOut TransitionTiming `yaml:"zoomOut"`

	// Midpoint 目标在屏幕外时第一阶段（压平并缩小到中间视角）
	Midpoint TransitionTiming `yaml:"midpoint"`

	// OffscreenHalo 判断目标是否在屏幕外时对视口的膨胀量（点），负值表示向内收缩
	OffscreenHalo float64 `yaml:"offscreenHalo"`

	// Update 逐帧微调
	Update UpdateConfig `yaml:"update"`

	// Viewport 视口数据源
	Viewport ViewportConfig `yaml:"viewport"`

	MinZoom  float64 `yaml:"minZoom"`
	MaxZoom  float64 `yaml:"maxZoom"`
	MaxPitch float64 `yaml:"maxPitch"`
}

// DefaultCameraTransitionConfig 返回经验调优的默认值
//
// 放大时平移更快（1500 米/秒），缩小时更慢（1000 米/秒）；缩放轴是节奏轴，其余轴与其同时收尾。
func DefaultCameraTransitionConfig() *CameraTransitionConfig {
	return &CameraTransitionConfig{
		ZoomIn: TransitionTiming{
			Center:            AxisTiming{Speed: 1500, MinDuration: 0.6, MaxDuration: 1.6, SettleOffset: 0},
			Zoom:              AxisTiming{Speed: 3, MinDuration: 0.6, MaxDuration: 1.6},
			Bearing:           AxisTiming{Speed: 60, MinDuration: 0.6, MaxDuration: 1.2, SettleOffset: 0.1},
			PitchDuration:     0.8,
			PitchSettleOffset: 0.1,
			Curve:             utils.CurveEaseInOut,
		},
		ZoomOut: TransitionTiming{
			Center:            AxisTiming{Speed: 1000, MinDuration: 0.6, MaxDuration: 1.6, SettleOffset: 0},
			Zoom:              AxisTiming{Speed: 2, MinDuration: 0.6, MaxDuration: 1.6},
			Bearing:           AxisTiming{Speed: 45, MinDuration: 0.6, MaxDuration: 1.2, SettleOffset: 0.1},
			PitchDuration:     0.6,
			PitchSettleOffset: 0.2,
			Curve:             utils.CurveEaseInOut,
		},
		Midpoint: TransitionTiming{
			Center:            AxisTiming{Speed: 1000, MinDuration: 0.8, MaxDuration: 1.6, SettleOffset: 0},
			Zoom:              AxisTiming{Speed: 2, MinDuration: 0.6, MaxDuration: 1.2},
			Bearing:           AxisTiming{Speed: 45, MinDuration: 0.6, MaxDuration: 1.2, SettleOffset: 0},
			PitchDuration:     0.6,
			PitchSettleOffset: 0,
			Curve:             utils.CurveEaseInOut,
		},
		OffscreenHalo: -40,
		Update: UpdateConfig{
			Duration:                    1.0,
			SnappyCurve:                 utils.CurveLinear,
			EasedCurve:                  utils.CurveEaseInOut,
			EasedBearingThreshold:       60,
			MinimumCenterPixelThreshold: 2,
			MinimumBearingThreshold:     1,
			MinimumPitchThreshold:       1,
		},
		Viewport: ViewportConfig{
			FollowingZoom:         16.35,
			FollowingPitch:        45,
			FollowingAnchorOffset: 0.25,
			OverviewMaxZoom:       16.35,
		},
		MinZoom:  0,
		MaxZoom:  22,
		MaxPitch: 85,
	}
}

// LoadCameraTransitionConfig 从 YAML 文件加载配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *CameraTransitionConfig: 在默认值之上覆盖文件内容后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadCameraTransitionConfig(path string) (*CameraTransitionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read camera transition config: %w", err)
	}
	return ParseCameraTransitionConfig(data)
}

// ParseCameraTransitionConfig 解析 YAML 内容并校验
func ParseCameraTransitionConfig(data []byte) (*CameraTransitionConfig, error) {
	cfg := DefaultCameraTransitionConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse camera transition config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone 深拷贝（结构体只含值类型）
func (c *CameraTransitionConfig) Clone() *CameraTransitionConfig {
	clone := *c
	return &clone
}

// Validate 校验配置有效性
//
// 检查规则：
//   - 每个轴的速度为正，0 ≤ MinDuration ≤ MaxDuration
//   - 俯仰时长非负，曲线控制点 X 在 [0, 1]
//   - 微调时长为正，阈值非负
//   - 缩放范围与最大俯仰角合理
func (c *CameraTransitionConfig) Validate() error {
	tables := []struct {
		name   string
		timing TransitionTiming
	}{
		{"zoomIn", c.ZoomIn},
		{"zoomOut", c.ZoomOut},
		{"midpoint", c.Midpoint},
	}
	for _, tbl := range tables {
		if err := tbl.timing.validate(tbl.name); err != nil {
			return err
		}
	}

	u := c.Update
	if u.Duration <= 0 {
		return invalidf("update.duration must be positive, got %.3f", u.Duration)
	}
	if !u.SnappyCurve.IsValid() || !u.EasedCurve.IsValid() {
		return invalidf("update curves must have control point x in [0, 1]")
	}
	if u.EasedBearingThreshold < 0 || u.MinimumCenterPixelThreshold < 0 ||
		u.MinimumBearingThreshold < 0 || u.MinimumPitchThreshold < 0 {
		return invalidf("update thresholds must not be negative")
	}

	if c.MinZoom < 0 || c.MinZoom >= c.MaxZoom {
		return invalidf("zoom range invalid: min(%.2f) >= max(%.2f)", c.MinZoom, c.MaxZoom)
	}
	if c.MaxPitch < 0 || c.MaxPitch > 85 {
		return invalidf("maxPitch must be in [0, 85], got %.1f", c.MaxPitch)
	}

	v := c.Viewport
	if v.FollowingAnchorOffset < 0 || v.FollowingAnchorOffset >= 0.5 {
		return invalidf("viewport.followingAnchorOffset must be in [0, 0.5), got %.2f", v.FollowingAnchorOffset)
	}
	if v.FollowingPitch < 0 || v.FollowingPitch > c.MaxPitch {
		return invalidf("viewport.followingPitch must be in [0, %.1f], got %.1f", c.MaxPitch, v.FollowingPitch)
	}
	if v.FollowingZoom < c.MinZoom || v.FollowingZoom > c.MaxZoom ||
		v.OverviewMaxZoom < c.MinZoom || v.OverviewMaxZoom > c.MaxZoom {
		return invalidf("viewport zoom levels must be within [%.2f, %.2f]", c.MinZoom, c.MaxZoom)
	}

	return nil
}

func (t TransitionTiming) validate(name string) error {
	axes := []struct {
		axis   string
		timing AxisTiming
	}{
		{"center", t.Center},
		{"zoom", t.Zoom},
		{"bearing", t.Bearing},
	}
	for _, a := range axes {
		if a.timing.Speed <= 0 {
			return invalidf("%s.%s.speed must be positive, got %.3f", name, a.axis, a.timing.Speed)
		}
		if a.timing.MinDuration < 0 || a.timing.MinDuration > a.timing.MaxDuration {
			return invalidf("%s.%s duration range invalid: min(%.2f) > max(%.2f)",
				name, a.axis, a.timing.MinDuration, a.timing.MaxDuration)
		}
	}
	if t.PitchDuration < 0 {
		return invalidf("%s.pitchDuration must not be negative, got %.2f", name, t.PitchDuration)
	}
	if !t.Curve.IsValid() {
		return invalidf("%s.curve must have control point x in [0, 1]", name)
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCameraTransitionConfig, fmt.Sprintf(format, args...))
}
