// cmd/camera_showcase/config.go
// 镜头演示程序的配置文件加载和解析模块

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/navcam/pkg/config"
	"github.com/decker502/navcam/pkg/geo"
	"github.com/decker502/navcam/pkg/types"
)

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RouteConfig 模拟路线配置
type RouteConfig struct {
	// Polyline 编码折线（精度 1e5）
	Polyline string `yaml:"polyline"`

	// Speed 车辆速度（米/秒）
	Speed float64 `yaml:"speed"`
}

// ShowcaseConfig 演示程序完整配置
type ShowcaseConfig struct {
	Window          WindowConfig     `yaml:"window"`
	Route           RouteConfig      `yaml:"route"`
	StartPose       types.CameraPose `yaml:"start_pose"`
	ViewportPadding types.EdgeInsets `yaml:"viewport_padding"`

	// TransitionConfig 过渡常量文件，为空时使用默认值（或已保存的调优）
	TransitionConfig string `yaml:"transition_config"`
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*ShowcaseConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg ShowcaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 设置默认值
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 400
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 800
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Navigation Camera Showcase"
	}
	if cfg.Route.Speed == 0 {
		cfg.Route.Speed = 60
	}
	if cfg.StartPose.Zoom == 0 {
		cfg.StartPose.Zoom = 3
	}

	return &cfg, nil
}

// DecodeRoute 解码路线折线
func (c *ShowcaseConfig) DecodeRoute() ([]geo.Coordinate, error) {
	route, err := geo.DecodePolyline(c.Route.Polyline)
	if err != nil {
		return nil, fmt.Errorf("解码路线失败: %w", err)
	}
	if len(route) < 2 {
		return nil, fmt.Errorf("路线至少需要 2 个点，实际 %d 个", len(route))
	}
	return route, nil
}

// LoadTransitionConfig 加载过渡常量文件；未配置时返回 nil
func (c *ShowcaseConfig) LoadTransitionConfig() (*config.CameraTransitionConfig, error) {
	if c.TransitionConfig == "" {
		return nil, nil
	}
	return config.LoadCameraTransitionConfig(c.TransitionConfig)
}
