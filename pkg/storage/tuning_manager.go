// Package storage 持久化用户调整过的镜头过渡常量
//
// 使用 gdata 跨平台存储（桌面、移动端、浏览器），内容为 YAML。
// gdata 管理器为 nil 时进入降级模式：调整只保存在内存中。
package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/decker502/navcam/pkg/config"
)

// 存储路径常量
const (
	tuningObject   = "tuning"
	tuningProperty = "camera_transition"
)

// TuningManager 镜头过渡常量的加载、保存与内存管理
type TuningManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	config       *config.CameraTransitionConfig
	logger       zerolog.Logger
}

// NewTuningManager 创建调优管理器并尝试加载已保存的常量
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，仅内存）
//   - logger: 日志
//
// 加载失败不是致命错误：记录警告并使用默认值。
func NewTuningManager(gdataManager *gdata.Manager, logger zerolog.Logger) *TuningManager {
	tm := &TuningManager{
		gdataManager: gdataManager,
		config:       config.DefaultCameraTransitionConfig(),
		logger:       logger.With().Str("component", "tuning").Logger(),
	}

	if err := tm.Load(); err != nil {
		tm.logger.Warn().Err(err).Msg("failed to load camera tuning, using defaults")
	}
	return tm
}

// Load 从 gdata 加载常量；没有保存过时使用默认值
//
// 返回：
//   - error: 读取、解析或校验失败时返回错误，此时使用默认值
func (tm *TuningManager) Load() error {
	if tm.gdataManager == nil || !tm.gdataManager.ObjectPropExists(tuningObject, tuningProperty) {
		tm.config = config.DefaultCameraTransitionConfig()
		return nil
	}

	data, err := tm.gdataManager.LoadObjectProp(tuningObject, tuningProperty)
	if err != nil {
		tm.config = config.DefaultCameraTransitionConfig()
		return fmt.Errorf("failed to load camera tuning: %w", err)
	}

	cfg, err := config.ParseCameraTransitionConfig(data)
	if err != nil {
		tm.config = config.DefaultCameraTransitionConfig()
		return fmt.Errorf("failed to parse camera tuning: %w", err)
	}

	tm.config = cfg
	tm.logger.Info().Msg("camera tuning loaded")
	return nil
}

// Save 保存当前常量；降级模式下不做任何事
func (tm *TuningManager) Save() error {
	if tm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(tm.config)
	if err != nil {
		return fmt.Errorf("failed to marshal camera tuning: %w", err)
	}
	if err := tm.gdataManager.SaveObjectProp(tuningObject, tuningProperty, data); err != nil {
		return fmt.Errorf("failed to save camera tuning: %w", err)
	}

	tm.logger.Info().Msg("camera tuning saved")
	return nil
}

// Config 返回当前常量的副本
func (tm *TuningManager) Config() *config.CameraTransitionConfig {
	return tm.config.Clone()
}

// SetConfig 校验并替换当前常量（需调用 Save 持久化）
func (tm *TuningManager) SetConfig(cfg *config.CameraTransitionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	tm.config = cfg.Clone()
	return nil
}

// Reset 恢复默认值并覆盖已保存的常量
func (tm *TuningManager) Reset() error {
	tm.config = config.DefaultCameraTransitionConfig()
	return tm.Save()
}
