package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// BowlingSettings 玩家偏好设置
// 只保存显示偏好，不保存任何对局记录
type BowlingSettings struct {
	ShowDebugOverlay bool `yaml:"showDebugOverlay"` // 显示球瓶采样/稳定计时调试信息
	ShowAimLine      bool `yaml:"showAimLine"`      // 拖拽时显示瞄准线
	ShowScoreSheet   bool `yaml:"showScoreSheet"`   // 显示完整记分牌
}

// DefaultSettings 返回默认设置
func DefaultSettings() *BowlingSettings {
	return &BowlingSettings{
		ShowDebugOverlay: false,
		ShowAimLine:      true,
		ShowScoreSheet:   true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *BowlingSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "bowling"
)

// NewSettingsManager 创建设置管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 加载失败不是致命错误，使用默认设置并记录警告。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *BowlingSettings {
	return sm.settings
}

// ToggleDebugOverlay 切换调试信息显示，返回新值
// 仅修改内存，需调用 Save() 持久化
func (sm *SettingsManager) ToggleDebugOverlay() bool {
	sm.settings.ShowDebugOverlay = !sm.settings.ShowDebugOverlay
	return sm.settings.ShowDebugOverlay
}

// SetShowAimLine 设置是否显示瞄准线
func (sm *SettingsManager) SetShowAimLine(enabled bool) {
	sm.settings.ShowAimLine = enabled
}

// SetShowScoreSheet 设置是否显示完整记分牌
func (sm *SettingsManager) SetShowScoreSheet(enabled bool) {
	sm.settings.ShowScoreSheet = enabled
}
