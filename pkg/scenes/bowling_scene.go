package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/game"
	"github.com/decker502/bowling/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BowlingScene 保龄球场景
//
// 每个 tick 的顺序：
//  1. 处理按键和重置按钮
//  2. 拖拽出手 → GameController.Throw → 物理系统施加冲量
//  3. 物理步进
//  4. 球仍在滚动时推迟稳定判定
//  5. 收集球瓶姿态交给 GameController
type BowlingScene struct {
	cfg      *config.BowlingConfig
	settings *game.SettingsManager

	entityManager *ecs.EntityManager
	physics       *systems.LanePhysicsSystem
	monitor       *systems.PinMonitorSystem
	input         *systems.ThrowInputSystem
	controller    *game.GameController

	lastRoll *game.RollResult
}

// NewBowlingScene 创建保龄球场景
//
// 参数:
//   - cfg: 已验证的保龄球配置
//   - settings: 玩家偏好，可为 nil（仅内存默认设置）
//   - pointer: 指针读取函数，nil 时读取鼠标/触摸
//
// 返回:
//   - *BowlingScene: 场景实例
//   - error: 创建球道实体失败时返回错误
func NewBowlingScene(cfg *config.BowlingConfig, settings *game.SettingsManager, pointer systems.PointerFunc) (*BowlingScene, error) {
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}

	em := ecs.NewEntityManager()
	physics, err := systems.NewLanePhysicsSystem(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create lane: %w", err)
	}

	s := &BowlingScene{
		cfg:           cfg,
		settings:      settings,
		entityManager: em,
		physics:       physics,
		monitor:       systems.NewPinMonitorSystem(em),
		input:         systems.NewThrowInputSystem(cfg.Ball, pointer),
	}
	s.controller = game.NewGameController(ControllerConfigFrom(cfg), physics)
	s.controller.SetOnRoll(s.onRoll)

	log.Printf("[BowlingScene] 场景创建完成: settleDelay=%v tenthFrameDoubleReset=%v",
		cfg.SettleDelay(), cfg.Scoring.TenthFrameDoubleReset)
	return s, nil
}

// ControllerConfigFrom 由配置文件生成控制器参数
func ControllerConfigFrom(cfg *config.BowlingConfig) game.ControllerConfig {
	return game.ControllerConfig{
		SettleDelay:           cfg.SettleDelay(),
		TiltThreshold:         cfg.TiltThreshold(),
		FallenHeight:          cfg.Sampler.FallenHeight,
		TenthFrameDoubleReset: cfg.Scoring.TenthFrameDoubleReset,
	}
}

// Controller 返回计分控制器
func (s *BowlingScene) Controller() *game.GameController {
	return s.controller
}

// Update 更新场景
func (s *BowlingScene) Update(deltaTime float64) {
	s.handleKeys()

	if pressed, x, y := systems.PointerJustPressed(); pressed && config.InResetButton(float64(x), float64(y)) {
		s.input.Cancel()
		s.Reset()
	}

	if impulse, thrown := s.input.Update(s.canThrow()); thrown {
		s.Throw(impulse)
	}

	s.step(deltaTime)
}

// Throw 出手：控制器接受后才把冲量交给物理系统
func (s *BowlingScene) Throw(impulse game.Vec3) bool {
	if !s.controller.Throw() {
		return false
	}
	s.physics.ApplyImpulse(impulse)
	return true
}

// Reset 整局重置（实现 game.Resettable）
func (s *BowlingScene) Reset() {
	s.controller.Reset()
	s.lastRoll = nil
}

// step 物理步进并驱动计分
func (s *BowlingScene) step(deltaTime float64) {
	s.physics.Update(deltaTime)
	if s.physics.BallInPlay() {
		s.controller.NoteActivity()
	}
	s.controller.Update(deltaTime, s.monitor.Poses())
}

func (s *BowlingScene) canThrow() bool {
	return !s.controller.IsMonitoring() && !s.controller.IsGameOver()
}

func (s *BowlingScene) onRoll(r game.RollResult) {
	s.lastRoll = &r
}

// handleKeys 键盘快捷键（R 整局重置由 App 通过 SceneManager.ResetCurrent 处理）
//   - D: 切换调试信息
//   - S: 切换完整记分牌
//   - A: 切换瞄准线
func (s *BowlingScene) handleKeys() {
	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		s.settings.ToggleDebugOverlay()
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.settings.SetShowScoreSheet(!s.settings.GetSettings().ShowScoreSheet)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		s.settings.SetShowAimLine(!s.settings.GetSettings().ShowAimLine)
		changed = true
	}
	if changed {
		if err := s.settings.Save(); err != nil {
			log.Printf("[BowlingScene] Warning: %v", err)
		}
	}
}
