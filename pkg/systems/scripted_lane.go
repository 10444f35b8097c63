package systems

import (
	"fmt"

	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/game"
)

// scriptedTick 脚本球道的模拟步长
const scriptedTick = 1.0 / 60.0

// maxScriptedTicks 单投最多模拟的 tick 数
const maxScriptedTicks = 60 * 30

// ScriptedLane 无界面的脚本球道
//
// 不需要出手冲量：每一投直接指定推倒几个直立球瓶，之后由 LanePhysicsSystem 完成倾倒，
// 由 GameController 按真实的稳定检测流程计分。用于命令行工具和集成测试。
type ScriptedLane struct {
	physics *LanePhysicsSystem
	monitor *PinMonitorSystem
}

// NewScriptedLane 创建脚本球道
func NewScriptedLane(cfg *config.BowlingConfig) (*ScriptedLane, error) {
	em := ecs.NewEntityManager()
	physics, err := NewLanePhysicsSystem(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create lane: %w", err)
	}
	return &ScriptedLane{
		physics: physics,
		monitor: NewPinMonitorSystem(em),
	}, nil
}

// ResetPins 实现 game.PinRack
func (l *ScriptedLane) ResetPins() {
	l.physics.ResetPins()
}

// ResetBall 实现 game.PinRack
func (l *ScriptedLane) ResetBall() {
	l.physics.ResetBall()
}

// Knock 按编号顺序推倒最多 n 个直立球瓶，返回实际推倒数
func (l *ScriptedLane) Knock(n int) int {
	done := 0
	for i := 0; i < game.PinCount && done < n; i++ {
		if l.physics.KnockPin(i, game.Vec3{Z: -1}) {
			done++
		}
	}
	return done
}

// Standing 直立球瓶数（按物理状态）
func (l *ScriptedLane) Standing() int {
	n := 0
	for i := 0; i < game.PinCount; i++ {
		if l.physics.IsPinUp(i) {
			n++
		}
	}
	return n
}

// Poses 当前姿态
func (l *ScriptedLane) Poses() []game.PinPose {
	return l.monitor.Poses()
}

// Roll 完整模拟一投：出手、推倒 n 个球瓶、逐 tick 推进直到结算
//
// 返回:
//   - game.RollResult: 结算结果
//   - error: 控制器拒绝出手或超时未结算时返回错误
func (l *ScriptedLane) Roll(c *game.GameController, n int) (game.RollResult, error) {
	if !c.Throw() {
		return game.RollResult{}, fmt.Errorf("throw rejected (game over: %v)", c.IsGameOver())
	}
	l.Knock(n)

	for i := 0; i < maxScriptedTicks; i++ {
		l.physics.Update(scriptedTick)
		if l.physics.BallInPlay() {
			c.NoteActivity()
		}
		if r := c.Update(scriptedTick, l.monitor.Poses()); r != nil {
			return *r, nil
		}
	}
	return game.RollResult{}, fmt.Errorf("roll did not settle after %d ticks", maxScriptedTicks)
}

// RollImmediate 与 Roll 相同，但不等待稳定时长：物理静止后立即同步结算
func (l *ScriptedLane) RollImmediate(c *game.GameController, n int) (game.RollResult, error) {
	if !c.Throw() {
		return game.RollResult{}, fmt.Errorf("throw rejected (game over: %v)", c.IsGameOver())
	}
	l.Knock(n)

	for i := 0; i < maxScriptedTicks && l.physics.Moving(); i++ {
		l.physics.Update(scriptedTick)
		if r := c.Update(scriptedTick, l.monitor.Poses()); r != nil {
			return *r, nil
		}
	}
	r, ok := c.CompleteThrow(l.monitor.Poses())
	if !ok || r == nil {
		return game.RollResult{}, fmt.Errorf("roll could not be completed")
	}
	return *r, nil
}
