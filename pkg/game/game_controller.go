package game

import (
	"fmt"
	"log"
	"time"
)

// 提示文字
const (
	InstructionThrowing = "Good luck!"
	InstructionAim      = "Click and drag to aim and shoot!"
)

// PinRack 物理系统对外暴露的重摆命令
type PinRack interface {
	// ResetPins 把 10 个球瓶恢复到初始直立位置，速度清零
	ResetPins()
	// ResetBall 把球放回出手位置，速度清零
	ResetBall()
}

// DisplayState UI 需要显示的内容
type DisplayState struct {
	Score       int
	Instruction string
	GameOver    bool
}

// ControllerConfig GameController 的可调参数
type ControllerConfig struct {
	SettleDelay           time.Duration
	TiltThreshold         float64 // 弧度
	FallenHeight          float64
	TenthFrameDoubleReset bool
}

// DefaultControllerConfig 返回默认参数
// 第 10 格连续两次全中默认重摆球瓶，否则第 3 投无瓶可打、满分 300 无法达成；旧规则需显式设为 false
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		SettleDelay:           DefaultSettleDelay,
		TiltThreshold:         DefaultTiltThreshold,
		FallenHeight:          DefaultFallenHeight,
		TenthFrameDoubleReset: true,
	}
}

// GameController 保龄球计分核心的调度者
//
// 职责：
//   - 出手事件交给 SettlementDetector
//   - 每个 tick 采样球瓶姿态，稳定后依次调用 RollRecorder → FrameStateMachine → ScoreCalculator
//   - 根据状态机的决定向物理系统发出重摆命令
//   - 维护 UI 显示状态
//
// GameState 与站立记录 PinSet 由控制器独占；单线程、tick 驱动，不加锁。
type GameController struct {
	rack     PinRack
	sampler  PinStateSampler
	detector *SettlementDetector
	machine  *FrameStateMachine
	recorder *RollRecorder

	state    GameState
	standing PinSet
	now      time.Duration
	display  DisplayState

	onRoll func(RollResult)
}

// NewGameController 创建控制器
//
// 参数:
//   - cfg: 可调参数
//   - rack: 物理系统的重摆命令接口，可为 nil（纯计分/测试场景）
func NewGameController(cfg ControllerConfig, rack PinRack) *GameController {
	sampler := NewPinStateSampler()
	if cfg.TiltThreshold > 0 {
		sampler.TiltThreshold = cfg.TiltThreshold
	}
	if cfg.FallenHeight > 0 {
		sampler.FallenHeight = cfg.FallenHeight
	}

	machine := NewFrameStateMachine(cfg.TenthFrameDoubleReset)
	c := &GameController{
		rack:     rack,
		sampler:  sampler,
		detector: NewSettlementDetector(cfg.SettleDelay),
		machine:  machine,
		recorder: NewRollRecorder(machine),
	}
	c.resetState()
	return c
}

// SetOnRoll 注册投球记录回调
func (c *GameController) SetOnRoll(fn func(RollResult)) {
	c.onRoll = fn
}

// Throw 投球出手
//
// 有在途投球或整局已结束时忽略，返回 false。调用方只有在返回 true 时才应把冲量交给物理系统。
func (c *GameController) Throw() bool {
	if c.state.IsGameOver() {
		log.Printf("[GameController] 整局已结束，忽略投球")
		return false
	}
	if !c.detector.Begin(c.standing, c.now) {
		log.Printf("[GameController] 上一投尚未结算，忽略投球")
		return false
	}
	log.Printf("[GameController] 出手: frame=%d roll=%d standing=%d",
		c.state.CurrentFrame, c.state.RollInFrame, c.standing.StandingCount())
	c.refreshDisplay()
	return true
}

// Update 每个模拟 tick 调用一次
//
// 参数:
//   - deltaTime: 距上一 tick 的时间（秒）
//   - poses: 按球瓶下标排列的 10 个姿态
//
// 返回:
//   - *RollResult: 本 tick 结算了一投时返回结果，否则为 nil
func (c *GameController) Update(deltaTime float64, poses []PinPose) *RollResult {
	if deltaTime > 0 {
		c.now += time.Duration(deltaTime * float64(time.Second))
	}
	if !c.detector.IsMonitoring() {
		return nil
	}

	current, ok := c.sampler.Sample(poses)
	if !ok {
		log.Printf("[GameController] 姿态数量错误: got %d, want %d", len(poses), PinCount)
		return nil
	}

	knocked, settled := c.detector.Observe(&c.standing, current, c.now)
	if !settled {
		return nil
	}
	return c.recordRoll(knocked)
}

// NoteActivity 通知控制器场上仍有运动（球未到达球瓶区或仍在滚动）
// 推迟稳定判定；没有在途投球时无效果
func (c *GameController) NoteActivity() {
	c.detector.Touch(c.now)
}

// CompleteThrow 投球已确定完成时的同步结算（防止漏掉 tick）
//
// 立即采样一次并结算，不等待稳定时长。没有在途投球时返回 nil, false。
func (c *GameController) CompleteThrow(poses []PinPose) (*RollResult, bool) {
	if !c.detector.IsMonitoring() {
		return nil, false
	}
	current, ok := c.sampler.Sample(poses)
	if !ok {
		log.Printf("[GameController] 姿态数量错误: got %d, want %d", len(poses), PinCount)
		return nil, false
	}
	knocked, _ := c.detector.Settle(&c.standing, current)
	return c.recordRoll(knocked), true
}

// Reset 整局重置
// 丢弃在途投球，局面、站立记录、检测器和显示状态一起回到开局值
func (c *GameController) Reset() {
	c.resetState()
	if c.rack != nil {
		c.rack.ResetPins()
		c.rack.ResetBall()
	}
	log.Printf("[GameController] 整局重置")
}

// State 返回局面的拷贝
func (c *GameController) State() GameState {
	return c.state.Clone()
}

// Standing 返回当前站立记录
func (c *GameController) Standing() PinSet {
	return c.standing
}

// Display 返回 UI 显示状态
func (c *GameController) Display() DisplayState {
	return c.display
}

// IsMonitoring 是否有在途投球
func (c *GameController) IsMonitoring() bool {
	return c.detector.IsMonitoring()
}

// IsGameOver 整局是否结束
func (c *GameController) IsGameOver() bool {
	return c.state.IsGameOver()
}

// Now 控制器时钟
func (c *GameController) Now() time.Duration {
	return c.now
}

func (c *GameController) resetState() {
	c.state = NewGameState()
	c.standing = AllStandingPins()
	c.detector.Cancel()
	c.refreshDisplay()
}

func (c *GameController) recordRoll(knocked int) *RollResult {
	result, ok := c.recorder.Record(&c.state, knocked)
	if !ok {
		c.refreshDisplay()
		return nil
	}

	log.Printf("[GameController] 记录: frame=%d roll=%d knocked=%d score=%d",
		result.Frame, result.Roll, result.Knocked, result.Score)

	if result.Transition.ResetPins {
		c.standing = AllStandingPins()
		if c.rack != nil {
			c.rack.ResetPins()
		}
	}
	if c.rack != nil {
		c.rack.ResetBall()
	}
	if result.Transition.GameOver {
		log.Printf("[GameController] 整局结束，最终得分 %d", result.Score)
	}

	c.refreshDisplay()
	if c.onRoll != nil {
		c.onRoll(result)
	}
	return &result
}

func (c *GameController) refreshDisplay() {
	c.display = DisplayState{
		Score:       c.state.Score,
		Instruction: Instruction(&c.state, c.detector.IsMonitoring()),
		GameOver:    c.state.IsGameOver(),
	}
}

// Instruction 由局面推导提示文字
func Instruction(gs *GameState, throwing bool) string {
	if gs.IsGameOver() {
		return fmt.Sprintf("Game over! Final score: %d. Press Reset to play again.", gs.Score)
	}
	if throwing {
		return InstructionThrowing
	}
	if gs.CurrentFrame < TenthFrame {
		return fmt.Sprintf("Frame %d - Roll %d", gs.CurrentFrame, gs.RollInFrame)
	}

	firstStrike := gs.Frames[TenthFrame-1].IsStrike()
	switch {
	case gs.RollInFrame == 2 && firstStrike:
		return "Frame 10 - Bonus Roll 1"
	case gs.RollInFrame == 3 && firstStrike:
		return "Frame 10 - Bonus Roll 2"
	case gs.RollInFrame == 3:
		return "Frame 10 - Bonus Roll"
	default:
		return fmt.Sprintf("Frame 10 - Roll %d", gs.RollInFrame)
	}
}
