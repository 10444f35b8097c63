package game

import "log"

// RollResult 一次记录投球的结果
type RollResult struct {
	Frame      int // 投球所在格（1~10）
	Roll       int // 格内第几投（1~3）
	Raw        int // 采样得到的原始击倒数
	Knocked    int // 钳制后实际记录的击倒数
	Score      int // 记录后的累计得分
	Transition Transition
}

// Clamped 原始击倒数是否被修正过
func (r RollResult) Clamped() bool {
	return r.Raw != r.Knocked
}

// RollRecorder 把击倒数写入当前计分格
//
// 原始击倒数会被钳制到 [0, 剩余球瓶数]，这是防止采样误差导致"击倒数多于实际球瓶"
// 的唯一防线。记录后立即重算得分，再交给状态机决定下一投。
type RollRecorder struct {
	machine    *FrameStateMachine
	calculator ScoreCalculator
}

// NewRollRecorder 创建投球记录器
func NewRollRecorder(machine *FrameStateMachine) *RollRecorder {
	return &RollRecorder{machine: machine}
}

// Record 记录一投
//
// 参数:
//   - gs: 权威局面，原地修改
//   - raw: 原始击倒数
//
// 返回:
//   - RollResult: 记录结果
//   - bool: 整局已结束时返回 false，不记录
func (r *RollRecorder) Record(gs *GameState, raw int) (RollResult, bool) {
	frame := gs.Current()
	if frame == nil || gs.IsGameOver() {
		return RollResult{}, false
	}

	remaining := r.machine.PinsRemaining(gs)
	knocked := clampInt(raw, 0, remaining)
	if knocked != raw {
		log.Printf("[RollRecorder] 击倒数修正: frame=%d roll=%d raw=%d remaining=%d -> %d",
			gs.CurrentFrame, gs.RollInFrame, raw, remaining, knocked)
	}

	result := RollResult{
		Frame:   gs.CurrentFrame,
		Roll:    gs.RollInFrame,
		Raw:     raw,
		Knocked: knocked,
	}

	frame.Rolls = append(frame.Rolls, knocked)
	gs.Score = r.calculator.Compute(gs.Frames)
	result.Score = gs.Score

	result.Transition = r.machine.Advance(gs, knocked)
	return result, true
}
