package game

// Transition 记录一投之后状态机做出的决定
type Transition struct {
	// ResetPins 是否需要把全部球瓶重新摆好
	ResetPins bool
	// FrameClosed 本投是否结束了当前计分格
	FrameClosed bool
	// GameOver 本投之后整局结束
	GameOver bool
}

// FrameStateMachine 计分格/投球序号状态机
//
// 状态：InFrame(1~9, 第1|2投)、TenthFrame(第1|2|3投)、GameOver，初始为 InFrame(1, 1)。
//
// 第 1~9 格：
//   - 第 1 投全中：本格结束，重摆球瓶，进入下一格第 1 投
//   - 第 1 投未全中：进入第 2 投，不重摆
//   - 第 2 投：本格结束，重摆球瓶，进入下一格
//
// 第 10 格：
//   - 第 1 投全中：重摆，进入第 2 投（奖励投）；否则直接进入第 2 投
//   - 第 2 投：第 1 投全中则进入第 3 投且不重摆；前两投补中则重摆并进入第 3 投；否则结束
//   - 第 3 投：结束
//
// 第 10 格第 1、2 投连续全中时，是否在第 3 投前重摆由 tenthFrameDoubleReset 决定。
type FrameStateMachine struct {
	tenthFrameDoubleReset bool
}

// NewFrameStateMachine 创建状态机
//
// 参数:
//   - tenthFrameDoubleReset: 第 10 格前两投都全中时是否在第 3 投前重摆球瓶。
//     false 保持"第 1 投全中后第 2、3 投共用一组球瓶"的原始行为
func NewFrameStateMachine(tenthFrameDoubleReset bool) *FrameStateMachine {
	return &FrameStateMachine{tenthFrameDoubleReset: tenthFrameDoubleReset}
}

// Advance 记录完一投后推进状态
//
// 调用前该投已追加到当前格。GameOver 状态下不做任何事。
func (m *FrameStateMachine) Advance(gs *GameState, knocked int) Transition {
	switch gs.Phase() {
	case PhaseGameOver:
		return Transition{GameOver: true}

	case PhaseInFrame:
		if gs.RollInFrame == 1 && knocked < PinCount {
			gs.RollInFrame = 2
			return Transition{}
		}
		gs.CurrentFrame++
		gs.RollInFrame = 1
		return Transition{ResetPins: true, FrameClosed: true}

	default:
		rolls := gs.Frames[TenthFrame-1].Rolls
		reset := m.resetsAfter(rolls)

		switch gs.RollInFrame {
		case 1:
			gs.RollInFrame = 2
			return Transition{ResetPins: reset}
		case 2:
			first, second := rolls[0], rolls[1]
			if first == PinCount || first+second == PinCount {
				gs.RollInFrame = 3
				return Transition{ResetPins: reset}
			}
		}

		gs.CurrentFrame = GameOverFrame
		return Transition{FrameClosed: true, GameOver: true}
	}
}

// PinsRemaining 当前这一投面对的站立球瓶数（按记录推算）
//
// 第 1~9 格为 10 减去本格已击倒数；第 10 格只计算最近一次重摆之后的投球。
func (m *FrameStateMachine) PinsRemaining(gs *GameState) int {
	f := gs.Current()
	if f == nil {
		return 0
	}

	if gs.CurrentFrame < TenthFrame {
		return clampInt(PinCount-f.Sum(), 0, PinCount)
	}

	deck := PinCount
	for i, r := range f.Rolls {
		deck -= r
		if m.resetsAfter(f.Rolls[:i+1]) {
			deck = PinCount
		}
	}
	return clampInt(deck, 0, PinCount)
}

// resetsAfter 第 10 格投出 rolls 之后是否重摆球瓶
func (m *FrameStateMachine) resetsAfter(rolls []int) bool {
	switch len(rolls) {
	case 1:
		return rolls[0] == PinCount
	case 2:
		first, second := rolls[0], rolls[1]
		if first == PinCount {
			return second == PinCount && m.tenthFrameDoubleReset
		}
		return first+second == PinCount
	default:
		return false
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
