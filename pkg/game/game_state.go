package game

// 局面常量
const (
	// FrameCount 一局的计分格数
	FrameCount = 10

	// TenthFrame 第十格（最多三投）
	TenthFrame = 10

	// GameOverFrame CurrentFrame 等于该值表示整局结束
	GameOverFrame = FrameCount + 1
)

// Frame 单个计分格
// Rolls 按时间顺序记录每一投击倒的球瓶数
type Frame struct {
	Rolls []int
}

// Sum 本格所有投球的击倒总数
func (f Frame) Sum() int {
	total := 0
	for _, r := range f.Rolls {
		total += r
	}
	return total
}

// IsStrike 第一投全中
func (f Frame) IsStrike() bool {
	return len(f.Rolls) > 0 && f.Rolls[0] == PinCount
}

// IsSpare 前两投合计全中（且不是全中）
func (f Frame) IsSpare() bool {
	return len(f.Rolls) >= 2 && f.Rolls[0] < PinCount && f.Rolls[0]+f.Rolls[1] == PinCount
}

// roll 返回第 i 投（从 0 开始），不存在时返回 0
func (f Frame) roll(i int) int {
	if i < len(f.Rolls) {
		return f.Rolls[i]
	}
	return 0
}

// GamePhase 计分格状态机所处阶段
type GamePhase int

const (
	// PhaseInFrame 第 1~9 格
	PhaseInFrame GamePhase = iota
	// PhaseTenthFrame 第 10 格
	PhaseTenthFrame
	// PhaseGameOver 整局结束
	PhaseGameOver
)

// String 返回阶段名称
func (p GamePhase) String() string {
	switch p {
	case PhaseInFrame:
		return "InFrame"
	case PhaseTenthFrame:
		return "TenthFrame"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameState 一局保龄球的权威状态
//
// 由 GameController 独占持有，不是全局单例。
// 不变量：
//   - CurrentFrame 取值 1~11，11 表示整局结束
//   - 第 1~9 格的 RollInFrame 只会是 1 或 2，只有第 10 格会到 3
type GameState struct {
	Frames       [FrameCount]Frame
	CurrentFrame int // 1~10，GameOverFrame 表示结束
	RollInFrame  int // 1~3
	Score        int // 最近一次计算出的累计得分
}

// NewGameState 返回开局状态
func NewGameState() GameState {
	return GameState{
		CurrentFrame: 1,
		RollInFrame:  1,
	}
}

// Phase 返回当前阶段
func (gs *GameState) Phase() GamePhase {
	switch {
	case gs.CurrentFrame >= GameOverFrame:
		return PhaseGameOver
	case gs.CurrentFrame == TenthFrame:
		return PhaseTenthFrame
	default:
		return PhaseInFrame
	}
}

// IsGameOver 整局是否已结束
func (gs *GameState) IsGameOver() bool {
	return gs.Phase() == PhaseGameOver
}

// Current 返回当前计分格（整局结束时返回 nil）
func (gs *GameState) Current() *Frame {
	if gs.CurrentFrame < 1 || gs.CurrentFrame > FrameCount {
		return nil
	}
	return &gs.Frames[gs.CurrentFrame-1]
}

// Clone 深拷贝，调用方修改返回值不影响原状态
func (gs *GameState) Clone() GameState {
	c := *gs
	for i := range gs.Frames {
		if gs.Frames[i].Rolls != nil {
			c.Frames[i].Rolls = append([]int(nil), gs.Frames[i].Rolls...)
		}
	}
	return c
}

// FlattenRolls 按时间顺序展开所有投球
func (gs *GameState) FlattenRolls() []int {
	return flattenFrames(gs.Frames)
}
