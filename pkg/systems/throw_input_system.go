package systems

import (
	"math"

	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ThrowImpulse 由拖拽向量计算出手冲量
//
// 冲量大小为 min(拖拽长度, MaxDrag) * ForceScale，方向为 (dx, 0, dy) * DragScale 的单位向量。
// 屏幕向上拖拽（dy < 0）对应球道 -Z 方向，即朝向球瓶。
//
// 返回:
//   - game.Vec3: 冲量
//   - bool: 拖拽长度为 0 时返回 false
func ThrowImpulse(dx, dy float64, ball config.BallConfig) (game.Vec3, bool) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return game.Vec3{}, false
	}
	magnitude := math.Min(length, ball.MaxDrag) * ball.ForceScale
	dir := game.Vec3{X: dx * ball.DragScale, Z: dy * ball.DragScale}.Unit()
	return dir.Scale(magnitude), true
}

// PointerFunc 读取当前指针状态（是否按下、屏幕坐标）
type PointerFunc func() (pressed bool, x, y int)

// EbitenPointer 读取触摸或鼠标左键，触摸优先
func EbitenPointer() (pressed bool, x, y int) {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	x, y = ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y
}

// PointerJustPressed 本帧是否刚按下（触摸或鼠标左键）
func PointerJustPressed() (bool, int, int) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// dragState 拖拽状态
type dragState int

const (
	dragNone dragState = iota
	dragActive
	// dragSuppressed 本次按下已被其他控件消费，等待松开
	dragSuppressed
)

// DragInfo 当前拖拽信息（屏幕坐标）
type DragInfo struct {
	StartX, StartY     int
	CurrentX, CurrentY int
}

// ThrowInputSystem 拖拽出手
//
// 按下开始拖拽，松开时按拖拽向量计算冲量。只有按下的那一帧才会开始拖拽，
// 持续按住不会触发新的拖拽。
type ThrowInputSystem struct {
	ball    config.BallConfig
	pointer PointerFunc

	state      dragState
	wasPressed bool
	info       DragInfo
}

// NewThrowInputSystem 创建出手输入系统
//
// 参数:
//   - ball: 球配置（拖拽到冲量的换算参数）
//   - pointer: 指针读取函数，nil 时使用 EbitenPointer
func NewThrowInputSystem(ball config.BallConfig, pointer PointerFunc) *ThrowInputSystem {
	if pointer == nil {
		pointer = EbitenPointer
	}
	return &ThrowInputSystem{ball: ball, pointer: pointer}
}

// Update 每帧调用一次
//
// 参数:
//   - enabled: 当前是否允许出手；不允许时按下不会开始拖拽，进行中的拖拽被丢弃
//
// 返回:
//   - game.Vec3: 出手冲量
//   - bool: 本帧是否完成了一次出手
func (s *ThrowInputSystem) Update(enabled bool) (game.Vec3, bool) {
	pressed, x, y := s.pointer()
	justPressed := pressed && !s.wasPressed
	s.wasPressed = pressed

	switch s.state {
	case dragNone:
		if justPressed && enabled {
			s.state = dragActive
			s.info = DragInfo{StartX: x, StartY: y, CurrentX: x, CurrentY: y}
		}

	case dragActive:
		if !enabled {
			s.state = dragSuppressed
			return game.Vec3{}, false
		}
		if pressed {
			s.info.CurrentX, s.info.CurrentY = x, y
			return game.Vec3{}, false
		}
		s.state = dragNone
		return ThrowImpulse(float64(s.info.CurrentX-s.info.StartX), float64(s.info.CurrentY-s.info.StartY), s.ball)

	case dragSuppressed:
		if !pressed {
			s.state = dragNone
		}
	}
	return game.Vec3{}, false
}

// Cancel 丢弃当前拖拽，直到指针松开前不再开始新的拖拽
func (s *ThrowInputSystem) Cancel() {
	s.state = dragSuppressed
}

// Dragging 是否正在拖拽
func (s *ThrowInputSystem) Dragging() bool {
	return s.state == dragActive
}

// Drag 当前拖拽信息
func (s *ThrowInputSystem) Drag() DragInfo {
	return s.info
}
