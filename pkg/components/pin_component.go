package components

import "github.com/decker502/bowling/pkg/game"

// PinComponent 球瓶组件
//
// 倾倒过程用绕水平轴的旋转角 Tilt 表示，0 为直立，π/2 为平躺。
type PinComponent struct {
	// Index 球瓶编号（0-9），与 PinSet 下标一致
	Index int

	// Home 摆瓶时的直立位置
	Home game.Vec3

	// Height 球瓶高度
	Height float64

	// Tilt 当前倾斜角（弧度）
	Tilt float64

	// FallDir 倾倒方向（XZ 平面单位向量）
	FallDir game.Vec3

	// Toppling 是否已被撞击、正在倾倒或已经倒下
	Toppling bool

	// InPit 是否已掉入球坑或边沟
	InPit bool
}

// TipOffset 瓶顶相对瓶底在球道平面上的偏移
func (p *PinComponent) TipOffset(sinTilt float64) game.Vec3 {
	return p.FallDir.Scale(p.Height * sinTilt)
}
