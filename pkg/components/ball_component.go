package components

import "github.com/decker502/bowling/pkg/game"

// BallComponent 保龄球组件
type BallComponent struct {
	// Start 出手位置
	Start game.Vec3

	// InGutter 是否已滚入边沟，边沟里的球只沿 -Z 前进，不再碰撞球瓶
	InGutter bool

	// InPit 是否已越过球道末端掉入球坑
	InPit bool
}
