package components

import "github.com/decker502/bowling/pkg/game"

// RigidBodyComponent 球道上的刚体（球瓶或保龄球）
//
// 世界坐标：Y 轴朝上，球道沿 -Z 方向延伸，X=0 为球道中线。
type RigidBodyComponent struct {
	// Position 质心位置
	Position game.Vec3

	// Velocity 速度（单位/秒），只在球道平面（XZ）内运动
	Velocity game.Vec3

	// Orientation 姿态，单位四元数表示直立/无旋转
	Orientation game.Quaternion

	// Radius 碰撞半径
	Radius float64

	// Mass 质量，用于碰撞时的速度分配
	Mass float64

	// Friction 滑动/滚动减速度（单位/秒²）
	Friction float64
}

// Speed 平面速度大小
func (rb *RigidBodyComponent) Speed() float64 {
	return rb.Velocity.Length()
}

// Stop 速度清零
func (rb *RigidBodyComponent) Stop() {
	rb.Velocity = game.Vec3{}
}
