package game

import "math"

// Vec3 三维向量（世界坐标，Y 轴朝上）
type Vec3 struct {
	X, Y, Z float64
}

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub 向量相减
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale 向量缩放
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit 返回单位向量
// 零向量返回零向量
func (v Vec3) Unit() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Quaternion 旋转四元数 (x, y, z, w)
// 单位四元数 {0, 0, 0, 1} 表示无旋转（球瓶直立）
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion 返回单位四元数
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle 由旋转轴和角度（弧度）构造四元数
// axis 不需要预先归一化；零轴返回单位四元数
func QuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	a := axis.Unit()
	if a == (Vec3{}) {
		return IdentityQuaternion()
	}
	s := math.Sin(angle / 2)
	return Quaternion{X: a.X * s, Y: a.Y * s, Z: a.Z * s, W: math.Cos(angle / 2)}
}

// Norm 四元数模长
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// TiltFromUp 计算四元数将世界 "up" 轴旋转后与原 up 轴的夹角（弧度，0 ~ π）
//
// 对单位四元数，旋转后 up 向量的 Y 分量为 1 - 2(x² + z²)。
//
// 返回:
//   - float64: 倾斜角
//   - bool: 四元数退化（零或非有限值）时返回 false，此时角度无意义
func (q Quaternion) TiltFromUp() (float64, bool) {
	n := q.Norm()
	if n < 1e-9 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	x, z := q.X/n, q.Z/n
	cosTilt := 1 - 2*(x*x+z*z)
	if cosTilt > 1 {
		cosTilt = 1
	} else if cosTilt < -1 {
		cosTilt = -1
	}
	return math.Acos(cosTilt), true
}
