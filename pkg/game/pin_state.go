package game

import "math"

// PinCount 一局使用的球瓶数量
const PinCount = 10

// 球瓶倒地判定的默认阈值
const (
	// DefaultTiltThreshold 倾斜超过 45° 视为倒地
	DefaultTiltThreshold = math.Pi / 4

	// DefaultFallenHeight 姿态无法解析时，中心高度低于该值视为倒地
	DefaultFallenHeight = 0.5
)

// PinSet 10 个球瓶的站立状态，true 表示站立
// 下标与物理球瓶一一对应，长度固定
type PinSet [PinCount]bool

// AllStandingPins 返回全部站立的 PinSet
func AllStandingPins() PinSet {
	var ps PinSet
	for i := range ps {
		ps[i] = true
	}
	return ps
}

// StandingCount 统计站立的球瓶数
func (ps PinSet) StandingCount() int {
	n := 0
	for _, standing := range ps {
		if standing {
			n++
		}
	}
	return n
}

// FallenCount 统计倒地的球瓶数
func (ps PinSet) FallenCount() int {
	return PinCount - ps.StandingCount()
}

// KnockedSince 统计在 baseline 中站立、在 ps 中已倒地的球瓶数
func (ps PinSet) KnockedSince(baseline PinSet) int {
	n := 0
	for i := range ps {
		if baseline[i] && !ps[i] {
			n++
		}
	}
	return n
}

// PinPose 物理系统每个 tick 提供的单个球瓶姿态
type PinPose struct {
	Orientation Quaternion
	Position    Vec3
}

// PinStateSampler 将球瓶姿态转换为站立/倒地判定
//
// 判定规则：
//   - 相对世界 up 轴的倾斜角绝对值超过 TiltThreshold 视为倒地
//   - 姿态四元数退化（无法求角度）时，改用高度判定：Position.Y < FallenHeight 视为倒地
//
// 采样器无副作用，是姿态快照的纯函数。
type PinStateSampler struct {
	TiltThreshold float64 // 弧度
	FallenHeight  float64 // 世界单位
}

// NewPinStateSampler 创建使用默认阈值的采样器
func NewPinStateSampler() PinStateSampler {
	return PinStateSampler{
		TiltThreshold: DefaultTiltThreshold,
		FallenHeight:  DefaultFallenHeight,
	}
}

// IsStanding 判定单个球瓶是否站立
func (s PinStateSampler) IsStanding(pose PinPose) bool {
	tilt, ok := pose.Orientation.TiltFromUp()
	if !ok {
		return !(pose.Position.Y < s.FallenHeight)
	}
	return math.Abs(tilt) <= s.TiltThreshold
}

// Sample 对全部球瓶采样
//
// 参数:
//   - poses: 按球瓶下标排列的姿态，长度必须为 PinCount
//
// 返回:
//   - PinSet: 站立状态
//   - bool: poses 长度不正确时返回 false
func (s PinStateSampler) Sample(poses []PinPose) (PinSet, bool) {
	var ps PinSet
	if len(poses) != PinCount {
		return ps, false
	}
	for i, pose := range poses {
		ps[i] = s.IsStanding(pose)
	}
	return ps, true
}
