package game

import (
	"math"
	"testing"
)

const testTick = 1.0 / 60.0

// standingPose 直立球瓶
func standingPose() PinPose {
	return PinPose{
		Orientation: IdentityQuaternion(),
		Position:    Vec3{Y: 0.75},
	}
}

// fallenPose 侧倒在球道上的球瓶
func fallenPose() PinPose {
	return PinPose{
		Orientation: QuaternionFromAxisAngle(Vec3{X: 1}, math.Pi/2),
		Position:    Vec3{Y: 0.2},
	}
}

// syntheticLane 合成姿态序列，代替真实物理步进
// 同时实现 PinRack，记录重摆命令次数
type syntheticLane struct {
	poses      []PinPose
	pinResets  int
	ballResets int
}

func newSyntheticLane() *syntheticLane {
	l := &syntheticLane{}
	l.rack()
	return l
}

func (l *syntheticLane) rack() {
	l.poses = make([]PinPose, PinCount)
	for i := range l.poses {
		l.poses[i] = standingPose()
	}
}

// ResetPins 实现 PinRack
func (l *syntheticLane) ResetPins() {
	l.pinResets++
	l.rack()
}

// ResetBall 实现 PinRack
func (l *syntheticLane) ResetBall() {
	l.ballResets++
}

// knock 按下标顺序推倒前 n 个仍站立的球瓶，返回实际推倒数
func (l *syntheticLane) knock(n int) int {
	sampler := NewPinStateSampler()
	done := 0
	for i := range l.poses {
		if done == n {
			break
		}
		if sampler.IsStanding(l.poses[i]) {
			l.poses[i] = fallenPose()
			done++
		}
	}
	return done
}

// standing 当前站立数
func (l *syntheticLane) standing() int {
	ps, _ := NewPinStateSampler().Sample(l.poses)
	return ps.StandingCount()
}

// playRoll 出手 → 推倒 n 个球瓶 → 推进 tick 直到结算
func playRoll(t *testing.T, c *GameController, lane *syntheticLane, n int) RollResult {
	t.Helper()
	if !c.Throw() {
		t.Fatalf("throw rejected at frame %d roll %d", c.State().CurrentFrame, c.State().RollInFrame)
	}
	lane.knock(n)
	for i := 0; i < 600; i++ {
		if r := c.Update(testTick, lane.poses); r != nil {
			return *r
		}
	}
	t.Fatalf("roll never settled (knock %d)", n)
	return RollResult{}
}

// playRolls 依次投出 rolls
func playRolls(t *testing.T, c *GameController, lane *syntheticLane, rolls ...int) []RollResult {
	t.Helper()
	results := make([]RollResult, 0, len(rolls))
	for _, n := range rolls {
		results = append(results, playRoll(t, c, lane, n))
	}
	return results
}

// framesFrom 由逐格投球构造计分格数组
func framesFrom(rolls ...[]int) [FrameCount]Frame {
	var frames [FrameCount]Frame
	for i, r := range rolls {
		frames[i].Rolls = r
	}
	return frames
}

// repeatRolls 重复 n 次同一组投球
func repeatRolls(n int, rolls ...int) []int {
	out := make([]int, 0, n*len(rolls))
	for i := 0; i < n; i++ {
		out = append(out, rolls...)
	}
	return out
}
