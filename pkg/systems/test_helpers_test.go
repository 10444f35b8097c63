package systems

import (
	"testing"

	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/game"
)

const testTick = 1.0 / 60.0

// newTestLane 使用默认配置创建物理系统
func newTestLane(t *testing.T) (*ecs.EntityManager, *LanePhysicsSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	s, err := NewLanePhysicsSystem(em, config.DefaultBowlingConfig())
	if err != nil {
		t.Fatalf("NewLanePhysicsSystem() error = %v", err)
	}
	return em, s
}

// simulate 推进 seconds 秒
func simulate(s *LanePhysicsSystem, seconds float64) {
	for i := 0; i < int(seconds/testTick); i++ {
		s.Update(testTick)
	}
}

// sampleLane 用 PinStateSampler 判定当前站立状态
func sampleLane(t *testing.T, em *ecs.EntityManager) game.PinSet {
	t.Helper()
	ps, ok := game.NewPinStateSampler().Sample(NewPinMonitorSystem(em).Poses())
	if !ok {
		t.Fatal("lane did not produce 10 poses")
	}
	return ps
}
