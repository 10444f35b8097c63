package systems

import (
	"log"

	"github.com/decker502/bowling/pkg/components"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/game"
)

// PinMonitorSystem 每个 tick 收集球瓶姿态，交给 GameController 采样
type PinMonitorSystem struct {
	entityManager *ecs.EntityManager
	poses         []game.PinPose
}

// NewPinMonitorSystem 创建球瓶姿态收集系统
func NewPinMonitorSystem(em *ecs.EntityManager) *PinMonitorSystem {
	return &PinMonitorSystem{
		entityManager: em,
		poses:         make([]game.PinPose, game.PinCount),
	}
}

// Poses 按球瓶编号排列的姿态
//
// 球瓶数量不是 10 或编号无效时返回 nil。返回的切片在下一次调用时会被覆盖。
func (s *PinMonitorSystem) Poses() []game.PinPose {
	ids := ecs.GetEntitiesWith2[*components.PinComponent, *components.RigidBodyComponent](s.entityManager)
	if len(ids) != game.PinCount {
		log.Printf("[PinMonitorSystem] 球瓶数量错误: got %d, want %d", len(ids), game.PinCount)
		return nil
	}

	var seen game.PinSet
	for _, id := range ids {
		pin, _ := ecs.GetComponent[*components.PinComponent](s.entityManager, id)
		rb, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
		if pin.Index < 0 || pin.Index >= game.PinCount || seen[pin.Index] {
			log.Printf("[PinMonitorSystem] 球瓶编号无效或重复: %d", pin.Index)
			return nil
		}
		seen[pin.Index] = true
		s.poses[pin.Index] = game.PinPose{
			Orientation: rb.Orientation,
			Position:    rb.Position,
		}
	}
	return s.poses
}
