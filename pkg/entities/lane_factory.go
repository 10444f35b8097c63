package entities

import (
	"fmt"
	"log"

	"github.com/decker502/bowling/pkg/components"
	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/game"
)

// PinHome 球瓶 index 的直立位置（质心高度为瓶高一半）
func PinHome(cfg *config.BowlingConfig, index int) game.Vec3 {
	p := cfg.Pins.Positions[index]
	return game.Vec3{X: p.X, Y: cfg.Pins.Height / 2, Z: p.Z}
}

// BallStart 保龄球出手位置（球心高度为球半径）
func BallStart(cfg *config.BowlingConfig) game.Vec3 {
	return game.Vec3{X: cfg.Ball.StartX, Y: cfg.Ball.Radius, Z: cfg.Ball.StartZ}
}

// NewPinEntity 创建一个直立的球瓶实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 保龄球配置
//   - index: 球瓶编号（0-9）
//
// 返回:
//   - ecs.EntityID: 球瓶实体ID
//   - error: 编号超出配置范围时返回错误
func NewPinEntity(em *ecs.EntityManager, cfg *config.BowlingConfig, index int) (ecs.EntityID, error) {
	if index < 0 || index >= len(cfg.Pins.Positions) {
		return 0, fmt.Errorf("pin index %d out of range [0, %d)", index, len(cfg.Pins.Positions))
	}

	home := PinHome(cfg, index)
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PinComponent{
		Index:  index,
		Home:   home,
		Height: cfg.Pins.Height,
	})
	ecs.AddComponent(em, id, &components.RigidBodyComponent{
		Position:    home,
		Orientation: game.IdentityQuaternion(),
		Radius:      cfg.Pins.Radius,
		Mass:        cfg.Pins.Mass,
		Friction:    cfg.Pins.Friction,
	})
	return id, nil
}

// NewPinRack 按配置创建全部 10 个球瓶
//
// 返回的切片下标即球瓶编号。
func NewPinRack(em *ecs.EntityManager, cfg *config.BowlingConfig) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(cfg.Pins.Positions))
	for i := range cfg.Pins.Positions {
		id, err := NewPinEntity(em, cfg, i)
		if err != nil {
			return nil, fmt.Errorf("failed to create pin %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	log.Printf("[LaneFactory] 创建球瓶 %d 个", len(ids))
	return ids, nil
}

// NewBallEntity 创建停在出手位置的保龄球实体
func NewBallEntity(em *ecs.EntityManager, cfg *config.BowlingConfig) ecs.EntityID {
	start := BallStart(cfg)
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BallComponent{Start: start})
	ecs.AddComponent(em, id, &components.RigidBodyComponent{
		Position:    start,
		Orientation: game.IdentityQuaternion(),
		Radius:      cfg.Ball.Radius,
		Mass:        cfg.Ball.Mass,
		Friction:    cfg.Ball.Friction,
	})
	return id
}
