package entities

import (
	"testing"

	"github.com/decker502/bowling/pkg/components"
	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/game"
)

func TestNewPinRack(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBowlingConfig()

	ids, err := NewPinRack(em, cfg)
	if err != nil {
		t.Fatalf("NewPinRack() error = %v", err)
	}
	if len(ids) != game.PinCount {
		t.Fatalf("expected %d pins, got %d", game.PinCount, len(ids))
	}

	sampler := game.NewPinStateSampler()
	for i, id := range ids {
		pin, ok := ecs.GetComponent[*components.PinComponent](em, id)
		if !ok {
			t.Fatalf("pin %d missing PinComponent", i)
		}
		if pin.Index != i {
			t.Errorf("pin %d has Index %d", i, pin.Index)
		}

		rb, ok := ecs.GetComponent[*components.RigidBodyComponent](em, id)
		if !ok {
			t.Fatalf("pin %d missing RigidBodyComponent", i)
		}
		want := cfg.Pins.Positions[i]
		if rb.Position.X != want.X || rb.Position.Z != want.Z {
			t.Errorf("pin %d at (%.1f, %.1f), want (%.1f, %.1f)", i, rb.Position.X, rb.Position.Z, want.X, want.Z)
		}
		if rb.Position.Y != cfg.Pins.Height/2 {
			t.Errorf("pin %d height = %.2f, want %.2f", i, rb.Position.Y, cfg.Pins.Height/2)
		}

		if !sampler.IsStanding(game.PinPose{Orientation: rb.Orientation, Position: rb.Position}) {
			t.Errorf("freshly racked pin %d should sample as standing", i)
		}
	}
}

func TestNewPinEntityOutOfRange(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBowlingConfig()

	for _, index := range []int{-1, 10} {
		if _, err := NewPinEntity(em, cfg, index); err == nil {
			t.Errorf("NewPinEntity(%d) should fail", index)
		}
	}
	if em.Count() != 0 {
		t.Errorf("failed creation should not leave entities, got %d", em.Count())
	}
}

func TestNewBallEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultBowlingConfig()

	id := NewBallEntity(em, cfg)

	ball, ok := ecs.GetComponent[*components.BallComponent](em, id)
	if !ok {
		t.Fatal("ball missing BallComponent")
	}
	rb, ok := ecs.GetComponent[*components.RigidBodyComponent](em, id)
	if !ok {
		t.Fatal("ball missing RigidBodyComponent")
	}

	want := game.Vec3{X: 0, Y: 0.5, Z: 8}
	if ball.Start != want || rb.Position != want {
		t.Errorf("ball start = %+v / %+v, want %+v", ball.Start, rb.Position, want)
	}
	if rb.Speed() != 0 {
		t.Errorf("new ball should be at rest, speed = %.2f", rb.Speed())
	}
}
