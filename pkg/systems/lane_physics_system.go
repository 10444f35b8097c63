package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/bowling/pkg/components"
	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/entities"
	"github.com/decker502/bowling/pkg/game"
)

const (
	// physicsSubStep 单个物理子步的最大时长（秒）
	physicsSubStep = 1.0 / 240.0

	// restSpeed 低于该速度直接停下
	restSpeed = 0.05

	// collisionRestitution 碰撞恢复系数
	collisionRestitution = 0.3

	// tipTransfer 倒下的球瓶砸到其他球瓶时传递的速度比例
	tipTransfer = 0.5
)

// LanePhysicsSystem 球道物理系统
//
// 简化的俯视刚体模拟：球和球瓶在 XZ 平面内运动，球瓶被撞后沿撞击方向倾倒，
// 倾倒的球瓶可以砸倒邻近球瓶。结果是确定性的，同样的输入总是得到同样的姿态。
//
// 实现 game.PinRack，由 GameController 发出重摆命令。
type LanePhysicsSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.BowlingConfig

	pins []ecs.EntityID // 下标即球瓶编号
	ball ecs.EntityID
}

// NewLanePhysicsSystem 创建球道物理系统并摆好球瓶和球
//
// 参数:
//   - em: 实体管理器
//   - cfg: 保龄球配置（已验证）
//
// 返回:
//   - *LanePhysicsSystem: 系统实例
//   - error: 创建实体失败时返回错误
func NewLanePhysicsSystem(em *ecs.EntityManager, cfg *config.BowlingConfig) (*LanePhysicsSystem, error) {
	pins, err := entities.NewPinRack(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to rack pins: %w", err)
	}
	ball := entities.NewBallEntity(em, cfg)

	return &LanePhysicsSystem{
		entityManager: em,
		cfg:           cfg,
		pins:          pins,
		ball:          ball,
	}, nil
}

// Pins 球瓶实体，下标即球瓶编号
func (s *LanePhysicsSystem) Pins() []ecs.EntityID {
	return s.pins
}

// Ball 保龄球实体
func (s *LanePhysicsSystem) Ball() ecs.EntityID {
	return s.ball
}

// ApplyImpulse 对静止在出手位置的球施加冲量
// Y 分量被忽略
func (s *LanePhysicsSystem) ApplyImpulse(impulse game.Vec3) {
	ball, rb := s.ballComponents()
	if ball == nil {
		return
	}
	dv := flat(impulse).Scale(1 / rb.Mass)
	rb.Velocity = rb.Velocity.Add(dv)
	log.Printf("[LanePhysicsSystem] 出手: impulse=(%.2f, %.2f) speed=%.2f", impulse.X, impulse.Z, rb.Speed())
}

// ResetPins 实现 game.PinRack：所有球瓶回到直立初始位置，速度清零
func (s *LanePhysicsSystem) ResetPins() {
	for _, id := range s.pins {
		pin, rb := s.pinComponents(id)
		if pin == nil {
			continue
		}
		pin.Tilt = 0
		pin.FallDir = game.Vec3{}
		pin.Toppling = false
		pin.InPit = false
		rb.Position = pin.Home
		rb.Orientation = game.IdentityQuaternion()
		rb.Stop()
	}
	log.Printf("[LanePhysicsSystem] 重新摆瓶")
}

// ResetBall 实现 game.PinRack：球回到出手位置，速度清零
func (s *LanePhysicsSystem) ResetBall() {
	ball, rb := s.ballComponents()
	if ball == nil {
		return
	}
	ball.InGutter = false
	ball.InPit = false
	rb.Position = ball.Start
	rb.Orientation = game.IdentityQuaternion()
	rb.Stop()
}

// KnockPin 让编号为 index 的直立球瓶朝 dir 方向倾倒
//
// 返回:
//   - bool: 球瓶不存在、已倾倒或已掉入球坑时返回 false
func (s *LanePhysicsSystem) KnockPin(index int, dir game.Vec3) bool {
	if index < 0 || index >= len(s.pins) {
		return false
	}
	pin, _ := s.pinComponents(s.pins[index])
	if pin == nil || pin.Toppling || pin.InPit {
		return false
	}
	s.knock(pin, dir)
	return true
}

// IsPinUp 球瓶是否直立未被撞击
func (s *LanePhysicsSystem) IsPinUp(index int) bool {
	if index < 0 || index >= len(s.pins) {
		return false
	}
	pin, _ := s.pinComponents(s.pins[index])
	return pin != nil && !pin.Toppling && !pin.InPit
}

// BallInPlay 球是否还在球道上滚动
func (s *LanePhysicsSystem) BallInPlay() bool {
	ball, rb := s.ballComponents()
	return ball != nil && !ball.InPit && rb.Speed() > 0
}

// Moving 场上是否还有任何运动（球在滚动、球瓶在倾倒或滑动）
func (s *LanePhysicsSystem) Moving() bool {
	if s.BallInPlay() {
		return true
	}
	for _, id := range s.pins {
		pin, rb := s.pinComponents(id)
		if pin == nil || pin.InPit || !pin.Toppling {
			continue
		}
		if pin.Tilt < math.Pi/2 || rb.Speed() > 0 {
			return true
		}
	}
	return false
}

// Update 推进物理模拟
//
// 参数:
//   - dt: 帧间隔时间（秒），内部拆分为不超过 physicsSubStep 的子步
func (s *LanePhysicsSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	steps := int(math.Ceil(dt / physicsSubStep))
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		s.step(h)
	}
}

func (s *LanePhysicsSystem) step(h float64) {
	if ball, rb := s.ballComponents(); ball != nil {
		s.moveBall(ball, rb, h)
		if !ball.InGutter && !ball.InPit {
			s.collideBall(rb)
		}
	}

	s.collidePins()

	for _, id := range s.pins {
		if pin, rb := s.pinComponents(id); pin != nil {
			s.movePin(pin, rb, h)
		}
	}
}

func (s *LanePhysicsSystem) moveBall(ball *components.BallComponent, rb *components.RigidBodyComponent, h float64) {
	if ball.InPit || rb.Speed() == 0 {
		return
	}

	rb.Position = rb.Position.Add(rb.Velocity.Scale(h))
	decelerate(rb, h)

	if !ball.InGutter && math.Abs(rb.Position.X) > s.cfg.Lane.Width/2 {
		ball.InGutter = true
		rb.Position.Y = s.cfg.Lane.GutterDepth
		rb.Velocity.X = 0
		log.Printf("[LanePhysicsSystem] 球落入边沟: x=%.2f z=%.2f", rb.Position.X, rb.Position.Z)
	}

	if rb.Position.Z < s.cfg.Lane.PitZ {
		ball.InPit = true
		rb.Position.Y = s.cfg.Lane.GutterDepth
		rb.Stop()
		log.Printf("[LanePhysicsSystem] 球进入球坑")
	}
}

// collideBall 球与球瓶的碰撞，沿接触法线交换动量
func (s *LanePhysicsSystem) collideBall(ballBody *components.RigidBodyComponent) {
	for _, id := range s.pins {
		pin, rb := s.pinComponents(id)
		if pin == nil || pin.InPit {
			continue
		}

		d := flat(rb.Position.Sub(ballBody.Position))
		if d.Length() >= ballBody.Radius+rb.Radius {
			continue
		}

		n := d.Unit()
		if n == (game.Vec3{}) {
			n = ballBody.Velocity.Unit()
		}
		vn := ballBody.Velocity.Sub(rb.Velocity).Dot(n)
		if vn <= 0 {
			continue
		}

		exchange(ballBody, rb, n, vn)
		s.knock(pin, n)
	}
}

// collidePins 倾倒/滑动中的球瓶撞击直立球瓶
func (s *LanePhysicsSystem) collidePins() {
	for _, aID := range s.pins {
		a, arb := s.pinComponents(aID)
		if a == nil || a.InPit || !a.Toppling {
			continue
		}
		tip := arb.Position.Add(a.TipOffset(math.Sin(a.Tilt)))

		for _, bID := range s.pins {
			if bID == aID {
				continue
			}
			b, brb := s.pinComponents(bID)
			if b == nil || b.InPit || b.Toppling {
				continue
			}

			reach := arb.Radius + brb.Radius

			// 瓶身滑动撞击
			d := flat(brb.Position.Sub(arb.Position))
			if d.Length() < reach {
				n := d.Unit()
				if vn := arb.Velocity.Sub(brb.Velocity).Dot(n); vn > 0 {
					exchange(arb, brb, n, vn)
					s.knock(b, n)
					continue
				}
			}

			// 倒下的瓶身砸到
			if segmentDistance(flat(brb.Position), flat(arb.Position), flat(tip)) < reach {
				brb.Velocity = brb.Velocity.Add(arb.Velocity.Scale(tipTransfer))
				s.knock(b, a.FallDir)
			}
		}
	}
}

func (s *LanePhysicsSystem) movePin(pin *components.PinComponent, rb *components.RigidBodyComponent, h float64) {
	if pin.InPit || !pin.Toppling {
		return
	}

	if pin.Tilt < math.Pi/2 {
		pin.Tilt = math.Min(math.Pi/2, pin.Tilt+s.cfg.Pins.ToppleSpeed*h)
	}
	if rb.Speed() > 0 {
		rb.Position = rb.Position.Add(rb.Velocity.Scale(h))
		decelerate(rb, h)
	}

	offLane := math.Abs(rb.Position.X) > s.cfg.Lane.Width/2+rb.Radius
	if offLane || rb.Position.Z < s.cfg.Lane.PitZ {
		pin.InPit = true
		pin.Tilt = math.Pi / 2
		rb.Stop()
	}
	s.applyTilt(pin, rb)
}

// applyTilt 由倾斜角和倾倒方向计算姿态与质心高度
func (s *LanePhysicsSystem) applyTilt(pin *components.PinComponent, rb *components.RigidBodyComponent) {
	// 绕 up × FallDir 旋转，瓶顶朝 FallDir 倒下
	axis := game.Vec3{X: pin.FallDir.Z, Z: -pin.FallDir.X}
	rb.Orientation = game.QuaternionFromAxisAngle(axis, pin.Tilt)

	if pin.InPit {
		rb.Position.Y = s.cfg.Lane.GutterDepth
		return
	}
	rb.Position.Y = pin.Height/2*math.Cos(pin.Tilt) + rb.Radius*math.Sin(pin.Tilt)
}

func (s *LanePhysicsSystem) knock(pin *components.PinComponent, dir game.Vec3) {
	if pin.Toppling {
		return
	}
	fall := flat(dir).Unit()
	if fall == (game.Vec3{}) {
		fall = game.Vec3{Z: -1}
	}
	pin.Toppling = true
	pin.FallDir = fall
}

func (s *LanePhysicsSystem) pinComponents(id ecs.EntityID) (*components.PinComponent, *components.RigidBodyComponent) {
	pin, ok1 := ecs.GetComponent[*components.PinComponent](s.entityManager, id)
	rb, ok2 := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
	if !ok1 || !ok2 {
		return nil, nil
	}
	return pin, rb
}

func (s *LanePhysicsSystem) ballComponents() (*components.BallComponent, *components.RigidBodyComponent) {
	ball, ok1 := ecs.GetComponent[*components.BallComponent](s.entityManager, s.ball)
	rb, ok2 := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, s.ball)
	if !ok1 || !ok2 {
		return nil, nil
	}
	return ball, rb
}

// exchange 沿法线 n 的非完全弹性碰撞，vn 为 a 相对 b 的法向接近速度
func exchange(a, b *components.RigidBodyComponent, n game.Vec3, vn float64) {
	total := a.Mass + b.Mass
	j := (1 + collisionRestitution) * vn / total
	a.Velocity = a.Velocity.Sub(n.Scale(j * b.Mass))
	b.Velocity = b.Velocity.Add(n.Scale(j * a.Mass))
}

func decelerate(rb *components.RigidBodyComponent, h float64) {
	speed := rb.Speed()
	if speed == 0 {
		return
	}
	next := speed - rb.Friction*h
	if next <= restSpeed {
		rb.Stop()
		return
	}
	rb.Velocity = rb.Velocity.Scale(next / speed)
}

func flat(v game.Vec3) game.Vec3 {
	return game.Vec3{X: v.X, Z: v.Z}
}

// segmentDistance 点 p 到线段 ab 的距离
func segmentDistance(p, a, b game.Vec3) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Sub(a.Add(ab.Scale(t))).Length()
}
