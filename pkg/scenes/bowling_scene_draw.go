package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/bowling/pkg/components"
	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/ecs"
	"github.com/decker502/bowling/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor  = color.RGBA{R: 30, G: 30, B: 40, A: 255}
	laneColor        = color.RGBA{R: 222, G: 184, B: 135, A: 255}
	gutterColor      = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	foulLineColor    = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	pinStandingColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	pinFallenColor   = color.RGBA{R: 230, G: 120, B: 120, A: 255}
	ballColor        = color.RGBA{R: 40, G: 70, B: 160, A: 255}
	aimLineColor     = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	buttonColor      = color.RGBA{R: 70, G: 70, B: 90, A: 255}
)

// pinDrawScale 球瓶在俯视图上放大显示
const pinDrawScale = 1.5

// Draw 绘制场景
func (s *BowlingScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s.drawLane(screen)
	s.drawPins(screen)
	s.drawBall(screen)

	settings := s.settings.GetSettings()
	if settings.ShowAimLine && s.input.Dragging() {
		d := s.input.Drag()
		vector.StrokeLine(screen, float32(d.StartX), float32(d.StartY), float32(d.CurrentX), float32(d.CurrentY), 2, aimLineColor, true)
	}

	s.drawHUD(screen)
	if settings.ShowDebugOverlay {
		s.drawDebug(screen)
	}
}

func (s *BowlingScene) drawLane(screen *ebiten.Image) {
	lane := s.cfg.Lane
	half := lane.Width / 2
	const gutterWidth = 0.5
	bottomZ := s.cfg.Ball.StartZ + 1

	x0, y0 := config.WorldToScreen(-half-gutterWidth, lane.PitZ)
	x1, y1 := config.WorldToScreen(half+gutterWidth, bottomZ)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), gutterColor, false)

	x0, _ = config.WorldToScreen(-half, 0)
	x1, _ = config.WorldToScreen(half, 0)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), laneColor, false)

	_, fy := config.WorldToScreen(0, lane.FoulLineZ)
	vector.StrokeLine(screen, float32(x0), float32(fy), float32(x1), float32(fy), 2, foulLineColor, false)
}

func (s *BowlingScene) drawPins(screen *ebiten.Image) {
	standing := s.controller.Standing()
	for _, id := range s.physics.Pins() {
		pin, ok1 := ecs.GetComponent[*components.PinComponent](s.entityManager, id)
		rb, ok2 := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
		if !ok1 || !ok2 || pin.InPit {
			continue
		}

		clr := pinFallenColor
		if standing[pin.Index] {
			clr = pinStandingColor
		}

		bx, by := config.WorldToScreen(rb.Position.X, rb.Position.Z)
		r := float32(rb.Radius * config.LaneViewScaleX * pinDrawScale)
		if pin.Toppling {
			tip := rb.Position.Add(pin.TipOffset(math.Sin(pin.Tilt)))
			tx, ty := config.WorldToScreen(tip.X, tip.Z)
			vector.StrokeLine(screen, float32(bx), float32(by), float32(tx), float32(ty), r, clr, true)
		}
		vector.DrawFilledCircle(screen, float32(bx), float32(by), r, clr, true)
	}
}

func (s *BowlingScene) drawBall(screen *ebiten.Image) {
	rb, ok := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, s.physics.Ball())
	if !ok {
		return
	}
	ball, _ := ecs.GetComponent[*components.BallComponent](s.entityManager, s.physics.Ball())
	if ball != nil && ball.InPit {
		return
	}
	x, y := config.WorldToScreen(rb.Position.X, rb.Position.Z)
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(rb.Radius*config.LaneViewScaleX*0.5), ballColor, true)
}

func (s *BowlingScene) drawHUD(screen *ebiten.Image) {
	for i, line := range s.hudLines() {
		ebitenutil.DebugPrintAt(screen, line, config.HUDMargin, config.HUDMargin+i*16)
	}

	vector.DrawFilledRect(screen, config.ResetButtonX, config.ResetButtonY, config.ResetButtonWidth, config.ResetButtonHeight, buttonColor, false)
	ebitenutil.DebugPrintAt(screen, "Reset (R)", int(config.ResetButtonX)+18, int(config.ResetButtonY)+6)
}

// hudLines 左上角文字：得分、提示，以及可选的完整记分牌
func (s *BowlingScene) hudLines() []string {
	display := s.controller.Display()
	lines := []string{
		fmt.Sprintf("Score: %d", display.Score),
		display.Instruction,
	}
	if s.settings.GetSettings().ShowScoreSheet {
		state := s.controller.State()
		marks, totals := game.ScoreSheet(&state)
		lines = append(lines, marks, totals)
	}
	return lines
}

func (s *BowlingScene) drawDebug(screen *ebiten.Image) {
	for i, line := range s.debugLines() {
		ebitenutil.DebugPrintAt(screen, line, config.HUDMargin, config.GameWindowHeight-config.HUDMargin-16*(i+1))
	}
}

// debugLines 调试信息，自下而上绘制
func (s *BowlingScene) debugLines() []string {
	standing := s.controller.Standing()
	lines := []string{
		fmt.Sprintf("standing=%d/%d monitoring=%v moving=%v clock=%v",
			standing.StandingCount(), game.PinCount, s.controller.IsMonitoring(), s.physics.Moving(), s.controller.Now()),
		fmt.Sprintf("FPS=%.0f TPS=%.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
	}
	if r := s.lastRoll; r != nil {
		lines = append(lines, fmt.Sprintf("last roll: frame %d roll %d raw=%d knocked=%d",
			r.Frame, r.Roll, r.Raw, r.Knocked))
	}
	return lines
}
