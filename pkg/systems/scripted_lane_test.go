package systems

import (
	"testing"
	"time"

	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/game"
)

// countingRack 统计重摆命令，转发给脚本球道
type countingRack struct {
	lane      *ScriptedLane
	pinResets int
}

func (r *countingRack) ResetPins() {
	r.pinResets++
	r.lane.ResetPins()
}

func (r *countingRack) ResetBall() {
	r.lane.ResetBall()
}

func newScriptedGame(t *testing.T) (*ScriptedLane, *countingRack, *game.GameController) {
	t.Helper()
	cfg := config.DefaultBowlingConfig()
	lane, err := NewScriptedLane(cfg)
	if err != nil {
		t.Fatalf("NewScriptedLane() error = %v", err)
	}
	rack := &countingRack{lane: lane}
	c := game.NewGameController(game.ControllerConfig{
		SettleDelay:           cfg.SettleDelay(),
		TiltThreshold:         cfg.TiltThreshold(),
		FallenHeight:          cfg.Sampler.FallenHeight,
		TenthFrameDoubleReset: cfg.Scoring.TenthFrameDoubleReset,
	}, rack)
	return lane, rack, c
}

func rollAll(t *testing.T, lane *ScriptedLane, c *game.GameController, rolls ...int) []game.RollResult {
	t.Helper()
	results := make([]game.RollResult, 0, len(rolls))
	for i, n := range rolls {
		r, err := lane.Roll(c, n)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		results = append(results, r)
	}
	return results
}

func TestScriptedLaneKnockIsExact(t *testing.T) {
	lane, _, _ := newScriptedGame(t)

	for _, n := range []int{1, 3, 4} {
		before := lane.Standing()
		if got := lane.Knock(n); got != n {
			t.Fatalf("Knock(%d) = %d", n, got)
		}
		if lane.Standing() != before-n {
			t.Fatalf("standing = %d, want %d", lane.Standing(), before-n)
		}
	}
	if got := lane.Knock(5); got != 2 {
		t.Errorf("Knock(5) with 2 left = %d, want 2", got)
	}
}

func TestScriptedLanePerfectGame(t *testing.T) {
	lane, rack, c := newScriptedGame(t)

	results := rollAll(t, lane, c, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10)
	last := results[len(results)-1]
	if last.Score != game.MaxScore {
		t.Errorf("score = %d, want 300", last.Score)
	}
	if !c.IsGameOver() {
		t.Error("game should be over after 12 strikes")
	}
	// 9 格各重摆一次，第 10 格前两投后各重摆一次
	if rack.pinResets != 11 {
		t.Errorf("pin resets = %d, want 11", rack.pinResets)
	}
	if _, err := lane.Roll(c, 10); err == nil {
		t.Error("throw after game over should be rejected")
	}
}

func TestScriptedLaneSpareThenOpen(t *testing.T) {
	lane, _, c := newScriptedGame(t)

	results := rollAll(t, lane, c, 7, 3, 4, 2)
	if got := results[len(results)-1].Score; got != 20 {
		t.Errorf("score = %d, want 20", got)
	}
	if lane.Standing() != game.PinCount {
		t.Errorf("rack should be fresh after frame 2, standing = %d", lane.Standing())
	}
}

func TestScriptedLaneClampsScriptedOverCount(t *testing.T) {
	lane, _, c := newScriptedGame(t)

	rollAll(t, lane, c, 6)
	r, err := lane.Roll(c, 9)
	if err != nil {
		t.Fatal(err)
	}
	// 球道上只剩 4 个，实际只能推倒 4 个
	if r.Knocked != 4 {
		t.Errorf("Knocked = %d, want 4", r.Knocked)
	}
	if c.State().Score != 10 {
		t.Errorf("score = %d, want 10", c.State().Score)
	}
}

func TestScriptedLaneRollImmediate(t *testing.T) {
	lane, _, c := newScriptedGame(t)

	first, err := lane.RollImmediate(c, 8)
	if err != nil {
		t.Fatal(err)
	}
	if first.Knocked != 8 || first.Score != 8 {
		t.Errorf("first roll = %+v, want 8 knocked / score 8", first)
	}
	if c.IsMonitoring() {
		t.Error("controller should be idle after an immediate roll")
	}
	// 球瓶倒地即结算，不等待稳定时长
	if c.Now() >= 700*time.Millisecond {
		t.Errorf("immediate roll took %v of game time", c.Now())
	}

	second, err := lane.RollImmediate(c, 2)
	if err != nil {
		t.Fatal(err)
	}
	if second.Score != 10 || !second.Transition.ResetPins {
		t.Errorf("second roll = %+v, want a spare with a re-rack", second)
	}
}
