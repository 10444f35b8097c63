package game

import (
	"testing"
	"time"
)

const ms = time.Millisecond

func TestSettlementDetectorDefaults(t *testing.T) {
	d := NewSettlementDetector(0)
	if d.SettleDelay() != 700*ms {
		t.Errorf("SettleDelay() = %v, want 700ms", d.SettleDelay())
	}
	if d.State() != SettlementIdle {
		t.Errorf("initial state = %v, want Idle", d.State())
	}
}

func TestSettlementDetectorBegin(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	if !d.Begin(AllStandingPins(), 0) {
		t.Fatal("Begin() from Idle should succeed")
	}
	if !d.IsMonitoring() {
		t.Fatal("expected Monitoring after Begin()")
	}
	if d.Begin(AllStandingPins(), 10*ms) {
		t.Error("Begin() while Monitoring should be rejected")
	}
}

func TestSettlementDetectorObserveIdle(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	standing := AllStandingPins()
	var current PinSet

	if _, settled := d.Observe(&standing, current, time.Second); settled {
		t.Error("Idle detector must not settle")
	}
	if standing != AllStandingPins() {
		t.Error("Idle detector must not touch the standing record")
	}
}

func TestSettlementDetectorDebounce(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	standing := AllStandingPins()
	d.Begin(standing, 0)

	current := standing
	current[0] = false
	if _, settled := d.Observe(&standing, current, 100*ms); settled {
		t.Fatal("settled on the tick that changed")
	}
	if standing[0] {
		t.Fatal("standing record should be updated immediately")
	}

	// 600ms 后又倒了一个，计时重新开始
	current[4] = false
	if _, settled := d.Observe(&standing, current, 700*ms); settled {
		t.Fatal("settled while pins were still toppling")
	}

	// 恰好等于稳定时长不算稳定
	if _, settled := d.Observe(&standing, current, 1400*ms); settled {
		t.Fatal("settled at exactly the settle delay")
	}

	knocked, settled := d.Observe(&standing, current, 1401*ms)
	if !settled {
		t.Fatal("expected settlement after the quiet window")
	}
	if knocked != 2 {
		t.Errorf("knocked = %d, want 2", knocked)
	}
	if d.IsMonitoring() {
		t.Error("detector should be Idle after settling")
	}
}

func TestSettlementDetectorCountsAgainstSnapshot(t *testing.T) {
	d := NewSettlementDetector(700 * ms)

	// 第 1 投后留下的残局：0、1、2 号已倒
	standing := AllStandingPins()
	standing[0], standing[1], standing[2] = false, false, false
	d.Begin(standing, 0)

	current := standing
	current[3] = false
	d.Observe(&standing, current, 16*ms)

	knocked, settled := d.Observe(&standing, current, time.Second)
	if !settled {
		t.Fatal("expected settlement")
	}
	if knocked != 1 {
		t.Errorf("knocked = %d, want 1 (previously fallen pins must not count)", knocked)
	}
}

func TestSettlementDetectorPinStandsBackUp(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	standing := AllStandingPins()
	d.Begin(standing, 0)

	wobble := standing
	wobble[6] = false
	d.Observe(&standing, wobble, 50*ms)
	// 摇晃后又立住了
	d.Observe(&standing, AllStandingPins(), 100*ms)

	knocked, settled := d.Observe(&standing, AllStandingPins(), 900*ms)
	if !settled {
		t.Fatal("expected settlement")
	}
	if knocked != 0 {
		t.Errorf("knocked = %d, want 0", knocked)
	}
}

func TestSettlementDetectorEmptySnapshotFallback(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	// 直接进入 Monitoring 而不经过 Begin，模拟快照缺失
	d.state = SettlementMonitoring

	standing := AllStandingPins()
	standing[0], standing[1] = false, false

	knocked, settled := d.Observe(&standing, standing, time.Second)
	if !settled {
		t.Fatal("expected settlement")
	}
	if knocked != 2 {
		t.Errorf("knocked = %d, want all fallen pins (2)", knocked)
	}
}

func TestSettlementDetectorSettleImmediately(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	standing := AllStandingPins()

	if _, ok := d.Settle(&standing, PinSet{}); ok {
		t.Fatal("Settle() while Idle should be rejected")
	}

	d.Begin(standing, 0)
	current := standing
	current[9] = false
	current[8] = false

	knocked, ok := d.Settle(&standing, current)
	if !ok || knocked != 2 {
		t.Errorf("Settle() = %d, %v; want 2, true", knocked, ok)
	}
	if standing != current {
		t.Error("Settle() should write the sample into the standing record")
	}
	if d.IsMonitoring() {
		t.Error("detector should be Idle after Settle()")
	}
}

func TestSettlementDetectorCancel(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	d.Begin(AllStandingPins(), 0)
	d.Cancel()

	if d.IsMonitoring() {
		t.Fatal("Cancel() should return to Idle")
	}
	if !d.Begin(AllStandingPins(), time.Second) {
		t.Error("Begin() should be accepted after Cancel()")
	}
}

func TestSettlementDetectorTouchPostponesSettlement(t *testing.T) {
	d := NewSettlementDetector(700 * ms)
	standing := AllStandingPins()
	d.Begin(standing, 0)

	// 球在球道上滚了 1.5 秒，期间球瓶没有变化
	for now := time.Duration(0); now <= 1500*ms; now += 100 * ms {
		d.Touch(now)
		if _, settled := d.Observe(&standing, standing, now); settled {
			t.Fatalf("settled at %v while the ball was still rolling", now)
		}
	}

	if _, settled := d.Observe(&standing, standing, 2100*ms); settled {
		t.Fatal("settled before the delay elapsed after the last touch")
	}
	if _, settled := d.Observe(&standing, standing, 2201*ms); !settled {
		t.Fatal("expected settlement 700ms after the last touch")
	}

	// Idle 状态下 Touch 无效果
	d.Touch(3 * time.Second)
	if d.IsMonitoring() {
		t.Error("Touch() must not start monitoring")
	}
}
