package game

import (
	"log"
	"time"
)

// DefaultSettleDelay 球瓶状态持续无变化超过该时长即视为稳定
const DefaultSettleDelay = 700 * time.Millisecond

// SettlementState 稳定检测器状态
type SettlementState int

const (
	// SettlementIdle 没有在途投球
	SettlementIdle SettlementState = iota
	// SettlementMonitoring 投球已出手，正在等待球瓶稳定
	SettlementMonitoring
)

// String 返回状态名称（用于日志）
func (s SettlementState) String() string {
	switch s {
	case SettlementIdle:
		return "Idle"
	case SettlementMonitoring:
		return "Monitoring"
	default:
		return "Unknown"
	}
}

// SettlementDetector 球瓶稳定检测器
//
// 投球后每个 tick 对比采样结果与当前权威站立记录，任何变化都会立即写入记录并刷新
// "最近变化时间"。当距最近变化超过 settleDelay 时判定稳定，按出手时的快照统计本次
// 击倒数，然后回到 Idle。
//
// 出手快照只在一次投球期间由检测器持有，结算后丢弃。
type SettlementDetector struct {
	settleDelay time.Duration

	state       SettlementState
	snapshot    PinSet
	hasSnapshot bool
	lastChange  time.Duration
}

// NewSettlementDetector 创建稳定检测器
//
// 参数:
//   - settleDelay: 稳定判定时长，<= 0 时使用 DefaultSettleDelay
func NewSettlementDetector(settleDelay time.Duration) *SettlementDetector {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &SettlementDetector{
		settleDelay: settleDelay,
		state:       SettlementIdle,
	}
}

// State 返回当前状态
func (d *SettlementDetector) State() SettlementState {
	return d.state
}

// IsMonitoring 是否有在途投球
func (d *SettlementDetector) IsMonitoring() bool {
	return d.state == SettlementMonitoring
}

// SettleDelay 返回稳定判定时长
func (d *SettlementDetector) SettleDelay() time.Duration {
	return d.settleDelay
}

// Begin 投球出手：Idle → Monitoring
//
// 参数:
//   - standing: 出手前一刻的权威站立记录，作为本次投球的快照
//   - now: 当前时间
//
// 返回:
//   - bool: 已在 Monitoring 时返回 false（不接受第二次投球）
func (d *SettlementDetector) Begin(standing PinSet, now time.Duration) bool {
	if d.state == SettlementMonitoring {
		return false
	}
	d.state = SettlementMonitoring
	d.snapshot = standing
	d.hasSnapshot = true
	d.lastChange = now
	return true
}

// Observe 处理一次采样
//
// 与 standing（上一次记录，而非出手快照）逐项比较，不同之处立即写回 standing
// 并把最近变化时间设为 now。
//
// 参数:
//   - standing: 权威站立记录，原地更新
//   - current: 本 tick 的采样结果
//   - now: 当前时间
//
// 返回:
//   - int: 稳定时的本次击倒数
//   - bool: 本次调用是否判定稳定（Monitoring → Idle）
func (d *SettlementDetector) Observe(standing *PinSet, current PinSet, now time.Duration) (int, bool) {
	if d.state != SettlementMonitoring {
		return 0, false
	}

	changed := false
	for i := range standing {
		if standing[i] != current[i] {
			standing[i] = current[i]
			changed = true
		}
	}
	if changed {
		d.lastChange = now
		return 0, false
	}

	if now-d.lastChange <= d.settleDelay {
		return 0, false
	}

	return d.settle(*standing), true
}

// Touch 把最近变化时间刷新为 now，不改变站立记录
// 球仍在球道上滚动时由调用方每 tick 调用，避免球到达球瓶前就被判定稳定
func (d *SettlementDetector) Touch(now time.Duration) {
	if d.state == SettlementMonitoring {
		d.lastChange = now
	}
}

// Settle 立即结算（用于"投球已确定完成"的同步兜底路径）
//
// 先把 current 写入 standing，再按快照统计击倒数，回到 Idle。
// Idle 状态下调用返回 false。
func (d *SettlementDetector) Settle(standing *PinSet, current PinSet) (int, bool) {
	if d.state != SettlementMonitoring {
		return 0, false
	}
	*standing = current
	return d.settle(current), true
}

// Cancel 强制回到 Idle，丢弃快照（仅用于整局重置）
func (d *SettlementDetector) Cancel() {
	d.state = SettlementIdle
	d.snapshot = PinSet{}
	d.hasSnapshot = false
	d.lastChange = 0
}

func (d *SettlementDetector) settle(standing PinSet) int {
	var knocked int
	if d.hasSnapshot {
		knocked = standing.KnockedSince(d.snapshot)
	} else {
		// 快照缺失：退化为统计所有倒地球瓶
		log.Printf("[SettlementDetector] 出手快照缺失，按全部倒地球瓶计数")
		knocked = standing.FallenCount()
	}

	d.state = SettlementIdle
	d.snapshot = PinSet{}
	d.hasSnapshot = false
	return knocked
}
