package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BowlingConfigPath 内置配置文件路径
const BowlingConfigPath = "data/bowling.yaml"

// PinCount 球瓶数量（标准十瓶）
const PinCount = 10

// BowlingConfig 保龄球小游戏配置
//
// 配置文件位置: data/bowling.yaml
type BowlingConfig struct {
	// Scoring 计分规则
	Scoring ScoringConfig `yaml:"scoring"`

	// Sampler 球瓶倒地判定
	Sampler SamplerConfig `yaml:"sampler"`

	// Lane 球道尺寸
	Lane LaneConfig `yaml:"lane"`

	// Pins 球瓶尺寸与摆放位置
	Pins PinsConfig `yaml:"pins"`

	// Ball 保龄球参数与出手力度换算
	Ball BallConfig `yaml:"ball"`
}

// ScoringConfig 计分规则配置
type ScoringConfig struct {
	// SettleDelayMs 球瓶状态持续无变化多久（毫秒）视为稳定
	SettleDelayMs int `yaml:"settleDelayMs"`

	// TenthFrameDoubleReset 第 10 格前两投都全中时，第 3 投前是否重摆球瓶
	// false 保留旧行为：第 1 投全中后，第 2、3 投共用同一组球瓶
	TenthFrameDoubleReset bool `yaml:"tenthFrameDoubleReset"`
}

// SamplerConfig 倒地判定配置
type SamplerConfig struct {
	// TiltThresholdDeg 倾斜超过该角度（度）视为倒地
	TiltThresholdDeg float64 `yaml:"tiltThresholdDeg"`

	// FallenHeight 姿态无法解析时，中心高度低于该值视为倒地
	FallenHeight float64 `yaml:"fallenHeight"`
}

// LaneConfig 球道配置（世界单位）
type LaneConfig struct {
	// Width 球道宽度，球道中心为 X=0
	Width float64 `yaml:"width"`

	// FoulLineZ 犯规线（出手区前沿）Z 坐标
	FoulLineZ float64 `yaml:"foulLineZ"`

	// PitZ 球道末端（球坑）Z 坐标，越过后球和球瓶掉入球坑
	PitZ float64 `yaml:"pitZ"`

	// GutterDepth 掉入边沟或球坑后的高度
	GutterDepth float64 `yaml:"gutterDepth"`
}

// PinPosition 球瓶在球道平面上的位置
type PinPosition struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// PinsConfig 球瓶配置
type PinsConfig struct {
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`

	// ToppleSpeed 被撞后倾倒的角速度（弧度/秒）
	ToppleSpeed float64 `yaml:"toppleSpeed"`

	// Friction 倒地滑动的减速度（单位/秒²）
	Friction float64 `yaml:"friction"`

	// Positions 10 个球瓶的位置，下标即球瓶编号
	Positions []PinPosition `yaml:"positions"`
}

// BallConfig 保龄球配置
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`

	// StartX / StartZ 出手位置
	StartX float64 `yaml:"startX"`
	StartZ float64 `yaml:"startZ"`

	// MaxDrag 拖拽长度上限（像素）
	MaxDrag float64 `yaml:"maxDrag"`

	// ForceScale 拖拽长度到冲量大小的换算系数
	ForceScale float64 `yaml:"forceScale"`

	// DragScale 拖拽向量到冲量方向的换算系数
	DragScale float64 `yaml:"dragScale"`

	// Friction 滚动减速度（单位/秒²）
	Friction float64 `yaml:"friction"`
}

// DefaultBowlingConfig 返回默认配置
// 数值与 data/bowling.yaml 保持一致，配置文件缺少的字段使用这些默认值
func DefaultBowlingConfig() *BowlingConfig {
	return &BowlingConfig{
		Scoring: ScoringConfig{
			SettleDelayMs:         700,
			TenthFrameDoubleReset: true,
		},
		Sampler: SamplerConfig{
			TiltThresholdDeg: 45,
			FallenHeight:     0.5,
		},
		Lane: LaneConfig{
			Width:       4,
			FoulLineZ:   6,
			PitZ:        -22.5,
			GutterDepth: -0.5,
		},
		Pins: PinsConfig{
			Height:      1.5,
			Radius:      0.2,
			Mass:        1.5,
			ToppleSpeed: 6,
			Friction:    4,
			Positions: []PinPosition{
				{X: 0, Z: -18},
				{X: -0.7, Z: -19},
				{X: 0.7, Z: -19},
				{X: -1.4, Z: -20},
				{X: 0, Z: -20},
				{X: 1.4, Z: -20},
				{X: -2.1, Z: -21},
				{X: -0.7, Z: -21},
				{X: 0.7, Z: -21},
				{X: 2.1, Z: -21},
			},
		},
		Ball: BallConfig{
			Radius:     0.5,
			Mass:       2,
			StartX:     0,
			StartZ:     8,
			MaxDrag:    200,
			ForceScale: 0.2,
			DragScale:  0.1,
			Friction:   0.6,
		},
	}
}

// LoadBowlingConfig 从文件加载配置
//
// 参数:
//   - path: 配置文件路径（如 "data/bowling.yaml"）
//
// 返回:
//   - *BowlingConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadBowlingConfig(path string) (*BowlingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bowling config: %w", err)
	}
	return ParseBowlingConfig(data)
}

// ParseBowlingConfig 解析 YAML 配置内容
//
// 未出现的字段保留 DefaultBowlingConfig 的值。
func ParseBowlingConfig(data []byte) (*BowlingConfig, error) {
	cfg := DefaultBowlingConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bowling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bowling config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *BowlingConfig) Validate() error {
	if c.Scoring.SettleDelayMs <= 0 {
		return fmt.Errorf("scoring.settleDelayMs must be positive, got %d", c.Scoring.SettleDelayMs)
	}

	if c.Sampler.TiltThresholdDeg <= 0 || c.Sampler.TiltThresholdDeg >= 90 {
		return fmt.Errorf("sampler.tiltThresholdDeg must be in (0, 90), got %.1f", c.Sampler.TiltThresholdDeg)
	}
	if c.Sampler.FallenHeight <= 0 {
		return fmt.Errorf("sampler.fallenHeight must be positive, got %.2f", c.Sampler.FallenHeight)
	}

	if c.Lane.Width <= 0 {
		return fmt.Errorf("lane.width must be positive, got %.2f", c.Lane.Width)
	}
	if c.Lane.PitZ >= c.Lane.FoulLineZ {
		return fmt.Errorf("lane.pitZ(%.1f) must be beyond lane.foulLineZ(%.1f)", c.Lane.PitZ, c.Lane.FoulLineZ)
	}

	if c.Pins.Height <= 0 || c.Pins.Radius <= 0 || c.Pins.Mass <= 0 {
		return fmt.Errorf("pins height/radius/mass must be positive")
	}
	if c.Pins.ToppleSpeed <= 0 {
		return fmt.Errorf("pins.toppleSpeed must be positive, got %.2f", c.Pins.ToppleSpeed)
	}
	if len(c.Pins.Positions) != PinCount {
		return fmt.Errorf("pins.positions must list %d pins, got %d", PinCount, len(c.Pins.Positions))
	}
	halfWidth := c.Lane.Width/2 + c.Pins.Radius
	for i, p := range c.Pins.Positions {
		if math.Abs(p.X) > halfWidth {
			return fmt.Errorf("pin %d at x=%.2f is off the lane", i, p.X)
		}
		if p.Z <= c.Lane.PitZ || p.Z >= c.Lane.FoulLineZ {
			return fmt.Errorf("pin %d at z=%.2f is outside the pin deck", i, p.Z)
		}
	}

	if c.Ball.Radius <= 0 || c.Ball.Mass <= 0 {
		return fmt.Errorf("ball radius/mass must be positive")
	}
	if c.Ball.MaxDrag <= 0 || c.Ball.ForceScale <= 0 || c.Ball.DragScale <= 0 {
		return fmt.Errorf("ball maxDrag/forceScale/dragScale must be positive")
	}
	if c.Ball.Friction < 0 || c.Pins.Friction < 0 {
		return fmt.Errorf("friction must not be negative")
	}

	return nil
}

// SettleDelay 稳定判定时长
func (c *BowlingConfig) SettleDelay() time.Duration {
	return time.Duration(c.Scoring.SettleDelayMs) * time.Millisecond
}

// TiltThreshold 倒地倾斜阈值（弧度）
func (c *BowlingConfig) TiltThreshold() float64 {
	return c.Sampler.TiltThresholdDeg * math.Pi / 180
}
