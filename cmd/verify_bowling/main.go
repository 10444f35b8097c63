// verify_bowling 无界面验证工具
//
// 按给定的击倒序列逐投模拟：脚本球道推倒球瓶，物理系统完成倾倒，
// GameController 走真实的稳定检测和计分流程，最后打印记分牌。
//
// 用法:
//
//	go run ./cmd/verify_bowling -rolls 10,10,10,10,10,10,10,10,10,10,10,10
//	go run ./cmd/verify_bowling -rolls 9,1,9,1 -immediate -verbose
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/bowling/pkg/config"
	"github.com/decker502/bowling/pkg/game"
	"github.com/decker502/bowling/pkg/scenes"
	"github.com/decker502/bowling/pkg/systems"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	rollsFlag   = flag.String("rolls", "10,10,10,10,10,10,10,10,10,10,10,10", "逗号分隔的每投击倒数")
	configPath  = flag.String("config", config.BowlingConfigPath, "配置文件路径")
	immediate   = flag.Bool("immediate", false, "球瓶静止后立即结算，不等待稳定时长")
	legacyTenth = flag.Bool("legacy-tenth", false, "第 10 格连续两次全中后不重摆球瓶")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	rolls, err := parseRolls(*rollsFlag)
	if err != nil {
		fatalf("invalid -rolls: %v", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatalf("config error: %v", err)
	}
	if *legacyTenth {
		cfg.Scoring.TenthFrameDoubleReset = false
	}

	if err := run(os.Stdout, cfg, rolls, *immediate); err != nil {
		fatalf("error: %v", err)
	}
}

// fatalf 非 verbose 模式下日志被丢弃，致命错误前恢复输出到 stderr
func fatalf(format string, args ...any) {
	log.SetOutput(os.Stderr)
	log.Fatalf(format, args...)
}

// loadConfig 读取配置文件，文件不存在时使用默认配置
func loadConfig(path string) (*config.BowlingConfig, error) {
	cfg, err := config.LoadBowlingConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[verify_bowling] %s not found, using defaults", path)
		return config.DefaultBowlingConfig(), nil
	}
	return cfg, err
}

// parseRolls 解析 "10,7,3" 形式的击倒序列
func parseRolls(s string) ([]int, error) {
	var rolls []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("roll %q: %w", field, err)
		}
		if n < 0 || n > game.PinCount {
			return nil, fmt.Errorf("roll %d out of range [0, %d]", n, game.PinCount)
		}
		rolls = append(rolls, n)
	}
	if len(rolls) == 0 {
		return nil, errors.New("no rolls given")
	}
	return rolls, nil
}

// run 逐投模拟并把结果写到 w
func run(w io.Writer, cfg *config.BowlingConfig, rolls []int, immediate bool) error {
	lane, err := systems.NewScriptedLane(cfg)
	if err != nil {
		return err
	}
	controller := game.NewGameController(scenes.ControllerConfigFrom(cfg), lane)

	for i, n := range rolls {
		if controller.IsGameOver() {
			fmt.Fprintf(w, "game over after %d rolls, ignoring %d more\n", i, len(rolls)-i)
			break
		}

		var r game.RollResult
		if immediate {
			r, err = lane.RollImmediate(controller, n)
		} else {
			r, err = lane.Roll(controller, n)
		}
		if err != nil {
			return fmt.Errorf("roll %d: %w", i+1, err)
		}

		line := fmt.Sprintf("frame %2d roll %d: knocked %2d  score %3d", r.Frame, r.Roll, r.Knocked, r.Score)
		switch {
		case r.Clamped():
			line += fmt.Sprintf("  (clamped from %d)", r.Raw)
		case r.Knocked < n:
			line += fmt.Sprintf("  (asked %d, only %d standing)", n, r.Knocked)
		case r.Knocked > n:
			line += fmt.Sprintf("  (asked %d, pins carried)", n)
		}
		if r.Transition.ResetPins {
			line += "  [re-rack]"
		}
		fmt.Fprintln(w, line)
	}

	state := controller.State()
	marks, totals := game.ScoreSheet(&state)
	fmt.Fprintln(w)
	fmt.Fprintln(w, marks)
	fmt.Fprintln(w, totals)
	fmt.Fprintln(w, controller.Display().Instruction)
	return nil
}
