package game

// MaxScore 满分（连续 12 个全中）
const MaxScore = 300

// ScoreCalculator 根据完整投球记录重新计算累计得分
//
// 每次记录投球后都从头计算，而不是增量累加。
type ScoreCalculator struct{}

// Compute 计算总分
//
// 第 1~9 格：
//   - 全中：10 + 展开序列中随后两投（不存在按 0），游标前进 1
//   - 补中：10 + 展开序列中随后一投，游标前进 2
//   - 其他：两投之和，游标前进 2
//
// 遇到没有任何投球的格子即停止（对局进行中）。
// 第 10 格：本格所有投球直接相加，不再向后看。
func (ScoreCalculator) Compute(frames [FrameCount]Frame) int {
	flat := flattenFrames(frames)
	at := func(i int) int {
		if i >= 0 && i < len(flat) {
			return flat[i]
		}
		return 0
	}

	total := 0
	cursor := 0
	for i, f := range frames {
		if len(f.Rolls) == 0 {
			break
		}

		if i == FrameCount-1 {
			total += f.Sum()
			break
		}

		first, second := f.roll(0), f.roll(1)
		switch {
		case first == PinCount:
			total += PinCount + at(cursor+1) + at(cursor+2)
			cursor++
		case first+second == PinCount:
			total += PinCount + at(cursor+2)
			cursor += 2
		default:
			total += first + second
			cursor += 2
		}
	}

	return total
}

// FrameTotals 返回每格结束后的累计得分
//
// 只有已能确定得分的格子（全中/补中的奖励投球已完成、普通格已投完两球）才给出数值，
// 其余为 -1，便于记分牌显示空白。
func (c ScoreCalculator) FrameTotals(frames [FrameCount]Frame) [FrameCount]int {
	var totals [FrameCount]int
	for i := range totals {
		totals[i] = -1
	}

	flat := flattenFrames(frames)

	running := 0
	cursor := 0
	for i, f := range frames {
		if len(f.Rolls) == 0 {
			break
		}

		if i == FrameCount-1 {
			if !tenthFrameComplete(f) {
				break
			}
			running += f.Sum()
			totals[i] = running
			break
		}

		first, second := f.roll(0), f.roll(1)
		switch {
		case first == PinCount:
			if cursor+2 >= len(flat) {
				return totals
			}
			running += PinCount + flat[cursor+1] + flat[cursor+2]
			cursor++
		case len(f.Rolls) < 2:
			return totals
		case first+second == PinCount:
			if cursor+2 >= len(flat) {
				return totals
			}
			running += PinCount + flat[cursor+2]
			cursor += 2
		default:
			running += first + second
			cursor += 2
		}
		totals[i] = running
	}

	return totals
}

// tenthFrameComplete 第 10 格是否已投完
func tenthFrameComplete(f Frame) bool {
	switch len(f.Rolls) {
	case 3:
		return true
	case 2:
		return f.Rolls[0]+f.Rolls[1] < PinCount
	default:
		return false
	}
}

// flattenFrames 按时间顺序展开所有投球（最多 21 投）
func flattenFrames(frames [FrameCount]Frame) []int {
	flat := make([]int, 0, 21)
	for _, f := range frames {
		flat = append(flat, f.Rolls...)
	}
	return flat
}
