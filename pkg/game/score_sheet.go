package game

import (
	"strconv"
	"strings"
)

// 记分牌符号
const (
	markStrike = "X"
	markSpare  = "/"
	markMiss   = "-"
)

// FrameMarks 把一格的投球转换为记分牌符号
//
// 第 1~9 格：全中显示 "X"，补中第二投显示 "/"，0 显示 "-"。
// 第 10 格：每次重新摆瓶后的第一投全中显示 "X"，两投合计清台显示 "/"。
func FrameMarks(frameIndex int, rolls []int) []string {
	marks := make([]string, 0, len(rolls))
	if frameIndex < TenthFrame {
		for i, r := range rolls {
			switch {
			case i == 0 && r == PinCount:
				marks = append(marks, markStrike)
			case i == 1 && rolls[0]+r == PinCount:
				marks = append(marks, markSpare)
			default:
				marks = append(marks, rollMark(r))
			}
		}
		return marks
	}

	// 第 10 格：fresh 表示当前投球面对的是一组新摆好的球瓶
	fresh := true
	prev := 0
	for _, r := range rolls {
		switch {
		case fresh && r == PinCount:
			marks = append(marks, markStrike)
			fresh = true
		case !fresh && prev+r == PinCount:
			marks = append(marks, markSpare)
			fresh = true
		default:
			marks = append(marks, rollMark(r))
			fresh = !fresh
		}
		prev = r
	}
	return marks
}

func rollMark(r int) string {
	if r == 0 {
		return markMiss
	}
	return strconv.Itoa(r)
}

// ScoreSheet 把整局格式化为两行文字：各格符号与累计得分
//
// 例如：
//
//	| X   | 7 / | 9 - | ...
//	| 20  | 39  | 48  | ...
func ScoreSheet(gs *GameState) (marksLine, totalsLine string) {
	totals := ScoreCalculator{}.FrameTotals(gs.Frames)

	var mb, tb strings.Builder
	for i, f := range gs.Frames {
		cell := strings.Join(FrameMarks(i+1, f.Rolls), " ")
		width := 3
		if i == FrameCount-1 {
			width = 5
		}
		mb.WriteString("| ")
		mb.WriteString(padRight(cell, width))
		mb.WriteString(" ")

		total := ""
		if totals[i] >= 0 {
			total = strconv.Itoa(totals[i])
		}
		tb.WriteString("| ")
		tb.WriteString(padRight(total, width))
		tb.WriteString(" ")
	}
	mb.WriteString("|")
	tb.WriteString("|")
	return mb.String(), tb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
