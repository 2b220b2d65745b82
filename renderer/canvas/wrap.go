package canvasrenderer

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/dossier/renderer"
)

// measureFunc 返回文本在当前字体下的宽度（mm）。
type measureFunc func(string) float64

// wrapText 贪心折行：西文按词折行，中日韩文字可在任意两字之间折行，
// 超过行宽的单词按字符拆开。折行处的首尾空白被去掉，显式换行保留空行。
func wrapText(content string, limit float64, measure measureFunc) []renderer.TextLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var (
		lines []renderer.TextLine
		cur   strings.Builder
		width float64
	)
	breakLine := func(soft bool) {
		text := cur.String()
		if soft {
			if trimmed := strings.TrimRightFunc(text, unicode.IsSpace); trimmed != text {
				text = trimmed
				width = measure(text)
			}
		}
		lines = append(lines, renderer.TextLine{Content: text, Width: width})
		cur.Reset()
		width = 0
	}
	lastHard := true
	for _, unit := range breakUnits(content) {
		if unit == "\n" {
			breakLine(false)
			lastHard = true
			continue
		}
		w := measure(unit)
		if width > 0 && width+w > limit {
			breakLine(true)
			lastHard = false
		}
		if cur.Len() == 0 && !lastHard && isBlank(unit) {
			continue
		}
		if w <= limit {
			cur.WriteString(unit)
			width += w
			continue
		}
		for _, r := range unit {
			rs := string(r)
			rw := measure(rs)
			if width > 0 && width+rw > limit {
				breakLine(true)
				lastHard = false
			}
			cur.WriteString(rs)
			width += rw
		}
	}
	if cur.Len() > 0 || len(lines) == 0 {
		breakLine(false)
	}
	return lines
}

// breakUnits 把文本切成折行的最小单元：连续西文字符、连续空白、
// 单个中日韩字符或全角标点，以及单独的换行符。\r 被丢弃。
func breakUnits(s string) []string {
	var units []string
	start := -1
	blank := false
	flush := func(end int) {
		if start >= 0 && end > start {
			units = append(units, s[start:end])
		}
		start = -1
	}
	for i, r := range s {
		switch {
		case r == '\r':
			flush(i)
		case r == '\n':
			flush(i)
			units = append(units, "\n")
		case isWide(r):
			flush(i)
			units = append(units, s[i:i+utf8.RuneLen(r)])
		default:
			sp := unicode.IsSpace(r)
			if start >= 0 && sp != blank {
				flush(i)
			}
			if start < 0 {
				start, blank = i, sp
			}
		}
	}
	flush(len(s))
	return units
}

func isWide(r rune) bool {
	switch {
	case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
		return true
	case r >= 0x3000 && r <= 0x303F: // 中日韩标点
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // 全角字符
		return true
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
