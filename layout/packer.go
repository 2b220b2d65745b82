package layout

import (
	"math"
	"unicode/utf8"
)

// Pack 用贪心策略把字段分组成行，每行宽度不超过 100%。
//
// 单次从左到右扫描，只维护当前行：
//  1. 长字段先结束当前行，再独占一行（宽度 100%）；
//  2. 当前行剩余宽度足够则放入；
//  3. 放不下时：当前行为空说明字段本身超宽，强制独占一行；否则换行。
//
// 不做回溯或最优匹配，同样的输入总是得到同样的分组。
func Pack(fields []DisplayField, cfg Config) []Row {
	cfg = cfg.withDefaults()
	var rows []Row
	if len(fields) == 0 {
		return rows
	}

	current := Row{Height: cfg.DefaultRowHeight}
	flush := func() {
		if len(current.Fields) > 0 {
			rows = append(rows, current)
		}
		current = Row{Height: cfg.DefaultRowHeight}
	}
	alone := func(f DisplayField) {
		f.Width = FullRowWidth
		rows = append(rows, Row{
			Fields: []DisplayField{f},
			Height: EstimateHeight(utf8.RuneCountInString(f.Value), cfg),
		})
	}

	for _, f := range fields {
		if f.IsLong() {
			flush()
			alone(f)
			continue
		}
		if current.CanFit(f) {
			current.Fields = append(current.Fields, f)
			continue
		}
		if len(current.Fields) == 0 {
			// 字段比整行还宽
			alone(f)
			continue
		}
		flush()
		current.Fields = append(current.Fields, f)
	}
	flush()
	return rows
}

// EstimateHeight 按字符数估算文本高度：
// 不超过一行字符数为单行高度，两行以内为 1.5 倍，三行以内为 2 倍，
// 更长的文本按 ceil(L/每行字符数) 行计算。默认参数下即 8/12/16/ceil(L/50)*8。
func EstimateHeight(length int, cfg Config) float64 {
	cfg = cfg.withDefaults()
	per := cfg.LongTextThreshold
	line := cfg.DefaultRowHeight
	switch {
	case length <= per:
		return line
	case length <= 2*per:
		return line * 1.5
	case length <= 3*per:
		return line * 2
	default:
		return math.Ceil(float64(length)/float64(per)) * line
	}
}

// PackStats 汇总一组行的宽度利用情况。
type PackStats struct {
	TotalRows    int     `json:"totalRows"`
	TotalFields  int     `json:"totalFields"`
	AverageUsage float64 `json:"averageUsage"`
	MinUsage     float64 `json:"minUsage"`
	MaxUsage     float64 `json:"maxUsage"`
}

// CalculatePackStats 统计行数、字段数与行宽利用率；分页标记与分隔行不计入。
func CalculatePackStats(rows []Row) PackStats {
	stats := PackStats{MinUsage: FullRowWidth}
	total := 0.0
	for _, r := range rows {
		if len(r.Fields) == 0 {
			continue
		}
		used := r.UsedWidth()
		stats.TotalRows++
		stats.TotalFields += len(r.Fields)
		total += used
		stats.MinUsage = math.Min(stats.MinUsage, used)
		stats.MaxUsage = math.Max(stats.MaxUsage, used)
	}
	if stats.TotalRows > 0 {
		stats.AverageUsage = total / float64(stats.TotalRows)
	} else {
		stats.MinUsage = 0
	}
	return stats
}
