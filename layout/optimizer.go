package layout

import (
	"fmt"
	"math"
)

// Report 是排版统计信息，只用于诊断，不参与任何排版决策。
type Report struct {
	Zones          int     `json:"zones"`          // 分页前的分区数
	Rows           int     `json:"rows"`           // 分页前的行数
	TotalHeight    float64 `json:"totalHeight"`    // 各分区高度之和（mm）
	PageBreaks     int     `json:"pageBreaks"`     // 插入的分页标记数
	EstimatedPages int     `json:"estimatedPages"` // ceil(总高度 / 可用高度)
	TightBreaks    int     `json:"tightBreaks"`    // 页底剩余空间小于 MinBreakHeight 的分页数
}

func (r Report) String() string {
	return fmt.Sprintf("Report{分区数=%d, 总行数=%d, 总高度=%.2fmm, 分页符=%d, 预估页数=%d}",
		r.Zones, r.Rows, r.TotalHeight, r.PageBreaks, r.EstimatedPages)
}

// Optimize 先对基础信息区做宽度换算并按照片高度补齐，再执行分页。
// 正文分区不做调整。返回分页前后的统计信息，行数不含补齐用的空白行。
func (e *Engine) Optimize(model *Model) Report {
	var report Report
	if model == nil {
		return report
	}

	report.Zones = len(model.Zones)
	for _, z := range model.Zones {
		report.Rows += len(z.Rows)
		report.TotalHeight += ZoneHeight(z, e.cfg)
	}
	if e.cfg.UsableHeight > 0 {
		report.EstimatedPages = int(math.Ceil(report.TotalHeight / e.cfg.UsableHeight))
	}

	for _, z := range model.Zones {
		switch z.Kind {
		case ZoneBasicInfoWithPhoto:
			RescaleBasicInfo(z, e.cfg)
			PadBasicInfo(z, e.cfg)
		case ZoneBodyContent:
			// 正文区使用全宽
		}
	}

	report.PageBreaks = PlanPageBreaks(model, e.cfg.UsableHeight)
	report.TightBreaks = countTightBreaks(model.Rows(), e.cfg)
	return report
}

func countTightBreaks(rows []Row, cfg Config) int {
	tight := 0
	pages := Pages(rows)
	// 最后一页之后没有分页标记
	for _, page := range pages[:len(pages)-1] {
		used := 0.0
		for _, r := range page {
			used += r.Height
		}
		if cfg.UsableHeight-used < cfg.MinBreakHeight {
			tight++
		}
	}
	return tight
}
