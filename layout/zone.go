package layout

import "math"

// ZoneHeight 返回分区的纵向高度（各行预估高度之和）。
// 带照片的基础信息区中照片位于文本旁侧，高度取文本与照片高度的较大值。
func ZoneHeight(z *Zone, cfg Config) float64 {
	if z == nil {
		return 0
	}
	cfg = cfg.withDefaults()
	text := 0.0
	for _, r := range z.Rows {
		if r.PageBreak {
			continue
		}
		text += r.Height
	}
	switch z.Kind {
	case ZoneBasicInfoWithPhoto:
		return math.Max(text, cfg.PhotoHeight)
	default:
		return text
	}
}

// RescaleBasicInfo 把基础信息区的字段宽度从"整行百分比"换算为"文本栏百分比"，
// 文本栏之外的宽度留给照片。其他类别的分区保持不变。
func RescaleBasicInfo(z *Zone, cfg Config) {
	if z == nil || z.Kind != ZoneBasicInfoWithPhoto {
		return
	}
	cfg = cfg.withDefaults()
	factor := cfg.TextColumnPercent / 100
	for i := range z.Rows {
		row := &z.Rows[i]
		if row.UsedWidth() <= 0 {
			continue
		}
		for j := range row.Fields {
			row.Fields[j].Width *= factor
		}
	}
}

// PadBasicInfo 在基础信息区末尾补一行空白，使文本高度不低于照片高度。
// 照片位于文本旁侧，后续分区必须从照片下方开始，分页预算也按此计算。
// 已补齐的分区不会重复补齐。返回补齐的高度。
func PadBasicInfo(z *Zone, cfg Config) float64 {
	if z == nil || z.Kind != ZoneBasicInfoWithPhoto {
		return 0
	}
	cfg = cfg.withDefaults()
	text := 0.0
	for _, r := range z.Rows {
		if !r.PageBreak {
			text += r.Height
		}
	}
	gap := cfg.PhotoHeight - text
	if gap <= 0 {
		return 0
	}
	z.Rows = append(z.Rows, Row{Height: gap})
	return gap
}
