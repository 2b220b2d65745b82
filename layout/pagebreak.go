package layout

// UnifiedZoneID 是分页后合成分区的 ID。
const UnifiedZoneID = "unified"

// PlanPageBreaks 把所有分区的行合并为一条行流并插入分页标记。
//
// 已有的分页标记会被丢弃并重新计算。遍历时只维护当前页已用高度：
// 标题行需要与下一行同页（防止标题孤悬页底），所以判断时加上下一行的高度；
// 放不下就先插入分页标记并把已用高度清零。累加的是行自身的高度。
// 页首的行即使超过可用高度也直接放入，不会产生空白页。
//
// 完成后模型只剩一个合成分区，原有分区边界不再保留；没有任何内容行时模型保持不变。
// 返回插入的分页标记数量。
func PlanPageBreaks(model *Model, usableHeight float64) int {
	if model == nil || len(model.Zones) == 0 {
		return 0
	}

	var stream []Row
	for _, z := range model.Zones {
		for _, r := range z.Rows {
			if r.PageBreak {
				continue
			}
			stream = append(stream, r)
		}
	}
	if len(stream) == 0 {
		return 0
	}

	out := make([]Row, 0, len(stream)+len(stream)/8)
	breaks := 0
	running := 0.0
	for i, row := range stream {
		required := row.Height
		if row.Title && i+1 < len(stream) {
			required += stream[i+1].Height
		}
		if running > 0 && running+required > usableHeight {
			out = append(out, Row{PageBreak: true})
			breaks++
			running = 0
		}
		out = append(out, row)
		running += row.Height
	}

	model.Zones = []*Zone{{
		ID:   UnifiedZoneID,
		Kind: ZoneBodyContent,
		Rows: out,
	}}
	return breaks
}

// Pages 按分页标记切分行流，便于渲染与统计。
func Pages(rows []Row) [][]Row {
	var pages [][]Row
	var current []Row
	for _, r := range rows {
		if r.PageBreak {
			pages = append(pages, current)
			current = nil
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 || len(pages) == 0 {
		pages = append(pages, current)
	}
	return pages
}
