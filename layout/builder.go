package layout

import (
	"strings"

	"github.com/ByLCY/dossier/registry"
)

// Record 是排版所需的最小数据视图。
// Section 返回分组的条目：基础信息为单个条目，列表分组按列表顺序返回。
type Record interface {
	Section(id registry.SectionID) []map[string]string
	PhotoData() string
}

// Build 依次构建基础信息区与各列表分区，返回未分页的布局模型。
func (e *Engine) Build(rec Record) *Model {
	model := &Model{}
	if rec == nil {
		return model
	}
	model.Zones = append(model.Zones, e.buildBasicInfoZone(rec))
	for _, id := range registry.RepeatingSections {
		entries := rec.Section(id)
		if len(entries) == 0 {
			continue
		}
		model.Zones = append(model.Zones, e.buildListZone(id, entries))
	}
	return model
}

// buildBasicInfoZone 构建基础信息 + 照片分区。
func (e *Engine) buildBasicInfoZone(rec Record) *Zone {
	zone := &Zone{ID: "basicInfo", Kind: ZoneBasicInfoWithPhoto}
	if data := strings.TrimSpace(rec.PhotoData()); data != "" {
		zone.Meta = &PhotoMeta{
			Data:   data,
			Width:  e.cfg.PhotoWidth,
			Height: e.cfg.PhotoHeight,
		}
	}
	var values map[string]string
	if entries := rec.Section(registry.SectionBasic); len(entries) > 0 {
		values = entries[0]
	}
	zone.Rows = append(zone.Rows, Pack(e.Select(registry.SectionBasic, values), e.cfg)...)
	return zone
}

// buildListZone 构建带标题的列表分区，条目之间插入分隔行。
func (e *Engine) buildListZone(id registry.SectionID, entries []map[string]string) *Zone {
	zone := &Zone{ID: zoneID(id), Kind: ZoneBodyContent}
	zone.Rows = append(zone.Rows, e.titleRow(id))
	for i, values := range entries {
		zone.Rows = append(zone.Rows, Pack(e.Select(id, values), e.cfg)...)
		if i < len(entries)-1 {
			zone.Rows = append(zone.Rows, Row{Height: e.cfg.SeparatorHeight})
		}
	}
	return zone
}

func (e *Engine) titleRow(id registry.SectionID) Row {
	title := e.reg.Title(id)
	if title == "" {
		title = string(id)
	}
	return Row{
		Fields: []DisplayField{{
			Key:       titleKey(id),
			Label:     title,
			Width:     FullRowWidth,
			FullWidth: true,
		}},
		Title:  true,
		Height: e.cfg.TitleRowHeight,
	}
}

func zoneID(id registry.SectionID) string {
	switch id {
	case registry.SectionWork:
		return "workExperience"
	case registry.SectionEducation:
		return "education"
	case registry.SectionFamily:
		return "family"
	default:
		return string(id)
	}
}

func titleKey(id registry.SectionID) string {
	switch id {
	case registry.SectionWork:
		return "workTitle"
	case registry.SectionEducation:
		return "eduTitle"
	case registry.SectionFamily:
		return "familyTitle"
	default:
		return string(id) + "Title"
	}
}
