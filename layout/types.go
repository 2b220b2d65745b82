package layout

import (
	"unicode/utf8"

	"github.com/ByLCY/dossier/registry"
)

// 该文件定义排版引擎的中间模型：字段、行、分区与整体布局。
// 所有对象按请求新建，交给渲染器后即丢弃。

// FullRowWidth 是一行的总宽度（百分比）。
const FullRowWidth = 100.0

// DisplayField 是一条记录中已解析、可直接渲染的字段。
type DisplayField struct {
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Value     string        `json:"value"`
	Width     float64       `json:"width"` // 占行宽的百分比
	FullWidth bool          `json:"fullWidth,omitempty"`
	Kind      registry.Kind `json:"kind"`
	Threshold int           `json:"-"` // 长文本字符阈值
}

// IsLong 判断字段是否必须独占一行。
func (f DisplayField) IsLong() bool {
	if f.FullWidth || f.Kind == registry.KindLongText {
		return true
	}
	return f.Threshold > 0 && utf8.RuneCountInString(f.Value) > f.Threshold
}

// DisplayText 返回 "标签 值" 形式的显示文本。
func (f DisplayField) DisplayText() string {
	if f.Label == "" {
		return f.Value
	}
	return f.Label + " " + f.Value
}

// Row 是一组水平排列的字段，或一个分页标记。
type Row struct {
	Fields    []DisplayField `json:"fields"`
	Title     bool           `json:"title,omitempty"`
	PageBreak bool           `json:"pageBreak,omitempty"`
	Height    float64        `json:"height"` // 预估高度（mm）
}

// UsedWidth 返回行内字段宽度之和。
func (r Row) UsedWidth() float64 {
	total := 0.0
	for _, f := range r.Fields {
		total += f.Width
	}
	return total
}

// RemainingWidth 返回行内剩余宽度。
func (r Row) RemainingWidth() float64 {
	return FullRowWidth - r.UsedWidth()
}

// CanFit 判断字段能否放入当前行。
func (r Row) CanFit(f DisplayField) bool {
	return r.RemainingWidth() >= f.Width
}

// IsSeparator 判断是否为条目之间的空白分隔行。
func (r Row) IsSeparator() bool {
	return len(r.Fields) == 0 && !r.Title && !r.PageBreak
}

// ZoneKind 区分分区类别。
type ZoneKind int

const (
	ZoneBasicInfoWithPhoto ZoneKind = iota
	ZoneBodyContent
)

func (k ZoneKind) String() string {
	switch k {
	case ZoneBasicInfoWithPhoto:
		return "basic-info-with-photo"
	case ZoneBodyContent:
		return "body-content"
	default:
		return "unknown"
	}
}

// MarshalText 让调试 JSON 输出可读的分区类别。
func (k ZoneKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ZoneMeta 是分区附加信息的封闭集合，目前只有照片一种。
type ZoneMeta interface {
	zoneMeta()
}

// PhotoMeta 记录基础信息区的照片。
type PhotoMeta struct {
	Data   string  `json:"-"` // base64 编码的图片
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (*PhotoMeta) zoneMeta() {}

// Zone 是文档中的一个逻辑分区。
type Zone struct {
	ID   string   `json:"id"`
	Kind ZoneKind `json:"kind"`
	Rows []Row    `json:"rows"`
	Meta ZoneMeta `json:"meta,omitempty"`
}

// Photo 返回分区上的照片信息；没有时返回 nil。
func (z *Zone) Photo() *PhotoMeta {
	if z == nil {
		return nil
	}
	if p, ok := z.Meta.(*PhotoMeta); ok {
		return p
	}
	return nil
}

// Model 是整份文档的布局。分页之后只剩一个合成分区，保存最终的行流。
type Model struct {
	Zones []*Zone `json:"zones"`
}

// Rows 返回按分区顺序展开后的所有行。
func (m *Model) Rows() []Row {
	if m == nil {
		return nil
	}
	var out []Row
	for _, z := range m.Zones {
		out = append(out, z.Rows...)
	}
	return out
}

// Photo 返回模型中第一张照片。
func (m *Model) Photo() *PhotoMeta {
	if m == nil {
		return nil
	}
	for _, z := range m.Zones {
		if p := z.Photo(); p != nil {
			return p
		}
	}
	return nil
}
