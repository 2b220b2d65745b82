// Package registry 保存字段描述（标签、默认宽度、必填、长文本策略）。
// 描述集在进程启动时构建一次，之后只读，可被任意数量的并发请求共享。
package registry

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ByLCY/dossier/dsl"
)

// Kind 是字段的内容类别。
type Kind int

const (
	KindPlain Kind = iota
	KindDate
	KindLongText
	KindContact
	KindID
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindLongText:
		return "long-text"
	case KindContact:
		return "contact"
	case KindID:
		return "id"
	default:
		return "plain"
	}
}

func parseKind(v string) (Kind, bool) {
	switch strings.ToLower(v) {
	case "plain", "text":
		return KindPlain, true
	case "date":
		return KindDate, true
	case "long-text", "longtext":
		return KindLongText, true
	case "contact", "phone", "email":
		return KindContact, true
	case "id", "id-card":
		return KindID, true
	default:
		return KindPlain, false
	}
}

// SectionID 标识一个字段分组。
type SectionID string

const (
	SectionBasic     SectionID = "basic"
	SectionWork      SectionID = "work"
	SectionEducation SectionID = "education"
	SectionFamily    SectionID = "family"
)

// RepeatingSections 是列表分区在文档中的固定顺序。
var RepeatingSections = []SectionID{SectionWork, SectionEducation, SectionFamily}

// Descriptor 描述一个字段的显示规则，注册后不可修改。
type Descriptor struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Width     float64 `json:"width"`     // 默认宽度百分比 (0,100]
	Required  bool    `json:"required"`  // 必填字段即使为空也显示
	FullWidth bool    `json:"fullWidth"` // 强制独占一行
	MaxLength int     `json:"maxLength"` // 超过则视为长文本；0 表示使用全局阈值
	Kind      Kind    `json:"kind"`
}

type section struct {
	id     SectionID
	title  string
	fields []*Descriptor
}

// Registry 是只读的描述集合。零值不可用，请通过 Parse 或 Default 获取。
type Registry struct {
	byKey    map[string]*Descriptor
	sections []*section
	byID     map[SectionID]*section
}

//go:embed default.dsl
var defaultDSL string

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default 返回内置的档案字段描述集（首次调用时解析）。
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Parse(strings.NewReader(defaultDSL))
		if err != nil {
			panic(fmt.Sprintf("registry: 内置描述文件无效: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

// Parse 从描述 DSL 构建 Registry。字段键全局唯一，重复声明视为错误。
func Parse(r io.Reader) (*Registry, error) {
	doc, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("registry: 解析描述文件失败: %w", err)
	}
	reg := &Registry{
		byKey: map[string]*Descriptor{},
		byID:  map[SectionID]*section{},
	}
	for _, sec := range doc.Sections {
		id := SectionID(sec.ID)
		if _, dup := reg.byID[id]; dup {
			return nil, fmt.Errorf("registry: %s: 分组 %s 重复定义", sec.Pos, sec.ID)
		}
		s := &section{id: id, title: string(sec.Title)}
		for _, f := range sec.Fields {
			d, err := descriptorFromField(f)
			if err != nil {
				return nil, err
			}
			if _, dup := reg.byKey[d.Key]; dup {
				return nil, fmt.Errorf("registry: %s: 字段 %s 重复定义", f.Pos, d.Key)
			}
			reg.byKey[d.Key] = d
			s.fields = append(s.fields, d)
		}
		reg.byID[id] = s
		reg.sections = append(reg.sections, s)
	}
	return reg, nil
}

func descriptorFromField(f *dsl.Field) (*Descriptor, error) {
	d := &Descriptor{
		Key:   f.Key,
		Label: string(f.Label),
		Width: 100,
		Kind:  KindPlain,
	}
	for _, a := range f.Attrs {
		switch {
		case a.Width != nil:
			w := float64(*a.Width)
			if w <= 0 || w > 100 {
				return nil, fmt.Errorf("registry: %s: 字段 %s 的宽度 %g 不在 (0,100] 内", a.Pos, f.Key, w)
			}
			d.Width = w
		case a.Kind != nil:
			k, ok := parseKind(*a.Kind)
			if !ok {
				return nil, fmt.Errorf("registry: %s: 字段 %s 的类型 %q 未知", a.Pos, f.Key, *a.Kind)
			}
			d.Kind = k
		case a.MaxLength != nil:
			if *a.MaxLength < 0 {
				return nil, fmt.Errorf("registry: %s: 字段 %s 的 max-length %d 无效", a.Pos, f.Key, *a.MaxLength)
			}
			d.MaxLength = *a.MaxLength
		case a.Required:
			d.Required = true
		case a.FullWidth:
			d.FullWidth = true
		}
	}
	return d, nil
}

// Lookup 按字段键查找描述。
func (r *Registry) Lookup(key string) (Descriptor, bool) {
	d, ok := r.byKey[key]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Group 按注册顺序返回分组内的描述副本；未知分组返回 nil。
func (r *Registry) Group(id SectionID) []Descriptor {
	s, ok := r.byID[id]
	if !ok {
		return nil
	}
	out := make([]Descriptor, len(s.fields))
	for i, d := range s.fields {
		out[i] = *d
	}
	return out
}

// Title 返回分组标题，例如 "工作经历"。
func (r *Registry) Title(id SectionID) string {
	if s, ok := r.byID[id]; ok {
		return s.title
	}
	return ""
}

// Sections 返回所有分组 ID（声明顺序）。
func (r *Registry) Sections() []SectionID {
	out := make([]SectionID, len(r.sections))
	for i, s := range r.sections {
		out[i] = s.id
	}
	return out
}

// Keys 返回分组内的字段键（声明顺序）。
func (r *Registry) Keys(id SectionID) []string {
	s, ok := r.byID[id]
	if !ok {
		return nil
	}
	out := make([]string, len(s.fields))
	for i, d := range s.fields {
		out[i] = d.Key
	}
	return out
}
