package layout

import (
	"strings"

	"github.com/ByLCY/dossier/registry"
)

// Engine 绑定字段描述集与排版参数，负责从原始数据构建布局。
// Engine 不保存请求状态，可在多个 goroutine 间共享。
type Engine struct {
	reg *registry.Registry
	cfg Config
}

// NewEngine 创建排版引擎；reg 为 nil 时使用内置描述集。
func NewEngine(reg *registry.Registry, cfg Config) *Engine {
	if reg == nil {
		reg = registry.Default()
	}
	return &Engine{reg: reg, cfg: cfg.withDefaults()}
}

// Config 返回补齐默认值后的参数。
func (e *Engine) Config() Config { return e.cfg }

// Registry 返回引擎使用的描述集。
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Select 按分组的注册顺序把键值数据转换为待排版字段。
// 空值且非必填的字段被省略；没有描述的键被忽略。
func (e *Engine) Select(section registry.SectionID, values map[string]string) []DisplayField {
	descs := e.reg.Group(section)
	fields := make([]DisplayField, 0, len(descs))
	for _, d := range descs {
		value := values[d.Key]
		if strings.TrimSpace(value) == "" && !d.Required {
			continue
		}
		threshold := d.MaxLength
		if threshold <= 0 {
			threshold = e.cfg.LongTextThreshold
		}
		f := DisplayField{
			Key:       d.Key,
			Label:     d.Label,
			Value:     value,
			Width:     d.Width,
			Kind:      d.Kind,
			FullWidth: d.FullWidth,
			Threshold: threshold,
		}
		if f.IsLong() {
			f.FullWidth = true
			f.Width = FullRowWidth
		}
		fields = append(fields, f)
	}
	return fields
}
