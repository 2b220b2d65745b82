// Package config 从 YAML 文件加载页面、排版、PDF、数据源与服务参数。
// 所有字段都是可选的，缺省值与 A4 纵向、20mm 边距一致。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/dossier/binding"
	"github.com/ByLCY/dossier/layout"
	"github.com/ByLCY/dossier/renderer"
)

// Length 是可写作纯数字（毫米）或带单位字符串（"20mm"、"1in"、"12pt"）的长度。
type Length struct {
	layout.Length
}

// MM 构造毫米长度。
func MM(v float64) Length { return Length{layout.Mm(v)} }

func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: 长度必须是标量", node.Line)
	}
	parsed, err := layout.ParseLength(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	l.Length = parsed
	return nil
}

func (l Length) MarshalYAML() (any, error) {
	return l.String(), nil
}

type Config struct {
	Page    Page    `yaml:"page"`
	Layout  Layout  `yaml:"layout"`
	PDF     PDF     `yaml:"pdf"`
	Records Records `yaml:"records"`
	Server  Server  `yaml:"server"`
}

type Page struct {
	Width  Length `yaml:"width"`
	Height Length `yaml:"height"`
	Margin Margin `yaml:"margin"`
}

type Margin struct {
	Top    Length `yaml:"top"`
	Right  Length `yaml:"right"`
	Bottom Length `yaml:"bottom"`
	Left   Length `yaml:"left"`
}

// Layout 对应排版引擎的参数；UsableHeight 为零时由页面高度减去上下边距得到。
type Layout struct {
	UsableHeight        Length  `yaml:"usable-height"`
	TitleRowHeight      Length  `yaml:"title-row-height"`
	DefaultRowHeight    Length  `yaml:"default-row-height"`
	SeparatorHeight     Length  `yaml:"separator-height"`
	MinBreakHeight      Length  `yaml:"min-break-height"`
	MinFieldWidth       float64 `yaml:"min-field-width"`
	LongTextThreshold   int     `yaml:"long-text-threshold"`
	BasicInfoBaseHeight Length  `yaml:"basic-info-base-height"`
	TextColumnPercent   float64 `yaml:"text-column-percent"`
	PhotoWidth          Length  `yaml:"photo-width"`
	PhotoHeight         Length  `yaml:"photo-height"`
}

type PDF struct {
	Font          string `yaml:"font"`      // 正文字体路径，为空时查找系统字体
	BoldFont      string `yaml:"bold-font"` // 标题字体路径
	FontSize      Length `yaml:"font-size"`
	TitleFontSize Length `yaml:"title-font-size"`
	LineHeight    string `yaml:"line-height"` // "1.4x" 或 "6mm"
	Title         string `yaml:"title"`
	Header        string `yaml:"header"`
	Footer        string `yaml:"footer"`
	Author        string `yaml:"author"`
	Creator       string `yaml:"creator"`
}

// Records 选择档案数据源：SQLite 优先，其次目录，都为空时使用内置演示数据。
type Records struct {
	Dir      string `yaml:"dir"`
	SQLite   string `yaml:"sqlite"`
	Registry string `yaml:"registry"` // 自定义字段描述文件
}

type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read-timeout"`
	WriteTimeout    time.Duration `yaml:"write-timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout"`
}

// TemplateVars 是标题、页眉与页脚模板可引用的变量。
var TemplateVars = []string{"id", "name", "date", "page", "pages"}

// Default 返回全部使用默认值的配置。
func Default() *Config {
	lc := layout.DefaultConfig()
	return &Config{
		Page: Page{
			Width:  MM(210),
			Height: MM(297),
			Margin: Margin{Top: MM(20), Right: MM(20), Bottom: MM(20), Left: MM(20)},
		},
		Layout: Layout{
			TitleRowHeight:      MM(lc.TitleRowHeight),
			DefaultRowHeight:    MM(lc.DefaultRowHeight),
			SeparatorHeight:     MM(lc.SeparatorHeight),
			MinBreakHeight:      MM(lc.MinBreakHeight),
			MinFieldWidth:       lc.MinFieldWidth,
			LongTextThreshold:   lc.LongTextThreshold,
			BasicInfoBaseHeight: MM(lc.BasicInfoBaseHeight),
			TextColumnPercent:   lc.TextColumnPercent,
			PhotoWidth:          MM(lc.PhotoWidth),
			PhotoHeight:         MM(lc.PhotoHeight),
		},
		PDF: PDF{
			FontSize:      Length{layout.Length{Value: 10.5, Unit: layout.UnitPT}},
			TitleFontSize: Length{layout.Length{Value: 14, Unit: layout.UnitPT}},
			LineHeight:    "1.4x",
			Title:         "员工档案 - ${name}",
			Footer:        "第 ${page} 页 / 共 ${pages} 页",
			Creator:       "dossier",
		},
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load 读取 YAML 配置文件；path 为空时返回默认配置。
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: 读取 %s 失败: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse 在默认配置之上解析 YAML，未知字段视为错误。
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查尺寸关系、百分比范围与模板变量。
func (c *Config) Validate() error {
	setup := c.PageSetup()
	if setup.Width <= 0 || setup.Height <= 0 {
		return errors.New("页面尺寸必须大于 0")
	}
	if setup.ContentWidth() <= 0 {
		return errors.New("左右边距之和超过页面宽度")
	}
	if setup.UsableHeight() <= 0 {
		return errors.New("上下边距之和超过页面高度")
	}
	if u := c.Layout.UsableHeight.ToMM(); u > setup.UsableHeight() {
		return fmt.Errorf("usable-height %.2fmm 超过页面可用高度 %.2fmm", u, setup.UsableHeight())
	}
	if p := c.Layout.TextColumnPercent; p < 0 || p > 100 {
		return fmt.Errorf("text-column-percent %g 不在 [0,100] 内", p)
	}
	if w := c.Layout.MinFieldWidth; w < 0 || w > 100 {
		return fmt.Errorf("min-field-width %g 不在 [0,100] 内", w)
	}
	if c.Layout.LongTextThreshold < 0 {
		return errors.New("long-text-threshold 不能为负数")
	}
	if c.PDF.LineHeight != "" {
		if _, err := layout.ParseLineHeight(c.PDF.LineHeight); err != nil {
			return err
		}
	}
	vars := binding.Vars{}
	for _, v := range TemplateVars {
		vars[v] = ""
	}
	for name, tmpl := range map[string]string{"title": c.PDF.Title, "header": c.PDF.Header, "footer": c.PDF.Footer} {
		if missing := binding.Missing(tmpl, vars); len(missing) > 0 {
			return fmt.Errorf("pdf.%s 引用了未知变量 %s（可用: %s）", name, strings.Join(missing, ", "), strings.Join(TemplateVars, ", "))
		}
	}
	return nil
}

// PageSetup 返回以毫米表示的页面尺寸。
func (c *Config) PageSetup() renderer.PageSetup {
	return renderer.PageSetup{
		Width:  c.Page.Width.ToMM(),
		Height: c.Page.Height.ToMM(),
		Margin: renderer.Margin{
			Top:    c.Page.Margin.Top.ToMM(),
			Right:  c.Page.Margin.Right.ToMM(),
			Bottom: c.Page.Margin.Bottom.ToMM(),
			Left:   c.Page.Margin.Left.ToMM(),
		},
	}
}

// LayoutConfig 返回排版引擎参数，可用高度未设置时由页面推导。
func (c *Config) LayoutConfig() layout.Config {
	l := c.Layout
	usable := l.UsableHeight.ToMM()
	if usable <= 0 {
		usable = c.PageSetup().UsableHeight()
	}
	return layout.Config{
		UsableHeight:        usable,
		TitleRowHeight:      l.TitleRowHeight.ToMM(),
		DefaultRowHeight:    l.DefaultRowHeight.ToMM(),
		SeparatorHeight:     l.SeparatorHeight.ToMM(),
		MinBreakHeight:      l.MinBreakHeight.ToMM(),
		MinFieldWidth:       l.MinFieldWidth,
		LongTextThreshold:   l.LongTextThreshold,
		BasicInfoBaseHeight: l.BasicInfoBaseHeight.ToMM(),
		TextColumnPercent:   l.TextColumnPercent,
		PhotoWidth:          l.PhotoWidth.ToMM(),
		PhotoHeight:         l.PhotoHeight.ToMM(),
	}
}

// Style 返回渲染样式，字号与行高换算为毫米。
func (c *Config) Style() renderer.Style {
	style := renderer.DefaultStyle()
	if !c.PDF.FontSize.IsZero() {
		style.FontSize = c.PDF.FontSize.ToMM()
	}
	if !c.PDF.TitleFontSize.IsZero() {
		style.TitleFontSize = c.PDF.TitleFontSize.ToMM()
	}
	if spec, err := layout.ParseLineHeight(c.PDF.LineHeight); err == nil && style.FontSize > 0 {
		style.LineFactor = spec.ResolveMM(layout.Mm(style.FontSize)) / style.FontSize
	}
	return style
}
