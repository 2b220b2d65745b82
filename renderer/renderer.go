// Package renderer 把分页后的行流合成为带坐标的页面，并定义输出后端的接口。
package renderer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/dossier/binding"
	"github.com/ByLCY/dossier/layout"
)

// Renderer 将文档输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误，失败时返回 *RenderError。
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

// Typesetter 由具体渲染后端实现，负责按字体度量折行。
// 约定：width/fontSize/lineHeight 均为毫米。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontRole, fontSize, lineHeight float64) ([]TextLine, error)
}

// RenderError 表示渲染阶段（合成或输出）的失败，与排版计算无关。
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("渲染失败(%s): %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PageSetup 是页面尺寸与边距（mm）。
type PageSetup struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// A4 返回 210x297mm、四边 20mm 边距的页面。
func A4() PageSetup {
	return PageSetup{Width: 210, Height: 297, Margin: Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}}
}

// ContentWidth 返回左右边距之间的宽度。
func (p PageSetup) ContentWidth() float64 {
	return p.Width - p.Margin.Left - p.Margin.Right
}

// UsableHeight 返回上下边距之间的高度。
func (p PageSetup) UsableHeight() float64 {
	return p.Height - p.Margin.Top - p.Margin.Bottom
}

// Style 是文本样式参数，字号与行高为毫米。
type Style struct {
	FontSize      float64 `json:"fontSize"`
	TitleFontSize float64 `json:"titleFontSize"`
	LineFactor    float64 `json:"lineFactor"` // 行高 = 字号 * LineFactor
	TextColor     Color   `json:"textColor"`
	TitleColor    Color   `json:"titleColor"`
	RuleColor     Color   `json:"ruleColor"`
	CellPadding   float64 `json:"cellPadding"`
}

// DefaultStyle 正文 10.5pt、标题 14pt，行高 1.4 倍。
func DefaultStyle() Style {
	return Style{
		FontSize:      10.5 * layout.PtToMm,
		TitleFontSize: 14 * layout.PtToMm,
		LineFactor:    1.4,
		TextColor:     Color{R: 30, G: 30, B: 30},
		TitleColor:    Color{R: 20, G: 60, B: 120},
		RuleColor:     Color{R: 180, G: 180, B: 180},
		CellPadding:   1,
	}
}

// Document 是一次渲染的完整输入。
type Document struct {
	Rows []layout.Row // 分页后的行流
	// Photo 需在分页前从模型取得，分页后的合成分区不再携带照片
	Photo  *layout.PhotoMeta
	Page   PageSetup
	Style  Style
	Meta   DocumentMeta
	Header string // 页眉模板，支持 ${name}、${page}、${pages}
	Footer string
	Vars   binding.Vars
	Logger *log.Logger // 可选，内容超出页底时输出警告
}
