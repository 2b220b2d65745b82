package renderer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/ByLCY/dossier/binding"
	"github.com/ByLCY/dossier/layout"
)

const (
	ruleWidth       = 0.3
	photoLabel      = "照片"
	headerGap       = 4.0
	headerFontScale = 0.85

	overflowTolerance = 1e-6
)

// Compose 按分页标记把行流切成页面，并为每个字段计算坐标。
//
// 字段宽度是内容区宽度的百分比；每行按预估高度推进纵向位置，
// 实际折行更高时取较大值。第一页右上角放置照片（无法解码时画占位框），
// 与照片横向重叠的行从照片下方开始。内容越过下边距时记录在 Page.Overflow。
// 页眉页脚模板在每页用 page/pages 变量重新求值。
func Compose(doc *Document, ts Typesetter) ([]Page, error) {
	if doc == nil {
		return nil, &RenderError{Op: "compose", Err: errors.New("文档为空")}
	}
	if ts == nil {
		return nil, &RenderError{Op: "compose", Err: errors.New("缺少排版后端 Typesetter")}
	}
	c := newComposer(doc, ts)

	chunks := layout.Pages(doc.Rows)
	pages := make([]Page, 0, len(chunks))
	for i, rows := range chunks {
		p := Page{
			Number: i + 1,
			Width:  c.setup.Width,
			Height: c.setup.Height,
			Margin: c.setup.Margin,
		}
		photoBottom := 0.0
		if i == 0 {
			bottom, err := c.placePhoto(&p)
			if err != nil {
				return nil, err
			}
			photoBottom = bottom
		}
		y := c.setup.Margin.Top
		for _, row := range rows {
			if y < photoBottom && c.overlapsPhoto(row) {
				y = photoBottom
			}
			h, err := c.placeRow(&p, row, y)
			if err != nil {
				return nil, &RenderError{Op: "compose", Err: fmt.Errorf("第 %d 页: %w", i+1, err)}
			}
			y += h
		}
		if limit := c.setup.Height - c.setup.Margin.Bottom; y > limit+overflowTolerance {
			p.Overflow = y - limit
			if c.doc.Logger != nil {
				c.doc.Logger.Warn("内容超出页底", "page", p.Number, "overflow", fmt.Sprintf("%.1fmm", p.Overflow))
			}
		}
		if err := c.placeHeaderFooter(&p, len(chunks)); err != nil {
			return nil, &RenderError{Op: "compose", Err: err}
		}
		pages = append(pages, p)
	}
	return pages, nil
}

type composer struct {
	doc      *Document
	ts       Typesetter
	setup    PageSetup
	style    Style
	contentW float64
}

func newComposer(doc *Document, ts Typesetter) *composer {
	setup := doc.Page
	if setup.Width <= 0 || setup.Height <= 0 {
		setup = A4()
	}
	style := doc.Style
	def := DefaultStyle()
	if style.FontSize <= 0 {
		style.FontSize = def.FontSize
	}
	if style.TitleFontSize <= 0 {
		style.TitleFontSize = def.TitleFontSize
	}
	if style.LineFactor <= 0 {
		style.LineFactor = def.LineFactor
	}
	if style.CellPadding < 0 {
		style.CellPadding = 0
	}
	return &composer{doc: doc, ts: ts, setup: setup, style: style, contentW: setup.ContentWidth()}
}

// placeRow 放置一行并返回其占用的高度。
func (c *composer) placeRow(p *Page, row layout.Row, y float64) (float64, error) {
	left := c.setup.Margin.Left
	switch {
	case row.PageBreak, row.IsSeparator():
		return row.Height, nil
	case row.Title:
		label := ""
		key := ""
		if len(row.Fields) > 0 {
			label = row.Fields[0].Label
			key = row.Fields[0].Key
		}
		tb, err := c.textBox(key, label, left, y, c.contentW, FontTitle, c.style.TitleFontSize, c.style.TitleColor)
		if err != nil {
			return 0, err
		}
		p.Texts = append(p.Texts, tb)
		h := math.Max(row.Height, tb.Height+1)
		p.Lines = append(p.Lines, Line{X1: left, Y1: y + h - 0.5, X2: left + c.contentW, Y2: y + h - 0.5, Color: c.style.RuleColor, Width: ruleWidth})
		return h, nil
	}

	pad := c.style.CellPadding
	x := left
	used := 0.0
	for _, f := range row.Fields {
		w := c.contentW * f.Width / layout.FullRowWidth
		tb, err := c.textBox(f.Key, f.DisplayText(), x+pad, y+pad, math.Max(w-2*pad, 0), FontBody, c.style.FontSize, c.style.TextColor)
		if err != nil {
			return 0, fmt.Errorf("字段 %s: %w", f.Key, err)
		}
		p.Texts = append(p.Texts, tb)
		used = math.Max(used, tb.Height+2*pad)
		x += w
	}
	return math.Max(row.Height, used), nil
}

func (c *composer) textBox(key, content string, x, y, width float64, role FontRole, size float64, col Color) (TextBox, error) {
	lineHeight := size * c.style.LineFactor
	lines, err := c.ts.LayoutLines(content, width, role, size, lineHeight)
	if err != nil {
		return TextBox{}, err
	}
	total := 0.0
	leading := math.Max(lineHeight-size, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = size
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = leading
		}
		total += lines[i].GapBefore + lines[i].Height
	}
	return TextBox{
		Key:        key,
		Content:    content,
		X:          x,
		Y:          y,
		Width:      width,
		LineHeight: lineHeight,
		Font:       role,
		FontSize:   size,
		Color:      col,
		Lines:      lines,
		Height:     total,
	}, nil
}

// photoLeft 返回照片左边缘的横坐标。
func (c *composer) photoLeft() float64 {
	return c.setup.Margin.Left + c.contentW - c.doc.Photo.Width
}

// overlapsPhoto 判断行的横向范围是否伸入照片所在的栏位。
// 基础信息行已换算到文本栏宽度，不会与照片重叠。
func (c *composer) overlapsPhoto(row layout.Row) bool {
	if c.doc.Photo == nil || row.PageBreak || len(row.Fields) == 0 {
		return false
	}
	right := c.setup.Margin.Left + c.contentW
	if !row.Title {
		right = c.setup.Margin.Left + c.contentW*row.UsedWidth()/layout.FullRowWidth
	}
	return right > c.photoLeft()+overflowTolerance
}

// placePhoto 把照片放在内容区右上角；数据缺失或无法解码时画占位框。
// 返回照片下边缘的纵坐标，没有照片时返回 0。
func (c *composer) placePhoto(p *Page) (float64, error) {
	photo := c.doc.Photo
	if photo == nil || photo.Width <= 0 || photo.Height <= 0 {
		return 0, nil
	}
	x := c.photoLeft()
	y := c.setup.Margin.Top
	if data, ok := decodePhoto(photo.Data); ok {
		p.Images = append(p.Images, ImageBox{Data: data, X: x, Y: y, Width: photo.Width, Height: photo.Height})
		return y + photo.Height, nil
	}
	p.Rects = append(p.Rects, Rect{X: x, Y: y, Width: photo.Width, Height: photo.Height, StrokeColor: c.style.RuleColor, StrokeWidth: ruleWidth})
	tb, err := c.textBox("photo", photoLabel, x, y+photo.Height/2-c.style.FontSize, photo.Width, FontBody, c.style.FontSize, c.style.RuleColor)
	if err != nil {
		return 0, &RenderError{Op: "compose", Err: err}
	}
	tb.Align = "center"
	p.Texts = append(p.Texts, tb)
	return y + photo.Height, nil
}

// decodePhoto 解码 base64 图片（可带 data URL 前缀），并确认是可识别的图片格式。
func decodePhoto(raw string) ([]byte, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if i := strings.Index(raw, ";base64,"); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, false
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, false
	}
	return data, true
}

func (c *composer) placeHeaderFooter(p *Page, total int) error {
	if c.doc.Header == "" && c.doc.Footer == "" {
		return nil
	}
	vars := c.doc.Vars.With("page", p.Number).With("pages", total)
	size := c.style.FontSize * headerFontScale
	left := c.setup.Margin.Left
	if c.doc.Header != "" {
		y := math.Max(c.setup.Margin.Top-headerGap-size*c.style.LineFactor, 0)
		tb, err := c.textBox("header", binding.Interpolate(c.doc.Header, vars), left, y, c.contentW, FontBody, size, c.style.RuleColor)
		if err != nil {
			return err
		}
		tb.Align = "center"
		p.Header = append(p.Header, tb)
	}
	if c.doc.Footer != "" {
		y := c.setup.Height - c.setup.Margin.Bottom + headerGap
		tb, err := c.textBox("footer", binding.Interpolate(c.doc.Footer, vars), left, y, c.contentW, FontBody, size, c.style.RuleColor)
		if err != nil {
			return err
		}
		tb.Align = "center"
		p.Footer = append(p.Footer, tb)
	}
	return nil
}
