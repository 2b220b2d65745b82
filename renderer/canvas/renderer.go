package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/dossier/fonts"
	"github.com/ByLCY/dossier/layout"
	"github.com/ByLCY/dossier/renderer"
)

const defaultStrokeWidth = 0.2

// Renderer 通过 github.com/tdewolff/canvas 输出 PDF。
type Renderer struct {
	regular []byte
	bold    []byte

	fontMu   sync.Mutex
	families map[renderer.FontRole]*fontFamilyEntry
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ renderer.Typesetter = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options 配置字体来源。字节优先于路径；都为空时在系统位置查找正文字体。
// 未提供标题字体时，标题使用正文字体。
type Options struct {
	RegularFont []byte
	RegularPath string
	BoldFont    []byte
	BoldPath    string
}

// New 读取字体并创建渲染器。
func New(opts Options) (*Renderer, error) {
	regular := opts.RegularFont
	if len(regular) == 0 {
		path, err := fonts.Locate(opts.RegularPath)
		if err != nil {
			return nil, fmt.Errorf("canvas: 查找正文字体失败: %w", err)
		}
		if regular, err = fonts.Load(path); err != nil {
			return nil, err
		}
	}
	bold := opts.BoldFont
	if len(bold) == 0 && opts.BoldPath != "" {
		data, err := fonts.Load(opts.BoldPath)
		if err != nil {
			return nil, err
		}
		bold = data
	}
	return &Renderer{
		regular:  regular,
		bold:     bold,
		families: map[renderer.FontRole]*fontFamilyEntry{},
	}, nil
}

// Render 合成页面并输出 PDF 字节。
func (r *Renderer) Render(doc *renderer.Document) ([]byte, error) {
	pages, err := renderer.Compose(doc, r)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, &renderer.RenderError{Op: "pdf", Err: errors.New("缺少可渲染的页面")}
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, pages[0].Width, pages[0].Height, nil)
	applyMeta(writer, doc.Meta)
	for i, page := range pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 与合成结果一致，左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, &renderer.RenderError{Op: "pdf", Err: fmt.Errorf("第 %d 页: %w", page.Number, err)}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, &renderer.RenderError{Op: "pdf", Err: fmt.Errorf("写入 PDF 失败: %w", err)}
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta renderer.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// LayoutLines 实现 renderer.Typesetter，使用贪心换行算法。
// 约定：fontSize/lineHeight 入参均为毫米，创建字体面时换算为 pt。
func (r *Renderer) LayoutLines(content string, width float64, font renderer.FontRole, fontSize, lineHeight float64) ([]renderer.TextLine, error) {
	face, err := r.fontFace(font, toPt(fontSize), renderer.Color{R: 30, G: 30, B: 30})
	if err != nil {
		return nil, err
	}

	lines := wrapText(content, width, face.TextWidth)
	textHeight := face.Metrics().LineHeight
	if textHeight <= 0 {
		textHeight = lineHeight
	}
	leading := math.Max(lineHeight-textHeight, 0)
	if len(lines) == 0 {
		lines = []renderer.TextLine{{Height: textHeight}}
	}
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = textHeight
		}
		if i > 0 {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page renderer.Page) error {
	// 先画线框作为背景，再画文本与图片
	drawLines(ctx, page.Lines)
	drawRects(ctx, page.Rects)
	for _, group := range [][]renderer.TextBox{page.Header, page.Texts, page.Footer} {
		for _, tb := range group {
			if err := r.drawTextBox(ctx, tb); err != nil {
				return err
			}
		}
	}
	return drawImages(ctx, page.Images)
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb renderer.TextBox) error {
	face, err := r.fontFace(tb.Font, toPt(tb.FontSize), tb.Color)
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []renderer.TextLine{{Content: tb.Content, Width: tb.Width, Height: tb.LineHeight}}
	}

	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}

	ascent := face.Metrics().Ascent
	cursorY := tb.Y
	for _, line := range lines {
		cursorY += line.GapBefore
		lineHeight := line.Height
		if lineHeight <= 0 {
			lineHeight = tb.LineHeight
		}
		// 基线 = 行顶 + 上升部
		ctx.DrawText(anchorX, cursorY+ascent, canvas.NewTextLine(face, line.Content, textAlign))
		cursorY += lineHeight
	}
	return nil
}

func drawImages(ctx *canvas.Context, images []renderer.ImageBox) error {
	for _, img := range images {
		if len(img.Data) == 0 {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(img.Data))
		if err != nil {
			return fmt.Errorf("解码图片失败: %w", err)
		}
		width := img.Width
		if width <= 0 {
			width = 40
		}
		dpmm := float64(decoded.Bounds().Dx()) / width
		if dpmm <= 0 {
			dpmm = 1
		}
		ctx.DrawImage(img.X, img.Y, decoded, canvas.DPMM(dpmm))
	}
	return nil
}

func drawLines(ctx *canvas.Context, lines []renderer.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetStrokeColor(toColor(ln.Color))
		ctx.SetStrokeWidth(w)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
}

func drawRects(ctx *canvas.Context, rects []renderer.Rect) {
	for _, rc := range rects {
		w := rc.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if rc.FillColor != nil {
			ctx.SetFillColor(toColor(*rc.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.SetStrokeColor(toColor(rc.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func (r *Renderer) fontFace(role renderer.FontRole, size float64, col renderer.Color) (*canvas.FontFace, error) {
	entry, err := r.ensureFontFamily(role)
	if err != nil {
		return nil, err
	}
	return entry.family.Face(size, toColor(col), entry.style, canvas.FontNormal), nil
}

// ensureFontFamily 按角色惰性加载字体族，结果缓存在渲染器上。
func (r *Renderer) ensureFontFamily(role renderer.FontRole) (*fontFamilyEntry, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.families[role]; ok {
		return entry, nil
	}
	data, style := r.regular, canvas.FontRegular
	if role == renderer.FontTitle {
		style = canvas.FontBold
		if len(r.bold) > 0 {
			data = r.bold
		}
	}
	family := canvas.NewFontFamily("dossier-" + string(role))
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体(%s)失败: %w", role, err)
	}
	entry := &fontFamilyEntry{family: family, style: style}
	r.families[role] = entry
	return entry, nil
}

func toColor(c renderer.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
