// Package archive 串联档案数据源、排版引擎与渲染器，生成员工档案 PDF。
//
// 一次生成依次经过：读取档案 → 构建分区 → 分页 → 合成页面 → 输出 PDF → 校验。
// 排版阶段是纯计算，不会失败；读取与渲染阶段的错误统一包装为 *GenerationError。
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/dossier/binding"
	"github.com/ByLCY/dossier/layout"
	"github.com/ByLCY/dossier/record"
	"github.com/ByLCY/dossier/renderer"
)

// pdfMagic 是合法 PDF 文件的开头。
var pdfMagic = []byte("%PDF-")

// ErrInvalidPDF 表示渲染结果不是合法的 PDF。
var ErrInvalidPDF = errors.New("archive: 生成的 PDF 无效")

// GenerationError 记录失败的档案与阶段。
type GenerationError struct {
	ID    string
	Stage string // fetch / render / validate
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("生成档案 %s 失败(%s): %v", e.ID, e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Templates 是 PDF 标题、页眉、页脚模板与元信息。
type Templates struct {
	Title   string
	Header  string
	Footer  string
	Author  string
	Creator string
}

// Options 配置 Generator；零值字段使用默认值。
type Options struct {
	Page      renderer.PageSetup
	Style     renderer.Style
	Templates Templates
	Logger    *log.Logger
}

// Generator 可在多个 goroutine 间共享，每次调用都新建布局模型。
type Generator struct {
	source    record.Source
	engine    *layout.Engine
	renderer  renderer.Renderer
	page      renderer.PageSetup
	style     renderer.Style
	templates Templates
	logger    *log.Logger
	now       func() time.Time
}

// New 创建生成器。r 可以为 nil，此时只能调用 Plan 与 Statistics。
func New(src record.Source, engine *layout.Engine, r renderer.Renderer, opts Options) *Generator {
	if engine == nil {
		engine = layout.NewEngine(nil, layout.DefaultConfig())
	}
	page := opts.Page
	if page.Width <= 0 || page.Height <= 0 {
		page = renderer.A4()
	}
	style := opts.Style
	if style.FontSize <= 0 {
		style = renderer.DefaultStyle()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		source:    src,
		engine:    engine,
		renderer:  r,
		page:      page,
		style:     style,
		templates: opts.Templates,
		logger:    logger,
		now:       time.Now,
	}
}

// Engine 返回生成器使用的排版引擎。
func (g *Generator) Engine() *layout.Engine { return g.engine }

// Plan 是一份档案的排版结果。
type Plan struct {
	Employee *record.Employee
	Model    *layout.Model     // 分页后的模型，只剩一个合成分区
	Photo    *layout.PhotoMeta // 分页前从基础信息区取得
	Report   layout.Report
	Pack     layout.PackStats // 分页前的行宽利用率
}

// Stats 是 Statistics 返回的诊断信息。
type Stats struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Report layout.Report    `json:"report"`
	Pack   layout.PackStats `json:"pack"`
}

// Exists 判断档案是否存在。
func (g *Generator) Exists(ctx context.Context, id string) (bool, error) {
	_, err := g.fetch(ctx, id)
	if errors.Is(err, record.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (g *Generator) fetch(ctx context.Context, id string) (*record.Employee, error) {
	if g.source == nil {
		return nil, &GenerationError{ID: id, Stage: "fetch", Err: errors.New("未配置档案数据源")}
	}
	emp, err := g.source.Get(ctx, id)
	if err != nil {
		return nil, &GenerationError{ID: id, Stage: "fetch", Err: err}
	}
	return emp, nil
}

// Plan 读取档案并完成排版与分页。
func (g *Generator) Plan(ctx context.Context, id string) (*Plan, error) {
	emp, err := g.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg := g.engine.Config()

	model := g.engine.Build(emp)
	photo := model.Photo()
	if photo == nil {
		// 没有照片时保留照片栏位，渲染为占位框
		photo = &layout.PhotoMeta{Width: cfg.PhotoWidth, Height: cfg.PhotoHeight}
	}
	pack := layout.CalculatePackStats(model.Rows())
	report := g.engine.Optimize(model)

	g.logger.Debug("排版完成", "id", id, "zones", report.Zones, "rows", report.Rows,
		"height", fmt.Sprintf("%.1fmm", report.TotalHeight), "breaks", report.PageBreaks)
	if report.TightBreaks > 0 {
		g.logger.Debug("存在页底剩余空间不足的分页", "id", id, "tight", report.TightBreaks)
	}
	return &Plan{Employee: emp, Model: model, Photo: photo, Report: report, Pack: pack}, nil
}

// Statistics 返回排版统计信息（调试用）。
func (g *Generator) Statistics(ctx context.Context, id string) (Stats, error) {
	plan, err := g.Plan(ctx, id)
	if err != nil {
		return Stats{}, err
	}
	return Stats{ID: id, Name: plan.Employee.Name, Report: plan.Report, Pack: plan.Pack}, nil
}

// Generate 生成档案 PDF 并校验输出。
func (g *Generator) Generate(ctx context.Context, id string) ([]byte, error) {
	p := newProgress(g.logger)
	g.logger.Info("开始生成员工档案", "id", id)

	data, err := g.generate(ctx, id)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			g.logger.Warn("员工不存在", "id", id)
		} else {
			g.logger.Error("生成员工档案失败", "id", id, "err", err)
		}
		return nil, err
	}
	p.done(fmt.Sprintf("员工档案 %s 生成成功, PDF 大小 %.2f KB", id, SizeKB(data)))
	return data, nil
}

func (g *Generator) generate(ctx context.Context, id string) ([]byte, error) {
	if g.renderer == nil {
		return nil, &GenerationError{ID: id, Stage: "render", Err: errors.New("未配置渲染器")}
	}
	plan, err := g.Plan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{ID: id, Stage: "render", Err: err}
	}

	doc := g.Document(plan)
	data, err := g.renderer.Render(doc)
	if err != nil {
		return nil, &GenerationError{ID: id, Stage: "render", Err: err}
	}
	if !ValidPDF(data) {
		return nil, &GenerationError{ID: id, Stage: "validate", Err: ErrInvalidPDF}
	}
	return data, nil
}

// Document 把排版结果转换为渲染输入。
func (g *Generator) Document(plan *Plan) *renderer.Document {
	emp := plan.Employee
	vars := binding.Vars{
		"id":   emp.ID,
		"name": emp.Name,
		"date": g.now().Format(record.DateLayout),
	}
	title := binding.Interpolate(g.templates.Title, vars)
	if title == "" {
		title = "员工档案 - " + emp.Name
	}
	return &renderer.Document{
		Rows:   plan.Model.Rows(),
		Photo:  plan.Photo,
		Page:   g.page,
		Style:  g.style,
		Header: g.templates.Header,
		Footer: g.templates.Footer,
		Logger: g.logger.With("id", emp.ID),
		Vars:   vars,
		Meta: renderer.DocumentMeta{
			Title:    title,
			Author:   g.templates.Author,
			Subject:  "员工档案",
			Creator:  g.templates.Creator,
			Keywords: []string{"档案", emp.ID},
		},
	}
}

// ValidPDF 检查数据是否以 %PDF- 开头。
func ValidPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// SizeKB 返回数据大小（KB）。
func SizeKB(data []byte) float64 {
	return float64(len(data)) / 1024
}
