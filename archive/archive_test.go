package archive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/dossier/layout"
	"github.com/ByLCY/dossier/record"
	"github.com/ByLCY/dossier/renderer"
)

type fakeRenderer struct {
	out  []byte
	err  error
	docs []*renderer.Document
}

func (f *fakeRenderer) Render(doc *renderer.Document) ([]byte, error) {
	f.docs = append(f.docs, doc)
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func newTestGenerator(t *testing.T, r renderer.Renderer, src record.Source) *Generator {
	t.Helper()
	if src == nil {
		src = record.NewSampleSource()
	}
	g := New(src, nil, r, Options{
		Templates: Templates{
			Title:   "员工档案 - ${name}",
			Footer:  "第 ${page} 页 / 共 ${pages} 页",
			Creator: "dossier",
		},
		Logger: log.New(io.Discard),
	})
	g.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerateProducesPDF(t *testing.T) {
	fr := &fakeRenderer{out: []byte("%PDF-1.7\nfake")}
	g := newTestGenerator(t, fr, nil)

	data, err := g.Generate(context.Background(), "001")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !ValidPDF(data) {
		t.Fatalf("output is not a pdf: %q", data)
	}
	if len(fr.docs) != 1 {
		t.Fatalf("expected one render call, got %d", len(fr.docs))
	}
	doc := fr.docs[0]
	if doc.Meta.Title != "员工档案 - 张三" {
		t.Fatalf("unexpected title %q", doc.Meta.Title)
	}
	if doc.Vars["date"] != "2024-05-01" || doc.Vars["id"] != "001" {
		t.Fatalf("unexpected vars %v", doc.Vars)
	}
	if doc.Photo == nil || doc.Photo.Data == "" {
		t.Fatalf("expected photo to be carried into the document, got %+v", doc.Photo)
	}
	if len(doc.Rows) == 0 || doc.Rows[0].PageBreak {
		t.Fatalf("document must start with a content row")
	}
}

func TestGenerateNotFound(t *testing.T) {
	g := newTestGenerator(t, &fakeRenderer{out: []byte("%PDF-")}, nil)

	_, err := g.Generate(context.Background(), "999")
	if !errors.Is(err, record.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var ge *GenerationError
	if !errors.As(err, &ge) || ge.Stage != "fetch" || ge.ID != "999" {
		t.Fatalf("expected fetch GenerationError, got %#v", err)
	}
}

func TestGenerateRenderFailure(t *testing.T) {
	cause := errors.New("boom")
	g := newTestGenerator(t, &fakeRenderer{err: cause}, nil)

	_, err := g.Generate(context.Background(), "002")
	if !errors.Is(err, cause) {
		t.Fatalf("expected render cause to be wrapped, got %v", err)
	}
	var ge *GenerationError
	if !errors.As(err, &ge) || ge.Stage != "render" {
		t.Fatalf("expected render stage, got %#v", err)
	}
	if !strings.Contains(err.Error(), "002") {
		t.Fatalf("error should name the record: %v", err)
	}
}

func TestGenerateRejectsInvalidPDF(t *testing.T) {
	g := newTestGenerator(t, &fakeRenderer{out: []byte("<html>")}, nil)

	_, err := g.Generate(context.Background(), "001")
	if !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("expected ErrInvalidPDF, got %v", err)
	}
}

func TestGenerateWithoutRenderer(t *testing.T) {
	g := newTestGenerator(t, nil, nil)
	if _, err := g.Generate(context.Background(), "001"); err == nil {
		t.Fatalf("expected error without renderer")
	}
}

func TestGenerateCanceled(t *testing.T) {
	fr := &fakeRenderer{out: []byte("%PDF-")}
	g := newTestGenerator(t, fr, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Generate(ctx, "001"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(fr.docs) != 0 {
		t.Fatalf("renderer must not be called after cancellation")
	}
}

func TestPlanUnifiesZones(t *testing.T) {
	g := newTestGenerator(t, nil, nil)

	plan, err := g.Plan(context.Background(), "001")
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(plan.Model.Zones) != 1 || plan.Model.Zones[0].ID != layout.UnifiedZoneID {
		t.Fatalf("expected a single unified zone, got %d zones", len(plan.Model.Zones))
	}
	// 基础信息、工作经历、教育经历、家庭成员
	if plan.Report.Zones != 4 {
		t.Fatalf("expected 4 zones before pagination, got %d", plan.Report.Zones)
	}
	if plan.Report.PageBreaks == 0 {
		t.Fatalf("record 001 has twelve family members and should span pages: %+v", plan.Report)
	}
	if plan.Pack.TotalRows == 0 || plan.Pack.MaxUsage > layout.FullRowWidth {
		t.Fatalf("unexpected pack stats %+v", plan.Pack)
	}
	if plan.Photo == nil || plan.Photo.Data == "" {
		t.Fatalf("expected photo captured before pagination")
	}
}

func TestPlanPlaceholderPhoto(t *testing.T) {
	src, err := record.NewMemorySource(&record.Employee{ID: "100", Name: "赵六"})
	if err != nil {
		t.Fatalf("NewMemorySource: %v", err)
	}
	g := newTestGenerator(t, nil, src)

	plan, err := g.Plan(context.Background(), "100")
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	cfg := layout.DefaultConfig()
	want := &layout.PhotoMeta{Width: cfg.PhotoWidth, Height: cfg.PhotoHeight}
	if diff := cmp.Diff(want, plan.Photo); diff != "" {
		t.Fatalf("placeholder photo mismatch (-want +got):\n%s", diff)
	}
}

// lineTypesetter lays every explicit line out at the font size.
type lineTypesetter struct{}

func (lineTypesetter) LayoutLines(content string, width float64, _ renderer.FontRole, fontSize, _ float64) ([]renderer.TextLine, error) {
	var lines []renderer.TextLine
	for _, part := range strings.Split(content, "\n") {
		lines = append(lines, renderer.TextLine{Content: part, Width: width, Height: fontSize})
	}
	return lines, nil
}

func TestComposedBodyClearsPhoto(t *testing.T) {
	g := newTestGenerator(t, nil, nil)

	// 002 的基础信息只有几行，低于照片高度
	plan, err := g.Plan(context.Background(), "002")
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	pages, err := renderer.Compose(g.Document(plan), lineTypesetter{})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	first := pages[0]
	var px, py, pw, ph float64
	switch {
	case len(first.Images) > 0:
		img := first.Images[0]
		px, py, pw, ph = img.X, img.Y, img.Width, img.Height
	case len(first.Rects) > 0:
		r := first.Rects[0]
		px, py, pw, ph = r.X, r.Y, r.Width, r.Height
	default:
		t.Fatalf("expected a photo on the first page")
	}
	for _, tb := range first.Texts {
		if tb.Key == "photo" {
			continue
		}
		if tb.X < px+pw && px < tb.X+tb.Width && tb.Y < py+ph && py < tb.Y+tb.Height {
			t.Fatalf("text %q (%s) at x=%.1f y=%.1f w=%.1f h=%.1f overlaps photo [%.1f,%.1f]x[%.1f,%.1f]",
				tb.Content, tb.Key, tb.X, tb.Y, tb.Width, tb.Height, px, px+pw, py, py+ph)
		}
	}
	for _, p := range pages {
		if p.Overflow > 0 {
			t.Fatalf("page %d overflows the bottom margin by %.1fmm", p.Number, p.Overflow)
		}
	}
}

func TestStatistics(t *testing.T) {
	g := newTestGenerator(t, nil, nil)

	stats, err := g.Statistics(context.Background(), "002")
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}
	if stats.ID != "002" || stats.Name != "李四" {
		t.Fatalf("unexpected identity %+v", stats)
	}
	if stats.Report.Rows == 0 || stats.Report.TotalHeight <= 0 {
		t.Fatalf("unexpected report %+v", stats.Report)
	}
	if stats.Report.EstimatedPages < 1 {
		t.Fatalf("expected at least one page, got %d", stats.Report.EstimatedPages)
	}
}

func TestExists(t *testing.T) {
	g := newTestGenerator(t, nil, nil)
	ctx := context.Background()

	ok, err := g.Exists(ctx, "001")
	if err != nil || !ok {
		t.Fatalf("expected 001 to exist, got %v %v", ok, err)
	}
	ok, err = g.Exists(ctx, "nope")
	if err != nil || ok {
		t.Fatalf("expected nope to be missing, got %v %v", ok, err)
	}
}

func TestSizeKB(t *testing.T) {
	if got := SizeKB(make([]byte, 2048)); got != 2 {
		t.Fatalf("SizeKB = %v, want 2", got)
	}
}
