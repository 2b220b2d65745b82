package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/dossier/archive"
	"github.com/ByLCY/dossier/config"
	"github.com/ByLCY/dossier/layout"
	"github.com/ByLCY/dossier/record"
	"github.com/ByLCY/dossier/record/sqlite"
	"github.com/ByLCY/dossier/registry"
	"github.com/ByLCY/dossier/renderer"
	canvasrenderer "github.com/ByLCY/dossier/renderer/canvas"
)

// env 汇总一次命令执行所需的配置、数据源与排版引擎。
type env struct {
	cfg    *config.Config
	logger *log.Logger
	source record.Source
	engine *layout.Engine
	close  func() error
}

// loadEnv 读取配置并按 SQLite、目录、演示数据的顺序选择数据源。
func loadEnv(ctx context.Context, g *globalOpts) (*env, error) {
	logger := loggerFromContext(ctx)
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	reg, err := loadRegistry(cfg.Records.Registry)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:    cfg,
		logger: logger,
		engine: layout.NewEngine(reg, cfg.LayoutConfig()),
		close:  func() error { return nil },
	}

	switch {
	case cfg.Records.SQLite != "":
		store, err := sqlite.Open(ctx, cfg.Records.SQLite)
		if err != nil {
			return nil, err
		}
		e.source, e.close = store, store.Close
		logger.Debug("使用 SQLite 数据源", "dsn", cfg.Records.SQLite)
	case cfg.Records.Dir != "":
		src, err := record.NewDirSource(cfg.Records.Dir)
		if err != nil {
			return nil, err
		}
		e.source = src
		logger.Debug("使用目录数据源", "dir", cfg.Records.Dir)
	default:
		e.source = record.NewSampleSource()
		logger.Debug("未配置数据源，使用演示档案")
	}
	return e, nil
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开字段描述文件 %s: %w", path, err)
	}
	defer f.Close()
	return registry.Parse(f)
}

// newRenderer 按配置加载字体并创建 PDF 渲染器。
func (e *env) newRenderer() (renderer.Renderer, error) {
	return canvasrenderer.New(canvasrenderer.Options{
		RegularPath: e.cfg.PDF.Font,
		BoldPath:    e.cfg.PDF.BoldFont,
	})
}

// generator 创建档案生成器；r 为 nil 时只能用于排版与统计。
func (e *env) generator(r renderer.Renderer) *archive.Generator {
	pdf := e.cfg.PDF
	return archive.New(e.source, e.engine, r, archive.Options{
		Page:  e.cfg.PageSetup(),
		Style: e.cfg.Style(),
		Templates: archive.Templates{
			Title:   pdf.Title,
			Header:  pdf.Header,
			Footer:  pdf.Footer,
			Author:  pdf.Author,
			Creator: pdf.Creator,
		},
		Logger: e.logger,
	})
}

// ids 返回要处理的档案 ID：显式给出时直接使用，否则要求数据源可列举。
func (e *env) ids(ctx context.Context, args []string, all bool) ([]string, error) {
	if !all {
		if len(args) == 0 {
			return nil, fmt.Errorf("需要至少一个档案 ID，或使用 --all")
		}
		return args, nil
	}
	lister, ok := e.source.(record.Lister)
	if !ok {
		return nil, fmt.Errorf("当前数据源不支持列举档案")
	}
	return lister.IDs(ctx)
}
