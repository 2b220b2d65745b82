package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/dossier/layout"
)

// TestDefaultMatchesEngineDefaults 默认配置换算后与排版引擎默认参数一致。
func TestDefaultMatchesEngineDefaults(t *testing.T) {
	got := Default().LayoutConfig()
	if diff := cmp.Diff(layout.DefaultConfig(), got); diff != "" {
		t.Fatalf("默认参数不一致 (-want +got):\n%s", diff)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("默认配置应通过校验: %v", err)
	}
}

func TestParseOverridesAndUnits(t *testing.T) {
	data := []byte(`
page:
  margin:
    top: 2.5cm
    bottom: 1in
layout:
  title-row-height: 12
  long-text-threshold: 40
  text-column-percent: 70
pdf:
  font-size: 12pt
  line-height: 6mm
  footer: "${page}/${pages}"
records:
  dir: ./records
server:
  addr: ":9090"
  read-timeout: 3s
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	lc := cfg.LayoutConfig()
	// 297 - 25 - 25.4
	if math.Abs(lc.UsableHeight-246.6) > 1e-9 {
		t.Fatalf("可用高度应由页面推导为 246.6，实际 %g", lc.UsableHeight)
	}
	if lc.TitleRowHeight != 12 || lc.LongTextThreshold != 40 || lc.TextColumnPercent != 70 {
		t.Fatalf("覆盖值不符: %+v", lc)
	}
	if lc.DefaultRowHeight != 8 || lc.PhotoHeight != 45 {
		t.Fatalf("未设置的参数应保留默认值: %+v", lc)
	}
	style := cfg.Style()
	if math.Abs(style.FontSize-12*layout.PtToMm) > 1e-9 {
		t.Fatalf("字号换算错误: %g", style.FontSize)
	}
	if math.Abs(style.FontSize*style.LineFactor-6) > 1e-9 {
		t.Fatalf("绝对行高应换算为 6mm，实际 %g", style.FontSize*style.LineFactor)
	}
	if cfg.Records.Dir != "./records" || cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Fatalf("其他分组解析不符: %+v %+v", cfg.Records, cfg.Server)
	}
	if cfg.PDF.Title != "员工档案 - ${name}" {
		t.Fatalf("未设置的模板应保留默认值: %q", cfg.PDF.Title)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":     "layout:\n  bogus: 1\n",
		"bad length":        "page:\n  width: wide\n",
		"margins":           "page:\n  margin:\n    left: 150mm\n    right: 100mm\n",
		"usable too big":    "layout:\n  usable-height: 300mm\n",
		"percent":           "layout:\n  text-column-percent: 120\n",
		"line height":       "pdf:\n  line-height: tall\n",
		"unknown var":       "pdf:\n  header: \"${company}\"\n",
		"length not scalar": "page:\n  width: [1, 2]\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("%s: 应返回错误", name)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("空配置应使用默认值: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("默认地址不符: %s", cfg.Server.Addr)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg == nil {
		t.Fatalf("空路径应返回默认配置: %v", err)
	}
	path := filepath.Join(t.TempDir(), "dossier.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  usable-height: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if got := cfg.LayoutConfig().UsableHeight; got != 200 {
		t.Fatalf("期望 200，实际 %g", got)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "config:") {
		t.Fatalf("缺失文件应返回带前缀的错误，实际 %v", err)
	}
}

func TestLengthMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		W Length `yaml:"w"`
	}{W: MM(20)})
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	if strings.TrimSpace(string(out)) != "w: 20mm" {
		t.Fatalf("编码结果不符: %s", out)
	}
}

func TestPageSetup(t *testing.T) {
	p := Default().PageSetup()
	if p.ContentWidth() != 170 || p.UsableHeight() != 257 {
		t.Fatalf("默认页面不符: %+v", p)
	}
}
