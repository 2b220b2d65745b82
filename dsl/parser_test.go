package dsl_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ByLCY/dossier/dsl"
)

const sampleDSL = `
# 示例描述文件
registry Archive v1 {
  section basic "基础信息" {
    field name "姓名:" width 25 required
    field currentAddress "现居住地:" width 100% full-width max-length 30
  }

  section work "工作经历" {
    // 长文本
    field duties "工作职责:" width 100 kind long-text full-width
    /* 结束日期为空时显示 至今 */
    field workEndDate "结束日期:" width 25 kind date
  }
}
`

func ptr[T any](v T) *T { return &v }

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Archive" || doc.Version != "v1" {
		t.Fatalf("unexpected header %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}

	basic := doc.Sections[0]
	if basic.ID != "basic" || basic.Title != "基础信息" {
		t.Fatalf("unexpected basic section header: %s %q", basic.ID, basic.Title)
	}

	ignorePos := cmpopts.IgnoreFields(dsl.Attr{}, "Pos")
	wantAddr := []*dsl.Attr{
		{Width: ptr(dsl.Percent(100))},
		{FullWidth: true},
		{MaxLength: ptr(30)},
	}
	if diff := cmp.Diff(wantAddr, basic.Fields[1].Attrs, ignorePos); diff != "" {
		t.Fatalf("currentAddress attrs mismatch (-want +got):\n%s", diff)
	}

	work := doc.Sections[1].Fields
	if len(work) != 2 {
		t.Fatalf("expected 2 work fields, got %d", len(work))
	}
	wantDuties := []*dsl.Attr{
		{Width: ptr(dsl.Percent(100))},
		{Kind: ptr("long-text")},
		{FullWidth: true},
	}
	if diff := cmp.Diff(wantDuties, work[0].Attrs, ignorePos); diff != "" {
		t.Fatalf("duties attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSemicolonSeparatedFields(t *testing.T) {
	doc, err := dsl.ParseString(`registry R v2 { section family "家庭成员" { field relation "关系:" width 25; field age "年龄:" width 25 } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	fields := doc.Sections[0].Fields
	if len(fields) != 2 || fields[1].Key != "age" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestParseEscapedLabel(t *testing.T) {
	doc, err := dsl.ParseString(`registry R v1 { section a "A" { field x "备\"注\":" } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := doc.Sections[0].Fields[0].Label; got != `备"注":` {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"section without title": "registry R v1 {\n  section basic {\n  }\n}",
		"unknown attribute":     `registry R v1 { section a "A" { field x "X" bold } }`,
		"missing width":         `registry R v1 { section a "A" { field x "X" width } }`,
		"fractional length":     `registry R v1 { section a "A" { field x "X" max-length 2.5 } }`,
	}
	for name, src := range cases {
		if _, err := dsl.ParseString(src); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseReportsPosition(t *testing.T) {
	_, err := dsl.ParseString("registry R v1 {\n  section basic {\n  }\n}")
	if err == nil || !strings.Contains(err.Error(), "2:") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}
