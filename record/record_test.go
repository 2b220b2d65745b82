package record

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/dossier/registry"
)

func TestSectionBasic(t *testing.T) {
	e := &Employee{Name: "张三", BirthDate: NewDate(1990, time.May, 15), Phone: "138"}
	entries := e.Section(registry.SectionBasic)
	if len(entries) != 1 {
		t.Fatalf("基础信息应只有一个条目，实际 %d", len(entries))
	}
	got := entries[0]
	if got["name"] != "张三" || got["birthDate"] != "1990-05-15" || got["phone"] != "138" || got["email"] != "" {
		t.Fatalf("基础信息字段不符: %+v", got)
	}
	for _, key := range registry.Default().Keys(registry.SectionBasic) {
		if _, ok := got[key]; !ok {
			t.Fatalf("缺少描述集中的字段 %s", key)
		}
	}
}

// TestSectionWorkUntilNow 没有结束日期的工作经历显示为至今。
func TestSectionWorkUntilNow(t *testing.T) {
	e := &Employee{WorkExperiences: []WorkExperience{
		{StartDate: NewDate(2015, time.July, 1), EndDate: NewDate(2018, time.December, 31), Company: "甲"},
		{StartDate: NewDate(2019, time.January, 1), Company: "乙"},
	}}
	entries := e.Section(registry.SectionWork)
	want := []string{"2018-12-31", UntilNow}
	var got []string
	for _, entry := range entries {
		got = append(got, entry["workEndDate"])
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("结束日期不符 (-want +got):\n%s", diff)
	}
}

// TestSectionFamilyAge 年龄缺失时不输出该字段。
func TestSectionFamilyAge(t *testing.T) {
	e := &Employee{FamilyMembers: []FamilyMember{
		{Relation: "父亲", Name: "甲", Age: intPtr(65)},
		{Relation: "母亲", Name: "乙"},
	}}
	entries := e.Section(registry.SectionFamily)
	if entries[0]["age"] != "65" || entries[0]["familyName"] != "甲" {
		t.Fatalf("第一位成员字段不符: %+v", entries[0])
	}
	if _, ok := entries[1]["age"]; ok {
		t.Fatalf("年龄缺失时不应输出 age: %+v", entries[1])
	}
}

func TestSectionNil(t *testing.T) {
	var e *Employee
	if e.Section(registry.SectionBasic) != nil || e.PhotoData() != "" {
		t.Fatalf("nil 档案应返回空值")
	}
	if got := (&Employee{}).Section("unknown"); got != nil {
		t.Fatalf("未知分组应返回 nil，实际 %+v", got)
	}
}

func TestDateCodecs(t *testing.T) {
	var v struct {
		D Date `json:"d" yaml:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2020-02-29"}`), &v); err != nil {
		t.Fatalf("JSON 解析失败: %v", err)
	}
	if v.D.String() != "2020-02-29" {
		t.Fatalf("JSON 日期不符: %s", v.D)
	}
	if err := yaml.Unmarshal([]byte("d: 2021-03-01\n"), &v); err != nil {
		t.Fatalf("YAML 解析失败: %v", err)
	}
	if v.D.String() != "2021-03-01" {
		t.Fatalf("YAML 日期不符: %s", v.D)
	}
	if err := json.Unmarshal([]byte(`{"d":null}`), &v); err != nil || !v.D.IsZero() {
		t.Fatalf("null 应得到零值: %v %v", v.D, err)
	}
	if err := yaml.Unmarshal([]byte("d: 2021/03/01\n"), &v); err == nil {
		t.Fatalf("错误格式应返回错误")
	}
	data, err := json.Marshal(struct {
		D Date `json:"d"`
	}{})
	if err != nil || string(data) != `{"d":null}` {
		t.Fatalf("零值应编码为 null: %s %v", data, err)
	}
}

func TestSampleSource(t *testing.T) {
	ctx := context.Background()
	s := NewSampleSource()
	ids, err := s.IDs(ctx)
	if err != nil {
		t.Fatalf("列出 ID 失败: %v", err)
	}
	if diff := cmp.Diff([]string{"001", "002", "003"}, ids); diff != "" {
		t.Fatalf("ID 不符 (-want +got):\n%s", diff)
	}
	e, err := s.Get(ctx, "001")
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if len(e.FamilyMembers) != 12 || !e.WorkExperiences[1].EndDate.IsZero() {
		t.Fatalf("演示档案 001 不符: %d 位家庭成员", len(e.FamilyMembers))
	}
	if _, err := s.Get(ctx, "404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound，实际 %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"id":"a","name":"甲","birthDate":"1990-01-02","familyMembers":[{"relation":"父亲","age":60}]}`)},
		"b.yaml": {Data: []byte("- id: b\n  name: 乙\n  workExperiences:\n    - startDate: 2020-01-01\n      company: 丙\n- id: c\n  name: 丁\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	src, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	ids, _ := src.IDs(context.Background())
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Fatalf("ID 不符 (-want +got):\n%s", diff)
	}
	a, _ := src.Get(context.Background(), "a")
	if a.BirthDate.String() != "1990-01-02" || *a.FamilyMembers[0].Age != 60 {
		t.Fatalf("档案 a 解析不符: %+v", a)
	}
	b, _ := src.Get(context.Background(), "b")
	if b.WorkExperiences[0].StartDate.String() != "2020-01-01" || b.WorkExperiences[0].Company != "丙" {
		t.Fatalf("档案 b 解析不符: %+v", b)
	}
}

func TestLoadFSRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"id":"x","name":"甲"}`)},
		"b.yml":  {Data: []byte("id: x\nname: 乙\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("重复 ID 应返回错误")
	}
	if _, err := LoadFS(fstest.MapFS{"e.json": {Data: []byte("  ")}}); err == nil {
		t.Fatalf("空文件应返回错误")
	}
}
