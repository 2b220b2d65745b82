package binding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterpolate(t *testing.T) {
	data := Vars{
		"name":  "张三",
		"page":  2,
		"pages": 5,
		"employee": map[string]any{
			"id":   "001",
			"tags": []any{"在职", "技术"},
		},
		"ratio": 0.5,
	}
	cases := []struct {
		in   string
		want string
	}{
		{"员工档案 - ${name}", "员工档案 - 张三"},
		{"第 ${page} 页 / 共 ${pages} 页", "第 2 页 / 共 5 页"},
		{"${employee.id} ${employee.tags[1]}", "001 技术"},
		{"${ratio}", "0.5"},
		{"${ missing }", "${ missing }"},
		{"${missing|未填写}", "未填写"},
		{"${missing|}", ""},
		{"${name|匿名}", "张三"},
		{"${employee.tags[9]}", "${employee.tags[9]}"},
		{"无占位符", "无占位符"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${name}", nil); got != "${name}" {
		t.Fatalf("nil 数据应保留占位符，实际 %q", got)
	}
	if got := Interpolate("${name|无}", nil); got != "无" {
		t.Fatalf("nil 数据应使用默认值，实际 %q", got)
	}
}

func TestMissing(t *testing.T) {
	data := Vars{"name": "张三"}
	got := Missing("${name} ${page} ${page} ${pages|1} ${author}", data)
	if diff := cmp.Diff([]string{"page", "author"}, got); diff != "" {
		t.Fatalf("Missing 不符 (-want +got):\n%s", diff)
	}
}

func TestVarsWith(t *testing.T) {
	base := Vars{"name": "甲"}
	next := base.With("page", 1)
	if _, ok := base["page"]; ok {
		t.Fatalf("With 不应修改原 Vars")
	}
	if next["page"] != 1 || next["name"] != "甲" {
		t.Fatalf("With 结果不符: %+v", next)
	}
}
