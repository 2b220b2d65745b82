package canvasrenderer

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// runeWidth 每个字符宽 1mm。
func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func contents(t *testing.T, content string, limit float64) []string {
	t.Helper()
	var out []string
	for _, ln := range wrapText(content, limit, runeWidth) {
		if limit > 0 && ln.Width > limit {
			t.Fatalf("line %q width %g exceeds %g", ln.Content, ln.Width, limit)
		}
		out = append(out, ln.Content)
	}
	return out
}

func TestBreakUnits(t *testing.T) {
	got := breakUnits("ab  cd\r\nef工作,职责")
	want := []string{"ab", "  ", "cd", "\n", "ef", "工", "作", ",", "职", "责"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("units mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapTextLatinWords(t *testing.T) {
	got := contents(t, "hello world again", 11)
	want := []string{"hello world", "again"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapTextDropsSpaceAtSoftBreak(t *testing.T) {
	got := contents(t, "abcd efgh", 5)
	want := []string{"abcd", "efgh"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapTextCJKBreaksAnywhere(t *testing.T) {
	got := contents(t, "负责核心业务系统开发", 4)
	want := []string{"负责核心", "业务系统", "开发"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapTextSplitsLongWord(t *testing.T) {
	got := contents(t, "zhangsan@example.com", 8)
	want := []string{"zhangsan", "@example", ".com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapTextKeepsBlankLines(t *testing.T) {
	got := contents(t, "foo\n\n  bar", 100)
	want := []string{"foo", "", "  bar"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got := contents(t, "", 10); len(got) != 1 || got[0] != "" {
		t.Fatalf("empty content should produce one blank line, got %q", got)
	}
}

func TestWrapTextUnlimitedWidth(t *testing.T) {
	got := contents(t, "一行 很长 的 文本", 0)
	if len(got) != 1 {
		t.Fatalf("expected a single line without width limit, got %q", got)
	}
}
