package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.001, 1, 12, 14.4, 72, 1000} {
		if diff := math.Abs(Length{Value: v, Unit: UnitPT}.ToMM()*MmToPt - v); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt diff=%g", v, diff)
		}
		if diff := math.Abs(Mm(v).ToPT()*PtToMm - v); diff > 1e-9 {
			t.Fatalf("mm→pt→mm 往返误差过大: in=%gmm diff=%g", v, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in     string
		wantMM float64
	}{
		{"257mm", 257},
		{"257", 257},
		{" 2.54cm ", 25.4},
		{"1in", 25.4},
		{"12pt", 12 * PtToMm},
		{"20MM", 20},
	}
	for _, c := range cases {
		l, err := ParseLength(c.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) 返回错误: %v", c.in, err)
		}
		if diff := math.Abs(l.ToMM() - c.wantMM); diff > 1e-9 {
			t.Fatalf("ParseLength(%q) = %gmm，期望 %gmm", c.in, l.ToMM(), c.wantMM)
		}
	}
	for _, bad := range []string{"", "abc", "12px", "-3mm"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) 应返回错误", bad)
		}
	}
}

// TestLineHeightResolve 倍数与绝对值两种行高在毫米下的解析结果。
func TestLineHeightResolve(t *testing.T) {
	fontSize := Length{Value: 12, Unit: UnitPT}
	cases := []struct {
		in   string
		want float64
	}{
		{"1.2x", 12 * 1.2 * PtToMm},
		{"1.5", 12 * 1.5 * PtToMm},
		{"18pt", 18 * PtToMm},
		{"6mm", 6},
	}
	for _, c := range cases {
		spec, err := ParseLineHeight(c.in)
		if err != nil {
			t.Fatalf("ParseLineHeight(%q) 返回错误: %v", c.in, err)
		}
		if diff := math.Abs(spec.ResolveMM(fontSize) - c.want); diff > 1e-9 {
			t.Fatalf("%s 解析为 mm 错误: got=%g want=%g", c.in, spec.ResolveMM(fontSize), c.want)
		}
	}
	if got := (LineHeightSpec{}).ResolveMM(fontSize); math.Abs(got-12*1.4*PtToMm) > 1e-9 {
		t.Fatalf("默认行高应为 1.4 倍，实际 %g", got)
	}
	if _, err := ParseLineHeight("0x"); err == nil {
		t.Fatalf("0 倍行高应返回错误")
	}
}

func TestLengthString(t *testing.T) {
	if got := Mm(20).String(); got != "20mm" {
		t.Fatalf("期望 20mm，实际 %s", got)
	}
	if got := (Length{Value: 12.5, Unit: UnitPT}).String(); got != "12.5pt" {
		t.Fatalf("期望 12.5pt，实际 %s", got)
	}
}
