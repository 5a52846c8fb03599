package protosel

import "testing"

func TestLinearFuncAt(t *testing.T) {
	f := LinearFunc{C: 10, M: 2}
	if got := f.At(5); got != 20 {
		t.Fatalf("At(5) = %v, want 20", got)
	}
}

func TestLinearFuncIntersect(t *testing.T) {
	f := LinearFunc{C: 0, M: 2}
	g := LinearFunc{C: 100, M: 0.5}
	x, ok := f.Intersect(g)
	if !ok {
		t.Fatalf("expected an intersection")
	}
	want := 100.0 / 1.5
	if x != want {
		t.Fatalf("Intersect = %v, want %v", x, want)
	}
}

func TestLinearFuncIntersectParallel(t *testing.T) {
	f := LinearFunc{C: 0, M: 1}
	g := LinearFunc{C: 50, M: 1}
	if _, ok := f.Intersect(g); ok {
		t.Fatalf("expected no intersection for parallel lines")
	}
}

func TestProtoCapsRangeAt(t *testing.T) {
	c := ProtoCaps{
		MinLength: 8,
		Ranges: []Range{
			{MaxLength: 1023, Perf: LinearFunc{C: 1, M: 1}},
			{MaxLength: SizeMax, Perf: LinearFunc{C: 2, M: 2}},
		},
	}

	if _, ok := c.rangeAt(0); ok {
		t.Fatalf("expected no range below MinLength")
	}
	r, ok := c.rangeAt(8)
	if !ok || r.MaxLength != 1023 {
		t.Fatalf("rangeAt(8) = %+v, %v", r, ok)
	}
	r, ok = c.rangeAt(1024)
	if !ok || r.MaxLength != SizeMax {
		t.Fatalf("rangeAt(1024) = %+v, %v", r, ok)
	}
}

func TestThresholdIsFinite(t *testing.T) {
	if ThreshAuto.IsFinite() {
		t.Fatalf("ThreshAuto must not be finite")
	}
	if ThreshInf.IsFinite() {
		t.Fatalf("ThreshInf must not be finite")
	}
	if !Threshold(4096).IsFinite() {
		t.Fatalf("4096 must be finite")
	}
}
