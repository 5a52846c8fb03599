package protosel

import "testing"

func TestNewSelectParamSaturatesSGCount(t *testing.T) {
	p := NewSelectParam(OpTagSend, 0, DTIov, MemHost, 1000)
	if p.SGCount != maxSGCount {
		t.Fatalf("SGCount = %d, want %d", p.SGCount, maxSGCount)
	}
	p = NewSelectParam(OpTagSend, 0, DTIov, MemHost, -5)
	if p.SGCount != 0 {
		t.Fatalf("SGCount = %d, want 0", p.SGCount)
	}
}

func TestSelectParamStringShape(t *testing.T) {
	p := NewSelectParam(OpTagSend, FlagFastCompletion, DTIov, MemCUDA, 4)
	got := p.String()
	want := "tag_send() on a IOV data-type with 4 scatter-gather entries in cuda memory and fast completion"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	p2 := NewSelectParam(OpPut, 0, DTContig, MemHost, 1)
	got2 := p2.String()
	want2 := "put() on a contiguous data-type in host memory"
	if got2 != want2 {
		t.Fatalf("String() = %q, want %q", got2, want2)
	}
}

func TestSelectParamEqualityAsMapKey(t *testing.T) {
	a := NewSelectParam(OpGet, 0, DTContig, MemHost, 1)
	b := NewSelectParam(OpGet, 0, DTContig, MemHost, 1)
	c := NewSelectParam(OpGet, 0, DTContig, MemHost, 2)

	m := map[SelectParam]int{a: 1}
	if _, ok := m[b]; !ok {
		t.Fatalf("expected equal SelectParams to collide as map keys")
	}
	if _, ok := m[c]; ok {
		t.Fatalf("expected distinct SelectParams to not collide")
	}
}

func TestSelectParamU64Distinct(t *testing.T) {
	a := NewSelectParam(OpPut, 0, DTContig, MemHost, 1)
	b := NewSelectParam(OpGet, 0, DTContig, MemHost, 1)
	if a.U64() == b.U64() {
		t.Fatalf("expected distinct U64 packings for distinct ops")
	}
}
