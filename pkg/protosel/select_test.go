package protosel

import "testing"

type twoRangeProtocol struct{ id string }

func (p *twoRangeProtocol) Name() string { return p.id }
func (p *twoRangeProtocol) Init(params *InitParams) (InitResult, error) {
	priv := []byte(p.id)
	n := copy(params.Priv, priv)
	return InitResult{
		Caps: ProtoCaps{
			Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 100e-9, M: 1e-9}}},
		},
		PrivSize: n,
	}, nil
}
func (p *twoRangeProtocol) ConfigStr(priv []byte) string { return string(priv) }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	if _, err := reg.Register(&twoRangeProtocol{id: "mem"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := reg.Register(&twoRangeProtocol{id: "tcp"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return reg
}

func TestLookupSlowThenFastHitsMRU(t *testing.T) {
	reg := newTestRegistry(t)
	ps := NewProtoSelect(reg, nil, 0, 0, nil)

	param := NewSelectParam(OpTagSend, 0, DTContig, MemHost, 1)
	elem1, err := ps.LookupFast(param)
	if err != nil {
		t.Fatalf("LookupFast: %v", err)
	}
	if ps.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", ps.Count())
	}

	elem2, err := ps.LookupFast(param)
	if err != nil {
		t.Fatalf("LookupFast second call: %v", err)
	}
	if elem1 != elem2 {
		t.Fatalf("expected MRU cache hit to return identical pointer")
	}
}

// S6: repeated lookups across many distinct SelectParams force the
// backing map to grow multiple times; every previously built SelectElem
// must still resolve to the same result afterward, proving the MRU
// cache never observes a stale pointer across a map rehash.
func TestLookupAcrossManyParamsSurvivesRehash(t *testing.T) {
	reg := newTestRegistry(t)
	ps := NewProtoSelect(reg, nil, 0, 0, nil)

	var params []SelectParam
	var firsts []*SelectElem
	for sg := 0; sg < 50; sg++ {
		p := NewSelectParam(OpTagSend, 0, DTContig, MemHost, sg)
		params = append(params, p)
		elem, err := ps.LookupFast(p)
		if err != nil {
			t.Fatalf("LookupFast(%v): %v", p, err)
		}
		firsts = append(firsts, elem)
	}

	for i, p := range params {
		elem, err := ps.LookupFast(p)
		if err != nil {
			t.Fatalf("re-lookup(%v): %v", p, err)
		}
		if elem == nil || len(elem.Thresholds) == 0 {
			t.Fatalf("re-lookup(%v) produced empty element", p)
		}
		if elem != firsts[i] {
			t.Fatalf("re-lookup(%v) returned a different element than the first lookup", p)
		}
	}

	if ps.Count() != len(params) {
		t.Fatalf("Count() = %d, want %d", ps.Count(), len(params))
	}
}

func TestCleanupDropsCacheAndMap(t *testing.T) {
	reg := newTestRegistry(t)
	ps := NewProtoSelect(reg, nil, 0, 0, nil)

	param := NewSelectParam(OpGet, 0, DTContig, MemHost, 1)
	if _, err := ps.LookupFast(param); err != nil {
		t.Fatalf("LookupFast: %v", err)
	}
	ps.Cleanup()
	if ps.Count() != 0 {
		t.Fatalf("Count() after Cleanup = %d, want 0", ps.Count())
	}
	if ps.cacheValid {
		t.Fatalf("expected MRU cache invalidated after Cleanup")
	}
}

func TestLookupSlowNoProtocolsSupported(t *testing.T) {
	reg := NewRegistry()
	ps := NewProtoSelect(reg, nil, 0, 0, nil)

	if _, err := ps.LookupFast(NewSelectParam(OpGet, 0, DTContig, MemHost, 1)); err != ErrNoElem {
		t.Fatalf("expected ErrNoElem for empty registry, got %v", err)
	}
}

func TestElemLookupFindsCorrectProtocol(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&twoRangeProtocol{id: "small"})
	ps := NewProtoSelect(reg, nil, 0, 0, nil)

	elem, err := ps.LookupFast(NewSelectParam(OpPut, 0, DTContig, MemHost, 1))
	if err != nil {
		t.Fatalf("LookupFast: %v", err)
	}
	cfg := elem.Lookup(1024)
	if cfg == nil {
		t.Fatalf("Lookup(1024) = nil")
	}
	if cfg.ProtoID != 0 {
		t.Fatalf("ProtoID = %d, want 0", cfg.ProtoID)
	}
}
