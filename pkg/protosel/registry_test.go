package protosel

import "testing"

func TestIDMaskForEachAscending(t *testing.T) {
	var m IDMask
	m = m.Set(5).Set(1).Set(3).Set(0)

	var got []int
	m.ForEach(func(id int) { got = append(got, id) })

	want := []int{0, 1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if m.PopCount() != 4 {
		t.Fatalf("PopCount = %d, want 4", m.PopCount())
	}
}

func TestIDMaskSetClearHas(t *testing.T) {
	var m IDMask
	m = m.Set(2)
	if !m.Has(2) {
		t.Fatalf("expected bit 2 set")
	}
	m = m.Clear(2)
	if m.Has(2) {
		t.Fatalf("expected bit 2 cleared")
	}
	if !m.IsEmpty() {
		t.Fatalf("expected empty mask")
	}
}

type fakeProtocol struct {
	name string
}

func (p *fakeProtocol) Name() string { return p.name }
func (p *fakeProtocol) Init(params *InitParams) (InitResult, error) {
	return InitResult{Caps: ProtoCaps{
		Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 1, M: 1}}},
	}}, nil
}
func (p *fakeProtocol) ConfigStr(priv []byte) string { return p.name }

func TestRegistryFullAt64(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < MaxProtocols; i++ {
		if _, err := reg.Register(&fakeProtocol{name: "p"}); err != nil {
			t.Fatalf("unexpected error registering protocol %d: %v", i, err)
		}
	}
	if _, err := reg.Register(&fakeProtocol{name: "overflow"}); err == nil {
		t.Fatalf("expected error registering 65th protocol")
	}
	if reg.Count() != MaxProtocols {
		t.Fatalf("Count() = %d, want %d", reg.Count(), MaxProtocols)
	}
	if reg.FullMask().PopCount() != MaxProtocols {
		t.Fatalf("FullMask popcount = %d, want %d", reg.FullMask().PopCount(), MaxProtocols)
	}
}
