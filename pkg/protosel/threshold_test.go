package protosel

import "testing"

// S1: a fixed-cost-dominant protocol beats a per-byte-dominant one for
// small messages, and the per-byte-dominant protocol wins past their
// crossover point.
func TestInitThreshCrossover(t *testing.T) {
	caps := []ProtoCaps{
		{CfgThresh: ThreshAuto, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 100e-9, M: 1e-9}}}},
		{CfgThresh: ThreshAuto, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 1000e-9, M: 0.1e-9}}}},
	}
	mask := IDMask(0).Set(0).Set(1)

	list, err := initThresh(mask, caps, "test", nil)
	if err != nil {
		t.Fatalf("initThresh: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 thresholds, got %d: %+v", len(list), list)
	}
	if list[0].protoID != 0 || list[0].maxLength != 1000 {
		t.Fatalf("first threshold = %+v, want proto 0 at 1000", list[0])
	}
	if list[1].protoID != 1 || list[1].maxLength != SizeMax {
		t.Fatalf("second threshold = %+v, want proto 1 at SizeMax", list[1])
	}
}

// S2: a finite cfg_thresh forces its protocol on at and above that
// length, regardless of cost, and disables it below.
func TestSelectNextForcedThreshold(t *testing.T) {
	caps := []ProtoCaps{
		// Cheaper everywhere, but forced off below 2000.
		{CfgThresh: Threshold(2000), Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 1e-9, M: 1e-9}}}},
		{CfgThresh: ThreshAuto, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 1000e-9, M: 1000e-9}}}},
	}
	mask := IDMask(0).Set(0).Set(1)

	list, err := initThresh(mask, caps, "test", nil)
	if err != nil {
		t.Fatalf("initThresh: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 thresholds, got %d: %+v", len(list), list)
	}
	if list[0].protoID != 1 || list[0].maxLength != 1999 {
		t.Fatalf("first threshold = %+v, want proto 1 up to 1999", list[0])
	}
	if list[1].protoID != 0 || list[1].maxLength != SizeMax {
		t.Fatalf("second threshold = %+v, want proto 0 forced on from 2000", list[1])
	}
}

// S3: ThreshInf disables a protocol unconditionally, even though it
// would otherwise always be cheapest.
func TestSelectNextDisabledProtocol(t *testing.T) {
	caps := []ProtoCaps{
		{CfgThresh: ThreshInf, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 0, M: 0}}}},
		{CfgThresh: ThreshAuto, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 100e-9, M: 1e-9}}}},
	}
	mask := IDMask(0).Set(0).Set(1)

	list, err := initThresh(mask, caps, "test", nil)
	if err != nil {
		t.Fatalf("initThresh: %v", err)
	}
	if len(list) != 1 || list[0].protoID != 1 {
		t.Fatalf("expected sole threshold for proto 1, got %+v", list)
	}
}

// S3b: a disabled protocol's own range boundary must not insert a
// breakpoint into the survivor's threshold table; it never competes on
// either side of that boundary, so the sweep should produce a single
// interval for the whole length axis, not a spurious split at the
// disabled protocol's range max.
func TestSelectNextDisabledProtocolRangeBoundaryIgnored(t *testing.T) {
	caps := []ProtoCaps{
		{CfgThresh: ThreshInf, Ranges: []Range{
			{MaxLength: 999, Perf: LinearFunc{C: 0, M: 0}},
			{MaxLength: SizeMax, Perf: LinearFunc{C: 0, M: 0}},
		}},
		{CfgThresh: ThreshAuto, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 100e-9, M: 1e-9}}}},
	}
	mask := IDMask(0).Set(0).Set(1)

	list, err := initThresh(mask, caps, "test", nil)
	if err != nil {
		t.Fatalf("initThresh: %v", err)
	}
	if len(list) != 1 || list[0].protoID != 1 || list[0].maxLength != SizeMax {
		t.Fatalf("expected a single threshold spanning the whole axis for proto 1, got %+v", list)
	}
}

// S4: a protocol whose capability is split across multiple length
// ranges produces a sweep that crosses each range boundary.
func TestInitThreshRangeSplit(t *testing.T) {
	caps := []ProtoCaps{
		{CfgThresh: ThreshAuto, Ranges: []Range{
			{MaxLength: 511, Perf: LinearFunc{C: 10e-9, M: 10e-9}},
			{MaxLength: SizeMax, Perf: LinearFunc{C: 10e-9, M: 1e-9}},
		}},
		{CfgThresh: ThreshAuto, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 5000e-9, M: 0.5e-9}}}},
	}
	mask := IDMask(0).Set(0).Set(1)

	list, err := initThresh(mask, caps, "test", nil)
	if err != nil {
		t.Fatalf("initThresh: %v", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected at least one threshold")
	}
	if list[len(list)-1].maxLength != SizeMax {
		t.Fatalf("expected table to terminate at SizeMax, last = %+v", list[len(list)-1])
	}
	for i := 1; i < len(list); i++ {
		if list[i].maxLength <= list[i-1].maxLength {
			t.Fatalf("thresholds not strictly increasing: %+v", list)
		}
		if list[i].protoID == list[i-1].protoID {
			t.Fatalf("adjacent thresholds not coalesced: %+v", list)
		}
	}
}

// S5: when every protocol is disabled or out of range at some message
// length, initThresh reports ErrUnsupported and a nil logger does not
// panic.
func TestInitThreshNoCoverage(t *testing.T) {
	caps := []ProtoCaps{
		{CfgThresh: ThreshAuto, MinLength: 64, Ranges: []Range{{MaxLength: SizeMax, Perf: LinearFunc{C: 1, M: 1}}}},
	}
	mask := IDMask(0).Set(0)

	_, err := initThresh(mask, caps, "test", nil)
	if err != ErrUnsupported {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestAppendThresholdCoalesces(t *testing.T) {
	var list []thresholdTmp
	list = appendThreshold(list, 100, 0)
	list = appendThreshold(list, 200, 0)
	if len(list) != 1 || list[0].maxLength != 200 {
		t.Fatalf("expected coalesced single entry, got %+v", list)
	}
	list = appendThreshold(list, 300, 1)
	if len(list) != 2 {
		t.Fatalf("expected new entry for distinct protocol, got %+v", list)
	}
}
