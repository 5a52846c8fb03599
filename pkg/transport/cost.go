package transport

import "github.com/HiC4Sh1e/ucx/pkg/protosel"

// bandwidth is the assumed per-kind throughput ceiling, in bytes/second,
// used to derive the per-byte term of a cost model when no better
// bandwidth measurement is available. These preserve the same relative
// ordering the original session manager's baseRank gave these kinds
// (mem fastest, then quic, winpipe, tcp, udp slowest) but express it as
// a concrete affine coefficient instead of an opaque preference score.
func bandwidth(k Kind) float64 {
	switch k {
	case KindMem:
		return 8 << 30 // 8 GiB/s, effectively memcpy speed
	case KindQUICDirect:
		return 1 << 30
	case KindWinPipe:
		return 512 << 20
	case KindTCPDirect:
		return 256 << 20
	case KindUDP:
		return 128 << 20
	default:
		return 1 << 20
	}
}

// BaselineCost returns a cost model for kind before any probe has run,
// using only the assumed bandwidth ceiling and a nominal fixed latency.
// The mem plugin uses this, since it runs no probe. The probing plugins
// (tcp, quic, winpipe) do not fall back to it: when they have no target
// and no usable measurement, their Init fails instead.
func BaselineCost(k Kind) protosel.LinearFunc {
	return protosel.LinearFunc{C: 1e-6, M: 1.0 / bandwidth(k)}
}

// CostFromQuality converts a measured Quality into a cost model: the
// measured round-trip time becomes the fixed-cost term (halved, since
// RTT covers a round trip and the cost model prices one-way transfer),
// the per-byte term still comes from the kind's assumed bandwidth
// ceiling since a single RTT probe doesn't measure throughput.
func CostFromQuality(k Kind, q Quality) protosel.LinearFunc {
	return protosel.LinearFunc{
		C: q.RTT.Seconds() / 2,
		M: 1.0 / bandwidth(k),
	}
}
