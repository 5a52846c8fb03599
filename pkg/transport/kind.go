// Package transport holds the value types protocol plugins use to
// describe what they measured: which kind of link they probed and how
// good it looked. It carries no live connections; probing is a
// short-lived operation performed inside a plugin's Init, not a
// standing session the package manages.
package transport

import "time"

// Kind identifies which underlying link a protocol plugin measured.
type Kind int

const (
	KindUnknown Kind = iota
	KindMem
	KindTCPDirect
	KindQUICDirect
	KindWinPipe
	KindUDP
)

func (k Kind) String() string {
	switch k {
	case KindMem:
		return "mem"
	case KindTCPDirect:
		return "tcp:direct"
	case KindQUICDirect:
		return "quic:direct"
	case KindWinPipe:
		return "winpipe"
	case KindUDP:
		return "udp"
	default:
		return "unknown"
	}
}

// PeerID is an opaque probe-target identity: an address, pipe name, or
// similar string a plugin dialed to take a measurement.
type PeerID string

// PeerInfo bundles a probe target's identity and addressing hint.
type PeerInfo struct {
	ID   PeerID
	Addr string
}

// Quality is what a plugin's probe measured about a link: currently
// just round-trip time, since that is all the cost model in cost.go
// consumes. EstablishedAt/LastSeen record when the measurement was
// taken; the TTL cache in pkg/protosel/plugins keeps its own expiry
// time and does not read them.
type Quality struct {
	RTT           time.Duration
	EstablishedAt time.Time
	LastSeen      time.Time
}
