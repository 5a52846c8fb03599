package plugins

import (
	"context"
	"crypto/tls"
	"time"

	quicgo "github.com/quic-go/quic-go"

	"github.com/HiC4Sh1e/ucx/pkg/protosel"
	"github.com/HiC4Sh1e/ucx/pkg/transport"
)

// QUIC probes one or more host:port targets with a QUIC handshake and
// picks the fastest as its cost model's basis. Grounded on the
// teacher's quic.Transport.Dial (quicgo.DialAddr with an insecure
// client tls.Config), trimmed from a standing multiplexed session down
// to a single handshake-and-close measurement.
type QUIC struct {
	Targets     []string
	Cache       *QualityCache
	DialTimeout time.Duration
	CfgThresh   protosel.Threshold

	tlsConf *tls.Config
}

func NewQUIC(targets []string, cache *QualityCache, dialTimeout time.Duration, cfgThresh protosel.Threshold) *QUIC {
	return &QUIC{
		Targets:     targets,
		Cache:       cache,
		DialTimeout: dialTimeout,
		CfgThresh:   cfgThresh,
		tlsConf: &tls.Config{
			InsecureSkipVerify: true,
			NextProtos:         []string{"protosel-probe"},
			MinVersion:         tls.VersionTLS13,
		},
	}
}

func (QUIC) Name() string { return "quic" }

func (q *QUIC) Init(params *protosel.InitParams) (protosel.InitResult, error) {
	best, target, err := probeBest(q.Targets, q.Cache, q.DialTimeout, q.dial)
	if err != nil {
		return protosel.InitResult{}, err
	}
	n := copy(params.Priv, target)

	return protosel.InitResult{
		Caps: protosel.ProtoCaps{
			CfgThresh: q.CfgThresh,
			Ranges:    []protosel.Range{{MaxLength: protosel.SizeMax, Perf: transport.CostFromQuality(transport.KindQUICDirect, best)}},
		},
		PrivSize: n,
	}, nil
}

func (QUIC) ConfigStr(priv []byte) string {
	if len(priv) == 0 {
		return "quic: no target measured"
	}
	return "quic: " + string(priv)
}

func (q *QUIC) dial(target string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	conn, err := quicgo.DialAddr(ctx, target, q.tlsConf, &quicgo.Config{})
	if err != nil {
		return err
	}
	return conn.CloseWithError(0, "")
}
