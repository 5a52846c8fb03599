package plugins

import (
	"net"
	"time"

	"github.com/HiC4Sh1e/ucx/pkg/protosel"
	"github.com/HiC4Sh1e/ucx/pkg/transport"
)

// TCP probes one or more host:port targets with a plain TCP connect and
// picks the fastest as its cost model's basis. Grounded on the
// teacher's tcp.Transport.Dial (net.Dialer.DialContext), trimmed down
// from a length-prefixed-frame session to a single connect-and-close
// measurement.
type TCP struct {
	Targets     []string
	Cache       *QualityCache
	DialTimeout time.Duration
	CfgThresh   protosel.Threshold
}

func NewTCP(targets []string, cache *QualityCache, dialTimeout time.Duration, cfgThresh protosel.Threshold) *TCP {
	return &TCP{Targets: targets, Cache: cache, DialTimeout: dialTimeout, CfgThresh: cfgThresh}
}

func (TCP) Name() string { return "tcp" }

func (t *TCP) Init(params *protosel.InitParams) (protosel.InitResult, error) {
	best, target, err := probeBest(t.Targets, t.Cache, t.DialTimeout, dialTCP)
	if err != nil {
		return protosel.InitResult{}, err
	}
	n := copy(params.Priv, target)

	return protosel.InitResult{
		Caps: protosel.ProtoCaps{
			CfgThresh: t.CfgThresh,
			Ranges:    []protosel.Range{{MaxLength: protosel.SizeMax, Perf: transport.CostFromQuality(transport.KindTCPDirect, best)}},
		},
		PrivSize: n,
	}, nil
}

func (TCP) ConfigStr(priv []byte) string {
	if len(priv) == 0 {
		return "tcp: no target measured"
	}
	return "tcp: " + string(priv)
}

func dialTCP(target string, timeout time.Duration) error {
	c, err := net.DialTimeout("tcp", target, timeout)
	if err != nil {
		return err
	}
	return c.Close()
}
