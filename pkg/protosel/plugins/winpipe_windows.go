//go:build windows

package plugins

import (
	"context"
	"time"

	"github.com/Microsoft/go-winio"

	"github.com/HiC4Sh1e/ucx/pkg/protosel"
	"github.com/HiC4Sh1e/ucx/pkg/transport"
)

// WinPipe probes one or more named-pipe paths with winio.DialPipeContext
// and picks the fastest as its cost model's basis. Grounded on the
// teacher's winpipe.Transport.Dial, trimmed from a standing
// length-prefixed-frame session down to a single connect-and-close
// measurement.
type WinPipe struct {
	Targets     []string
	Cache       *QualityCache
	DialTimeout time.Duration
	CfgThresh   protosel.Threshold
}

func NewWinPipe(targets []string, cache *QualityCache, dialTimeout time.Duration, cfgThresh protosel.Threshold) *WinPipe {
	return &WinPipe{Targets: targets, Cache: cache, DialTimeout: dialTimeout, CfgThresh: cfgThresh}
}

func (WinPipe) Name() string { return "winpipe" }

func (w *WinPipe) Init(params *protosel.InitParams) (protosel.InitResult, error) {
	best, target, err := probeBest(w.Targets, w.Cache, w.DialTimeout, dialWinPipe)
	if err != nil {
		return protosel.InitResult{}, err
	}
	n := copy(params.Priv, target)

	return protosel.InitResult{
		Caps: protosel.ProtoCaps{
			CfgThresh: w.CfgThresh,
			Ranges:    []protosel.Range{{MaxLength: protosel.SizeMax, Perf: transport.CostFromQuality(transport.KindWinPipe, best)}},
		},
		PrivSize: n,
	}, nil
}

func (WinPipe) ConfigStr(priv []byte) string {
	if len(priv) == 0 {
		return "winpipe: no target measured"
	}
	return "winpipe: " + string(priv)
}

func dialWinPipe(target string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	conn, err := winio.DialPipeContext(ctx, target)
	if err != nil {
		return err
	}
	return conn.Close()
}
