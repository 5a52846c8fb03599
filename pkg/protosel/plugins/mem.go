package plugins

import (
	"github.com/HiC4Sh1e/ucx/pkg/protosel"
	"github.com/HiC4Sh1e/ucx/pkg/transport"
)

// Mem is the always-available in-process protocol: no probe is run,
// since a same-process transfer's cost doesn't depend on any dialed
// target.
type Mem struct{}

func NewMem() *Mem { return &Mem{} }

func (Mem) Name() string { return "mem" }

func (Mem) Init(params *protosel.InitParams) (protosel.InitResult, error) {
	return protosel.InitResult{
		Caps: protosel.ProtoCaps{
			CfgThresh: protosel.ThreshAuto,
			Ranges:    []protosel.Range{{MaxLength: protosel.SizeMax, Perf: transport.BaselineCost(transport.KindMem)}},
		},
	}, nil
}

func (Mem) ConfigStr(priv []byte) string { return "mem: in-process, no probe" }
