package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/HiC4Sh1e/ucx/pkg/protosel"
)

// ProtocolConfig describes one protocol plugin to register and how to
// probe it for its cost model. Example YAML:
//
//	protocols:
//	  - kind: mem
//	  - kind: tcp
//	    probe: ["10.0.0.2:7777"]
//	    cfg_thresh: auto
//	  - kind: quic
//	    probe: ["10.0.0.2:4433"]
//	    cfg_thresh: inf   # disable entirely
//	  - kind: winpipe
//	    probe: ["\\\\.\\pipe\\protosel"]
//	    cfg_thresh: 64K   # force on at/above 64KiB, disabled below
type ProtocolConfig struct {
	Kind string `mapstructure:"kind"`
	// Probe is the set of addresses/targets this protocol's Init should
	// measure round-trip quality against. Meaning is protocol-specific:
	// a host:port for tcp/quic, a pipe name for winpipe, ignored for mem.
	Probe []string `mapstructure:"probe"`
	// CfgThresh overrides the cost-model-driven selection for this
	// protocol: "auto" (default, no override), "inf" (disable
	// entirely), or a size literal ("1024", "64K", "4M") that forces the
	// protocol on at or above that message length.
	CfgThresh string `mapstructure:"cfg_thresh"`
	// Extra holds protocol-specific options (reserved for future use)
	Extra map[string]any `mapstructure:"extra"`
}

// ParseThreshold parses a cfg_thresh literal into a protosel.Threshold.
// An empty string is equivalent to "auto". Size literals accept an
// optional K/M/G suffix (binary: 1024-based), matching the memunits
// convention used throughout the original system for size-like
// configuration values.
func ParseThreshold(s string) (protosel.Threshold, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "auto":
		return protosel.ThreshAuto, nil
	case "inf", "infinity":
		return protosel.ThreshInf, nil
	}

	mult := uint64(1)
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1024, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1024*1024, strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "g"):
		mult, s = 1024*1024*1024, strings.TrimSuffix(s, "g")
	}

	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cfg_thresh %q: %w", s, err)
	}
	v := n * mult
	if v >= uint64(protosel.ThreshInf) {
		return 0, fmt.Errorf("cfg_thresh %q overflows into the auto/inf sentinel range", s)
	}
	return protosel.Threshold(v), nil
}
