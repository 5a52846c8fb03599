//go:build !windows

package plugins

import (
	"fmt"
	"time"

	"github.com/HiC4Sh1e/ucx/pkg/protosel"
)

// WinPipe is unsupported outside Windows; its Init always fails so the
// registry drops it from the candidate set rather than crashing.
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

func (WinPipe) Init(params *protosel.InitParams) (protosel.InitResult, error) {
	return protosel.InitResult{}, fmt.Errorf("winpipe protocol is not supported on this platform")
}

func (WinPipe) ConfigStr(priv []byte) string { return "winpipe: unsupported on this platform" }
