package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/HiC4Sh1e/ucx/pkg/config"
	"github.com/HiC4Sh1e/ucx/pkg/observability"
	"github.com/HiC4Sh1e/ucx/pkg/protosel"
	"github.com/HiC4Sh1e/ucx/pkg/protosel/plugins"
)

// run builds the protocol registry from configuration and dumps the
// threshold tables a representative set of selection parameters would
// produce.
func run(opts Options) int {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	zap.L().Info("protosel-dump started", zap.String("app", cfg.AppName))
	zap.L().Info("effective configuration", zap.Any("config", cfg))

	cache := plugins.NewQualityCache(time.Duration(cfg.Net.ProbeCacheTTLSeconds) * time.Second)
	defer cache.Close()
	dialTimeout := time.Duration(cfg.Net.DialTimeoutMS) * time.Millisecond

	reg := protosel.NewRegistry()
	for _, pc := range cfg.Protocols {
		thresh, err := config.ParseThreshold(pc.CfgThresh)
		if err != nil {
			zap.L().Error("skipping protocol with invalid cfg_thresh", zap.String("kind", pc.Kind), zap.Error(err))
			continue
		}
		p, err := newPlugin(pc.Kind, pc.Probe, cache, dialTimeout, thresh)
		if err != nil {
			zap.L().Error("skipping unknown protocol kind", zap.String("kind", pc.Kind), zap.Error(err))
			continue
		}
		if _, err := reg.Register(p); err != nil {
			zap.L().Error("failed to register protocol", zap.String("kind", pc.Kind), zap.Error(err))
			return 1
		}
	}

	if reg.Count() == 0 {
		zap.L().Error("no protocols registered; nothing to dump")
		return 1
	}
	zap.L().Info("registry built",
		zap.Int("count", reg.Count()),
		zap.Uint64("registered_mask", uint64(reg.FullMask())))

	for _, param := range sampleParams() {
		fmt.Printf("\n=== %s ===\n", param.String())
		if err := protosel.Dump(reg, nil, 0, 0, param, os.Stdout); err != nil {
			zap.L().Warn("dump failed for parameter set", zap.String("param", param.String()), zap.Error(err))
		}
	}

	return 0
}

func newPlugin(kind string, probe []string, cache *plugins.QualityCache, dialTimeout time.Duration, thresh protosel.Threshold) (protosel.Protocol, error) {
	switch kind {
	case "mem":
		return plugins.NewMem(), nil
	case "tcp":
		return plugins.NewTCP(probe, cache, dialTimeout, thresh), nil
	case "quic":
		return plugins.NewQUIC(probe, cache, dialTimeout, thresh), nil
	case "winpipe":
		return plugins.NewWinPipe(probe, cache, dialTimeout, thresh), nil
	default:
		return nil, fmt.Errorf("unknown protocol kind %q", kind)
	}
}

// sampleParams lists the selection parameters the dump tool reports on.
// A real caller would ask protosel for whatever parameters its own
// operations use; this is a representative handful for demonstration.
func sampleParams() []protosel.SelectParam {
	return []protosel.SelectParam{
		protosel.NewSelectParam(protosel.OpTagSend, 0, protosel.DTContig, protosel.MemHost, 1),
		protosel.NewSelectParam(protosel.OpPut, 0, protosel.DTContig, protosel.MemHost, 1),
		protosel.NewSelectParam(protosel.OpTagSend, 0, protosel.DTIov, protosel.MemHost, 4),
	}
}
