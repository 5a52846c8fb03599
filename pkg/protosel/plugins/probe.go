package plugins

import (
	"time"

	"github.com/HiC4Sh1e/ucx/pkg/protosel"
	"github.com/HiC4Sh1e/ucx/pkg/transport"
)

// dialFunc opens and immediately closes a connection to target, for RTT
// measurement only. It returns an error if the target is unreachable.
type dialFunc func(target string, timeout time.Duration) error

// probeBest times dial against every target in order and returns the
// Quality and target string of the fastest successful connect. A cache
// hit short-circuits the dial for that target. If every dial fails, the
// last cached Quality (if any) is returned instead of an error, since a
// plugin that measured a target once shouldn't go unselectable the
// moment it becomes briefly unreachable; only with no targets and no
// cache at all does this return protosel.ErrUnsupported.
func probeBest(targets []string, cache *QualityCache, timeout time.Duration, dial dialFunc) (transport.Quality, string, error) {
	var (
		best        transport.Quality
		bestOK      bool
		bestTgt     string
		fallback    transport.Quality
		fellBack    bool
		fallbackTgt string
	)

	for _, target := range targets {
		if cache != nil {
			if q, ok := cache.GetQuality(target); ok {
				if !bestOK || q.RTT < best.RTT {
					best, bestOK, bestTgt = q, true, target
				}
				continue
			}
		}
		start := time.Now()
		if err := dial(target, timeout); err != nil {
			if cache != nil {
				if q, ok := cache.GetQuality(target); ok && !fellBack {
					fallback, fallbackTgt, fellBack = q, target, true
				}
			}
			continue
		}
		rtt := time.Since(start)
		now := time.Now()
		q := transport.Quality{RTT: rtt, EstablishedAt: now, LastSeen: now}
		if cache != nil {
			cache.SetQuality(target, q)
		}
		if !bestOK || q.RTT < best.RTT {
			best, bestOK, bestTgt = q, true, target
		}
	}

	if bestOK {
		return best, bestTgt, nil
	}
	if fellBack {
		return fallback, fallbackTgt, nil
	}
	return transport.Quality{}, "", protosel.ErrUnsupported
}
