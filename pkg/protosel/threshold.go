package protosel

import (
	"math"

	"go.uber.org/zap"
)

// msgLenEpsilon shifts every cost evaluation strictly past the interval
// start, resolving ties at the boundary itself. Matches
// UCP_PROTO_MSGLEN_EPSILON in the original.
const msgLenEpsilon = 0.5

// thresholdTmp is one entry of the in-progress (pre-coalesce-verified)
// threshold list built while sweeping message lengths.
type thresholdTmp struct {
	maxLength uint64
	protoID   int
}

// appendThreshold appends (maxLength, protoID) to list, coalescing with
// the previous entry when it already names the same protocol. This is
// what keeps adjacent threshold entries at distinct protocol ids.
func appendThreshold(list []thresholdTmp, maxLength uint64, protoID int) []thresholdTmp {
	if n := len(list); n > 0 && list[n-1].protoID == protoID {
		list[n-1].maxLength = maxLength
		return list
	}
	return append(list, thresholdTmp{maxLength: maxLength, protoID: protoID})
}

// selectBest computes the lower envelope of the active protocols' cost
// functions over [start, end] (both inclusive) and appends the
// resulting (coalesced) breakpoints to list. This is
// ucp_proto_thresholds_select_best translated to Go.
func selectBest(mask IDMask, perf []LinearFunc, start, end uint64, list []thresholdTmp) []thresholdTmp {
	for {
		// Find the best protocol just past 'start'; the epsilon offset
		// resolves exact ties at the boundary deterministically by
		// ascending protocol id (ForEach's iteration order). This is
		// the normative tie-break, not a bug to fix.
		best := -1
		bestVal := math.MaxFloat64
		x0 := float64(start) + msgLenEpsilon
		mask.ForEach(func(id int) {
			v := perf[id].At(x0)
			if v < bestVal {
				bestVal = v
				best = id
			}
		})

		// Find the nearest intersection with any other active
		// protocol strictly after 'start'; that is where 'best' stops
		// being the winner.
		midpoint := end
		rest := mask.Clear(best)
		rest.ForEach(func(id int) {
			xInt, ok := perf[id].Intersect(perf[best])
			if !ok {
				return
			}
			// Snap floating-point round-off back onto an exact integer
			// crossover (e.g. 999.9999999 for a true crossing at 1000)
			// before it is floored below.
			if r := math.Round(xInt); math.Abs(xInt-r) <= 1e-9*math.Max(1, r) {
				xInt = r
			}
			if xInt <= float64(start) {
				return
			}
			if xInt < float64(SizeMax) {
				m := uint64(xInt)
				if m < midpoint {
					midpoint = m
				}
			}
		})
		// midpoint is always >= start here: every xInt considered above
		// is strictly greater than start, so its floor cannot be
		// smaller. It can equal start exactly when an intersection
		// falls inside (start, start+1): a one-length interval is a
		// legitimate outcome, not a bug to special-case. The epsilon
		// tie-break is normative, not a defect to fix.
		list = appendThreshold(list, midpoint, best)

		mask = rest
		if midpoint >= end {
			return list
		}
		start = midpoint + 1
	}
}

// selectNext narrows [msgLength, maxLength] to the sub-range where the
// set of valid/forced protocols is stable, applies the AUTO/INF/finite
// cfg_thresh override policy, and runs selectBest over the result. This
// is ucp_proto_thresholds_select_next translated to Go; it returns the
// resolved maxLength for the caller's outer sweep.
func selectNext(mask IDMask, caps []ProtoCaps, msgLength uint64, list []thresholdTmp) ([]thresholdTmp, uint64, error) {
	perf := make([]LinearFunc, len(caps))
	var validMask, forcedMask IDMask
	maxLength := uint64(SizeMax)

	mask.ForEach(func(id int) {
		c := &caps[id]
		r, ok := c.rangeAt(msgLength)
		if !ok {
			return
		}
		if c.CfgThresh == ThreshInf {
			// Disabled unconditionally: its own range boundary never
			// becomes a real breakpoint, so it must not narrow
			// maxLength here.
			return
		}

		validMask = validMask.Set(id)
		perf[id] = r.Perf
		if r.MaxLength < maxLength {
			maxLength = r.MaxLength
		}

		switch {
		case c.CfgThresh == ThreshAuto:
			// no effect
		case uint64(c.CfgThresh) <= msgLength:
			forcedMask = forcedMask.Set(id)
		default:
			if t := uint64(c.CfgThresh) - 1; t < maxLength {
				maxLength = t
			}
			validMask = validMask.Clear(id)
		}
	})

	if validMask.IsEmpty() {
		return list, 0, ErrUnsupported
	}

	if forced := forcedMask & validMask; !forced.IsEmpty() {
		validMask = forced
	}

	list = selectBest(validMask, perf, msgLength, maxLength, list)
	return list, maxLength, nil
}

// initThresh sweeps [0, SizeMax] left to right via repeated selectNext
// calls, producing the full coalesced threshold list for one
// SelectParam. This is ucp_proto_select_elem_init_thresh's sweep loop.
func initThresh(mask IDMask, caps []ProtoCaps, paramStr string, logger *zap.Logger) ([]thresholdTmp, error) {
	var list []thresholdTmp
	msgLength := uint64(0)
	for {
		var maxLength uint64
		var err error
		list, maxLength, err = selectNext(mask, caps, msgLength, list)
		if err != nil {
			if err == ErrUnsupported && logger != nil {
				logger.Warn("no protocol for message length",
					zap.String("select_param", paramStr),
					zap.Uint64("msg_length", msgLength))
			}
			return nil, err
		}
		if maxLength == SizeMax {
			return list, nil
		}
		msgLength = maxLength + 1
	}
}
