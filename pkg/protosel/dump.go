package protosel

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// representativeLength picks one message length inside [minLen, maxLen]
// to evaluate a cost model at for display purposes. maxLen may be
// SizeMax, in which case minLen itself (the start of the range) is
// used rather than trying to represent "infinity".
func representativeLength(minLen, maxLen uint64) uint64 {
	if maxLen == SizeMax {
		return minLen
	}
	return minLen + (maxLen-minLen)/2
}

func formatSize(n uint64) string {
	if n == SizeMax {
		return "inf"
	}
	return fmt.Sprintf("%d", n)
}

func formatThresh(t Threshold) string {
	switch t {
	case ThreshAuto:
		return "auto"
	case ThreshInf:
		return "inf"
	default:
		return fmt.Sprintf("%d", uint64(t))
	}
}

// Dump renders a human-readable report of how param would be selected:
// a "Selected protocols" table (the actual threshold table a Lookup
// would consult) followed by a "Candidates" table (every protocol that
// successfully initialized, selected or not, with its full capability
// range list). This is ucp_proto_select_dump_all /
// _dump_thresholds translated to Go.
//
// Dump always re-runs protocol Init rather than consulting a
// ProtoSelect's cache: it is a diagnostic tool, not a hot path, and a
// fresh run guarantees the report reflects the registry's current
// state rather than whatever happened to be cached.
func Dump(reg *Registry, worker any, epCfgIndex, rkeyCfgIndex int, param SelectParam, w io.Writer) error {
	mask, caps, privBuf, privOffsets, privSizes, err := collect(reg, worker, epCfgIndex, rkeyCfgIndex, param)
	if err != nil {
		return err
	}

	list, err := initThresh(mask, caps, param.String(), nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Selection parameters: %s\n\n", param.String())

	fmt.Fprintln(w, "Selected protocols:")
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROTOCOL\tSIZE\tTIME (nsec)\tBANDWIDTH (MiB/s)\tTHRESHOLD\tCONFIGURATION")

	start := uint64(0)
	for _, t := range list {
		proto := reg.At(t.protoID)
		priv := privBuf[privOffsets[t.protoID] : privOffsets[t.protoID]+privSizes[t.protoID]]

		rep := representativeLength(start, t.maxLength)
		perf, _ := caps[t.protoID].rangeAt(rep)
		timeNsec := perf.Perf.At(float64(rep)) * 1e9
		bandwidth := 0.0
		if perf.Perf.M > 0 {
			bandwidth = (1.0 / perf.Perf.M) / (1024 * 1024)
		}

		fmt.Fprintf(tw, "%s\t[%s, %s]\t%.1f\t%.1f\t%s\t%s\n",
			proto.Name(),
			formatSize(start), formatSize(t.maxLength),
			timeNsec, bandwidth,
			formatThresh(caps[t.protoID].CfgThresh),
			proto.ConfigStr(priv))

		if t.maxLength == SizeMax {
			break
		}
		start = t.maxLength + 1
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nCandidates:")
	tw = tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROTOCOL\tMIN LENGTH\tSIZE\tTIME (nsec)\tBANDWIDTH (MiB/s)\tTHRESHOLD\tCONFIGURATION")
	mask.ForEach(func(id int) {
		proto := reg.At(id)
		priv := privBuf[privOffsets[id] : privOffsets[id]+privSizes[id]]
		c := caps[id]
		rangeStart := c.MinLength
		for _, r := range c.Ranges {
			rep := representativeLength(rangeStart, r.MaxLength)
			timeNsec := r.Perf.At(float64(rep)) * 1e9
			bandwidth := 0.0
			if r.Perf.M > 0 {
				bandwidth = (1.0 / r.Perf.M) / (1024 * 1024)
			}
			fmt.Fprintf(tw, "%s\t%s\t[%s, %s]\t%.1f\t%.1f\t%s\t%s\n",
				proto.Name(), formatSize(c.MinLength),
				formatSize(rangeStart), formatSize(r.MaxLength),
				timeNsec, bandwidth,
				formatThresh(c.CfgThresh), proto.ConfigStr(priv))
			if r.MaxLength == SizeMax {
				break
			}
			rangeStart = r.MaxLength + 1
		}
	})
	return tw.Flush()
}
