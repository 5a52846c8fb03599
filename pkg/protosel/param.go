// Package protosel implements the protocol selection core: for a given
// combination of operation, data type, memory type and scatter-gather
// count, it picks which registered transport protocol should service a
// message of a given length, and caches the decision as a threshold
// table so that later lookups are O(n) in the (small) number of
// thresholds rather than a re-evaluation of the cost model.
package protosel

import "fmt"

// OpID enumerates the high-level operations the selection core can be
// asked to choose a protocol for. Fixed by the surrounding system; the
// core treats these as opaque tags.
type OpID uint8

const (
	OpPut OpID = iota
	OpGet
	OpTagSend
	OpTagRecv
	OpAmSend
	OpAmRecv
	OpAtomicFetch
	OpAtomicPost
	opIDCount
)

var opIDNames = [opIDCount]string{
	OpPut:         "put",
	OpGet:         "get",
	OpTagSend:     "tag_send",
	OpTagRecv:     "tag_recv",
	OpAmSend:      "am_send",
	OpAmRecv:      "am_recv",
	OpAtomicFetch: "atomic_fetch",
	OpAtomicPost:  "atomic_post",
}

func (o OpID) String() string {
	if int(o) < len(opIDNames) && opIDNames[o] != "" {
		return opIDNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// DTClass identifies the shape of a message's data type.
type DTClass uint8

const (
	DTContig DTClass = iota // single contiguous buffer
	DTIov                   // scatter-gather list of buffers
	DTGeneric               // user-defined packed/unpacked datatype
	dtClassCount
)

var dtClassNames = [dtClassCount]string{
	DTContig:  "contiguous",
	DTIov:     "IOV",
	DTGeneric: "generic",
}

func (d DTClass) String() string {
	if int(d) < len(dtClassNames) && dtClassNames[d] != "" {
		return dtClassNames[d]
	}
	return fmt.Sprintf("dt_class(%d)", uint8(d))
}

// MemType identifies the memory domain a message's buffer lives in.
type MemType uint8

const (
	MemHost MemType = iota
	MemCUDA
	MemROCM
	MemCUDAManaged
	memTypeCount
)

var memTypeNames = [memTypeCount]string{
	MemHost:        "host",
	MemCUDA:        "cuda",
	MemROCM:        "rocm",
	MemCUDAManaged: "cuda-managed",
}

func (m MemType) String() string {
	if int(m) < len(memTypeNames) && memTypeNames[m] != "" {
		return memTypeNames[m]
	}
	return fmt.Sprintf("mem_type(%d)", uint8(m))
}

// OpFlags is a bit set of operation attributes that influence selection.
// Only attributes that actually change the chosen protocol belong here;
// this mirrors the narrowing the original does in
// ucp_proto_select_op_attr_from_flags.
type OpFlags uint8

const (
	// FlagFastCompletion asks for local completion as soon as possible,
	// which can steer selection away from protocols that optimize for
	// throughput at the expense of completion latency.
	FlagFastCompletion OpFlags = 1 << 0
)

// maxSGCount is the saturation ceiling for SelectParam.SGCount: counts
// above this collapse to the same cache key, since cost models don't
// distinguish between "many" scatter-gather entries beyond this point.
const maxSGCount = 255

// SelectParam is the cache key for a selection: the tuple of attributes
// that can change which protocol is optimal. It is immutable once
// constructed and packs into a uint64 so it is cheap to use as a Go map
// key and to compare for the MRU fast-path cache.
type SelectParam struct {
	OpID    OpID
	OpFlags OpFlags
	DTClass DTClass
	MemType MemType
	SGCount uint8 // saturating scatter-gather entry count
}

// NewSelectParam builds a SelectParam, saturating sgCount at maxSGCount.
func NewSelectParam(op OpID, flags OpFlags, dt DTClass, mem MemType, sgCount int) SelectParam {
	sg := sgCount
	if sg < 0 {
		sg = 0
	}
	if sg > maxSGCount {
		sg = maxSGCount
	}
	return SelectParam{OpID: op, OpFlags: flags, DTClass: dt, MemType: mem, SGCount: uint8(sg)}
}

// U64 packs the parameter into a single 64-bit word. ProtoSelect's MRU
// cache (select.go) compares against this instead of struct equality,
// matching the original's single-word cache-tag comparison.
func (p SelectParam) U64() uint64 {
	return uint64(p.OpID) |
		uint64(p.OpFlags)<<8 |
		uint64(p.DTClass)<<16 |
		uint64(p.MemType)<<24 |
		uint64(p.SGCount)<<32
}

// String renders the parameter the way the original's
// ucp_proto_select_param_str does: "<op>() on a <dtclass> data-type
// [with N scatter-gather entries] in <memtype> memory[ and fast
// completion]".
func (p SelectParam) String() string {
	s := fmt.Sprintf("%s() on a %s data-type", p.OpID, p.DTClass)
	if p.SGCount > 1 {
		s += fmt.Sprintf(" with %d scatter-gather entries", p.SGCount)
	}
	s += fmt.Sprintf(" in %s memory", p.MemType)
	if p.OpFlags&FlagFastCompletion != 0 {
		s += " and fast completion"
	}
	return s
}
