package protosel

// maxPriv bounds the scratch buffer handed to each protocol's Init. A
// protocol that needs more than this to describe its runtime
// configuration is a protocol that needs a bigger constant here, not a
// dynamic-size scheme, matching the original's fixed UCP_PROTO_PRIV_MAX.
const maxPriv = 256

// collect runs every registered protocol's Init against param and packs
// the private configuration blobs of the protocols that succeeded into
// one contiguous buffer. This is ucp_proto_select_init_protocols
// translated to Go: a single failed Init is not fatal, it just excludes
// that protocol from the resulting mask; only a totally empty result is
// an error.
func collect(reg *Registry, worker any, epCfgIndex, rkeyCfgIndex int, param SelectParam) (IDMask, []ProtoCaps, []byte, []int, []int, error) {
	n := reg.Count()
	caps := make([]ProtoCaps, n)
	privOffsets := make([]int, n)
	privSizes := make([]int, n)
	buf := make([]byte, n*maxPriv)

	var mask IDMask
	offset := 0
	scratch := make([]byte, maxPriv)

	for id := 0; id < n; id++ {
		for i := range scratch {
			scratch[i] = 0
		}
		params := &InitParams{
			Worker:       worker,
			EPCfgIndex:   epCfgIndex,
			RKeyCfgIndex: rkeyCfgIndex,
			SelectParam:  param,
			Priv:         scratch,
		}
		result, err := reg.At(id).Init(params)
		if err != nil {
			continue
		}

		mask = mask.Set(id)
		caps[id] = result.Caps
		privOffsets[id] = offset
		privSizes[id] = result.PrivSize
		copy(buf[offset:offset+result.PrivSize], scratch[:result.PrivSize])
		offset += result.PrivSize
	}

	if mask.IsEmpty() {
		return 0, nil, nil, nil, nil, ErrNoElem
	}

	// Shrink the buffer to what was actually written; protocols that
	// write nothing (a zero-size private config) still get a valid,
	// empty slice at their recorded offset.
	return mask, caps, buf[:offset], privOffsets, privSizes, nil
}
