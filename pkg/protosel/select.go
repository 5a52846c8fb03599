package protosel

import "go.uber.org/zap"

// ProtoSelect is the per-endpoint (or per-worker, depending on the
// caller's granularity) cache of selection decisions: a hash map from
// SelectParam to its built SelectElem, plus a single-entry MRU pointer
// cache that lets the hot path (same operation repeated) skip the map
// lookup entirely. This mirrors ucp_proto_select_t: the hash table is
// ucp_proto_select_t.hash, the MRU pair is ucp_proto_select_t.cache.
//
// The MRU cache stores only a SelectParam and a *SelectElem, never an
// index or iterator into the map. Go map growth can relocate internal
// storage on insertion, so anything that could dangle across an insert
// must be invalidated before the insert and only repopulated after,
// exactly as the original invalidates its cache around khash
// insertions that may trigger a rehash.
type ProtoSelect struct {
	registry     *Registry
	worker       any
	epCfgIndex   int
	rkeyCfgIndex int
	logger       *zap.Logger

	elems map[SelectParam]*SelectElem

	cacheValid bool
	cacheParam SelectParam
	cacheElem  *SelectElem
}

// NewProtoSelect returns an empty selection cache bound to reg and the
// given (opaque) endpoint/remote-key configuration. logger may be nil.
func NewProtoSelect(reg *Registry, worker any, epCfgIndex, rkeyCfgIndex int, logger *zap.Logger) *ProtoSelect {
	return &ProtoSelect{
		registry:     reg,
		worker:       worker,
		epCfgIndex:   epCfgIndex,
		rkeyCfgIndex: rkeyCfgIndex,
		logger:       logger,
		elems:        make(map[SelectParam]*SelectElem),
	}
}

// invalidate drops the MRU cache. Must be called before any mutation of
// s.elems that could trigger Go's map to grow (i.e. before every
// insert), since a grow can relocate the map's backing storage and the
// *SelectElem held in the MRU slot would otherwise point at a stale
// generation, matching the original's discipline around khash
// insertion invalidating its one-entry cache.
func (s *ProtoSelect) invalidate() {
	s.cacheValid = false
	s.cacheElem = nil
}

// LookupFast is the hot path: try the MRU pointer cache, then the hash
// map, and only fall all the way to LookupSlow (capability collection +
// threshold build) on a genuine cache miss. This is
// ucp_proto_select_lookup / ucp_proto_select_get's two-tier dispatch
// translated to Go.
func (s *ProtoSelect) LookupFast(param SelectParam) (*SelectElem, error) {
	if s.cacheValid && s.cacheParam.U64() == param.U64() {
		return s.cacheElem, nil
	}

	if elem, ok := s.elems[param]; ok {
		s.cacheValid = true
		s.cacheParam = param
		s.cacheElem = elem
		return elem, nil
	}

	return s.LookupSlow(param)
}

// LookupSlow builds a SelectElem for param from scratch (running every
// registered protocol's Init and sweeping the message-length axis to
// build its threshold table), installs it into the hash map, and
// refreshes the MRU cache to point at it. This is
// ucp_proto_select_lookup_slow translated to Go.
func (s *ProtoSelect) LookupSlow(param SelectParam) (*SelectElem, error) {
	mask, caps, privBuf, privOffsets, privSizes, err := collect(s.registry, s.worker, s.epCfgIndex, s.rkeyCfgIndex, param)
	if err != nil {
		if err == ErrNoElem && s.logger != nil {
			s.logger.Debug("no protocol supports selection parameters",
				zap.String("select_param", param.String()))
		}
		return nil, err
	}

	list, err := initThresh(mask, caps, param.String(), s.logger)
	if err != nil {
		return nil, err
	}

	thresholds := make([]ThresholdElem, len(list))
	for i, t := range list {
		thresholds[i] = ThresholdElem{
			MaxMsgLength: t.maxLength,
			ProtoConfig: ProtoConfig{
				SelectParam: param,
				ProtoID:     t.protoID,
				Priv:        privBuf[privOffsets[t.protoID] : privOffsets[t.protoID]+privSizes[t.protoID]],
			},
		}
	}

	elem := &SelectElem{Thresholds: thresholds, PrivBuf: privBuf}

	// Invalidate before inserting: map.elems[param] = elem may grow the
	// map and relocate its storage.
	s.invalidate()
	s.elems[param] = elem

	s.cacheValid = true
	s.cacheParam = param
	s.cacheElem = elem

	return elem, nil
}

// Cleanup discards every cached selection decision and the MRU cache.
// The registry itself is untouched: a Registry is link-time-fixed and
// may be shared across multiple ProtoSelect instances.
func (s *ProtoSelect) Cleanup() {
	s.invalidate()
	s.elems = make(map[SelectParam]*SelectElem)
}

// Count returns the number of distinct SelectParams currently cached.
func (s *ProtoSelect) Count() int {
	return len(s.elems)
}
