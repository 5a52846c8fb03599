package protosel

// ProtoConfig is what a threshold entry resolves to: a copy of the
// selection parameters that produced it, the chosen protocol's registry
// id, and a slice into the owning SelectElem's private buffer holding
// that protocol's runtime configuration.
type ProtoConfig struct {
	SelectParam SelectParam
	ProtoID     int
	Priv        []byte
}

// ThresholdElem is one entry of a SelectElem's threshold table: for
// message lengths up to and including MaxMsgLength, ProtoConfig is the
// selected protocol and its configuration.
type ThresholdElem struct {
	MaxMsgLength uint64
	ProtoConfig  ProtoConfig
}

// SelectElem is the result of a capability collection + threshold build
// for one SelectParam: a non-empty, strictly increasing, SizeMax-terminated
// sequence of thresholds, plus the private configuration buffer they
// reference. Immutable once installed into a ProtoSelect; destroyed only
// when the containing ProtoSelect is destroyed.
type SelectElem struct {
	Thresholds []ThresholdElem
	PrivBuf    []byte
}

// ThresholdsSearchSlow finds the smallest index i such that
// msgLength <= thresholds[i].MaxMsgLength and returns its ProtoConfig.
// The table always has a final entry at SizeMax, so the scan always
// terminates without a bounds check on the upper end. A linear scan is
// what the original does too, since real tables are small (typically
// 2-6 entries).
func ThresholdsSearchSlow(thresholds []ThresholdElem, msgLength uint64) *ProtoConfig {
	for i := range thresholds {
		if msgLength <= thresholds[i].MaxMsgLength {
			return &thresholds[i].ProtoConfig
		}
	}
	// Unreachable for a well-formed table: the last entry's
	// MaxMsgLength is always SizeMax.
	return nil
}

// Lookup is the message-length-indexed entry point most callers want:
// given a populated SelectElem and a message length, it returns the
// protocol configuration selected to service it.
func (e *SelectElem) Lookup(msgLength uint64) *ProtoConfig {
	return ThresholdsSearchSlow(e.Thresholds, msgLength)
}
