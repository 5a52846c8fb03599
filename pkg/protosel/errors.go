package protosel

import "errors"

// ErrNoMemory is returned when an allocation required to build a
// threshold table fails. Go has no allocation-failure return path in
// the usual sense; this is kept for symmetry with the original's error
// taxonomy and for call sites that synthesize it from e.g. a configured
// memory budget. No production path in this package returns it today.
var ErrNoMemory = errors.New("protosel: no memory")

// ErrNoElem is returned when no registered protocol's Init succeeded
// for a given SelectParam.
var ErrNoElem = errors.New("protosel: no protocol supports these parameters")

// ErrUnsupported is returned when, at some message length within a
// selection, applying overrides collapses the valid protocol set to
// empty.
var ErrUnsupported = errors.New("protosel: no protocol is valid at this message length")
