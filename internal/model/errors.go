package model

import "errors"

// Error taxonomy shared by every store and resolver. Callers classify with
// errors.Is; concrete errors wrap one or more of these.
var (
	// ErrTransport covers unreachable network, non-success status and
	// malformed response bodies.
	ErrTransport = errors.New("transport failure")

	// ErrNotFound means the identifier is absent from every consulted source.
	ErrNotFound = errors.New("not found")

	// ErrCorruptState means local persisted data could not be read or written.
	// Reads treat it as absent; writes surface it.
	ErrCorruptState = errors.New("corrupt local state")

	// ErrConfiguration means a bundled asset is missing or the runtime
	// configuration is invalid. It is never recovered from.
	ErrConfiguration = errors.New("configuration fault")
)
