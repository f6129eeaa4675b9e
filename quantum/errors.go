package quantum

import "errors"

// Errors returned by program calls. Callers match them with errors.Is; the
// returned error wraps one of these with the offending indices.
var (
	// ErrInvalidArgument reports an out-of-range index or a gate whose
	// qubits must differ but do not (SWAP, CX, CZ).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLengthMismatch reports a measure call whose qubit and classical
	// bit lists differ in length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidState reports a state vector with zero total probability.
	ErrInvalidState = errors.New("invalid state")
)
