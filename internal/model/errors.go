package model

import "fmt"

// ErrorKind is the engine's closed error taxonomy. Only these three
// classes exist; nothing else escapes the engine as an error.
type ErrorKind int

const (
	// InvalidRoster means a lineup cannot field a pitcher or batter when
	// one is needed. The simulation cannot proceed; this is surfaced to
	// the caller unchanged.
	InvalidRoster ErrorKind = iota
	// MalformedAbility means a guaranteed-outcome distribution is empty
	// or negative. Recovered locally by the caller (clamp negatives to
	// zero, redistribute the residual to the last bucket) and reported as
	// a "malformed_ability" trace warning; no error value is returned.
	MalformedAbility
	// InvariantViolation means bases/ids desynced or outs exceeded 3.
	// Fatal: the simulation that hit this must abort rather than
	// continue on corrupted state.
	InvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidRoster:
		return "InvalidRoster"
	case MalformedAbility:
		return "MalformedAbility"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying cause with one of the three error kinds so
// callers can errors.As/errors.Is against the kind while still seeing
// what actually went wrong.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs an *Error for the given kind and operation,
// optionally wrapping an underlying cause.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
