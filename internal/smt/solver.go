package smt

import (
	"context"
	"errors"
)

// ErrSolverUnavailable indicates the solver backend cannot be found or
// started. It is fatal for the whole run and is not retried.
var ErrSolverUnavailable = errors.New("solver unavailable")

// ErrSessionClosed indicates use of a session after Close.
var ErrSessionClosed = errors.New("solver session closed")

// Status is the solver's answer to a satisfiability check.
type Status int

const (
	_ Status = iota
	// StatusSat indicates the asserted formulas are satisfiable.
	StatusSat
	// StatusUnsat indicates the asserted formulas are unsatisfiable.
	StatusUnsat
	// StatusUnknown indicates the solver gave up or timed out.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "sat"
	case StatusUnsat:
		return "unsat"
	case StatusUnknown:
		return "unknown"
	default:
		return "?"
	}
}

// CheckResult is the outcome of one satisfiability check.
type CheckResult struct {
	Status Status
	// Reason explains an unknown status, e.g. "timeout".
	Reason string
	// Model holds an integer value per declared constant when Status is
	// StatusSat.
	Model map[string]int64
}

// Session is a single-use solver context: declare constants, assert
// formulas, check once. Sessions hold no state shared with other sessions
// and are not safe for concurrent use; every check owns its own session and
// must Close it on all paths.
type Session interface {
	// DeclareIntConst introduces an integer-sorted constant.
	DeclareIntConst(name string) error
	// Assert adds an SMT-LIB formula to the context.
	Assert(formula string) error
	// Check decides satisfiability of the asserted formulas. Cancelling ctx
	// aborts only this check.
	Check(ctx context.Context) (CheckResult, error)
	// Close releases the session. It is idempotent.
	Close() error
}

// Solver creates sessions and probes backend availability.
type Solver interface {
	NewSession() (Session, error)
	// Available reports whether the backend can be used, wrapping
	// ErrSolverUnavailable when it cannot.
	Available() error
}
