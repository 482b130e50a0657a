// Package types defines the shared result model of a verification run:
// proof obligations, per-obligation outcomes, and the final verdict.
package types

import (
	"fmt"
	"sort"
	"time"

	"github.com/gnoverse/wv/internal/lang"
	"github.com/gnoverse/wv/internal/logic"
)

// Role tags a verification condition with the proof obligation it realizes.
type Role int

const (
	_ Role = iota
	// RoleEntryImpliesInvariant marks an explicit loop-entry obligation.
	// The generator realizes entry obligations through the top-level
	// implication, so this role only appears when obligations are built by
	// hand; it is part of the taxonomy for completeness.
	RoleEntryImpliesInvariant
	// RoleInvariantPreserved marks the obligation that one loop iteration
	// under the guard re-establishes the invariant.
	RoleInvariantPreserved
	// RoleInvariantImpliesPost marks the obligation that the invariant plus
	// the negated guard establishes the continuation postcondition.
	RoleInvariantImpliesPost
	// RoleTopLevel marks the final obligation that the declared precondition
	// implies the computed weakest precondition of the whole program.
	RoleTopLevel
)

func (r Role) String() string {
	switch r {
	case RoleEntryImpliesInvariant:
		return "entry-implies-invariant"
	case RoleInvariantPreserved:
		return "invariant-preserved"
	case RoleInvariantImpliesPost:
		return "invariant-implies-postcondition"
	case RoleTopLevel:
		return "top-level"
	default:
		return "?"
	}
}

// VC is a single verification condition: an assertion whose validity is
// required, tagged with its provenance. VCs are created once per run and
// never mutated.
type VC struct {
	// ID is the generation sequence number, unique within one run.
	ID        int
	Assertion logic.Assertion
	Role      Role
	Pos       lang.Pos
}

func (vc VC) String() string {
	return fmt.Sprintf("#%d [%s] %s: %s", vc.ID, vc.Role, vc.Pos, vc.Assertion)
}

// vcLess is the reporting order: source position first, generation sequence
// as the tie-break, and the top-level obligation always last.
func vcLess(a, b VC) bool {
	if (a.Role == RoleTopLevel) != (b.Role == RoleTopLevel) {
		return b.Role == RoleTopLevel
	}
	if a.Pos != b.Pos {
		return a.Pos.Before(b.Pos)
	}
	return a.ID < b.ID
}

// SortVCs sorts obligations into reporting order.
func SortVCs(vcs []VC) {
	sort.Slice(vcs, func(i, j int) bool { return vcLess(vcs[i], vcs[j]) })
}

// SortResults sorts per-VC results into reporting order.
func SortResults(results []VCResult) {
	sort.Slice(results, func(i, j int) bool { return vcLess(results[i].VC, results[j].VC) })
}

// VCStatus is the outcome of discharging a single VC.
type VCStatus int

const (
	_ VCStatus = iota
	// VCValid indicates the negation of the VC is unsatisfiable.
	VCValid
	// VCInvalid indicates the negation is satisfiable, so the VC does not
	// hold; a counterexample model accompanies it.
	VCInvalid
	// VCUnknown indicates the solver could not decide within its limits.
	VCUnknown
)

func (s VCStatus) String() string {
	switch s {
	case VCValid:
		return "valid"
	case VCInvalid:
		return "invalid"
	case VCUnknown:
		return "unknown"
	default:
		return "?"
	}
}

// VCResult couples a VC with its discharge outcome.
type VCResult struct {
	VC     VC
	Status VCStatus
	// Reason explains an unknown status, e.g. "timeout".
	Reason string
	// Model is the counterexample for an invalid VC, restricted to the
	// variables occurring in it.
	Model map[string]int64
}

// Result is the overall verdict of a verification run.
type Result int

const (
	_ Result = iota
	// Verified indicates every VC is valid.
	Verified
	// Falsified indicates the first non-valid VC in reporting order was
	// refuted with a counterexample.
	Falsified
	// Inconclusive indicates the first non-valid VC in reporting order
	// could not be decided within the solver's limits.
	Inconclusive
	// GenerationFailed indicates obligations could not be generated or
	// encoded; no solver work was attempted.
	GenerationFailed
)

func (r Result) String() string {
	switch r {
	case Verified:
		return "Verified"
	case Falsified:
		return "Falsified"
	case Inconclusive:
		return "Inconclusive"
	case GenerationFailed:
		return "GenerationFailed"
	default:
		return "?"
	}
}

// Report is the terminal output of one verification run. Exactly one Report
// is produced per run.
type Report struct {
	RunID    string
	Filename string
	Result   Result

	// Failing is the first non-valid VC in deterministic order. It is nil
	// when the run verified or failed before discharge.
	Failing *VCResult

	// VCs holds every per-VC result in deterministic order. It is empty
	// when generation failed.
	VCs []VCResult

	// GenErr is set when Result is GenerationFailed.
	GenErr *GenerationError

	Duration time.Duration
}

// FailingVCs returns every non-valid per-VC result in deterministic order.
func (r *Report) FailingVCs() []VCResult {
	var failing []VCResult
	for _, res := range r.VCs {
		if res.Status != VCValid {
			failing = append(failing, res)
		}
	}
	return failing
}

// GenReason classifies a generation failure.
type GenReason int

const (
	_ GenReason = iota
	// MissingInvariant indicates a reachable while statement without an
	// invariant annotation.
	MissingInvariant
	// DivisionByZero indicates a division or modulo by the literal zero.
	DivisionByZero
)

func (r GenReason) String() string {
	switch r {
	case MissingInvariant:
		return "missing loop invariant"
	case DivisionByZero:
		return "division by literal zero"
	default:
		return "?"
	}
}

// GenerationError aborts a run before any solver session is opened.
type GenerationError struct {
	Reason GenReason
	Pos    lang.Pos
}

func (e *GenerationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Reason)
	}
	return e.Reason.String()
}
