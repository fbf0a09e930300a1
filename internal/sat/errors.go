package sat

import "errors"

// Error kinds from spec.md §7. These are sentinel values usable with
// errors.Is, not exception classes: propagation-time conflicts are the
// normal signal consumed by the Analyzer and are never represented by these.
var (
	// ErrImmediateUnsat is returned by AddClause (or observed via Solve)
	// when a level-0 conflict is discovered during clause addition.
	ErrImmediateUnsat = errors.New("sat: formula is unsatisfiable at the root level")

	// ErrBudgetExceeded means a conflict/decision/time limit was reached.
	// The solver state remains valid. The limits are fixed when the Solver
	// is created: conflict and decision limits count totals across Solve
	// calls, so a further Solve call stops again at its next check, while
	// the time budget starts afresh with each Solve call.
	ErrBudgetExceeded = errors.New("sat: search budget exceeded")
)
