package sat

import "errors"

// CRef is an opaque, stable reference to a clause stored in an Arena. It
// generalizes the teacher's raw *Clause pointers (internal/sat/clauses.go in
// the original) into the newtype spec.md §9 calls for: external structures
// (watch lists, reasons) store CRef by value and never dereference a clause
// directly, so an Arena.Compact can relocate clauses without chasing pointers
// through the rest of the solver.
type CRef uint32

// CRefNone is the sentinel used for "no reason" (a decision, or a level-0
// fact) and as the Propagator's "no conflict" result.
const CRefNone CRef = 1<<32 - 1

// ErrOutOfMemory is returned by Arena.Allocate when the backing store cannot
// grow to hold a new clause (spec.md §7 "OutOfMemory").
var ErrOutOfMemory = errors.New("sat: arena out of memory")

// clauseStatus is a small bitmask tracked alongside each clause's literals.
type clauseStatus uint8

const (
	statusLearnt    clauseStatus = 1 << iota // original vs. learned (spec.md §3 "learnt flag")
	statusDeleted                            // logical tombstone (spec.md §3 "deleted flag")
	statusProtected                          // glue clauses exempt from reduction (spec.md §4.7)
)

// Clause is a clause's metadata plus its literals (spec.md §3 "Clause"). The
// first two literals are always the watched pair; Arena and the Propagator
// are jointly responsible for that invariant.
type Clause struct {
	lits     []Literal
	sliceRef *[]Literal // backing allocation, returned to the pool on delete

	activity float64
	lbd      uint32
	status   clauseStatus

	// prevPos remembers where the last search for a new watch literal left
	// off, so repeated propagation of a long clause doesn't always restart
	// the scan at position 2 (teacher's sat/clauses.go "prevPos" field).
	prevPos int
}

// Lits returns the clause's literals. Callers must not retain the slice
// across a call that might mutate or delete the clause.
func (c *Clause) Lits() []Literal { return c.lits }

// Len returns the number of literals in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// Learnt reports whether the clause was derived by the Conflict Analyzer
// rather than supplied by the original formula.
func (c *Clause) Learnt() bool { return c.status&statusLearnt != 0 }

// Deleted reports whether the clause has been tombstoned.
func (c *Clause) Deleted() bool { return c.status&statusDeleted != 0 }

// Protected reports whether the clause is exempt from the next reduction
// pass (used for glue clauses, spec.md §4.7).
func (c *Clause) Protected() bool { return c.status&statusProtected != 0 }

func (c *Clause) setProtected(p bool) {
	if p {
		c.status |= statusProtected
	} else {
		c.status &^= statusProtected
	}
}

// LBD returns the clause's Literal Block Distance, valid once the clause has
// been through conflict analysis (spec.md §3 "lbd").
func (c *Clause) LBD() uint32 { return c.lbd }

// Arena owns the storage for every clause the solver knows about. Clause
// references are stable until an explicit Compact (spec.md §4.1).
type Arena struct {
	clauses []*Clause
	// wasteLits tracks literals held by tombstoned, not-yet-compacted
	// clauses, used to decide when Compact is worth running (spec.md §4.7
	// step 5 "optionally trigger arena compaction when waste exceeds a
	// threshold").
	wasteLits int
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Allocate appends a new clause with the given literals (copied into
// pool-backed storage, see clauses_alloc.go) and returns its CRef.
func (a *Arena) Allocate(lits []Literal, learnt bool) (CRef, error) {
	if len(a.clauses) >= int(CRefNone) {
		return 0, ErrOutOfMemory
	}

	ref := allocSlice(len(lits))
	buf := (*ref)[:0]
	buf = append(buf, lits...)

	c := &Clause{
		lits:     buf,
		sliceRef: ref,
		prevPos:  2,
	}
	if learnt {
		c.status |= statusLearnt
	}

	ref2 := CRef(len(a.clauses))
	a.clauses = append(a.clauses, c)
	return ref2, nil
}

// Clause returns the clause stored at ref. The caller must not hold onto the
// pointer across a Compact call.
func (a *Arena) Clause(ref CRef) *Clause {
	return a.clauses[ref]
}

// MarkDeleted tombstones the clause at ref. The reference remains valid
// (readable) until the next Compact.
func (a *Arena) MarkDeleted(ref CRef) {
	c := a.clauses[ref]
	if c.Deleted() {
		return
	}
	c.status |= statusDeleted
	a.wasteLits += len(c.lits)
	freeSlice(c.sliceRef)
	c.lits = nil
	c.sliceRef = nil
}

// Waste returns the number of literals held by tombstoned clauses not yet
// reclaimed by Compact.
func (a *Arena) Waste() int { return a.wasteLits }

// Compact drops every tombstoned clause from the arena and invokes relocate
// for each surviving clause with its old and new CRef (including clauses
// whose position didn't change), so that external structures (the Watch
// Index, per-variable reasons, the solver's own constraint/learnt clause
// lists) can fix up any CRef they are holding (spec.md §4.1 "compact").
func (a *Arena) Compact(relocate func(oldRef, newRef CRef)) {
	type move struct{ old, new CRef }

	moves := make([]move, 0, len(a.clauses))
	kept := make([]*Clause, 0, len(a.clauses))
	for i, c := range a.clauses {
		old := CRef(i)
		if c.Deleted() {
			continue
		}
		newRef := CRef(len(kept))
		kept = append(kept, c)
		// relocate is invoked for every surviving clause, even one whose
		// position didn't change, so callers building an old->new map can
		// tell "unchanged" apart from "deleted" (absent from the map) just
		// by membership instead of also re-deriving deletion some other way.
		moves = append(moves, move{old, newRef})
	}

	// Commit the new layout before notifying the caller, so that a
	// relocate callback that reads back through Arena.Clause(newRef) sees
	// the clause's final position rather than stale pre-compaction state.
	a.clauses = kept
	a.wasteLits = 0

	for _, m := range moves {
		relocate(m.old, m.new)
	}
}

// Len returns the number of clause slots in the arena, including tombstoned
// ones not yet compacted.
func (a *Arena) Len() int { return len(a.clauses) }
