package sat

// Trail is the ordered sequence of assignments, partitioned into decision
// levels by trailLim (spec.md §3 "Trail entry"). head is the propagation
// head: entries below it have already been scanned by the Propagator.
type Trail struct {
	lits []Literal
	lim  []int32 // trailLim[d-1] is the trail index where level d starts
	head int
}

// Len returns the number of assigned literals.
func (t *Trail) Len() int { return len(t.lits) }

// At returns the i-th assigned literal, in assignment order.
func (t *Trail) At(i int) Literal { return t.lits[i] }

// Level returns the current decision level (number of open levels above 0).
func (t *Trail) Level() int { return len(t.lim) }

// Push appends a newly assigned literal to the trail.
func (t *Trail) Push(l Literal) { t.lits = append(t.lits, l) }

// NewDecisionLevel opens a new decision level starting at the current trail
// length.
func (t *Trail) NewDecisionLevel() { t.lim = append(t.lim, int32(len(t.lits))) }

// LevelStart returns the trail index at which decision level d begins. d
// must be >= 1.
func (t *Trail) LevelStart(d int) int { return int(t.lim[d-1]) }

// Pending reports whether there are assigned literals the Propagator has not
// yet scanned.
func (t *Trail) Pending() bool { return t.head < len(t.lits) }

// NextPending returns the next unscanned literal and advances the
// propagation head.
func (t *Trail) NextPending() Literal {
	l := t.lits[t.head]
	t.head++
	return l
}

// ResetHead rewinds the propagation head to the current trail length, used
// after a backtrack truncates the trail (spec.md §4.8 "Backtracking").
func (t *Trail) ResetHead() { t.head = len(t.lits) }

// TruncateTo shrinks the trail to length n, returning the removed literals in
// assignment order (most recent last) so the caller can unassign them.
func (t *Trail) TruncateTo(n int) []Literal {
	removed := append([]Literal(nil), t.lits[n:]...)
	t.lits = t.lits[:n]
	return removed
}

// PopLevel removes the most recently opened decision level boundary and
// returns the trail index it started at.
func (t *Trail) PopLevel() int {
	start := int(t.lim[len(t.lim)-1])
	t.lim = t.lim[:len(t.lim)-1]
	return start
}
