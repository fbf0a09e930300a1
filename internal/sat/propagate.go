package sat

// propagate runs BCP to a fixpoint or until a conflict is found (spec.md
// §4.3). It is grounded directly on the teacher's Solver.Propagate
// (internal/sat/solver.go) and Clause.Propagate (sat/clauses.go, the
// prevPos-optimized generation), adapted to operate through the WatchIndex
// and Arena instead of holding clause pointers directly.
//
// Returns CRefNone on success (propagation head == trail length); otherwise
// returns the CRef of a clause that is false under the current assignment.
func (s *Solver) propagate() CRef {
	for s.trail.Pending() {
		p := s.trail.NextPending()
		s.stats.Propagations++

		list := s.watches.List(p)
		keep := list[:0]

		for i := 0; i < len(list); i++ {
			w := list[i]

			if s.vars.litValue(w.blocker) == True {
				keep = append(keep, w)
				continue
			}

			newBlocker, moved, conflictRef, ok := s.propagateOne(w.ref, p)
			switch {
			case !ok:
				// Conflict: the clause itself keeps watching p (it found no
				// other literal to move to), with blocker refreshed to the
				// clause's other literal, plus every not-yet-inspected
				// watcher, so the watch list invariant holds for everything
				// we didn't get to (teacher's clauses.go: Watch runs before
				// the conflict-causing enqueue returns).
				keep = append(keep, watcher{ref: w.ref, blocker: newBlocker})
				keep = append(keep, list[i+1:]...)
				s.watches.SetList(p, keep)
				return conflictRef
			case moved:
				// The clause picked up a different watch literal and has
				// already been attached to that literal's list; drop it
				// from p's list by simply not re-appending it to keep.
			default:
				keep = append(keep, watcher{ref: w.ref, blocker: newBlocker})
			}
		}

		s.watches.SetList(p, keep)
	}

	return CRefNone
}

// propagateOne applies the two-watched-literal update for a single clause
// when literal p has just become true (so ¬p has just become false).
//
//   - ok=false means the clause is now false under the current assignment;
//     conflictRef is that clause's ref.
//   - ok=true, moved=false means the clause stays on p's watch list with
//     blocker updated to newBlocker.
//   - ok=true, moved=true means a new watch literal was found and the
//     clause has already been attached to that literal's list; the caller
//     must drop it from p's list.
func (s *Solver) propagateOne(ref CRef, p Literal) (newBlocker Literal, moved bool, conflictRef CRef, ok bool) {
	c := s.arena.Clause(ref)
	lits := c.lits

	falseLit := p.Opposite()

	// Ensure the triggering literal sits at lits[1]; lits[0] is then always
	// the literal to (maybe) enqueue.
	if lits[0] == falseLit {
		lits[0], lits[1] = lits[1], lits[0]
	}

	if s.vars.litValue(lits[0]) == True {
		return lits[0], false, 0, true
	}

	n := len(lits)
	start := c.prevPos
	if start < 2 || start >= n {
		start = 2
	}

	if idx, found := findNonFalse(lits, start, n, s.vars); found {
		c.prevPos = idx
		lits[1], lits[idx] = lits[idx], lits[1]
		s.watches.Attach1(ref, lits[1].Opposite(), lits[0])
		return 0, true, 0, true
	}
	if idx, found := findNonFalse(lits, 2, start, s.vars); found {
		c.prevPos = idx
		lits[1], lits[idx] = lits[idx], lits[1]
		s.watches.Attach1(ref, lits[1].Opposite(), lits[0])
		return 0, true, 0, true
	}

	// Clause is unit: lits[0] must become true, or we have a conflict.
	if s.vars.litValue(lits[0]) == False {
		return lits[0], false, ref, false
	}
	s.enqueue(lits[0], ref)
	return lits[0], false, 0, true
}

// findNonFalse scans lits[from:to] for a literal that is not currently
// False, returning its index.
func findNonFalse(lits []Literal, from, to int, vars *varState) (int, bool) {
	for i := from; i < to; i++ {
		if vars.litValue(lits[i]) != False {
			return i, true
		}
	}
	return 0, false
}

// enqueue assigns l true at the current decision level with the given
// reason and appends it to the trail. The caller must have already verified
// l is not already false.
func (s *Solver) enqueue(l Literal, reason CRef) {
	s.vars.assign(l, s.trail.Level(), reason)
	s.trail.Push(l)
}
