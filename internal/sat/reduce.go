package sat

import "sort"

// reduceDB implements the Clause Database Manager (spec.md §4.7): partition
// learned clauses into glue (lbd <= glueLBD) and non-glue, sort non-glue by
// (lbd asc, activity desc), and drop the bottom (1-reduceFraction) of
// non-glue clauses that aren't currently locking an assignment on the trail.
//
// Deletion is grounded on the teacher's ReduceDB (internal/sat/solver.go),
// generalized to the glue/non-glue split and (lbd, activity) ordering spec.md
// §4.7 asks for instead of the teacher's flat activity sort.
func (s *Solver) reduceDB() {
	learnts := s.learnts
	glueLBD := s.opts.GlueLBD

	nonGlue := learnts[:0:0]
	for _, ref := range learnts {
		c := s.arena.Clause(ref)
		if c.Protected() || c.LBD() <= glueLBD {
			continue
		}
		nonGlue = append(nonGlue, ref)
	}

	sort.Slice(nonGlue, func(i, j int) bool {
		ci, cj := s.arena.Clause(nonGlue[i]), s.arena.Clause(nonGlue[j])
		if ci.LBD() != cj.LBD() {
			return ci.LBD() < cj.LBD()
		}
		return ci.activity > cj.activity
	})

	nDelete := int(float64(len(nonGlue)) * (1 - s.opts.ReduceFraction))
	toDelete := make(map[CRef]bool, nDelete)
	for i := 0; i < nDelete; i++ {
		ref := nonGlue[len(nonGlue)-1-i]
		if s.isLocked(ref) {
			continue
		}
		toDelete[ref] = true
	}

	// Clauses above MaxLBDToKeep are considered too low quality to keep
	// around regardless of the reduce fraction (spec.md §4.7 "MaxLBDToKeep").
	for _, ref := range nonGlue {
		if s.arena.Clause(ref).LBD() > s.opts.MaxLBDToKeep && !s.isLocked(ref) {
			toDelete[ref] = true
		}
	}

	kept := s.learnts[:0]
	for _, ref := range s.learnts {
		if toDelete[ref] {
			s.deleteClause(ref)
			continue
		}
		kept = append(kept, ref)
	}
	s.learnts = kept

	s.stats.Reductions++

	if s.arena.Waste() > s.reduceCompactThreshold() {
		s.compactArena()
	}
}

// isLocked reports whether ref is currently the reason for an assignment on
// the trail, in which case it must never be deleted (spec.md §4.7 step 3).
func (s *Solver) isLocked(ref CRef) bool {
	c := s.arena.Clause(ref)
	if len(c.lits) == 0 {
		return false
	}
	return s.vars.reason[c.lits[0].Var()] == ref
}

// deleteClause detaches ref's watches, tombstones it in the arena, and
// notifies the event sink (spec.md §4.7 step 4).
func (s *Solver) deleteClause(ref CRef) {
	c := s.arena.Clause(ref)
	s.events.OnDelete(append([]Literal(nil), c.lits...))
	s.watches.Detach(ref, c.lits[0].Opposite())
	s.watches.Detach(ref, c.lits[1].Opposite())
	s.arena.MarkDeleted(ref)
	s.stats.Deleted++
}

func (s *Solver) reduceCompactThreshold() int {
	return 4096 + s.arena.Len()*2
}

// compactArena reclaims tombstoned clause slots, fixing up every CRef the
// solver holds outside the arena itself (spec.md §4.1 "compact"): the Watch
// Index, per-variable reasons, and the solver's own constraints/learnts
// slices, which hold pre-compaction CRefs that relocate must translate too.
func (s *Solver) compactArena() {
	moved := make(map[CRef]CRef)
	relocate := func(old, new CRef) {
		oc := s.arena.Clause(new)
		if len(oc.lits) >= 2 {
			s.watches.Relocate(oc.lits[0].Opposite(), old, new)
			s.watches.Relocate(oc.lits[1].Opposite(), old, new)
		}
		for v := 0; v < s.vars.numVars(); v++ {
			if s.vars.reason[v] == old {
				s.vars.reason[v] = new
			}
		}
		moved[old] = new
	}
	s.arena.Compact(relocate)

	s.constraints = remapRefs(s.constraints, moved)
	s.learnts = remapRefs(s.learnts, moved)
}

// remapRefs translates refs through moved, the old->new CRef map a Compact
// pass produced (with an entry for every surviving clause, including ones
// whose position didn't change). A ref absent from moved was tombstoned by
// Compact and is dropped.
func remapRefs(refs []CRef, moved map[CRef]CRef) []CRef {
	kept := refs[:0]
	for _, ref := range refs {
		if new, ok := moved[ref]; ok {
			kept = append(kept, new)
		}
	}
	return kept
}
