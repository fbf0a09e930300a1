package sat

import (
	"errors"
	"time"
)

// Solve runs CDCL search to completion, budget exhaustion, or a proven
// result (spec.md §4.8, the Search Orchestrator). It is grounded on the
// teacher's Solver.Solve (internal/sat/solver.go), generalized with restart,
// reduction, rephasing and budget handling the teacher never implemented.
func (s *Solver) Solve() (Outcome, error) {
	if s.unsat {
		return Unsat, nil
	}

	s.startTime = time.Now()
	if s.hasTime {
		s.deadline = s.startTime.Add(s.opts.TimeBudget)
	}

	for {
		confl := s.propagate()
		if confl != CRefNone {
			if err := s.handleConflict(confl); err != nil {
				if err == errUnsatDuringSearch {
					return Unsat, nil
				}
				return OutcomeUnknown, err
			}
			continue
		}

		if s.trail.Level() == 0 {
			s.simplify()
		}

		lit, ok := s.decide()
		if !ok {
			return Sat, nil
		}
		s.stats.Decisions++
		if err := s.checkBudget(); err != nil {
			return OutcomeUnknown, err
		}

		s.trail.NewDecisionLevel()
		s.enqueue(lit, CRefNone)
	}
}

// errUnsatDuringSearch is an internal-only sentinel distinguishing "proved
// Unsat" from a genuine error inside handleConflict; Solve never returns it.
var errUnsatDuringSearch = errors.New("sat: internal unsat signal")

// handleConflict runs one conflict-analysis/backjump/learn cycle, plus the
// periodic restart, reduction and rephasing checks spec.md §4.8 hangs off
// "on conflict".
func (s *Solver) handleConflict(confl CRef) error {
	s.stats.Conflicts++

	if s.trail.Level() == 0 {
		s.unsat = true
		s.events.OnFinalEmpty()
		return errUnsatDuringSearch
	}

	learned, backjumpLevel, lbd := s.analyze(confl)
	s.decayVarActivity()
	s.decayClauseActivity()

	target := backjumpLevel
	if s.opts.Chronological && len(learned) > 1 {
		if cur := s.trail.Level(); cur-1 > target {
			target = cur - 1
		}
	}
	s.backtrackTo(target)

	ref, err := s.addLearnedClause(learned, lbd)
	if err != nil {
		return err
	}
	if len(learned) == 1 {
		if !s.enqueueRoot(learned[0]) {
			s.unsat = true
			s.events.OnFinalEmpty()
			return errUnsatDuringSearch
		}
	} else {
		s.enqueue(learned[0], ref)
	}

	s.conflictsSinceReduce++
	s.conflictsSinceRephase++
	s.stuckConflicts++
	if s.trail.Level() > 2 {
		s.stuckConflicts = 0
	}

	if s.trail.Len() > s.bestTrailLen {
		s.bestTrailLen = s.trail.Len()
		s.vars.snapshotBest()
	}

	if s.opts.ReduceInterval > 0 && s.conflictsSinceReduce >= s.opts.ReduceInterval {
		s.conflictsSinceReduce = 0
		s.reduceDB()
	}
	if s.opts.RephaseInterval > 0 && s.conflictsSinceRephase >= s.opts.RephaseInterval {
		s.conflictsSinceRephase = 0
		s.vars.applyBestRephase()
	}

	if err := s.checkBudget(); err != nil {
		return err
	}

	if s.restart.shouldRestart(s.trail.Len()) {
		s.stats.Restarts++
		s.backtrackTo(0)
	}
	return nil
}

// addLearnedClause allocates and attaches a freshly learned clause (spec.md
// §4.4 step 6), protecting it from reduction if it is a glue clause.
func (s *Solver) addLearnedClause(lits []Literal, lbd uint32) (CRef, error) {
	s.stats.Learned++
	s.events.OnAdd(append([]Literal(nil), lits...))

	if len(lits) == 1 {
		return CRefNone, nil
	}

	ref, err := s.arena.Allocate(lits, true)
	if err != nil {
		return CRefNone, err
	}
	c := s.arena.Clause(ref)
	c.lbd = lbd
	if lbd <= s.opts.GlueLBD {
		c.setProtected(true)
		s.stats.Glue++
	}
	s.bumpClauseActivity(c)
	s.watches.Attach(ref, c.lits[0], c.lits[1])
	s.learnts = append(s.learnts, ref)
	return ref, nil
}

// decide pops the highest-activity unassigned variable off the Branching
// Heap and picks its phase (spec.md §4.5, §4.8 "Decision").
func (s *Solver) decide() (Literal, bool) {
	v, ok := s.heap.PopMax(func(v Var) bool { return s.vars.varValue(v) != Unknown })
	if !ok {
		return 0, false
	}
	if s.pickPositivePhase(v) {
		return PositiveLiteral(v), true
	}
	return NegativeLiteral(v), true
}

// pickPositivePhase decides whether v's decision literal should be positive,
// mixing random exploration (boosted when the search looks stuck, spec.md
// §4.8 "Adaptive random phase") with phase saving / target phases.
func (s *Solver) pickPositivePhase(v Var) bool {
	prob := s.opts.RandomPhaseProb
	if s.opts.AdaptiveRandom && s.stuckConflicts > 100 {
		if boosted := prob * 4; boosted < 0.5 {
			prob = boosted
		} else {
			prob = 0.5
		}
	}
	if prob > 0 && s.rng.Float64() < prob {
		return s.rng.Intn(2) == 1
	}
	if s.opts.PhaseSaving {
		return s.vars.savedPhase[v]
	}
	return s.vars.target[v]
}

// backtrackTo undoes every assignment above decision level, reinserting
// freed variables into the Branching Heap and restoring phase-saving state
// (spec.md §4.8 "Backtracking").
func (s *Solver) backtrackTo(level int) {
	if s.trail.Level() <= level {
		return
	}

	n := s.trail.LevelStart(level + 1)
	removed := s.trail.TruncateTo(n)
	for i := len(removed) - 1; i >= 0; i-- {
		l := removed[i]
		s.vars.unassign(l)
		s.heap.Insert(l.Var(), s.vars.activity[l.Var()])
	}

	for s.trail.Level() > level {
		s.trail.PopLevel()
	}
	s.trail.ResetHead()
}

// checkBudget reports ErrBudgetExceeded once any configured limit has been
// hit (spec.md §7).
func (s *Solver) checkBudget() error {
	if s.opts.MaxConflicts > 0 && s.stats.Conflicts >= s.opts.MaxConflicts {
		return ErrBudgetExceeded
	}
	if s.opts.MaxDecisions > 0 && s.stats.Decisions >= s.opts.MaxDecisions {
		return ErrBudgetExceeded
	}
	if s.hasTime && time.Now().After(s.deadline) {
		return ErrBudgetExceeded
	}
	return nil
}
