package sat

// redundState is the tri-state marker spec.md §4.4 step 4 requires for
// minimization ("unseen / in-clause / explored-redundant /
// explored-not-redundant", collapsed here to unknown/redundant/not-redundant
// since "in-clause" is already covered by the seen bitset).
type redundState int8

const (
	redUnknown redundState = iota
	redYes
	redNo
)

// analyze performs first-UIP resolution starting from the given conflict
// clause (spec.md §4.4). It is grounded directly on the teacher's
// Solver.analyze (internal/sat/solver.go), generalized with mandatory
// level-0 exclusion (property P7), recursive minimization (spec.md §4.4 step
// 4, absent from the teacher), and LBD computation.
//
// Returns the learned clause (first literal is the asserting UIP literal,
// second is at backjumpLevel when size > 1), the backjump level, and the
// clause's LBD.
func (s *Solver) analyze(conflict CRef) ([]Literal, int, uint32) {
	s.seen.Clear()
	pathCount := 0
	currentLevel := s.trail.Level()

	s.tmpLearnt = s.tmpLearnt[:0]
	s.tmpLearnt = append(s.tmpLearnt, 0) // placeholder for the UIP literal

	backjumpLevel := 0
	nextIdx := s.trail.Len() - 1
	var uip Literal

	first := true
	confl := conflict
	for {
		c := s.arena.Clause(confl)
		s.bumpClauseActivity(c)

		var qs []Literal
		if first {
			qs = explainConflict(c, s.tmpExplain)
			first = false
		} else {
			qs = explainAssign(c, s.tmpExplain)
		}
		s.tmpExplain = qs

		for _, q := range qs {
			v := q.Var()
			if s.seen.Contains(v) {
				continue
			}
			s.seen.Add(v)
			s.bumpVarActivity(v)

			switch lvl := int(s.vars.level[v]); {
			case lvl == currentLevel:
				pathCount++
			case lvl > 0:
				s.tmpLearnt = append(s.tmpLearnt, q.Opposite())
				if lvl > backjumpLevel {
					backjumpLevel = lvl
				}
			default:
				// Level-0 facts are permanent and must never appear in a
				// learned clause (spec.md P7): drop silently.
			}
		}

		// Walk the trail backwards to the next literal whose variable was
		// marked seen; that is the next node to resolve on (or the UIP).
		var v Var
		for {
			lit := s.trail.At(nextIdx)
			nextIdx--
			v = lit.Var()
			if s.seen.Contains(v) {
				uip = lit
				break
			}
		}

		confl = s.vars.reason[v]
		pathCount--
		if pathCount == 0 {
			break
		}
	}

	s.tmpLearnt[0] = uip.Opposite()

	if s.opts.MinimizeLearned {
		s.minimizeLearned()
	}

	if len(s.tmpLearnt) > 1 {
		s.placeBackjumpLiteral()
	}

	lbd := computeLBD(s.tmpLearnt, s.vars)
	s.restart.onConflict(lbd)
	if lbd > s.stats.MaxLBD {
		s.stats.MaxLBD = lbd
	}

	learned := append([]Literal(nil), s.tmpLearnt...)
	if len(learned) == 1 {
		return learned, 0, lbd
	}
	return learned, int(s.vars.level[learned[1].Var()]), lbd
}

// minimizeLearned drops literals from s.tmpLearnt that are redundant: every
// literal in their reason clause (other than themselves) is either already
// in the learned clause or itself redundant (spec.md §4.4 step 4). The
// literal at the maximum non-UIP level is never removed, since it must
// become learned[1] to drive the backjump.
func (s *Solver) minimizeLearned() {
	if len(s.tmpLearnt) <= 1 {
		return
	}

	maxLevel, maxIdx := -1, 1
	for i := 1; i < len(s.tmpLearnt); i++ {
		if lvl := int(s.vars.level[s.tmpLearnt[i].Var()]); lvl > maxLevel {
			maxLevel, maxIdx = lvl, i
		}
	}

	state := make(map[Var]redundState)
	kept := s.tmpLearnt[:1]
	for i := 1; i < len(s.tmpLearnt); i++ {
		lit := s.tmpLearnt[i]
		redundant := false
		if reason := s.vars.reason[lit.Var()]; i != maxIdx && reason != CRefNone {
			redundant = true
			for _, other := range s.arena.Clause(reason).lits[1:] {
				if !s.isRedundant(other, state) {
					redundant = false
					break
				}
			}
		}
		if redundant {
			s.stats.MinimizedLiterals++
		} else {
			kept = append(kept, lit)
		}
	}
	s.tmpLearnt = kept
}

// isRedundant reports whether lit (in the "learned" convention: false under
// the current assignment) can be omitted from the learned clause. state
// memoizes results per variable within a single minimization pass so shared
// sub-reasons are only explored once; recursion terminates because the
// reason relation is acyclic and bounded by the number of variables on the
// trail (spec.md §9 "no safety-limit workaround needed").
func (s *Solver) isRedundant(lit Literal, state map[Var]redundState) bool {
	v := lit.Var()

	if st, ok := state[v]; ok {
		return st == redYes
	}
	if s.seen.Contains(v) {
		state[v] = redYes
		return true
	}
	if s.vars.level[v] == 0 {
		state[v] = redYes
		return true
	}

	reason := s.vars.reason[v]
	if reason == CRefNone {
		state[v] = redNo
		return false
	}

	c := s.arena.Clause(reason)
	for _, other := range c.lits[1:] {
		if !s.isRedundant(other, state) {
			state[v] = redNo
			return false
		}
	}
	state[v] = redYes
	return true
}

// placeBackjumpLiteral swaps the literal at the maximum decision level into
// tmpLearnt[1], per spec.md §4.4 step 5. Ties go to the literal that comes
// later in tmpLearnt; trail positions are not consulted.
func (s *Solver) placeBackjumpLiteral() {
	maxLevel := int(s.vars.level[s.tmpLearnt[1].Var()])
	maxIdx := 1
	for i := 2; i < len(s.tmpLearnt); i++ {
		if lvl := int(s.vars.level[s.tmpLearnt[i].Var()]); lvl >= maxLevel {
			maxLevel, maxIdx = lvl, i
		}
	}
	s.tmpLearnt[1], s.tmpLearnt[maxIdx] = s.tmpLearnt[maxIdx], s.tmpLearnt[1]
}

// computeLBD returns the number of distinct decision levels among lits
// (spec.md §3 "lbd").
func computeLBD(lits []Literal, vars *varState) uint32 {
	if len(lits) == 0 {
		return 0
	}
	levels := make(map[int32]struct{}, len(lits))
	for _, l := range lits {
		levels[vars.level[l.Var()]] = struct{}{}
	}
	return uint32(len(levels))
}

// bumpVarActivity increases v's VSIDS activity, rescaling every variable's
// activity (and the increment itself) if it would overflow, and refreshes
// v's heap position (spec.md §4.4 "Numeric semantics").
func (s *Solver) bumpVarActivity(v Var) {
	s.vars.activity[v] += s.varInc
	if s.vars.activity[v] > 1e100 {
		for i := range s.vars.activity {
			s.vars.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	s.heap.Update(v, s.vars.activity[v])
}

// decayVarActivity increases the future bump amount, the usual VSIDS trick
// of decaying by inflating the increment rather than every activity.
func (s *Solver) decayVarActivity() {
	s.varInc /= s.opts.VarDecay
}

// bumpClauseActivity increases a learned clause's activity, used for
// tie-breaking during reduction (spec.md §4.7).
func (s *Solver) bumpClauseActivity(c *Clause) {
	if !c.Learnt() {
		return
	}
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		for _, ref := range s.learnts {
			s.arena.Clause(ref).activity *= 1e-100
		}
		s.clauseInc *= 1e-100
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.opts.ClauseDecay
}
