package sat

// normalizeClause removes duplicate literals and detects tautologies and
// root-level falsity/truth, mirroring the preprocessing the teacher's
// NewClause performs inline (internal/sat's original clauses.go) but kept
// separate from clause construction so it can be unit-tested on its own.
//
// lits is mutated in place and normalized is the clause with duplicates and
// root-false literals removed. tautology is true (and normalized nil) if the
// clause contains both l and ¬l, or a literal already true at the root
// level; either way it should be dropped with no effect.
func normalizeClause(lits []Literal, litValue func(Literal) LBool) (normalized []Literal, tautology bool) {
	seen := make(map[Literal]struct{}, len(lits))
	size := len(lits)

	for i := size - 1; i >= 0; i-- {
		l := lits[i]
		if _, ok := seen[l.Opposite()]; ok {
			return nil, true // both l and ¬l present: tautology
		}
		if _, ok := seen[l]; ok {
			size--
			lits[i], lits[size] = lits[size], lits[i]
			continue
		}
		seen[l] = struct{}{}

		switch litValue(l) {
		case True:
			return nil, true // satisfied at the root: tautology for our purposes
		case False:
			size--
			lits[i], lits[size] = lits[size], lits[i]
		}
	}

	return lits[:size], false
}

// explainConflict writes the negation of every literal of c into dst[:0],
// growing dst as needed, and returns the result. Used by the Analyzer when
// resolving on the conflict clause itself (spec.md §4.4 step 2, l == none).
func explainConflict(c *Clause, dst []Literal) []Literal {
	dst = dst[:0]
	for _, l := range c.lits {
		dst = append(dst, l.Opposite())
	}
	return dst
}

// explainAssign writes the negation of every non-asserting literal of c
// (i.e. all but lits[0]) into dst[:0] and returns the result. Used by the
// Analyzer when resolving on a clause that is the reason for an assignment.
func explainAssign(c *Clause, dst []Literal) []Literal {
	dst = dst[:0]
	for _, l := range c.lits[1:] {
		dst = append(dst, l.Opposite())
	}
	return dst
}
