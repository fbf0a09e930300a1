package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// evalClause reports whether lits is satisfied under the given per-variable
// assignment.
func evalClause(lits []Literal, model func(Var) bool) bool {
	for _, l := range lits {
		if model(l.Var()) == l.IsPositive() {
			return true
		}
	}
	return false
}

func newVars(s *Solver, n int) []Var {
	vs := make([]Var, n)
	for i := range vs {
		vs[i] = s.NewVariable()
	}
	return vs
}

func TestSolver_UnitPropagationChain(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 4)
	a, b, c, d := vs[0], vs[1], vs[2], vs[3]

	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(a)}))
	require.NoError(t, s.AddClause([]Literal{NegativeLiteral(a), PositiveLiteral(b)}))
	require.NoError(t, s.AddClause([]Literal{NegativeLiteral(b), PositiveLiteral(c)}))
	require.NoError(t, s.AddClause([]Literal{NegativeLiteral(c), PositiveLiteral(d)}))

	require.True(t, s.Model(a))
	require.True(t, s.Model(b))
	require.True(t, s.Model(c))
	require.True(t, s.Model(d))

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Sat, outcome)
}

func TestSolver_AddClause_ImmediateContradiction(t *testing.T) {
	s := NewDefaultSolver()
	a := s.NewVariable()

	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(a)}))
	err := s.AddClause([]Literal{NegativeLiteral(a)})

	require.ErrorIs(t, err, ErrImmediateUnsat)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Unsat, outcome)
}

func TestSolver_AddClause_EmptyClauseIsImmediatelyUnsat(t *testing.T) {
	s := NewDefaultSolver()
	err := s.AddClause(nil)
	require.ErrorIs(t, err, ErrImmediateUnsat)
}

func TestSolver_AddClause_TautologyIsDropped(t *testing.T) {
	s := NewDefaultSolver()
	a := s.NewVariable()

	err := s.AddClause([]Literal{PositiveLiteral(a), NegativeLiteral(a)})
	require.NoError(t, err)
	require.Equal(t, 0, s.NumConstraints())
}

// pigeonhole builds a formula encoding "nPigeons pigeons fit into nHoles
// holes with no hole holding two pigeons", which is unsatisfiable whenever
// nPigeons > nHoles.
func pigeonhole(s *Solver, nPigeons, nHoles int) {
	varOf := func(p, h int) Var { return Var(p*nHoles + h) }
	for i := 0; i < nPigeons*nHoles; i++ {
		s.NewVariable()
	}

	for p := 0; p < nPigeons; p++ {
		clause := make([]Literal, nHoles)
		for h := 0; h < nHoles; h++ {
			clause[h] = PositiveLiteral(varOf(p, h))
		}
		_ = s.AddClause(clause)
	}

	for h := 0; h < nHoles; h++ {
		for p1 := 0; p1 < nPigeons; p1++ {
			for p2 := p1 + 1; p2 < nPigeons; p2++ {
				_ = s.AddClause([]Literal{
					NegativeLiteral(varOf(p1, h)),
					NegativeLiteral(varOf(p2, h)),
				})
			}
		}
	}
}

func TestSolver_Pigeonhole_3Into2IsUnsat(t *testing.T) {
	s := NewDefaultSolver()
	pigeonhole(s, 3, 2)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Unsat, outcome)
	require.Greater(t, s.Stats().Conflicts, uint64(0))
}

func TestSolver_Pigeonhole_2Into2IsSat(t *testing.T) {
	s := NewDefaultSolver()
	pigeonhole(s, 2, 2)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Sat, outcome)
}

func TestSolver_SmallSatisfiableFormula_ModelSatisfiesEveryClause(t *testing.T) {
	s := NewDefaultSolver()
	vs := newVars(s, 5)

	clauses := [][]Literal{
		{PositiveLiteral(vs[0]), PositiveLiteral(vs[1]), NegativeLiteral(vs[2])},
		{NegativeLiteral(vs[0]), PositiveLiteral(vs[2]), PositiveLiteral(vs[3])},
		{NegativeLiteral(vs[1]), NegativeLiteral(vs[3]), PositiveLiteral(vs[4])},
		{PositiveLiteral(vs[2]), NegativeLiteral(vs[4])},
		{NegativeLiteral(vs[0]), NegativeLiteral(vs[1]), NegativeLiteral(vs[4])},
		{PositiveLiteral(vs[0]), NegativeLiteral(vs[3])},
	}
	for _, c := range clauses {
		require.NoError(t, s.AddClause(c))
	}

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Sat, outcome)

	for i, c := range clauses {
		require.True(t, evalClause(c, s.Model), "clause %d not satisfied by model", i)
	}
}

func TestSolver_AggressiveRestarts_StillFindCorrectModel(t *testing.T) {
	opts := DefaultOptions
	opts.RestartStrategy = RestartLuby
	opts.LubyUnit = 1 // restart almost every conflict
	s := NewSolver(opts)

	clauses := buildChainFormula(s, 12)

	// Ten root-level facts keep the trail at or above the restart
	// postponement threshold, and x and y are each forced true, so deciding
	// either of them false (the default phase) is a conflict.
	for _, v := range newVars(s, 10) {
		clauses = append(clauses, []Literal{PositiveLiteral(v)})
	}
	xy := newVars(s, 2)
	clauses = append(clauses,
		[]Literal{PositiveLiteral(xy[0]), PositiveLiteral(xy[1])},
		[]Literal{PositiveLiteral(xy[0]), NegativeLiteral(xy[1])},
		[]Literal{NegativeLiteral(xy[0]), PositiveLiteral(xy[1])},
	)
	for _, c := range clauses[len(clauses)-13:] {
		require.NoError(t, s.AddClause(c))
	}

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Sat, outcome)

	for i, c := range clauses {
		require.True(t, evalClause(c, s.Model), "clause %d not satisfied by model", i)
	}
	require.Greater(t, s.Stats().Restarts, uint64(0))
}

// buildChainFormula returns a satisfiable formula over n fresh variables (an
// implication chain v0 -> v1 -> ... -> v(n-1) plus two closing clauses that
// together force v0 false and v(n-1) true), and adds it to s.
func buildChainFormula(s *Solver, n int) [][]Literal {
	vs := newVars(s, n)
	var clauses [][]Literal

	add := func(c []Literal) {
		clauses = append(clauses, c)
		_ = s.AddClause(c)
	}

	for i := 0; i < n-1; i++ {
		add([]Literal{NegativeLiteral(vs[i]), PositiveLiteral(vs[i+1])})
	}
	add([]Literal{PositiveLiteral(vs[0]), PositiveLiteral(vs[n-1])})
	add([]Literal{NegativeLiteral(vs[n-1]), NegativeLiteral(vs[0])})

	return clauses
}

func TestSolver_MaxConflictsBudget_ReportsBudgetExceeded(t *testing.T) {
	opts := DefaultOptions
	opts.MaxConflicts = 1
	s := NewSolver(opts)
	pigeonhole(s, 6, 5) // needs far more than one conflict to resolve

	outcome, err := s.Solve()
	require.ErrorIs(t, err, ErrBudgetExceeded)
	require.Equal(t, OutcomeUnknown, outcome)
}

func TestSolver_Stats_CountLearnedClauses(t *testing.T) {
	s := NewDefaultSolver()
	pigeonhole(s, 3, 2)

	_, err := s.Solve()
	require.NoError(t, err)
	require.Greater(t, s.Stats().Learned, uint64(0))
}
