package sat

import "fmt"

// Var identifies a propositional variable in [0, N). Variables are dense and
// allocated by Solver.NewVariable; the underlying integer doubles as an index
// into every per-variable array the solver owns (see vars.go).
type Var int32

// Literal is a signed reference to a Var, encoded as 2*var+sign so that both
// polarities of a variable sit next to each other in every literal-indexed
// array and Opposite is a single XOR (spec.md §3 "Literal").
type Literal int32

// PositiveLiteral returns the literal asserting v is true.
func PositiveLiteral(v Var) Literal {
	return Literal(v) * 2
}

// NegativeLiteral returns the literal asserting v is false.
func NegativeLiteral(v Var) Literal {
	return Literal(v)*2 + 1
}

// Var returns the variable this literal refers to.
func (l Literal) Var() Var {
	return Var(l >> 1)
}

// IsPositive reports whether l asserts its variable rather than its negation.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.Var())
	}
	return fmt.Sprintf("-%d", l.Var())
}
