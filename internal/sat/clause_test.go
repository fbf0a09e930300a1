package sat

import "testing"

func alwaysUnknown(Literal) LBool { return Unknown }

func TestNormalizeClause_DropsDuplicates(t *testing.T) {
	lits := []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(0)}
	got, tautology := normalizeClause(lits, alwaysUnknown)

	if tautology {
		t.Fatalf("normalizeClause() tautology = true, want false")
	}
	if !litsEqual(got, []Literal{PositiveLiteral(1), PositiveLiteral(0)}) &&
		!litsEqual(got, []Literal{PositiveLiteral(0), PositiveLiteral(1)}) {
		t.Errorf("normalizeClause() = %v, want a 2-literal clause over {0,1} with no duplicates", got)
	}
}

func TestNormalizeClause_DetectsTautology(t *testing.T) {
	lits := []Literal{PositiveLiteral(0), NegativeLiteral(0)}
	_, tautology := normalizeClause(lits, alwaysUnknown)

	if !tautology {
		t.Errorf("normalizeClause() tautology = false, want true for {0, -0}")
	}
}

func TestNormalizeClause_DropsFalseLiteralsAtRoot(t *testing.T) {
	falseV0 := func(l Literal) LBool {
		if l == PositiveLiteral(0) {
			return False
		}
		if l == NegativeLiteral(0) {
			return True
		}
		return Unknown
	}

	lits := []Literal{PositiveLiteral(0), PositiveLiteral(1)}
	got, tautology := normalizeClause(lits, falseV0)

	if tautology {
		t.Fatalf("normalizeClause() tautology = true, want false")
	}
	if !litsEqual(got, []Literal{PositiveLiteral(1)}) {
		t.Errorf("normalizeClause() = %v, want [%d]", got, PositiveLiteral(1))
	}
}

func TestExplainConflictAndExplainAssign(t *testing.T) {
	c := &Clause{lits: []Literal{PositiveLiteral(0), NegativeLiteral(1), PositiveLiteral(2)}}

	conflict := explainConflict(c, nil)
	want := []Literal{NegativeLiteral(0), PositiveLiteral(1), NegativeLiteral(2)}
	if !litsEqual(conflict, want) {
		t.Errorf("explainConflict() = %v, want %v", conflict, want)
	}

	assign := explainAssign(c, nil)
	want = []Literal{PositiveLiteral(1), NegativeLiteral(2)}
	if !litsEqual(assign, want) {
		t.Errorf("explainAssign() = %v, want %v", assign, want)
	}
}
