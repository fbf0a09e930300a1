package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArena_AllocateAndRead(t *testing.T) {
	a := NewArena()

	ref, err := a.Allocate([]Literal{0, 3, 5}, false)
	if err != nil {
		t.Fatalf("Allocate() error: %s", err)
	}

	c := a.Clause(ref)
	if diff := cmp.Diff([]Literal{0, 3, 5}, c.Lits()); diff != "" {
		t.Errorf("Lits() mismatch (-want +got):\n%s", diff)
	}
	if c.Learnt() {
		t.Errorf("Learnt() = true, want false")
	}
	if c.Deleted() {
		t.Errorf("Deleted() = true, want false")
	}
}

func TestArena_Compact_RelocatesSurvivorsAndSkipsTombstones(t *testing.T) {
	a := NewArena()

	r0, _ := a.Allocate([]Literal{0, 1}, false)
	r1, _ := a.Allocate([]Literal{2, 3}, true)
	r2, _ := a.Allocate([]Literal{4, 5}, true)

	a.MarkDeleted(r1)

	type move struct{ old, new CRef }
	var moves []move
	a.Compact(func(old, new CRef) {
		moves = append(moves, move{old, new})
	})

	if got, want := a.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	want := []move{{r0, 0}, {r2, 1}}
	if len(moves) != len(want) {
		t.Fatalf("Compact() relocated %d clauses, want %d: %v", len(moves), len(want), moves)
	}
	for i, m := range moves {
		if m != want[i] {
			t.Errorf("move[%d] = %+v, want %+v", i, m, want[i])
		}
	}

	if diff := cmp.Diff([]Literal{0, 1}, a.Clause(0).Lits()); diff != "" {
		t.Errorf("Clause(0).Lits() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Literal{4, 5}, a.Clause(1).Lits()); diff != "" {
		t.Errorf("Clause(1).Lits() mismatch (-want +got):\n%s", diff)
	}
}

func TestArena_MarkDeleted_TracksWaste(t *testing.T) {
	a := NewArena()
	ref, _ := a.Allocate([]Literal{0, 1, 2}, true)

	if got := a.Waste(); got != 0 {
		t.Fatalf("Waste() = %d before delete, want 0", got)
	}

	a.MarkDeleted(ref)

	if got, want := a.Waste(), 3; got != want {
		t.Errorf("Waste() = %d, want %d", got, want)
	}
	if !a.Clause(ref).Deleted() {
		t.Errorf("Deleted() = false after MarkDeleted")
	}
}

func litsEqual(a, b []Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
