package sat

import "testing"

func TestTrail_PushAndLevels(t *testing.T) {
	var tr Trail

	tr.Push(PositiveLiteral(0)) // level 0
	tr.NewDecisionLevel()
	tr.Push(PositiveLiteral(1)) // level 1
	tr.Push(NegativeLiteral(2)) // level 1
	tr.NewDecisionLevel()
	tr.Push(PositiveLiteral(3)) // level 2

	if got, want := tr.Len(), 4; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := tr.Level(), 2; got != want {
		t.Fatalf("Level() = %d, want %d", got, want)
	}
	if got, want := tr.LevelStart(1), 1; got != want {
		t.Errorf("LevelStart(1) = %d, want %d", got, want)
	}
	if got, want := tr.LevelStart(2), 3; got != want {
		t.Errorf("LevelStart(2) = %d, want %d", got, want)
	}
}

func TestTrail_PropagationHead(t *testing.T) {
	var tr Trail
	tr.Push(PositiveLiteral(0))
	tr.Push(PositiveLiteral(1))

	if !tr.Pending() {
		t.Fatalf("Pending() = false, want true")
	}
	if got := tr.NextPending(); got != PositiveLiteral(0) {
		t.Errorf("NextPending() = %d, want %d", got, PositiveLiteral(0))
	}
	if got := tr.NextPending(); got != PositiveLiteral(1) {
		t.Errorf("NextPending() = %d, want %d", got, PositiveLiteral(1))
	}
	if tr.Pending() {
		t.Errorf("Pending() = true after draining, want false")
	}
}

func TestTrail_TruncateToAndPopLevel(t *testing.T) {
	var tr Trail
	tr.Push(PositiveLiteral(0))
	tr.NewDecisionLevel()
	tr.Push(PositiveLiteral(1))
	tr.Push(PositiveLiteral(2))

	start := tr.PopLevel()
	if got, want := start, 1; got != want {
		t.Fatalf("PopLevel() = %d, want %d", got, want)
	}

	removed := tr.TruncateTo(start)
	if got, want := len(removed), 2; got != want {
		t.Fatalf("len(TruncateTo()) = %d, want %d", got, want)
	}
	if got, want := removed[0], PositiveLiteral(1); got != want {
		t.Errorf("removed[0] = %d, want %d", got, want)
	}
	if got, want := tr.Len(), 1; got != want {
		t.Errorf("Len() after truncate = %d, want %d", got, want)
	}

	tr.ResetHead()
	if tr.Pending() {
		t.Errorf("Pending() = true after ResetHead at trail end, want false")
	}
}
