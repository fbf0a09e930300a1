package sat

import "github.com/rhartert/yagh"

// BranchingHeap is the VSIDS activity-ordered max-heap over unassigned
// variables (spec.md §4.5). It is a thin wrapper over the teacher's own
// indexed priority queue dependency, github.com/rhartert/yagh, which already
// gives O(log N) insert/update/pop-min with per-element position tracking;
// negating the score turns its min-heap into the max-heap the spec wants.
type BranchingHeap struct {
	order *yagh.IntMap[float64]
}

// NewBranchingHeap returns an empty heap.
func NewBranchingHeap() *BranchingHeap {
	return &BranchingHeap{order: yagh.New[float64](0)}
}

// GrowBy extends the heap's backing storage for nNew new variables.
func (h *BranchingHeap) GrowBy(nNew int) {
	h.order.GrowBy(nNew)
}

// Insert inserts v into the heap with the given activity. Used both when a
// variable is declared and when it is unassigned by a backtrack (spec.md §4.5
// "insert").
func (h *BranchingHeap) Insert(v Var, activity float64) {
	h.order.Put(int(v), -activity)
}

// Contains reports whether v currently has a valid heap position.
func (h *BranchingHeap) Contains(v Var) bool {
	return h.order.Contains(int(v))
}

// Update refreshes v's position after its activity changed (spec.md §4.5
// "update").
func (h *BranchingHeap) Update(v Var, activity float64) {
	if h.order.Contains(int(v)) {
		h.order.Put(int(v), -activity)
	}
}

// Remove is a no-op: v stays in the heap, and PopMax skips it if it is
// assigned by then.
func (h *BranchingHeap) Remove(v Var) {
	// yagh has no explicit remove; lazy deletion is handled by PopMax
	// skipping assigned variables, as spec.md §4.5 explicitly allows.
	_ = v
}

// PopMax pops the unassigned variable with the highest activity, skipping
// (permanently dropping) any already-assigned variables it encounters, per
// the lazy-deletion contract of spec.md §4.5. isAssigned reports whether a
// variable is currently bound.
func (h *BranchingHeap) PopMax(isAssigned func(Var) bool) (Var, bool) {
	for {
		elem, ok := h.order.Pop()
		if !ok {
			return 0, false
		}
		v := Var(elem.Elem)
		if isAssigned(v) {
			continue
		}
		return v, true
	}
}
