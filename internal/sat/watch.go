package sat

// watcher is an entry in a literal's watch list: clause ref is awoken when
// the watching literal becomes false. blocker is another literal of that
// clause which, if already true, lets the Propagator skip loading the clause
// entirely (spec.md §3 "Watch list").
type watcher struct {
	ref     CRef
	blocker Literal
}

// WatchIndex maintains, for every literal, the clauses watching it
// (spec.md §4.2). Lists are grown geometrically so that attaching clauses to
// a long-lived literal doesn't degrade to linear-time amortized growth.
type WatchIndex struct {
	lists [][]watcher
}

// NewWatchIndex returns an empty WatchIndex.
func NewWatchIndex() *WatchIndex {
	return &WatchIndex{}
}

// Resize grows the per-literal array to cover newNumVars variables (i.e.
// 2*newNumVars literals), preserving existing entries. Capacity is grown
// geometrically (spec.md §4.2 "capacity policy").
func (w *WatchIndex) Resize(newNumVars int) {
	need := newNumVars * 2
	if need <= len(w.lists) {
		return
	}
	if cap(w.lists) >= need {
		w.lists = w.lists[:need]
		return
	}
	newCap := cap(w.lists)*2 + 2
	if newCap < need {
		newCap = need
	}
	grown := make([][]watcher, need, newCap)
	copy(grown, w.lists)
	w.lists = grown
}

// Attach registers clause ref as watching both lit0 and lit1: it is added to
// the watch list of each literal's negation, with the other literal recorded
// as blocker (spec.md §4.2 "attach").
func (w *WatchIndex) Attach(ref CRef, lit0, lit1 Literal) {
	w.lists[lit0.Opposite()] = append(w.lists[lit0.Opposite()], watcher{ref: ref, blocker: lit1})
	w.lists[lit1.Opposite()] = append(w.lists[lit1.Opposite()], watcher{ref: ref, blocker: lit0})
}

// Attach1 adds a single directed watch entry: ref is added to watches(lit),
// with blocker recorded for the short-circuit check. Used by the Propagator
// when a clause picks up a new watch literal mid-scan (spec.md §4.3 step d).
func (w *WatchIndex) Attach1(ref CRef, lit, blocker Literal) {
	w.lists[lit] = append(w.lists[lit], watcher{ref: ref, blocker: blocker})
}

// Detach removes every watch entry referring to ref from lit's list.
func (w *WatchIndex) Detach(ref CRef, lit Literal) {
	list := w.lists[lit]
	j := 0
	for i := range list {
		if list[i].ref != ref {
			list[j] = list[i]
			j++
		}
	}
	w.lists[lit] = list[:j]
}

// List returns the current watch list for lit. The Propagator is allowed to
// rewrite it in place (swap-and-shrink) while walking it.
func (w *WatchIndex) List(lit Literal) []watcher {
	return w.lists[lit]
}

// SetList replaces the watch list for lit, used by the Propagator after an
// in-place rewrite has shrunk it.
func (w *WatchIndex) SetList(lit Literal, list []watcher) {
	w.lists[lit] = list
}

// Relocate rewrites ref to newRef in every watch entry for lit. Used after
// an Arena.Compact to keep watch lists consistent with the new CRefs.
func (w *WatchIndex) Relocate(lit Literal, oldRef, newRef CRef) {
	list := w.lists[lit]
	for i := range list {
		if list[i].ref == oldRef {
			list[i].ref = newRef
		}
	}
}
