package sat

// EventSink receives a stream of clause-level events that, read in order,
// forms a resolution proof skeleton (spec.md §4.9). A CRef is never reused
// for a different clause within a single event stream; compaction-induced
// relocation is an internal concern the sink never observes.
type EventSink interface {
	// OnAdd is called whenever a learned clause is finalized.
	OnAdd(lits []Literal)
	// OnDelete is called whenever a clause is removed by reduction.
	OnDelete(lits []Literal)
	// OnFinalEmpty is called once, when the solver derives the empty
	// clause (i.e. proves Unsat).
	OnFinalEmpty()
}

// NopEventSink discards every event. It is the default sink so the core can
// always call through s.events without a nil check.
type NopEventSink struct{}

func (NopEventSink) OnAdd([]Literal)    {}
func (NopEventSink) OnDelete([]Literal) {}
func (NopEventSink) OnFinalEmpty()      {}
