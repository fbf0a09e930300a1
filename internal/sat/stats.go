package sat

// Stats is the observable counters snapshot of spec.md §6, generalizing the
// teacher's TotalConflicts/TotalRestarts/TotalIterations fields
// (internal/sat/solver.go) to the full field list the spec asks for, plus
// a learned/deleted/glue clause breakdown in the spirit of gophersat's Stats
// struct (unit and binary learned clauses are not counted separately).
type Stats struct {
	Conflicts        uint64
	Decisions        uint64
	Propagations     uint64
	Restarts         uint64
	Reductions       uint64
	Learned          uint64
	Deleted          uint64
	Glue             uint64
	MaxLBD           uint32
	MinimizedLiterals uint64
}
