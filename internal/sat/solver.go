package sat

import (
	"math/rand"
	"time"
)

// Options configures a Solver (spec.md §6). Zero-valued numeric fields (other
// than the budgets) and a nil EventSink are replaced with DefaultOptions'
// values by NewSolver; boolean fields are used as given.
type Options struct {
	RestartStrategy RestartStrategy
	LubyUnit        uint64
	EMAFast         float64
	EMASlow         float64
	WindowSize      uint32
	WindowK         float64

	VarDecay    float64
	ClauseDecay float64

	ReduceInterval uint64
	ReduceFraction float64
	GlueLBD        uint32
	MaxLBDToKeep   uint32

	PhaseSaving     bool
	RandomPhaseProb float64
	AdaptiveRandom  bool
	RephaseInterval uint64

	MinimizeLearned bool

	// Chronological enables chronological backtracking (spec.md §4.8).
	Chronological bool

	MaxConflicts uint64        // 0 means unlimited
	MaxDecisions uint64        // 0 means unlimited
	TimeBudget   time.Duration // 0 means unlimited

	EventSink EventSink

	// Seed controls the deterministic RNG used for random phase selection.
	Seed int64
}

// DefaultOptions mirrors spec.md §6's documented defaults.
var DefaultOptions = Options{
	RestartStrategy: RestartLuby,
	LubyUnit:        100,
	EMAFast:         0.8,
	EMASlow:         0.9999,
	WindowSize:      50,
	WindowK:         0.8,

	VarDecay:    0.95,
	ClauseDecay: 0.999,

	ReduceInterval: 2000,
	ReduceFraction: 0.5,
	GlueLBD:        2,
	MaxLBDToKeep:   30,

	PhaseSaving:     true,
	RandomPhaseProb: 0.01,
	AdaptiveRandom:  true,
	RephaseInterval: 1000,

	MinimizeLearned: true,

	Chronological: false,

	Seed: 1,
}

func fillDefaults(o Options) Options {
	d := DefaultOptions
	if o.LubyUnit == 0 {
		o.LubyUnit = d.LubyUnit
	}
	if o.EMAFast == 0 {
		o.EMAFast = d.EMAFast
	}
	if o.EMASlow == 0 {
		o.EMASlow = d.EMASlow
	}
	if o.WindowSize == 0 {
		o.WindowSize = d.WindowSize
	}
	if o.WindowK == 0 {
		o.WindowK = d.WindowK
	}
	if o.VarDecay == 0 {
		o.VarDecay = d.VarDecay
	}
	if o.ClauseDecay == 0 {
		o.ClauseDecay = d.ClauseDecay
	}
	if o.ReduceInterval == 0 {
		o.ReduceInterval = d.ReduceInterval
	}
	if o.ReduceFraction == 0 {
		o.ReduceFraction = d.ReduceFraction
	}
	if o.GlueLBD == 0 {
		o.GlueLBD = d.GlueLBD
	}
	if o.MaxLBDToKeep == 0 {
		o.MaxLBDToKeep = d.MaxLBDToKeep
	}
	if o.RandomPhaseProb == 0 {
		o.RandomPhaseProb = d.RandomPhaseProb
	}
	if o.RephaseInterval == 0 {
		o.RephaseInterval = d.RephaseInterval
	}
	if o.Seed == 0 {
		o.Seed = d.Seed
	}
	if o.EventSink == nil {
		o.EventSink = NopEventSink{}
	}
	return o
}

// Outcome is the three-valued result of Solve (spec.md §6, §7).
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	Sat
	Unsat
)

func (o Outcome) String() string {
	switch o {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Solver is the Search Orchestrator (spec.md §4.8) wiring together the
// Clause Arena, Watch Index, Trail, Variable State, Branching Heap,
// Propagator, Conflict Analyzer, Restart Controller and Clause Database
// Manager, generalizing the teacher's monolithic Solver
// (internal/sat/solver.go) to the full component split spec.md §2 describes.
type Solver struct {
	opts Options

	vars    *varState
	heap    *BranchingHeap
	watches *WatchIndex
	arena   *Arena
	trail   Trail

	constraints []CRef
	learnts     []CRef

	unsat bool

	stats Stats

	clauseInc float64
	varInc    float64

	restart *restartController

	seen       varSet
	tmpLearnt  []Literal
	tmpExplain []Literal

	events EventSink

	rng *rand.Rand

	stuckConflicts int // consecutive conflicts at low decision level, feeds adaptive random phase

	conflictsSinceReduce  uint64
	conflictsSinceRephase uint64
	bestTrailLen          int

	startTime time.Time
	deadline  time.Time
	hasTime   bool
}

// NewSolver returns an empty solver configured with opts (missing fields
// filled from DefaultOptions, spec.md §6).
func NewSolver(opts Options) *Solver {
	opts = fillDefaults(opts)

	s := &Solver{
		opts:      opts,
		vars:      newVarState(),
		heap:      NewBranchingHeap(),
		watches:   NewWatchIndex(),
		arena:     NewArena(),
		clauseInc: 1,
		varInc:    1,
		restart:   newRestartController(opts),
		events:    opts.EventSink,
		rng:       rand.New(rand.NewSource(opts.Seed)),
	}
	if opts.TimeBudget > 0 {
		s.hasTime = true
	}
	return s
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int { return s.vars.numVars() }

// NumAssigns returns the number of currently-assigned variables.
func (s *Solver) NumAssigns() int { return s.trail.Len() }

// NumConstraints returns the number of original (non-learned) clauses of
// size >= 2 stored in the arena.
func (s *Solver) NumConstraints() int { return len(s.constraints) }

// NumLearnts returns the number of learned clauses currently retained.
func (s *Solver) NumLearnts() int { return len(s.learnts) }

// Stats returns a snapshot of the solver's counters (spec.md §6).
func (s *Solver) Stats() Stats { return s.stats }

// NewVariable allocates a fresh variable (spec.md §6 "new_variable").
func (s *Solver) NewVariable() Var {
	id := s.vars.addVar(false)
	s.watches.Resize(s.vars.numVars())
	s.heap.GrowBy(1)
	s.seen.growTo(s.vars.numVars())
	s.heap.Insert(id, 0)
	return id
}

// AddClause adds an original clause to the formula (spec.md §6
// "add_clause"). It must only be called at decision level 0.
func (s *Solver) AddClause(lits []Literal) error {
	if s.trail.Level() != 0 {
		panic("sat: AddClause called at non-root decision level")
	}
	if s.unsat {
		return ErrImmediateUnsat
	}

	normalized, tautology := normalizeClause(lits, s.vars.litValue)
	if tautology {
		return nil
	}

	switch len(normalized) {
	case 0:
		s.unsat = true
		return ErrImmediateUnsat
	case 1:
		if !s.enqueueRoot(normalized[0]) {
			s.unsat = true
			return ErrImmediateUnsat
		}
		if s.propagate() != CRefNone {
			s.unsat = true
			return ErrImmediateUnsat
		}
		return nil
	default:
		ref, err := s.arena.Allocate(normalized, false)
		if err != nil {
			return err
		}
		c := s.arena.Clause(ref)
		s.watches.Attach(ref, c.lits[0], c.lits[1])
		s.constraints = append(s.constraints, ref)
		return nil
	}
}

// enqueueRoot assigns a level-0 fact directly, without going through the
// trail's decision-level bookkeeping (there is none at level 0).
func (s *Solver) enqueueRoot(l Literal) bool {
	switch s.vars.litValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		s.enqueue(l, CRefNone)
		return true
	}
}

// Model returns the boolean assigned to v. Only meaningful after Solve
// returns Sat (spec.md §6 "model").
func (s *Solver) Model(v Var) bool {
	return s.vars.varValue(v) == True
}
