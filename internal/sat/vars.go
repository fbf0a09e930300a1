package sat

// varState holds the five per-variable arrays spec.md §3 describes (value,
// level, reason, phase, activity); the sixth, heap position, is owned by the
// Branching Heap (heap.go), which wraps github.com/rhartert/yagh and is grown
// by one slot in Solver.NewVariable right after addVar (spec.md §9
// "geometric growth for all per-variable arrays").
type varState struct {
	value  []LBool // indexed by Literal, so both polarities are O(1)
	level  []int32 // indexed by Var; undefined (-1) while Unknown
	reason []CRef  // indexed by Var; CRefNone for decisions/level-0 facts

	savedPhase []bool // last-assigned polarity, used by phase saving
	target     []bool // phase snapshot used while rephasing is in progress
	best       []bool // phase snapshot at the deepest trail ever reached

	activity []float64 // indexed by Var, VSIDS score
}

func newVarState() *varState {
	return &varState{}
}

// numVars returns the number of variables currently allocated.
func (v *varState) numVars() int { return len(v.level) }

// addVar adds one new variable, extending every array together so none can
// lag behind another (spec.md §9's "central grow_to(capacity) routine").
func (v *varState) addVar(initPhase bool) Var {
	id := Var(v.numVars())

	v.value = append(v.value, Unknown, Unknown) // one slot per literal
	v.level = append(v.level, -1)
	v.reason = append(v.reason, CRefNone)
	v.savedPhase = append(v.savedPhase, initPhase)
	v.target = append(v.target, initPhase)
	v.best = append(v.best, initPhase)
	v.activity = append(v.activity, 0)

	return id
}

func (v *varState) litValue(l Literal) LBool { return v.value[l] }
func (v *varState) varValue(x Var) LBool     { return v.value[PositiveLiteral(x)] }

func (v *varState) assign(l Literal, level int, reason CRef) {
	v.value[l] = True
	v.value[l.Opposite()] = False
	v.level[l.Var()] = int32(level)
	v.reason[l.Var()] = reason
}

// unassign reverts a variable to Unknown, saving the polarity it held so
// phase saving can reuse it on the next decision (spec.md §4.8
// "Backtracking").
func (v *varState) unassign(l Literal) {
	vid := l.Var()
	v.savedPhase[vid] = l.IsPositive()
	v.value[l] = Unknown
	v.value[l.Opposite()] = Unknown
	v.reason[vid] = CRefNone
	v.level[vid] = -1
}

// snapshotBest copies the current saved phases into the "best" snapshot,
// called by the Orchestrator when the trail reaches a new maximum depth
// (spec.md §4.8 "Rephasing").
func (v *varState) snapshotBest() {
	copy(v.best, v.savedPhase)
}

// applyBestRephase resets the saved/target phases to the last "best"
// snapshot.
func (v *varState) applyBestRephase() {
	copy(v.savedPhase, v.best)
	copy(v.target, v.best)
}
