package sat

// RestartStrategy selects which signal the Restart Controller uses to decide
// when to back the search up to level 0 (spec.md §4.6).
type RestartStrategy int

const (
	RestartLuby RestartStrategy = iota
	RestartEmaLBD
	RestartWindowLBD
)

// ema is an exponential moving average, grounded directly on the teacher's
// sat/avg.go (the only file in the repo's newer "sat" package besides
// clauses.go).
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema { return ema{decay: decay} }

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 { return e.value }

// restartController implements all three strategies spec.md §4.6 describes
// behind one type (the "tagged-variant" design spec.md §9 suggests), always
// updating every strategy's state so switching strategies is zero-cost.
type restartController struct {
	strategy RestartStrategy

	// Luby.
	lubyUnit       uint64
	lubyIndex      uint64
	conflictsSince uint64 // conflicts since the last Luby restart fired

	// EMA-LBD.
	fastEMA        ema
	slowEMA        ema
	minConflicts   uint64
	totalConflicts uint64

	// Window-LBD.
	window      []uint32
	windowPos   int
	windowFull  bool
	windowSum   uint64
	windowK     float64
	allLBDSum   uint64
	allLBDCount uint64

	// Postponement: suppress a restart that would fire while the trail is
	// still very shallow (spec.md §4.6 "Postponement").
	postponeTrailLen int
}

func newRestartController(opts Options) *restartController {
	rc := &restartController{
		strategy:         opts.RestartStrategy,
		lubyUnit:         opts.LubyUnit,
		fastEMA:          newEMA(opts.EMAFast),
		slowEMA:          newEMA(opts.EMASlow),
		minConflicts:     100,
		window:           make([]uint32, opts.WindowSize),
		windowK:          opts.WindowK,
		postponeTrailLen: 10,
	}
	if rc.lubyUnit == 0 {
		rc.lubyUnit = 100
	}
	if len(rc.window) == 0 {
		rc.window = make([]uint32, 50)
	}
	return rc
}

// luby computes the Luby sequence value at (0-based) index i, following the
// recursive definition of spec.md §4.6 exactly:
//
//	luby(i) = 2^(k-1)              if i+1 = 2^k - 1
//	        = luby(i - 2^(k-1) + 1) otherwise,  where 2^(k-1) <= i+1 < 2^k
func luby(i uint64) uint64 {
	ip1 := i + 1

	k := uint64(1)
	for (uint64(1)<<k)-1 < ip1 {
		k++
	}

	if ip1 == (uint64(1)<<k)-1 {
		return uint64(1) << (k - 1)
	}
	return luby(i - (uint64(1)<<(k-1)) + 1)
}

// onConflict records one conflict with the given LBD, feeding all three
// strategies regardless of which is active (spec.md §9).
func (rc *restartController) onConflict(lbd uint32) {
	rc.conflictsSince++
	rc.totalConflicts++

	rc.fastEMA.add(float64(lbd))
	rc.slowEMA.add(float64(lbd))

	rc.allLBDSum += uint64(lbd)
	rc.allLBDCount++

	rc.window[rc.windowPos] = lbd
	rc.windowPos++
	if rc.windowPos == len(rc.window) {
		rc.windowPos = 0
		rc.windowFull = true
	}
}

// shouldRestart reports whether the active strategy's signal currently
// fires, given the current trail length (for postponement).
func (rc *restartController) shouldRestart(trailLen int) bool {
	if trailLen < rc.postponeTrailLen {
		return false
	}

	switch rc.strategy {
	case RestartLuby:
		threshold := luby(rc.lubyIndex) * rc.lubyUnit
		if rc.conflictsSince >= threshold {
			rc.lubyIndex++
			rc.conflictsSince = 0
			return true
		}
		return false

	case RestartEmaLBD:
		if rc.totalConflicts < rc.minConflicts {
			return false
		}
		return rc.fastEMA.val() > rc.slowEMA.val()

	case RestartWindowLBD:
		if !rc.windowFull {
			return false
		}
		if rc.allLBDCount == 0 {
			return false
		}
		windowMean := rc.windowMean()
		allMean := float64(rc.allLBDSum) / float64(rc.allLBDCount)
		return windowMean > rc.windowK*allMean

	default:
		return false
	}
}

func (rc *restartController) windowMean() float64 {
	var sum uint64
	for _, v := range rc.window {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(rc.window))
}
