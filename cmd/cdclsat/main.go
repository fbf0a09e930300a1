// Command cdclsat solves DIMACS CNF instances with the CDCL core in
// internal/sat. It replaces the teacher's flag-based main.go (main.go in the
// teacher repo's root) with a cobra/pflag CLI and zap structured logging,
// matching the rest of the pack's ambient stack rather than fmt.Printf.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hartsol/cdclsat/internal/ingest"
	"github.com/hartsol/cdclsat/internal/sat"
)

var (
	flagRestart       = restartValue{strategy: sat.RestartLuby, name: "luby"}
	flagMaxConflicts  uint64
	flagMaxDecisions  uint64
	flagTimeBudget    time.Duration
	flagNoMinimize    bool
	flagChronological bool
	flagSeed          int64
	flagCPUProfile    string
	flagMemProfile    string
)

// restartValue implements pflag.Value so --restart is validated at flag-parse
// time instead of after the fact, the way pflag's own enum-flag examples do
// it.
type restartValue struct {
	strategy sat.RestartStrategy
	name     string
}

func (v *restartValue) String() string { return v.name }
func (v *restartValue) Type() string   { return "string" }

func (v *restartValue) Set(s string) error {
	switch s {
	case "luby":
		v.strategy = sat.RestartLuby
	case "ema-lbd":
		v.strategy = sat.RestartEmaLBD
	case "window-lbd":
		v.strategy = sat.RestartWindowLBD
	default:
		return fmt.Errorf("unknown restart strategy %q (want luby, ema-lbd, or window-lbd)", s)
	}
	v.name = s
	return nil
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [instance.cnf]",
		Short: "Solve a DIMACS CNF formula",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}

	var flags *pflag.FlagSet = cmd.Flags()
	flags.Var(&flagRestart, "restart", "restart strategy: luby, ema-lbd, window-lbd")
	flags.Uint64Var(&flagMaxConflicts, "max-conflicts", 0, "stop after this many conflicts (0 = unlimited)")
	flags.Uint64Var(&flagMaxDecisions, "max-decisions", 0, "stop after this many decisions (0 = unlimited)")
	flags.DurationVar(&flagTimeBudget, "time-budget", 0, "stop after this much wall-clock time (0 = unlimited)")
	flags.BoolVar(&flagNoMinimize, "no-minimize", false, "disable learned-clause minimization")
	flags.BoolVar(&flagChronological, "chronological", false, "enable chronological backtracking")
	flags.Int64Var(&flagSeed, "seed", 1, "RNG seed for phase selection")
	flags.StringVar(&flagCPUProfile, "cpuprofile", "", "write a pprof CPU profile to this file")
	flags.StringVar(&flagMemProfile, "memprofile", "", "write a pprof heap profile to this file")

	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if flagCPUProfile != "" {
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	opts := sat.DefaultOptions
	opts.RestartStrategy = flagRestart.strategy
	opts.MaxConflicts = flagMaxConflicts
	opts.MaxDecisions = flagMaxDecisions
	opts.TimeBudget = flagTimeBudget
	opts.MinimizeLearned = !flagNoMinimize
	opts.Chronological = flagChronological
	opts.Seed = flagSeed

	solver := sat.NewSolver(opts)

	instance := args[0]
	stats, err := ingest.LoadFile(instance, solver)
	if err != nil {
		return err
	}

	logger.Info("loaded instance",
		zap.String("file", instance),
		zap.Int("variables", stats.Variables),
		zap.Int("clauses", stats.Clauses),
	)

	start := time.Now()
	outcome, solveErr := solver.Solve()
	elapsed := time.Since(start)

	ss := solver.Stats()
	logger.Info("search finished",
		zap.String("outcome", outcome.String()),
		zap.Duration("elapsed", elapsed),
		zap.Uint64("conflicts", ss.Conflicts),
		zap.Uint64("decisions", ss.Decisions),
		zap.Uint64("propagations", ss.Propagations),
		zap.Uint64("restarts", ss.Restarts),
		zap.Uint64("reductions", ss.Reductions),
		zap.Uint64("learned", ss.Learned),
		zap.Uint32("max_lbd", ss.MaxLBD),
	)

	if solveErr != nil {
		if errors.Is(solveErr, sat.ErrBudgetExceeded) {
			fmt.Println("s UNKNOWN")
			return nil
		}
		return solveErr
	}

	fmt.Printf("s %s\n", dimacsStatus(outcome))
	if outcome == sat.Sat {
		fmt.Print("v")
		for v := 0; v < solver.NumVariables(); v++ {
			if solver.Model(sat.Var(v)) {
				fmt.Printf(" %d", v+1)
			} else {
				fmt.Printf(" %d", -(v + 1))
			}
		}
		fmt.Println(" 0")
	}

	if flagMemProfile != "" {
		f, err := os.Create(flagMemProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		return pprof.WriteHeapProfile(f)
	}
	return nil
}

func dimacsStatus(o sat.Outcome) string {
	switch o {
	case sat.Sat:
		return "SATISFIABLE"
	case sat.Unsat:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

func main() {
	root := &cobra.Command{
		Use:   "cdclsat",
		Short: "A conflict-driven clause learning SAT solver",
	}
	root.AddCommand(newSolveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
