// Package ingest loads DIMACS CNF formulas into a *sat.Solver. It is
// grounded on the teacher's parsers/parsers.go, the newer of the two DIMACS
// readers the teacher repo carried, which already wraps the external
// github.com/rhartert/dimacs builder-callback parser instead of hand-rolling
// a scanner.
package ingest

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/hartsol/cdclsat/internal/sat"
)

// Stats reports what a DIMACS header declared, for callers that want to
// print a summary before solving (spec.md §6 CLI surface).
type Stats struct {
	Variables int
	Clauses   int
}

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// LoadFile opens filename (transparently gunzipping files ending in .gz) and
// loads its CNF formula into solver via LoadDIMACS.
func LoadFile(filename string, solver *sat.Solver) (Stats, error) {
	return LoadDIMACS(filename, strings.HasSuffix(filename, ".gz"), solver)
}

// LoadDIMACS parses the DIMACS CNF file at filename and adds its variables
// and clauses to solver.
func LoadDIMACS(filename string, gzipped bool, solver *sat.Solver) (Stats, error) {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return Stats{}, fmt.Errorf("could not open %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{solver: solver}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return Stats{}, fmt.Errorf("could not parse %q: %w", filename, err)
	}
	return Stats{Variables: b.nVars, Clauses: b.nClauses}, nil
}

// builder adapts a *sat.Solver to the dimacs.Builder callback interface.
type builder struct {
	solver   *sat.Solver
	nVars    int
	nClauses int
}

func (b *builder) Problem(problem string, nVars, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported DIMACS problem type %q", problem)
	}
	b.nVars, b.nClauses = nVars, nClauses
	for i := 0; i < nVars; i++ {
		b.solver.NewVariable()
	}
	return nil
}

func (b *builder) Clause(tmp []int) error {
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		switch {
		case l < 0:
			lits[i] = sat.NegativeLiteral(sat.Var(-l - 1))
		default:
			lits[i] = sat.PositiveLiteral(sat.Var(l - 1))
		}
	}
	if err := b.solver.AddClause(lits); err != nil && err != sat.ErrImmediateUnsat {
		return err
	}
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil
}
