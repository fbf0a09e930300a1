package ingest

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/hartsol/cdclsat/internal/sat"
)

const smallCNF = `c a tiny satisfiable formula
p cnf 3 2
1 -2 0
2 3 0
`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %s", path, err)
	}
	return path
}

func TestLoadDIMACS_PlainFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "small.cnf", smallCNF)

	solver := sat.NewSolver(sat.DefaultOptions)
	stats, err := LoadDIMACS(path, false, solver)
	if err != nil {
		t.Fatalf("LoadDIMACS() error: %s", err)
	}

	if stats.Variables != 3 {
		t.Errorf("Variables = %d, want 3", stats.Variables)
	}
	if stats.Clauses != 2 {
		t.Errorf("Clauses = %d, want 2", stats.Clauses)
	}
	if got := solver.NumVariables(); got != 3 {
		t.Errorf("NumVariables() = %d, want 3", got)
	}
}

func TestLoadFile_DetectsGzipBySuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.cnf.gz")

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(smallCNF)); err != nil {
		t.Fatalf("gzip Write: %s", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip Close: %s", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	solver := sat.NewSolver(sat.DefaultOptions)
	stats, err := LoadFile(path, solver)
	if err != nil {
		t.Fatalf("LoadFile() error: %s", err)
	}
	if stats.Variables != 3 || stats.Clauses != 2 {
		t.Errorf("Stats = %+v, want {3 2}", stats)
	}
}

func TestLoadDIMACS_ImmediateContradictionIsTolerated(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "contradiction.cnf", `p cnf 1 2
1 0
-1 0
`)

	solver := sat.NewSolver(sat.DefaultOptions)
	if _, err := LoadDIMACS(path, false, solver); err != nil {
		t.Fatalf("LoadDIMACS() error: %s, want nil (contradiction surfaces via Solve, not loading)", err)
	}

	outcome, err := solver.Solve()
	if err != nil {
		t.Fatalf("Solve() error: %s", err)
	}
	if outcome != sat.Unsat {
		t.Errorf("Solve() = %v, want Unsat", outcome)
	}
}

func TestLoadDIMACS_RejectsUnknownProblemType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.cnf", "p wcnf 1 1\n1 0\n")

	solver := sat.NewSolver(sat.DefaultOptions)
	if _, err := LoadDIMACS(path, false, solver); err == nil {
		t.Fatalf("LoadDIMACS() error = nil, want error for unsupported problem type")
	}
}

func TestLoadDIMACS_MissingFile(t *testing.T) {
	solver := sat.NewSolver(sat.DefaultOptions)
	if _, err := LoadDIMACS(filepath.Join(t.TempDir(), "missing.cnf"), false, solver); err == nil {
		t.Fatalf("LoadDIMACS() error = nil, want error for missing file")
	}
}
