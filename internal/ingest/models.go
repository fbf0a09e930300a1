package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadModels reads a fixture file of expected models: one model per line,
// each a whitespace-separated list of signed integers terminated by 0
// (DIMACS model-line convention), one line per expected satisfying
// assignment. Grounded on the teacher's internal/dimacs/models.go, for
// checking a solved model against a recorded one.
func ReadModels(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var models [][]bool
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}

		fields := strings.Fields(line)
		model := make([]bool, 0, len(fields))
		for _, f := range fields {
			l, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("error parsing literal %q: %w", f, err)
			}
			if l == 0 {
				continue
			}
			model = append(model, l > 0)
		}
		models = append(models, model)
	}
	return models, scanner.Err()
}
