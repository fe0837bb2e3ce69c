package mapio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
)

// LoadScenarioFile reads a list of start/goal pairs, one per line, as
// "start_row start_col goal_row goal_col". Agent ids are assigned in file
// order starting at 0, matching spec.md §6 ("the core assigns agent ids
// in input order") and the line-oriented parsing style of
// original_source/src/Manager.cpp's InitializeScenario — simplified to
// the fields this spec actually needs (start, goal), dropping the
// movingai-benchmark-specific bucket/map-name/optimal-distance columns
// the original format carries.
//
// Blank lines and lines starting with '#' are skipped so generated
// scenario files can carry a header comment.
func LoadScenarioFile(path string) ([]core.Agent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapio: open scenario file: %w", err)
	}
	defer f.Close()
	return ParseScenario(f)
}

// ParseScenario parses the scenario format from an arbitrary reader.
func ParseScenario(r io.Reader) ([]core.Agent, error) {
	sc := bufio.NewScanner(r)
	var agents []core.Agent

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("mapio: scenario line %q: want 4 fields, got %d", line, len(fields))
		}
		vals := make([]int, 4)
		for i, s := range fields {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("mapio: scenario line %q: %w", line, err)
			}
			vals[i] = n
		}
		agents = append(agents, core.Agent{
			ID:    core.AgentID(len(agents)),
			Start: core.Cell{Row: vals[0], Col: vals[1]},
			Goal:  core.Cell{Row: vals[2], Col: vals[3]},
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mapio: read scenario: %w", err)
	}
	return agents, nil
}

// WriteScenarioFile writes agents back out in the format ParseScenario
// reads, used by tools/genscen to emit generated instances.
func WriteScenarioFile(w io.Writer, agents []core.Agent) error {
	bw := bufio.NewWriter(w)
	for _, a := range agents {
		fmt.Fprintf(bw, "%d %d %d %d\n", a.Start.Row, a.Start.Col, a.Goal.Row, a.Goal.Col)
	}
	return bw.Flush()
}
