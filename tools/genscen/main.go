// Command genscen generates random grid map and scenario files for
// manual stress testing of mapfsolve, adapted from the teacher's
// tools/gen_instances: deterministic generation from a seed, written to
// an output directory instead of stdout.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
	"github.com/elektrokombinacija/mapf-grid-research/internal/mapio"
)

func main() {
	seed := flag.Int64("seed", 42, "random seed for deterministic generation")
	width := flag.Int("width", 16, "grid width")
	height := flag.Int("height", 16, "grid height")
	agents := flag.Int("agents", 8, "number of agents")
	obstacleDensity := flag.Float64("obstacles", 0.1, "fraction of cells that are obstacles")
	octile := flag.Bool("octile", false, "use 8-connected octile movement instead of 4-connected manhattan")
	outputDir := flag.String("output", "testdata", "output directory for the generated .map/.scen pair")
	name := flag.String("name", "instance", "base filename for the generated pair")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "genscen: create output directory: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	model := core.Manhattan4
	if *octile {
		model = core.Octile8
	}

	obstacle := make([]bool, *width**height)
	for i := range obstacle {
		obstacle[i] = rng.Float64() < *obstacleDensity
	}
	g := core.NewGrid(*width, *height, obstacle, model)

	scenario := generateScenario(rng, g, *agents)

	mapPath := filepath.Join(*outputDir, *name+".map")
	scenPath := filepath.Join(*outputDir, *name+".scen")

	if err := writeMap(mapPath, g); err != nil {
		fmt.Fprintf(os.Stderr, "genscen: %v\n", err)
		os.Exit(1)
	}
	if err := writeScenario(scenPath, scenario); err != nil {
		fmt.Fprintf(os.Stderr, "genscen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s (%d agents, %dx%d, %s)\n", mapPath, scenPath, len(scenario), *width, *height, model)
}

// generateScenario picks random passable, distinct start/goal cells for
// each agent. It resamples a bounded number of times per cell, since a
// dense obstacle field can run short of passable cells; once a cell cannot
// be found, generation stops and fewer than n agents are returned.
func generateScenario(rng *rand.Rand, g *core.Grid, n int) []core.Agent {
	used := make(map[core.Cell]bool)
	randomPassableCell := func() (core.Cell, bool) {
		for attempt := 0; attempt < 1000; attempt++ {
			r, c := rng.Intn(g.Height()), rng.Intn(g.Width())
			cell := core.Cell{Row: r, Col: c}
			if g.Passable(r, c) && !used[cell] {
				return cell, true
			}
		}
		return core.Cell{}, false
	}

	var agents []core.Agent
	for i := 0; i < n; i++ {
		start, ok := randomPassableCell()
		if !ok {
			break
		}
		used[start] = true
		goal, ok := randomPassableCell()
		if !ok {
			break
		}
		used[goal] = true
		agents = append(agents, core.Agent{ID: core.AgentID(i), Start: start, Goal: goal})
	}
	return agents
}

func writeMap(path string, g *core.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	defer f.Close()
	return mapio.WriteMapFile(f, g)
}

func writeScenario(path string, agents []core.Agent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scenario file: %w", err)
	}
	defer f.Close()
	return mapio.WriteScenarioFile(f, agents)
}
