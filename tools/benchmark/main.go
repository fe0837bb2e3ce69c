// Command benchmark runs the CBS solver over a directory of generated
// map/scenario pairs and reports cost, timing and outcome as CSV,
// adapted from the teacher's tools/run_benchmarks: that tool shelled out
// to a CLI binary because it benchmarked several heterogeneous solvers;
// this one calls algo.Solve directly since there is exactly one solver
// in scope.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/mapf-grid-research/internal/algo"
	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
	"github.com/elektrokombinacija/mapf-grid-research/internal/mapio"
)

// result is one row of the benchmark CSV report.
type result struct {
	Instance  string
	Agents    int
	GridSize  string
	Outcome   string // "solved", "unsolvable", "timeout", "error"
	Cost      int
	RuntimeMs float64
}

func main() {
	dir := flag.String("dir", "testdata", "directory of .map/.scen pairs to benchmark")
	timeout := flag.Duration("timeout", 10*time.Second, "per-instance solver deadline")
	outCSV := flag.String("csv", "", "path to write the CSV report (default: stdout summary only)")
	flag.Parse()

	instances, err := discoverInstances(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "benchmark: %v\n", err)
		os.Exit(1)
	}
	if len(instances) == 0 {
		fmt.Fprintf(os.Stderr, "benchmark: no .map/.scen pairs found in %s\n", *dir)
		os.Exit(1)
	}

	var results []result
	for _, name := range instances {
		results = append(results, runInstance(*dir, name, *timeout))
	}

	if *outCSV != "" {
		if err := writeCSV(results, *outCSV); err != nil {
			fmt.Fprintf(os.Stderr, "benchmark: write CSV: %v\n", err)
			os.Exit(1)
		}
	}

	printSummary(results)
}

// discoverInstances returns the base names (without extension) of every
// .map file in dir that has a matching .scen file.
func discoverInstances(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".map") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".map")
		if _, err := os.Stat(filepath.Join(dir, base+".scen")); err == nil {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}

func runInstance(dir, name string, timeout time.Duration) result {
	r := result{Instance: name}

	g, err := mapio.LoadMapFile(filepath.Join(dir, name+".map"))
	if err != nil {
		r.Outcome = "error"
		return r
	}
	agents, err := mapio.LoadScenarioFile(filepath.Join(dir, name+".scen"))
	if err != nil {
		r.Outcome = "error"
		return r
	}
	r.Agents = len(agents)
	r.GridSize = fmt.Sprintf("%dx%d", g.Width(), g.Height())

	start := time.Now()
	plan, err := algo.Solve(g, agents, time.Now().Add(timeout))
	r.RuntimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	switch {
	case err == core.ErrUnsolvable:
		r.Outcome = "unsolvable"
	case err == core.ErrTimeout:
		r.Outcome = "timeout"
	case err != nil:
		r.Outcome = "error"
	default:
		r.Outcome = "solved"
		r.Cost = plan.SumOfCosts()
	}
	return r
}

func writeCSV(results []result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"instance", "agents", "grid_size", "outcome", "cost", "runtime_ms", "go_version", "os", "arch"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Instance,
			fmt.Sprintf("%d", r.Agents),
			r.GridSize,
			r.Outcome,
			fmt.Sprintf("%d", r.Cost),
			fmt.Sprintf("%.3f", r.RuntimeMs),
			runtime.Version(),
			runtime.GOOS,
			runtime.GOARCH,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(results []result) {
	solved, unsolvable, timedOut, errored := 0, 0, 0, 0
	var totalMs float64
	for _, r := range results {
		totalMs += r.RuntimeMs
		switch r.Outcome {
		case "solved":
			solved++
		case "unsolvable":
			unsolvable++
		case "timeout":
			timedOut++
		default:
			errored++
		}
	}

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-20s %8s %8s %10s %10s\n", "instance", "agents", "grid", "outcome", "cost")
	fmt.Println(strings.Repeat("-", 64))
	for _, r := range results {
		fmt.Printf("%-20s %8d %8s %10s %10d\n", r.Instance, r.Agents, r.GridSize, r.Outcome, r.Cost)
	}
	fmt.Println(strings.Repeat("-", 64))
	fmt.Printf("solved=%d unsolvable=%d timeout=%d error=%d total_runtime_ms=%.1f\n",
		solved, unsolvable, timedOut, errored, totalMs)
}
