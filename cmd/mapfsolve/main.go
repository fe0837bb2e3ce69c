// Command mapfsolve loads a grid map and a scenario file, runs the CBS
// solver, and reports the joint plan.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/mapf-grid-research/internal/algo"
	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
	"github.com/elektrokombinacija/mapf-grid-research/internal/mapio"
	"github.com/google/uuid"
)

func main() {
	mapPath := flag.String("map", "", "path to a map file (type/height/width/map header + grid)")
	scenPath := flag.String("scenario", "", "path to a scenario file (start/goal pairs, one per line)")
	timeout := flag.Duration("timeout", 0, "solver deadline; 0 means no deadline")
	printPaths := flag.Bool("print-paths", false, "print each agent's full path")
	flag.Parse()

	runID := uuid.New().String()[:8]
	logger := log.WithField("run", runID)

	if *mapPath == "" || *scenPath == "" {
		fmt.Fprintln(os.Stderr, "usage: mapfsolve -map <file> -scenario <file> [-timeout <duration>]")
		os.Exit(2)
	}

	g, err := mapio.LoadMapFile(*mapPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load map")
	}
	agents, err := mapio.LoadScenarioFile(*scenPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load scenario")
	}

	logger.WithFields(log.Fields{
		"width":  g.Width(),
		"height": g.Height(),
		"model":  g.Model(),
		"agents": len(agents),
	}).Info("starting solve")

	var deadline time.Time
	if *timeout > 0 {
		deadline = time.Now().Add(*timeout)
	}

	start := time.Now()
	plan, err := algo.Solve(g, agents, deadline)
	elapsed := time.Since(start)

	switch {
	case err == core.ErrUnsolvable:
		logger.WithField("elapsed", elapsed).Error("instance is unsolvable")
		os.Exit(1)
	case err == core.ErrTimeout:
		logger.WithField("elapsed", elapsed).Error("solver timed out")
		os.Exit(1)
	case err != nil:
		logger.WithError(err).WithField("elapsed", elapsed).Fatal("solve failed")
	}

	logger.WithFields(log.Fields{
		"elapsed": elapsed,
		"cost":    plan.SumOfCosts(),
	}).Info("solved")

	if *printPaths {
		for id := core.AgentID(0); int(id) < len(agents); id++ {
			fmt.Printf("agent %d:", id)
			for _, cell := range plan[id] {
				fmt.Printf(" (%d,%d)", cell.Row, cell.Col)
			}
			fmt.Println()
		}
	}
}
