// Package mapio implements the two file-based collaborators spec.md §6
// lists but leaves unspecified: a grid map loader and a scenario loader.
// Neither loader touches internal/core's search types beyond producing
// the values core.NewGrid and core.Agent expect — the core itself never
// references the file system.
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

// LoadMapFile reads a grid map in the header+grid text format spec.md
// §6 describes (mirroring original_source/src/Map.cpp's InitializeMap):
//
//	type <manhattan|octile>
//	height <H>
//	width <W>
//	map
//	<H rows of W characters, '.' passable, anything else an obstacle>
func LoadMapFile(path string) (*core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapio: open map file: %w", err)
	}
	defer f.Close()
	return ParseMap(f)
}

// ParseMap parses the map format from an arbitrary reader.
func ParseMap(r io.Reader) (*core.Grid, error) {
	sc := bufio.NewScanner(r)

	model, err := readLabeledMovement(sc, "type")
	if err != nil {
		return nil, err
	}
	height, err := readLabeledInt(sc, "height")
	if err != nil {
		return nil, err
	}
	width, err := readLabeledInt(sc, "width")
	if err != nil {
		return nil, err
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("mapio: expected 'map' line, got EOF")
	}
	if strings.TrimSpace(sc.Text()) != "map" {
		return nil, fmt.Errorf("mapio: expected 'map' line, got %q", sc.Text())
	}

	obstacle := make([]bool, width*height)
	for row := 0; row < height; row++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("mapio: expected %d map rows, got %d", height, row)
		}
		line := sc.Text()
		if len(line) != width {
			return nil, fmt.Errorf("mapio: row %d has width %d, want %d", row, len(line), width)
		}
		for col, ch := range line {
			obstacle[row*width+col] = ch != '.'
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mapio: read map: %w", err)
	}

	return core.NewGrid(width, height, obstacle, model), nil
}

func readLabeledMovement(sc *bufio.Scanner, label string) (core.MovementModel, error) {
	if !sc.Scan() {
		return 0, fmt.Errorf("mapio: expected %q line, got EOF", label)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 || fields[0] != label {
		return 0, fmt.Errorf("mapio: expected %q line, got %q", label, sc.Text())
	}
	switch fields[1] {
	case "manhattan":
		return core.Manhattan4, nil
	case "octile":
		return core.Octile8, nil
	default:
		return 0, fmt.Errorf("mapio: unknown movement type %q", fields[1])
	}
}

func readLabeledInt(sc *bufio.Scanner, label string) (int, error) {
	if !sc.Scan() {
		return 0, fmt.Errorf("mapio: expected %q line, got EOF", label)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 || fields[0] != label {
		return 0, fmt.Errorf("mapio: expected %q line, got %q", label, sc.Text())
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("mapio: invalid %q value %q", label, fields[1])
	}
	return n, nil
}

// WriteMapFile writes g back out in the same format LoadMapFile reads,
// used by tools/genscen to emit generated instances.
func WriteMapFile(w io.Writer, g *core.Grid) error {
	modelLabel := "manhattan"
	if g.Model() == core.Octile8 {
		modelLabel = "octile"
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "type %s\n", modelLabel)
	fmt.Fprintf(bw, "height %d\n", g.Height())
	fmt.Fprintf(bw, "width %d\n", g.Width())
	fmt.Fprintln(bw, "map")
	for r := 0; r < g.Height(); r++ {
		row := make([]byte, g.Width())
		for c := 0; c < g.Width(); c++ {
			if g.IsObstacle(r, c) {
				row[c] = '@'
			} else {
				row[c] = '.'
			}
		}
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
