package mapio

import (
	"strings"
	"testing"

	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
)

func TestParseScenarioAssignsIDsInFileOrder(t *testing.T) {
	text := "# generated\n0 0 0 4\n\n4 0 4 4\n"

	agents, err := ParseScenario(strings.NewReader(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("len(agents) = %d, want 2", len(agents))
	}
	if agents[0].ID != 0 || agents[1].ID != 1 {
		t.Fatalf("ids = %d,%d want 0,1", agents[0].ID, agents[1].ID)
	}
	if agents[0].Start != (core.Cell{Row: 0, Col: 0}) || agents[0].Goal != (core.Cell{Row: 0, Col: 4}) {
		t.Fatalf("agent 0 = %+v, unexpected", agents[0])
	}
}

func TestParseScenarioRejectsMalformedLine(t *testing.T) {
	if _, err := ParseScenario(strings.NewReader("0 0 0\n")); err == nil {
		t.Fatal("expected an error for a line missing a field")
	}
}

func TestWriteScenarioFileRoundTrips(t *testing.T) {
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 1, Col: 1}},
		{ID: 1, Start: core.Cell{Row: 2, Col: 2}, Goal: core.Cell{Row: 3, Col: 3}},
	}

	var buf strings.Builder
	if err := WriteScenarioFile(&buf, agents); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := ParseScenario(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(agents) {
		t.Fatalf("len = %d, want %d", len(got), len(agents))
	}
	for i := range agents {
		if got[i].Start != agents[i].Start || got[i].Goal != agents[i].Goal {
			t.Fatalf("agent %d round-trip mismatch: got %+v, want %+v", i, got[i], agents[i])
		}
	}
}
