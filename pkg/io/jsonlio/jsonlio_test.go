package jsonlio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

func TestReplayToJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	c := p.NewChain(p.Stage{Kind: p.KindSediment, Efficiency: 50}, p.Stage{Kind: p.KindCarbon, Efficiency: 0})
	sw, err := NewStreamWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.ReplayTrace(context.Background(), c, p.NewWaterState(), sw); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != `{"step":0,"label":"Stage 0","sediment":100,"chemicals":100,"microbes":100}` {
		t.Fatalf("line 0: %s", lines[0])
	}
	if !strings.Contains(lines[2], `"efficiency":0`) {
		t.Fatalf("zero efficiency dropped: %s", lines[2])
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl.gz")
	c := p.NewChain(p.Stage{Kind: p.KindReverseOsmosis, Efficiency: 90}, p.Stage{Kind: p.KindSediment, Efficiency: 100})
	steps, err := p.SimulateSteps(c, p.NewWaterState())
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteAll(path, steps); err != nil {
		t.Fatal(err)
	}
	back, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(steps) {
		t.Fatalf("got %d steps", len(back))
	}
	for i := range steps {
		if back[i] != steps[i] {
			t.Fatalf("step %d: got %+v want %+v", i, back[i], steps[i])
		}
	}
}
