package purifier_test

import (
	"errors"
	"testing"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

func TestStageApplyClampsAtZero(t *testing.T) {
	for _, k := range p.Kinds {
		for e := 0; e <= 100; e += 5 {
			for v := 0; v <= 100; v += 10 {
				w := p.WaterState{Sediment: float64(v), Chemicals: float64(v), Microbes: float64(v)}
				out := p.Stage{Kind: k, Efficiency: e}.Apply(w)
				want := float64(max(0, v-e))
				if got := out.Level(k); got != want {
					t.Fatalf("%s(%d) on %d: got %g want %g", k, e, v, got, want)
				}
				if out.Sediment < 0 || out.Chemicals < 0 || out.Microbes < 0 {
					t.Fatalf("negative level %v", out)
				}
			}
		}
	}
}

func TestStageTouchesOnlyItsField(t *testing.T) {
	w := p.NewWaterState()
	cases := []struct {
		stage p.Stage
		want  p.WaterState
	}{
		{p.Stage{Kind: p.KindSediment, Efficiency: 40}, p.WaterState{Sediment: 60, Chemicals: 100, Microbes: 100}},
		{p.Stage{Kind: p.KindCarbon, Efficiency: 40}, p.WaterState{Sediment: 100, Chemicals: 60, Microbes: 100}},
		{p.Stage{Kind: p.KindReverseOsmosis, Efficiency: 40}, p.WaterState{Sediment: 100, Chemicals: 100, Microbes: 60}},
	}
	for _, c := range cases {
		if got := c.stage.Apply(w); got != c.want {
			t.Fatalf("%s: got %v want %v", c.stage, got, c.want)
		}
	}
	if w != p.NewWaterState() {
		t.Fatalf("input mutated: %v", w)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]p.Kind{
		"sediment":        p.KindSediment,
		" Carbon ":        p.KindCarbon,
		"reverse_osmosis": p.KindReverseOsmosis,
		"Reverse osmosis": p.KindReverseOsmosis,
		"Седиментный":     p.KindSediment,
		"Угольный":        p.KindCarbon,
		"Обратный осмос":  p.KindReverseOsmosis,
	}
	for in, want := range cases {
		got, err := p.ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := p.ParseKind("Unknown"); !errors.Is(err, p.ErrUnknownStageKind) {
		t.Fatalf("expected ErrUnknownStageKind, got %v", err)
	}
}

func TestNewStageRejectsInvalidKind(t *testing.T) {
	if _, err := p.NewStage(p.KindInvalid, 10); !errors.Is(err, p.ErrUnknownStageKind) {
		t.Fatalf("expected ErrUnknownStageKind, got %v", err)
	}
	s, err := p.NewStage(p.KindCarbon, 150)
	if err != nil {
		t.Fatal(err)
	}
	if s.Efficiency != 150 {
		t.Fatalf("construction must not validate efficiency, got %d", s.Efficiency)
	}
}

func TestParametersRoundTripLabel(t *testing.T) {
	for _, k := range p.Kinds {
		rec := p.Stage{Kind: k, Efficiency: k.DefaultEfficiency()}.Parameters()
		back, err := p.ParseKind(rec.Type)
		if err != nil || back != k {
			t.Fatalf("label %q did not parse back to %v", rec.Type, k)
		}
	}
}
