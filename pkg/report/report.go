// Package report renders simulation results and chain listings as text and
// JSON for the presentation layer.
package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	p "github.com/wdm0006/purifier/pkg/purifier"
	"github.com/wdm0006/purifier/pkg/validate"
)

// NoFilters is shown instead of a listing when the chain is empty.
const NoFilters = "No filters added."

// FinalText renders the final water parameters.
func FinalText(w p.WaterState) string {
	return fmt.Sprintf("Final water parameters:\nSediment: %g\nChemicals: %g\nMicrobes: %g", w.Sediment, w.Chemicals, w.Microbes)
}

// FiltersText lists the chain one stage per line.
func FiltersText(records []p.Record) string {
	if len(records) == 0 {
		return NoFilters
	}
	lines := make([]string, len(records))
	for i, r := range records {
		name := r.Type
		if k, err := p.ParseKind(r.Type); err == nil {
			name = k.DisplayName()
		}
		lines[i] = fmt.Sprintf("Type: %s, Efficiency: %d", name, r.Efficiency)
	}
	return strings.Join(lines, "\n")
}

// CatalogText describes every available filter.
func CatalogText() string {
	var b strings.Builder
	b.WriteString("Available filters:\n\n")
	for i, k := range p.Kinds {
		fmt.Fprintf(&b, "%d. %s filter (%s): %s. Efficiency: %d-%d, default %d.\n",
			i+1, k.DisplayName(), k, k.Description(), validate.Efficiency.Min, validate.Efficiency.Max, k.DefaultEfficiency())
	}
	return b.String()
}

// ContaminantStats summarizes how one field changed along a trace.
type ContaminantStats struct {
	Name       string  `json:"name"`
	Initial    float64 `json:"initial"`
	Final      float64 `json:"final"`
	Removed    float64 `json:"removed"`
	RemovedPct float64 `json:"removed_pct"`
	MeanDrop   float64 `json:"mean_drop"`
	MaxDrop    float64 `json:"max_drop"`
}

// Summary is the trace report.
type Summary struct {
	Stages       int                `json:"stages"`
	Contaminants []ContaminantStats `json:"contaminants"`
}

// Summarize computes per-contaminant statistics over a trace.
func Summarize(steps []p.Step) Summary {
	s := Summary{Stages: max(0, len(steps)-1)}
	series := []struct {
		name string
		get  func(p.WaterState) float64
	}{
		{"sediment", func(w p.WaterState) float64 { return w.Sediment }},
		{"chemicals", func(w p.WaterState) float64 { return w.Chemicals }},
		{"microbes", func(w p.WaterState) float64 { return w.Microbes }},
	}
	if len(steps) == 0 {
		return s
	}
	for _, sr := range series {
		levels := make([]float64, len(steps))
		for i, st := range steps {
			levels[i] = sr.get(st.State)
		}
		cs := ContaminantStats{Name: sr.name, Initial: levels[0], Final: levels[len(levels)-1]}
		cs.Removed = cs.Initial - cs.Final
		if cs.Initial > 0 {
			cs.RemovedPct = 100 * cs.Removed / cs.Initial
		}
		if len(levels) > 1 {
			drops := make([]float64, len(levels)-1)
			floats.SubTo(drops, levels[:len(levels)-1], levels[1:])
			cs.MeanDrop = stat.Mean(drops, nil)
			cs.MaxDrop = floats.Max(drops)
		}
		s.Contaminants = append(s.Contaminants, cs)
	}
	return s
}

// Text renders the summary.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trace summary (%d stages)\n", s.Stages)
	for _, c := range s.Contaminants {
		fmt.Fprintf(&b, "- %s: %.6g -> %.6g removed=%.6g (%.1f%%) mean_drop=%.6g max_drop=%.6g\n",
			c.Name, c.Initial, c.Final, c.Removed, c.RemovedPct, c.MeanDrop, c.MaxDrop)
	}
	return b.String()
}

// TraceText renders the plot series as a table with "Stage n" labels.
func TraceText(steps []p.Step) string {
	var b strings.Builder
	b.WriteString("stage\tfilter\tsediment\tchemicals\tmicrobes\n")
	for _, st := range steps {
		filter := "-"
		if st.Stage != "" {
			filter = fmt.Sprintf("%s(%d)", st.Stage, st.Efficiency)
		}
		fmt.Fprintf(&b, "%s\t%s\t%g\t%g\t%g\n", st.Label(), filter, st.State.Sediment, st.State.Chemicals, st.State.Microbes)
	}
	return b.String()
}
