package jsonlio

import (
	"encoding/json"
	"io"

	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

// row is the flat JSON object written per trace step.
type row struct {
	Step       int     `json:"step"`
	Label      string  `json:"label"`
	Stage      string  `json:"stage,omitempty"`
	Efficiency *int    `json:"efficiency,omitempty"`
	Sediment   float64 `json:"sediment"`
	Chemicals  float64 `json:"chemicals"`
	Microbes   float64 `json:"microbes"`
}

func toRow(s p.Step) row {
	r := row{Step: s.Index, Label: s.Label(), Stage: s.Stage, Sediment: s.State.Sediment, Chemicals: s.State.Chemicals, Microbes: s.State.Microbes}
	if s.Stage != "" {
		e := s.Efficiency
		r.Efficiency = &e
	}
	return r
}

func (r row) step() p.Step {
	s := p.Step{Index: r.Step, Stage: r.Stage, State: p.WaterState{Sediment: r.Sediment, Chemicals: r.Chemicals, Microbes: r.Microbes}}
	if r.Efficiency != nil {
		s.Efficiency = *r.Efficiency
	}
	return s
}

// WriteAll writes one JSON object per line for each trace step.
func WriteAll(path string, steps []p.Step) error {
	sw, err := NewStreamWriter(path)
	if err != nil {
		return err
	}
	for _, s := range steps {
		if err := sw.Write(s); err != nil {
			_ = sw.Close()
			return err
		}
	}
	return sw.Close()
}

// StreamWriter writes trace steps as JSON lines.
type StreamWriter struct {
	out io.WriteCloser
	enc *json.Encoder
}

// NewStreamWriter creates path (gzip when it ends in .gz) for JSON lines.
func NewStreamWriter(path string) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{out: out, enc: json.NewEncoder(out)}, nil
}

func (s *StreamWriter) Write(step p.Step) error { return s.enc.Encode(toRow(step)) }
func (s *StreamWriter) Close() error            { return s.out.Close() }
