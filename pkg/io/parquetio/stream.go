package parquetio

import (
	"fmt"
	"os"

	parquet "github.com/segmentio/parquet-go"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

type traceRow struct {
	Step       int64   `parquet:"step"`
	Label      string  `parquet:"label"`
	Stage      string  `parquet:"stage"`
	Efficiency int64   `parquet:"efficiency"`
	Sediment   float64 `parquet:"sediment"`
	Chemicals  float64 `parquet:"chemicals"`
	Microbes   float64 `parquet:"microbes"`
}

func toRow(s p.Step) traceRow {
	return traceRow{
		Step:       int64(s.Index),
		Label:      s.Label(),
		Stage:      s.Stage,
		Efficiency: int64(s.Efficiency),
		Sediment:   s.State.Sediment,
		Chemicals:  s.State.Chemicals,
		Microbes:   s.State.Microbes,
	}
}

func (r traceRow) step() p.Step {
	return p.Step{
		Index:      int(r.Step),
		Stage:      r.Stage,
		Efficiency: int(r.Efficiency),
		State:      p.WaterState{Sediment: r.Sediment, Chemicals: r.Chemicals, Microbes: r.Microbes},
	}
}

// StreamWriter writes trace steps to a Parquet file incrementally.
type StreamWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[traceRow]
}

// NewStreamWriter creates path and returns a writer for trace steps.
func NewStreamWriter(path string) (*StreamWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{file: f, writer: parquet.NewGenericWriter[traceRow](f)}, nil
}

func (s *StreamWriter) Write(step p.Step) error {
	if _, err := s.writer.Write([]traceRow{toRow(step)}); err != nil {
		return fmt.Errorf("parquet stream write: %w", err)
	}
	return nil
}

func (s *StreamWriter) Close() error {
	if err := s.writer.Close(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
