package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

// Header is the column layout of a trace CSV.
var Header = []string{"step", "label", "stage", "efficiency", "sediment", "chemicals", "microbes"}

// WriterOptions configures WriteAll and NewStreamWriter.
type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a trace to a CSV file with a header row.
func WriteAll(path string, steps []p.Step, opt WriterOptions) error {
	sw, err := NewStreamWriter(path, opt)
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

func formatRow(s p.Step) []string {
	eff := ""
	if s.Stage != "" {
		eff = strconv.Itoa(s.Efficiency)
	}
	return []string{
		strconv.Itoa(s.Index),
		s.Label(),
		s.Stage,
		eff,
		strconv.FormatFloat(s.State.Sediment, 'g', -1, 64),
		strconv.FormatFloat(s.State.Chemicals, 'g', -1, 64),
		strconv.FormatFloat(s.State.Microbes, 'g', -1, 64),
	}
}

func newWriter(w io.Writer, opt WriterOptions) *csv.Writer {
	cw := csv.NewWriter(w)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}
	return cw
}
