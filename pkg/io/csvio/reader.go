package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

// ReaderOptions configures ReadAll.
type ReaderOptions struct {
	Delimiter rune // default ','
}

// ReadAll reads a trace CSV written by WriteAll. Columns are matched by header name.
func ReadAll(path string, opt ReaderOptions) ([]p.Step, error) {
	in, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	r := csv.NewReader(in)
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}
	hdr, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.TrimSpace(h)] = i
	}
	for _, want := range []string{"step", "sediment", "chemicals", "microbes"} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("missing column %q", want)
		}
	}
	var out []p.Step
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		s, err := parseRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, s)
	}
}

func parseRow(rec []string, idx map[string]int) (p.Step, error) {
	get := func(name string) string {
		if i, ok := idx[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	var s p.Step
	var err error
	if s.Index, err = strconv.Atoi(get("step")); err != nil {
		return s, err
	}
	s.Stage = get("stage")
	if e := get("efficiency"); e != "" {
		if s.Efficiency, err = strconv.Atoi(e); err != nil {
			return s, err
		}
	}
	if s.State.Sediment, err = strconv.ParseFloat(get("sediment"), 64); err != nil {
		return s, err
	}
	if s.State.Chemicals, err = strconv.ParseFloat(get("chemicals"), 64); err != nil {
		return s, err
	}
	if s.State.Microbes, err = strconv.ParseFloat(get("microbes"), 64); err != nil {
		return s, err
	}
	return s, nil
}
