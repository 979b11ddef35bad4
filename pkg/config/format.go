package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	iox "github.com/wdm0006/purifier/pkg/io/ioutils"
	p "github.com/wdm0006/purifier/pkg/purifier"
)

// Format selects the on-disk encoding of a chain file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return "json"
}

// FormatFor picks the format from the file extension, ignoring a trailing
// ".gz". Unknown extensions use JSON.
func FormatFor(path string) Format {
	switch iox.BaseExt(path) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

// fileRecord accepts both the canonical field names and the ones written by
// the original desktop tool. Efficiencies decode as floats so that every
// format rejects a fractional value the same way; yaml.v3 would otherwise
// truncate 30.7 into an int field.
type fileRecord struct {
	Type             string   `json:"type" yaml:"type" toml:"type"`
	Efficiency       *float64 `json:"efficiency" yaml:"efficiency" toml:"efficiency"`
	LegacyType       string   `json:"Тип" yaml:"Тип" toml:"Тип"`
	LegacyEfficiency *float64 `json:"Эффективность" yaml:"Эффективность" toml:"Эффективность"`
}

func wholeNumber(f float64) (int, error) {
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v is not an integer", p.ErrInvalidEfficiency, f)
	}
	return int(f), nil
}

func (r fileRecord) record() (p.Record, error) {
	out := p.Record{Type: r.Type}
	if out.Type == "" {
		out.Type = r.LegacyType
	}
	eff := r.Efficiency
	if eff == nil {
		eff = r.LegacyEfficiency
	}
	if eff == nil {
		return out, fmt.Errorf("%w: missing efficiency", p.ErrInvalidEfficiency)
	}
	var err error
	out.Efficiency, err = wholeNumber(*eff)
	return out, err
}

// TOML has no top-level arrays.
type tomlFile struct {
	Filters []fileRecord `toml:"filters"`
}

type tomlOut struct {
	Filters []p.Record `toml:"filters"`
}

// Marshal encodes records in the given format.
func Marshal(f Format, records []p.Record) ([]byte, error) {
	if records == nil {
		records = []p.Record{}
	}
	switch f {
	case FormatYAML:
		return yaml.Marshal(records)
	case FormatTOML:
		return toml.Marshal(tomlOut{Filters: records})
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrMalformed is wrapped by errors for unparseable chain files.
var ErrMalformed = errors.New("malformed configuration")

// Unmarshal decodes records in the given format. Structural problems wrap
// ErrMalformed; field-level problems wrap the purifier sentinels.
func Unmarshal(f Format, b []byte) ([]p.Record, error) {
	var raw []fileRecord
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatTOML:
		var doc tomlFile
		if err := toml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw = doc.Filters
	default:
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	out := make([]p.Record, 0, len(raw))
	for i, r := range raw {
		rec, err := r.record()
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
