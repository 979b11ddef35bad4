package validate

import (
	"fmt"
	"strconv"
	"strings"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

// Range is an inclusive integer bound.
type Range struct {
	Min int
	Max int
}

// Efficiency is the accepted range for stage efficiencies.
var Efficiency = Range{Min: 0, Max: 100}

// Check wraps ErrInvalidEfficiency when v is outside the range.
func (r Range) Check(v int) error {
	if v < r.Min || v > r.Max {
		return fmt.Errorf("%w: got %d", p.ErrInvalidEfficiency, v)
	}
	return nil
}

// ParseEfficiency parses raw user text into a checked efficiency.
func ParseEfficiency(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", p.ErrInvalidEfficiency, s)
	}
	if err := Efficiency.Check(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Stage validates raw kind and efficiency input and constructs the stage.
// Nothing is constructed when either check fails.
func Stage(kind string, efficiency string) (p.Stage, error) {
	k, err := p.ParseKind(kind)
	if err != nil {
		return p.Stage{}, err
	}
	e, err := ParseEfficiency(efficiency)
	if err != nil {
		return p.Stage{}, err
	}
	return p.NewStage(k, e)
}

// Record validates a persisted descriptor and constructs the stage.
func Record(r p.Record) (p.Stage, error) {
	k, err := p.ParseKind(r.Type)
	if err != nil {
		return p.Stage{}, err
	}
	if err := Efficiency.Check(r.Efficiency); err != nil {
		return p.Stage{}, err
	}
	return p.NewStage(k, r.Efficiency)
}
