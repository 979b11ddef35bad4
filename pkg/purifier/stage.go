package purifier

import (
	"fmt"
	"strings"
)

// Kind enumerates the supported filter stages.
type Kind int

const (
	KindInvalid Kind = iota
	KindSediment
	KindCarbon
	KindReverseOsmosis
)

// Kinds lists every valid kind in catalog order.
var Kinds = []Kind{KindSediment, KindCarbon, KindReverseOsmosis}

// String returns the persisted label of the kind.
func (k Kind) String() string {
	switch k {
	case KindSediment:
		return "sediment"
	case KindCarbon:
		return "carbon"
	case KindReverseOsmosis:
		return "reverse_osmosis"
	}
	return "invalid"
}

// DisplayName is the human readable label.
func (k Kind) DisplayName() string {
	switch k {
	case KindSediment:
		return "Sediment"
	case KindCarbon:
		return "Carbon"
	case KindReverseOsmosis:
		return "Reverse osmosis"
	}
	return "Invalid"
}

// Description says what the stage removes.
func (k Kind) Description() string {
	switch k {
	case KindSediment:
		return "removes large particles"
	case KindCarbon:
		return "removes odours and chemicals"
	case KindReverseOsmosis:
		return "removes fine particles and microorganisms"
	}
	return ""
}

// DefaultEfficiency is used when a stage is added without an explicit efficiency.
func (k Kind) DefaultEfficiency() int {
	switch k {
	case KindSediment:
		return 50
	case KindCarbon:
		return 30
	case KindReverseOsmosis:
		return 90
	}
	return 0
}

// labels maps every accepted spelling (lower-cased) to a kind. Legacy labels
// come from configuration files written by the original desktop tool.
var labels = map[string]Kind{
	"sediment":        KindSediment,
	"carbon":          KindCarbon,
	"reverse_osmosis": KindReverseOsmosis,
	"reverse osmosis": KindReverseOsmosis,
	"reverseosmosis":  KindReverseOsmosis,
	"седиментный":     KindSediment,
	"угольный":        KindCarbon,
	"обратный осмос":  KindReverseOsmosis,
}

// ParseKind resolves a stage label. Unknown labels wrap ErrUnknownStageKind.
func ParseKind(label string) (Kind, error) {
	if k, ok := labels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return k, nil
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownStageKind, label)
}

// Record is the read-only descriptor of a stage. It is shared by display,
// encoding and decoding.
type Record struct {
	Type       string `json:"type" yaml:"type" toml:"type"`
	Efficiency int    `json:"efficiency" yaml:"efficiency" toml:"efficiency"`
}

// Stage is one filter in a chain. Construction never validates Efficiency;
// callers range-check input first.
type Stage struct {
	Kind       Kind
	Efficiency int
}

// NewStage constructs a stage for a known kind.
func NewStage(k Kind, efficiency int) (Stage, error) {
	if !k.Valid() {
		return Stage{}, fmt.Errorf("%w: %d", ErrUnknownStageKind, int(k))
	}
	return Stage{Kind: k, Efficiency: efficiency}, nil
}

// Valid reports whether k names one of the known filter kinds.
func (k Kind) Valid() bool { return k > KindInvalid && k <= KindReverseOsmosis }

// Check returns an error unless s has a known kind and an efficiency in
// [0, 100]. Chains only hold stages that pass Check.
func (s Stage) Check() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStageKind, int(s.Kind))
	}
	if s.Efficiency < 0 || s.Efficiency > int(Ceiling) {
		return fmt.Errorf("%w: %d", ErrInvalidEfficiency, s.Efficiency)
	}
	return nil
}

// Apply reduces the targeted field by the stage efficiency, floored at 0.
// Only this stage's transformation is applied.
func (s Stage) Apply(w WaterState) WaterState {
	switch s.Kind {
	case KindSediment:
		w.Sediment = reduce(w.Sediment, s.Efficiency)
	case KindCarbon:
		w.Chemicals = reduce(w.Chemicals, s.Efficiency)
	case KindReverseOsmosis:
		w.Microbes = reduce(w.Microbes, s.Efficiency)
	}
	return w
}

// Parameters returns the stage descriptor.
func (s Stage) Parameters() Record {
	return Record{Type: s.Kind.String(), Efficiency: s.Efficiency}
}

func (s Stage) String() string {
	return fmt.Sprintf("%s(%d)", s.Kind, s.Efficiency)
}
