package purifier

import "fmt"

// Ceiling is the contamination level of untreated water.
const Ceiling = 100.0

// WaterState holds the three contamination levels tracked through a chain.
type WaterState struct {
	Sediment  float64 `json:"sediment"`
	Chemicals float64 `json:"chemicals"`
	Microbes  float64 `json:"microbes"`
}

// NewWaterState returns untreated water (every level at Ceiling).
func NewWaterState() WaterState {
	return WaterState{Sediment: Ceiling, Chemicals: Ceiling, Microbes: Ceiling}
}

// Level returns the field a stage of kind k targets.
func (w WaterState) Level(k Kind) float64 {
	switch k {
	case KindSediment:
		return w.Sediment
	case KindCarbon:
		return w.Chemicals
	case KindReverseOsmosis:
		return w.Microbes
	}
	return 0
}

func (w WaterState) String() string {
	return fmt.Sprintf("sediment=%g chemicals=%g microbes=%g", w.Sediment, w.Chemicals, w.Microbes)
}

func reduce(v float64, by int) float64 {
	return max(0, v-float64(by))
}
