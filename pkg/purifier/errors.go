package purifier

import "errors"

var (
	// ErrInvalidEfficiency is returned for efficiency input outside [0,100] or non-numeric.
	ErrInvalidEfficiency = errors.New("efficiency must be an integer in the range 0-100")
	// ErrUnknownStageKind is returned for a stage label that names no filter.
	ErrUnknownStageKind = errors.New("unknown filter type")
	// ErrEmptyChain is returned when simulating a chain with no stages.
	ErrEmptyChain = errors.New("no filters added")
)
