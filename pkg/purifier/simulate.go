package purifier

import "fmt"

// Step is one trace snapshot labeled with the stage that produced it.
// Index 0 is the untreated input and has an empty Stage.
type Step struct {
	Index      int        `json:"step"`
	Stage      string     `json:"stage,omitempty"`
	Efficiency int        `json:"efficiency,omitempty"`
	State      WaterState `json:"state"`
}

// Label returns "Stage <n>", the axis label used for plotting.
func (s Step) Label() string { return fmt.Sprintf("Stage %d", s.Index) }

// SimulateFinal runs initial through the whole chain.
func SimulateFinal(c *Chain, initial WaterState) (WaterState, error) {
	if c == nil || c.Empty() {
		return WaterState{}, ErrEmptyChain
	}
	return c.Run(initial), nil
}

// SimulateTrace returns initial followed by the running state after each stage.
// Each snapshot applies only that stage's own transformation to the previous
// snapshot, so the result always has Len()+1 entries and ends at SimulateFinal.
func SimulateTrace(c *Chain, initial WaterState) ([]WaterState, error) {
	if c == nil || c.Empty() {
		return nil, ErrEmptyChain
	}
	out := make([]WaterState, 0, c.Len()+1)
	cur := initial
	out = append(out, cur)
	for _, s := range c.stages {
		cur = s.Apply(cur)
		out = append(out, cur)
	}
	return out, nil
}

// SimulateSteps is SimulateTrace with each snapshot labeled by its stage.
func SimulateSteps(c *Chain, initial WaterState) ([]Step, error) {
	states, err := SimulateTrace(c, initial)
	if err != nil {
		return nil, err
	}
	steps := make([]Step, len(states))
	for i, st := range states {
		steps[i] = Step{Index: i, State: st}
		if i > 0 {
			s := c.stages[i-1]
			steps[i].Stage = s.Kind.String()
			steps[i].Efficiency = s.Efficiency
		}
	}
	return steps, nil
}
