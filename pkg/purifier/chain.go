package purifier

// Chain is an ordered sequence of stages. The zero value is an empty chain.
type Chain struct {
	stages []Stage
}

// NewChain returns a chain holding stages in order. It panics if any
// stage fails Check; use Append to handle that case as an error.
func NewChain(stages ...Stage) *Chain {
	c := &Chain{}
	for _, s := range stages {
		if err := c.Append(s); err != nil {
			panic(err)
		}
	}
	return c
}

// Append adds s as the new tail. A stage that fails Check is rejected
// and the chain is left unchanged.
func (c *Chain) Append(s Stage) error {
	if err := s.Check(); err != nil {
		return err
	}
	c.stages = append(c.stages, s)
	return nil
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Empty reports whether the chain has no stages.
func (c *Chain) Empty() bool { return len(c.stages) == 0 }

// Clear resets the chain to empty.
func (c *Chain) Clear() { c.stages = nil }

// Head returns the first stage, if any.
func (c *Chain) Head() (Stage, bool) {
	if c.Empty() {
		return Stage{}, false
	}
	return c.stages[0], true
}

// Tail returns the last stage, if any.
func (c *Chain) Tail() (Stage, bool) {
	if c.Empty() {
		return Stage{}, false
	}
	return c.stages[len(c.stages)-1], true
}

// Stages returns a copy of the stages in order.
func (c *Chain) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Run folds w through every stage. An empty chain returns w unchanged;
// use SimulateFinal to get ErrEmptyChain instead.
func (c *Chain) Run(w WaterState) WaterState {
	for _, s := range c.stages {
		w = s.Apply(w)
	}
	return w
}

// Describe returns each stage's parameters from head to tail.
func (c *Chain) Describe() []Record {
	out := make([]Record, 0, len(c.stages))
	for _, s := range c.stages {
		out = append(out, s.Parameters())
	}
	return out
}
