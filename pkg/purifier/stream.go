package purifier

import "context"

// TraceSink consumes trace steps, typically writing them out for plotting.
type TraceSink interface {
	Write(Step) error
	Close() error
}

// ReplayTrace simulates the chain step by step and writes every snapshot to sink.
// The sink is closed on return; a close error is reported if nothing failed earlier.
func ReplayTrace(ctx context.Context, c *Chain, initial WaterState, sink TraceSink) (err error) {
	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()
	steps, err := SimulateSteps(c, initial)
	if err != nil {
		return err
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Write(s); err != nil {
			return err
		}
	}
	return nil
}
