// Package session holds the filter chain owned by a running application and
// exposes the operations the presentation layer triggers.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wdm0006/purifier/pkg/config"
	p "github.com/wdm0006/purifier/pkg/purifier"
	"github.com/wdm0006/purifier/pkg/validate"
)

// Session owns one chain for its lifetime. It is not safe for concurrent use.
type Session struct {
	chain *p.Chain
	log   *zap.SugaredLogger
}

// New returns a session with an empty chain. A nil logger disables logging.
func New(log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{chain: p.NewChain(), log: log}
}

// AddFilter validates raw form input and appends the stage. On error the
// chain is unchanged.
func (s *Session) AddFilter(kind, efficiency string) (p.Stage, error) {
	st, err := validate.Stage(kind, efficiency)
	if err != nil {
		s.log.Debugw("rejected filter", "type", kind, "efficiency", efficiency, "error", err)
		return p.Stage{}, err
	}
	if err := s.append(st); err != nil {
		return p.Stage{}, err
	}
	return st, nil
}

// AddDefault appends a stage of the given kind with its default efficiency.
func (s *Session) AddDefault(kind string) (p.Stage, error) {
	k, err := p.ParseKind(kind)
	if err != nil {
		return p.Stage{}, err
	}
	st, err := p.NewStage(k, k.DefaultEfficiency())
	if err != nil {
		return p.Stage{}, err
	}
	if err := s.append(st); err != nil {
		return p.Stage{}, err
	}
	return st, nil
}

func (s *Session) append(st p.Stage) error {
	if err := s.chain.Append(st); err != nil {
		return err
	}
	s.log.Infow("added filter", "type", st.Kind.String(), "efficiency", st.Efficiency, "stages", s.chain.Len())
	return nil
}

func (s *Session) Empty() bool { return s.chain.Empty() }
func (s *Session) Len() int    { return s.chain.Len() }

// Chain returns a copy of the current chain.
func (s *Session) Chain() *p.Chain { return p.NewChain(s.chain.Stages()...) }

// Describe lists the stage descriptors in order; empty when no filters were added.
func (s *Session) Describe() []p.Record { return s.chain.Describe() }

// Reset empties the chain.
func (s *Session) Reset() {
	s.chain.Clear()
	s.log.Infow("chain cleared")
}

// Run simulates fresh, untreated water through the chain.
func (s *Session) Run() (p.WaterState, error) {
	if s.chain.Empty() {
		return p.WaterState{}, p.ErrEmptyChain
	}
	out, err := p.SimulateFinal(s.chain, p.NewWaterState())
	if err != nil {
		return p.WaterState{}, err
	}
	s.log.Infow("simulation finished", "stages", s.chain.Len(), "result", out.String())
	return out, nil
}

// Trace returns the per-stage snapshots used for plotting.
func (s *Session) Trace() ([]p.Step, error) {
	if s.chain.Empty() {
		return nil, p.ErrEmptyChain
	}
	steps, err := p.SimulateSteps(s.chain, p.NewWaterState())
	if err != nil {
		return nil, err
	}
	s.log.Debugw("trace computed", "snapshots", len(steps))
	return steps, nil
}

// Replay streams the trace to sink.
func (s *Session) Replay(ctx context.Context, sink p.TraceSink) error {
	if s.chain.Empty() {
		_ = sink.Close()
		return p.ErrEmptyChain
	}
	return p.ReplayTrace(ctx, s.chain, p.NewWaterState(), sink)
}

// Save persists the chain to path.
func (s *Session) Save(path string) error {
	if err := config.Save(path, s.chain); err != nil {
		s.log.Errorw("save failed", "path", path, "error", err)
		return err
	}
	s.log.Infow("configuration saved", "path", path, "stages", s.chain.Len())
	return nil
}

// Load replaces the chain with the one stored at path. The current chain
// is kept when loading fails.
func (s *Session) Load(path string) error {
	c, err := config.Load(path)
	if err != nil {
		s.log.Errorw("load failed", "path", path, "error", err)
		return fmt.Errorf("load configuration: %w", err)
	}
	s.chain = c
	s.log.Infow("configuration loaded", "path", path, "stages", c.Len())
	return nil
}
