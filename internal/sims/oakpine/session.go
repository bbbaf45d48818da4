package oakpine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"fire-ca/internal/core"
)

// Snapshot is one yielded tick: independent copies of the grid and the
// cumulative fire-size sequence, plus the 1-based index of the completed
// step.
type Snapshot struct {
	Grid      *core.Grid
	FireSizes []int
	Step      int
}

// Session drives a run tick by tick for a live consumer. Stopping pulling
// cancels the run; the last persisted snapshot is enough to resume later.
type Session struct {
	world *World
	steps int
}

// SessionOption adjusts session construction.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	resume    bool
	grid      *core.Grid
	fireSizes []int
	startStep int
	mask      []bool
	rand      *rand.Rand
}

// WithResume continues a previously paused run from its saved snapshot. The
// grid and fire-size sequence are copied, never aliased.
func WithResume(grid *core.Grid, fireSizes []int, startStep int) SessionOption {
	return func(o *sessionOptions) {
		o.resume = true
		o.grid = grid
		o.fireSizes = fireSizes
		o.startStep = startStep
	}
}

// WithMask supplies a precomputed species mask instead of generating one.
func WithMask(mask []bool) SessionOption {
	return func(o *sessionOptions) { o.mask = mask }
}

// WithRand substitutes the session's random source. A resumed session handed
// the paused run's source continues its exact draw sequence.
func WithRand(r *rand.Rand) SessionOption {
	return func(o *sessionOptions) { o.rand = r }
}

// NewSession builds a session that runs from step 0 (or the resume point)
// through the given total step count.
func NewSession(cfg Config, steps int, opts ...SessionOption) (*Session, error) {
	if steps < 0 {
		return nil, fmt.Errorf("oakpine: steps=%d: %w", steps, core.ErrInvalidParameter)
	}
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	var world *World
	var err error
	if o.mask != nil {
		world, err = NewWithMask(cfg, o.mask)
	} else {
		world, err = New(cfg)
	}
	if err != nil {
		return nil, err
	}
	if o.resume {
		if o.grid == nil || o.grid.W != cfg.L || o.grid.H != cfg.L {
			return nil, fmt.Errorf("oakpine: resume grid does not match L=%d: %w", cfg.L, core.ErrStateMismatch)
		}
		if o.startStep < 0 || o.startStep > steps {
			return nil, fmt.Errorf("oakpine: resume step %d of %d: %w", o.startStep, steps, core.ErrStateMismatch)
		}
		world.grid.CopyFrom(o.grid)
		world.fireSizes = slices.Clone(o.fireSizes)
		world.step = o.startStep
	}
	if o.rand != nil {
		world.rng = core.NewRNGFrom(o.rand)
	}
	return &Session{world: world, steps: steps}, nil
}

// Next completes one tick and returns its snapshot. The second return value
// is false once the requested step count has been reached.
func (s *Session) Next() (Snapshot, bool) {
	if s.world.step >= s.steps {
		return Snapshot{}, false
	}
	s.world.Step()
	return Snapshot{
		Grid:      s.world.grid.Clone(),
		FireSizes: slices.Clone(s.world.fireSizes),
		Step:      s.world.step,
	}, true
}

// World exposes the session's underlying run.
func (s *Session) World() *World { return s.world }

func maskMismatch(l, got int) error {
	return fmt.Errorf("oakpine: mask length %d does not match L=%d: %w", got, l, core.ErrStateMismatch)
}
