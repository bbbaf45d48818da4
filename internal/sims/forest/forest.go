// Package forest implements the Drossel–Schwabl forest-fire model on a
// bounded square lattice, with an optional suppression (post-fire
// replanting) extension.
package forest

import (
	"fire-ca/internal/cluster"
	"fire-ca/internal/core"
)

// Cell states. In basic mode only Empty and Tree persist between ticks; Fire
// and Suppressed are one-tick rendering markers used in advanced mode and
// normalized away at the start of the next tick.
const (
	Empty      uint8 = 0
	Tree       uint8 = 1
	Fire       uint8 = 2
	Suppressed uint8 = 3
)

// World owns the lattice and all per-run accumulators for one simulation
// run. The tick loop is the sole mutator of the grid.
type World struct {
	cfg Config

	grid *core.Grid
	rng  *core.RNG

	fireSizes []int // one entry per ignition, whole run, chronological
	stepFires []int // fires ignited during the most recent tick

	step        int
	lastDensity float64 // mean tree density after growth, before ignition
}

// New constructs a run from the given configuration.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &World{
		cfg:  cfg,
		grid: core.NewGrid(cfg.L, cfg.L),
		rng:  core.NewRNG(cfg.Seed),
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "forest" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.L, H: w.cfg.L} }

// Cells exposes the live grid values.
func (w *World) Cells() []uint8 { return w.grid.Cells() }

// Grid exposes the live lattice. It is mutated by every tick; callers that
// retain state across ticks must Clone it.
func (w *World) Grid() *core.Grid { return w.grid }

// FireSizes exposes the live cumulative fire-size sequence.
func (w *World) FireSizes() []int { return w.fireSizes }

// StepIndex returns the number of completed ticks.
func (w *World) StepIndex() int { return w.step }

// Reset clears the run back to an all-empty lattice. A zero seed falls back
// to the configured seed.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = core.NewRNG(seed)
	w.grid.Clear()
	w.fireSizes = nil
	w.stepFires = nil
	w.step = 0
	w.lastDensity = 0
}

// Step advances the run by one synchronous tick: normalize transient
// markers, grow, strike, burn.
func (w *World) Step() {
	w.advance()
}

func (w *World) advance() {
	cells := w.grid.Cells()

	// Undo the previous tick's rendering markers.
	if w.cfg.Advanced {
		for i, v := range cells {
			switch v {
			case Fire:
				cells[i] = Empty
			case Suppressed:
				cells[i] = Tree
			}
		}
	}

	// Growth: one draw per cell that is empty at the start of the tick. The
	// scan never revisits a cell, so cells grown here get no second draw.
	for i, v := range cells {
		if v == Empty && w.rng.Bernoulli(w.cfg.GrowthP) {
			cells[i] = Tree
		}
	}

	w.lastDensity = float64(w.grid.CountNonZero()) / float64(len(cells))

	// Lightning: one draw per tree, strikes collected in row-major order.
	var strikes []int
	for i, v := range cells {
		if v == Tree && w.rng.Bernoulli(w.cfg.LightningF) {
			strikes = append(strikes, i)
		}
	}

	// Burning: a strike only ignites if its cell survived earlier burns in
	// the same tick.
	w.stepFires = w.stepFires[:0]
	opts := cluster.BurnOptions{
		Connectivity: w.cfg.Connectivity,
		Tree:         Tree,
		Suppress:     w.cfg.Suppress,
		Advanced:     w.cfg.Advanced,
		Fire:         Fire,
		Replanted:    Suppressed,
	}
	for _, idx := range strikes {
		if cells[idx] != Tree {
			continue
		}
		size, err := cluster.Burn(w.grid, idx%w.grid.W, idx/w.grid.W, w.rng, opts)
		if err != nil {
			// Strike coordinates come from the grid scan above; a failure
			// here is a bug in this package.
			panic(err)
		}
		w.stepFires = append(w.stepFires, size)
		w.fireSizes = append(w.fireSizes, size)
	}

	w.step++
}

func init() {
	core.Register("forest", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
