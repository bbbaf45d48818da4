// Package oakpine implements the inhomogeneous forest-fire model: two
// flammable species where pine always burns and oak resists fire with a
// per-event probability. The spatial mode places oak by position via a
// slime-mold mask instead of a per-growth coin flip, so regrowth after a
// fire reproduces the same species at the same location.
package oakpine

import (
	"fire-ca/internal/cluster"
	"fire-ca/internal/core"
	"fire-ca/internal/physarum"
)

// Cell states. Fire is a one-tick rendering marker used in advanced mode.
const (
	Empty uint8 = 0
	Pine  uint8 = 1
	Oak   uint8 = 2
	Fire  uint8 = 3
)

// World owns the lattice, the optional species mask, and all per-run
// accumulators for one simulation run.
type World struct {
	cfg Config

	grid *core.Grid
	rng  *core.RNG

	// mask is immutable for the run's lifetime; nil outside spatial mode.
	mask []bool

	fireSizes []int
	stepFires []int

	step        int
	lastDensity float64
}

// New constructs a run from the given configuration. In spatial mode the
// species mask is generated here, from its own RNG seeded off the config,
// so it never perturbs the tick draw sequence.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:  cfg,
		grid: core.NewGrid(cfg.L, cfg.L),
		rng:  core.NewRNG(cfg.Seed),
	}
	if cfg.Spatial {
		mask, err := physarum.Generate(physarum.Config{
			L:          cfg.L,
			Ratio:      cfg.OakRatio,
			Iterations: cfg.MaskIterations,
			Seed:       cfg.Seed,
		})
		if err != nil {
			return nil, err
		}
		w.mask = mask
	}
	return w, nil
}

// NewWithMask constructs a spatial run around a caller-provided mask, e.g.
// one persisted from an earlier run. The mask length must match the lattice.
func NewWithMask(cfg Config, mask []bool) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(mask) != cfg.L*cfg.L {
		return nil, maskMismatch(cfg.L, len(mask))
	}
	return &World{
		cfg:  cfg,
		grid: core.NewGrid(cfg.L, cfg.L),
		rng:  core.NewRNG(cfg.Seed),
		mask: mask,
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "oakpine" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.L, H: w.cfg.L} }

// Cells exposes the live grid values.
func (w *World) Cells() []uint8 { return w.grid.Cells() }

// Grid exposes the live lattice. Callers that retain state across ticks must
// Clone it.
func (w *World) Grid() *core.Grid { return w.grid }

// Mask exposes the species mask, nil outside spatial mode.
func (w *World) Mask() []bool { return w.mask }

// FireSizes exposes the live cumulative fire-size sequence.
func (w *World) FireSizes() []int { return w.fireSizes }

// StepIndex returns the number of completed ticks.
func (w *World) StepIndex() int { return w.step }

// Reset clears the run back to an all-empty lattice, keeping the mask. A
// zero seed falls back to the configured seed.
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

// Step advances the run by one synchronous tick.
func (w *World) Step() {
	w.advance()
}

func (w *World) advance() {
	cells := w.grid.Cells()

	if w.cfg.Advanced {
		for i, v := range cells {
			if v == Fire {
				cells[i] = Empty
			}
		}
	}

	// Growth: one draw per cell that is empty at the start of the tick. The
	// species of a newly grown tree comes from the mask in spatial mode and
	// from an independent coin flip otherwise.
	for i, v := range cells {
		if v != Empty || !w.rng.Bernoulli(w.cfg.GrowthP) {
			continue
		}
		if w.mask != nil {
			if w.mask[i] {
				cells[i] = Oak
			} else {
				cells[i] = Pine
			}
		} else if w.rng.Bernoulli(w.cfg.OakRatio) {
			cells[i] = Oak
		} else {
			cells[i] = Pine
		}
	}

	w.lastDensity = float64(w.grid.CountNonZero()) / float64(len(cells))

	// Lightning: one draw per living tree of either species.
	var strikes []int
	for i, v := range cells {
		if (v == Pine || v == Oak) && w.rng.Bernoulli(w.cfg.LightningF) {
			strikes = append(strikes, i)
		}
	}

	w.stepFires = w.stepFires[:0]
	opts := cluster.BurnOptions{
		Connectivity: w.cfg.Connectivity,
		Tree:         Pine,
		Resistant:    Oak,
		ResistBurnP:  w.cfg.PBurnOak,
		Advanced:     w.cfg.Advanced,
		Fire:         Fire,
	}
	for _, idx := range strikes {
		if v := cells[idx]; v != Pine && v != Oak {
			continue
		}
		size, err := cluster.Burn(w.grid, idx%w.grid.W, idx/w.grid.W, w.rng, opts)
		if err != nil {
			panic(err) // strike coordinates come from the grid scan above
		}
		w.stepFires = append(w.stepFires, size)
		w.fireSizes = append(w.fireSizes, size)
	}

	w.step++
}

func init() {
	core.Register("oakpine", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
