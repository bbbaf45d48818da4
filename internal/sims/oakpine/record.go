package oakpine

import (
	"slices"

	"fire-ca/internal/cluster"
)

// StepRecord captures the offline-analysis view of a single tick.
type StepRecord struct {
	Step              int
	Fires             []int
	ClusterSizes      []int
	MeanDensityBefore float64
}

// StepRecorded advances the run by one tick and returns the per-step record,
// including the post-tick census of surviving cluster sizes.
func (w *World) StepRecorded() StepRecord {
	w.advance()
	sizes, err := cluster.Sizes(w.grid, w.cfg.Connectivity)
	if err != nil {
		panic(err) // connectivity was validated at construction
	}
	return StepRecord{
		Step:              w.step,
		Fires:             slices.Clone(w.stepFires),
		ClusterSizes:      sizes,
		MeanDensityBefore: w.lastDensity,
	}
}

// Summary is the flat per-run record consumed by experiment sweeps.
type Summary struct {
	L          int
	GrowthP    float64
	LightningF float64
	Steps      int
	OakRatio   float64
	PBurnOak   float64
	Spatial    bool

	NumFires       int
	MeanSize       float64
	MaxSize        int
	RemainingTrees int
}

// Summary derives the run summary from the final grid and the cumulative
// fire-size sequence.
func (w *World) Summary() Summary {
	s := Summary{
		L:              w.cfg.L,
		GrowthP:        w.cfg.GrowthP,
		LightningF:     w.cfg.LightningF,
		Steps:          w.step,
		OakRatio:       w.cfg.OakRatio,
		PBurnOak:       w.cfg.PBurnOak,
		Spatial:        w.cfg.Spatial,
		NumFires:       len(w.fireSizes),
		RemainingTrees: w.grid.CountNonZero(),
	}
	if len(w.fireSizes) > 0 {
		total := 0
		for _, v := range w.fireSizes {
			total += v
			if v > s.MaxSize {
				s.MaxSize = v
			}
		}
		s.MeanSize = float64(total) / float64(len(w.fireSizes))
	}
	return s
}
