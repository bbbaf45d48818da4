// Package sweep runs batches of independent forest-fire simulations across a
// parameter grid, one run per worker at a time, and collects flat summary
// records plus optional per-run CSV artifacts.
package sweep

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"fire-ca/internal/sims/forest"
	"fire-ca/internal/sims/oakpine"
)

// Result is the flat per-run record: the resolved parameters plus summary
// statistics derived from the final grid and the fire-size sequence.
type Result struct {
	Params RunParams

	NumFires       int
	MeanSize       float64
	MaxSize        int
	RemainingTrees int

	RawFile     string
	PerStepFile string
	Elapsed     time.Duration
}

// Runner executes a plan with a worker pool. Runs share nothing: each owns
// its grid, RNG and fire-size sequence, so workers never synchronize beyond
// the job and result channels.
type Runner struct {
	plan   Plan
	logger *log.Logger
}

// NewRunner pairs a validated plan with a logger.
func NewRunner(plan Plan, logger *log.Logger) (*Runner, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{plan: plan, logger: logger}, nil
}

// Run executes every run in the plan and returns their results in completion
// order.
func (r *Runner) Run() ([]Result, error) {
	runs := r.plan.Expand()
	workers := r.plan.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	r.logger.Info("starting sweep", "model", r.plan.Model, "runs", len(runs), "workers", workers, "steps", r.plan.Steps)

	jobs := make(chan RunParams)
	results := make(chan Result)
	errs := make(chan error, len(runs))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := r.runOne(params)
				if err != nil {
					errs <- err
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
		close(errs)
	}()

	go func() {
		for _, params := range runs {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []Result
	for res := range results {
		r.logger.Info("run done",
			"param", res.Params.ParamID, "run", res.Params.RunID,
			"params", res.Params.String(),
			"fires", res.NumFires, "mean", fmt.Sprintf("%.2f", res.MeanSize), "max", res.MaxSize,
			"elapsed", res.Elapsed.Round(time.Millisecond))
		all = append(all, res)
	}
	if err, ok := <-errs; ok && err != nil {
		return all, err
	}

	r.logger.Info("sweep finished", "runs", len(all), "elapsed", time.Since(start).Round(time.Millisecond))
	return all, nil
}

func (r *Runner) runOne(params RunParams) (Result, error) {
	start := time.Now()
	res := Result{Params: params}

	var rows []stepRow
	switch params.Model {
	case "forest":
		world, err := forest.New(forest.Config{
			L:            params.L,
			GrowthP:      params.P,
			LightningF:   params.F,
			Suppress:     params.Suppress,
			Connectivity: 4,
			Seed:         params.Seed,
		})
		if err != nil {
			return res, err
		}
		for i := 0; i < params.Steps; i++ {
			if r.plan.PerStep {
				rec := world.StepRecorded()
				rows = append(rows, stepRow{
					Step:     rec.Step,
					Fires:    rec.Fires,
					Clusters: rec.ClusterSizes,
					Density:  rec.MeanDensityBefore,
				})
			} else {
				world.Step()
			}
		}
		s := world.Summary()
		res.NumFires = s.NumFires
		res.MeanSize = s.MeanSize
		res.MaxSize = s.MaxSize
		res.RemainingTrees = s.RemainingTrees
		res.RawFile, res.PerStepFile = r.writeArtifacts(params, world.FireSizes(), rows)

	case "oakpine":
		world, err := oakpine.New(oakpine.Config{
			L:            params.L,
			GrowthP:      params.P,
			LightningF:   params.F,
			OakRatio:     params.OakRatio,
			PBurnOak:     params.PBurnOak,
			Spatial:      params.Spatial,
			Connectivity: 4,
			Seed:         params.Seed,
		})
		if err != nil {
			return res, err
		}
		for i := 0; i < params.Steps; i++ {
			if r.plan.PerStep {
				rec := world.StepRecorded()
				rows = append(rows, stepRow{
					Step:     rec.Step,
					Fires:    rec.Fires,
					Clusters: rec.ClusterSizes,
					Density:  rec.MeanDensityBefore,
				})
			} else {
				world.Step()
			}
		}
		s := world.Summary()
		res.NumFires = s.NumFires
		res.MeanSize = s.MeanSize
		res.MaxSize = s.MaxSize
		res.RemainingTrees = s.RemainingTrees
		res.RawFile, res.PerStepFile = r.writeArtifacts(params, world.FireSizes(), rows)

	default:
		return res, fmt.Errorf("sweep: model %q", params.Model)
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// writeArtifacts persists the raw fire sizes and, when recorded, the
// per-step rows. Failures are logged rather than fatal: a sweep should not
// lose the other runs' results over one unwritable file.
func (r *Runner) writeArtifacts(params RunParams, fires []int, rows []stepRow) (rawFile, perStepFile string) {
	if r.plan.OutputDir == "" {
		return "", ""
	}
	var err error
	rawFile, err = writeFireSizes(r.plan.OutputDir, params, fires)
	if err != nil {
		r.logger.Warn("could not write raw fire sizes", "error", err)
		rawFile = ""
	}
	if len(rows) > 0 {
		perStepFile, err = writePerStep(r.plan.OutputDir, params, rows)
		if err != nil {
			r.logger.Warn("could not write per-step records", "error", err)
			perStepFile = ""
		}
	}
	return rawFile, perStepFile
}
