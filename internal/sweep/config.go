package sweep

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fire-ca/internal/core"
)

// Plan describes a parameter sweep: which model to run, how long, and the
// grid of parameter values to cross.
type Plan struct {
	Model   string `yaml:"model"` // forest | oakpine
	Steps   int    `yaml:"steps"`
	Repeats int    `yaml:"repeats"`
	Workers int    `yaml:"workers"` // 0 = NumCPU
	Seed    int64  `yaml:"seed"`

	// PerStep turns on per-step recording for every run (slower; cluster
	// census every tick).
	PerStep bool `yaml:"per_step"`

	OutputDir string `yaml:"output_dir"`
	Database  string `yaml:"database"` // optional sqlite summary store

	Grid ParamGrid `yaml:"grid"`
}

// ParamGrid lists the candidate values per parameter. Empty axes fall back
// to a single default value. Oak axes are ignored for the forest model, and
// suppress for oakpine.
type ParamGrid struct {
	L        []int     `yaml:"l"`
	P        []float64 `yaml:"p"`
	F        []float64 `yaml:"f"`
	Suppress []int     `yaml:"suppress"`
	OakRatio []float64 `yaml:"oak_ratio"`
	PBurnOak []float64 `yaml:"p_burn_oak"`
	Spatial  []bool    `yaml:"spatial"`
}

// DefaultPlan returns a small demo sweep of the foundation model.
func DefaultPlan() Plan {
	return Plan{
		Model:     "forest",
		Steps:     1000,
		Repeats:   1,
		Seed:      1337,
		OutputDir: "results",
		Grid: ParamGrid{
			L:        []int{64},
			P:        []float64{0.01},
			F:        []float64{0.0001},
			Suppress: []int{0},
		},
	}
}

// LoadPlan reads a sweep plan from a YAML file. Missing fields keep their
// DefaultPlan values.
func LoadPlan(path string) (Plan, error) {
	plan := DefaultPlan()
	data, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("sweep: read plan %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return plan, fmt.Errorf("sweep: parse plan %s: %w", path, err)
	}
	return plan, plan.Validate()
}

// Validate rejects malformed plans before any run starts.
func (p Plan) Validate() error {
	if p.Model != "forest" && p.Model != "oakpine" {
		return fmt.Errorf("sweep: model %q: %w", p.Model, core.ErrInvalidParameter)
	}
	if p.Steps <= 0 {
		return fmt.Errorf("sweep: steps=%d: %w", p.Steps, core.ErrInvalidParameter)
	}
	if p.Repeats <= 0 {
		return fmt.Errorf("sweep: repeats=%d: %w", p.Repeats, core.ErrInvalidParameter)
	}
	if p.Workers < 0 {
		return fmt.Errorf("sweep: workers=%d: %w", p.Workers, core.ErrInvalidParameter)
	}
	return nil
}

// RunParams is one fully resolved parameter set plus its position in the
// sweep (ParamID indexes the grid point, RunID the repeat).
type RunParams struct {
	Model string

	L        int
	P        float64
	F        float64
	Suppress int
	OakRatio float64
	PBurnOak float64
	Spatial  bool

	Steps   int
	Seed    int64
	ParamID int
	RunID   int
}

func (r RunParams) String() string {
	if r.Model == "oakpine" {
		return fmt.Sprintf("L=%d p=%g f=%g oak_ratio=%g p_burn_oak=%g spatial=%t", r.L, r.P, r.F, r.OakRatio, r.PBurnOak, r.Spatial)
	}
	return fmt.Sprintf("L=%d p=%g f=%g suppress=%d", r.L, r.P, r.F, r.Suppress)
}

// Expand crosses the grid axes into the full list of runs, Repeats runs per
// grid point. Each run gets a distinct derived seed.
func (p Plan) Expand() []RunParams {
	grid := p.Grid
	ls := orDefault(grid.L, 64)
	ps := orDefault(grid.P, 0.01)
	fs := orDefault(grid.F, 0.0001)
	suppress := orDefault(grid.Suppress, 0)
	oakRatios := orDefault(grid.OakRatio, 0.3)
	oakBurns := orDefault(grid.PBurnOak, 0.3)
	spatial := orDefault(grid.Spatial, false)

	if p.Model == "forest" {
		oakRatios, oakBurns, spatial = oakRatios[:1], oakBurns[:1], spatial[:1]
	} else {
		suppress = suppress[:1]
	}

	var runs []RunParams
	paramID := 0
	for _, l := range ls {
		for _, pv := range ps {
			for _, fv := range fs {
				for _, sup := range suppress {
					for _, ratio := range oakRatios {
						for _, burn := range oakBurns {
							for _, sp := range spatial {
								for rep := 0; rep < p.Repeats; rep++ {
									runs = append(runs, RunParams{
										Model:    p.Model,
										L:        l,
										P:        pv,
										F:        fv,
										Suppress: sup,
										OakRatio: ratio,
										PBurnOak: burn,
										Spatial:  sp,
										Steps:    p.Steps,
										Seed:     p.Seed + int64(len(runs)),
										ParamID:  paramID,
										RunID:    rep,
									})
								}
								paramID++
							}
						}
					}
				}
			}
		}
	}
	return runs
}

func orDefault[T any](vals []T, def T) []T {
	if len(vals) == 0 {
		return []T{def}
	}
	return vals
}
