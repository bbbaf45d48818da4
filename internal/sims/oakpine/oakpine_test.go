package oakpine

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"fire-ca/internal/cluster"
	"fire-ca/internal/core"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func testConfig(l int) Config {
	cfg := DefaultConfig()
	cfg.L = l
	return cfg
}

func TestValidateRejectsBadParameters(t *testing.T) {
	cases := []Config{
		{L: 0, GrowthP: 0.1, LightningF: 0.1, Connectivity: cluster.VonNeumann},
		{L: 16, GrowthP: 0.1, LightningF: 0.1, OakRatio: 1.5, Connectivity: cluster.VonNeumann},
		{L: 16, GrowthP: 0.1, LightningF: 0.1, PBurnOak: -0.2, Connectivity: cluster.VonNeumann},
		{L: 16, GrowthP: 0.1, LightningF: 0.1, Connectivity: 3},
	}
	for i, cfg := range cases {
		if _, err := New(cfg); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("case %d: expected ErrInvalidParameter, got %v", i, err)
		}
	}
}

func TestGrowthSpeciesSplit(t *testing.T) {
	cfg := testConfig(40)
	cfg.GrowthP = 1 // every empty cell grows in one tick
	cfg.LightningF = 0
	cfg.OakRatio = 0.3
	world, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	world.Step()

	pines := world.Grid().Count(Pine)
	oaks := world.Grid().Count(Oak)
	if pines+oaks != 40*40 {
		t.Fatalf("grew %d cells, want full lattice", pines+oaks)
	}
	frac := float64(oaks) / float64(pines+oaks)
	if frac < 0.25 || frac > 0.35 {
		t.Fatalf("oak fraction %.3f too far from 0.3", frac)
	}
}

func TestOakFirewallAtZeroBurnProbability(t *testing.T) {
	cfg := testConfig(5)
	cfg.GrowthP = 0
	cfg.LightningF = 0
	cfg.PBurnOak = 0
	world, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// pine pine oak pine pine in one row; ignite the left end directly.
	g := world.Grid()
	for x := 0; x < 5; x++ {
		g.Set(x, 2, Pine)
	}
	g.Set(2, 2, Oak)

	size, err := cluster.Burn(g, 0, 2, core.NewRNG(1), cluster.BurnOptions{
		Connectivity: cluster.VonNeumann,
		Tree:         Pine,
		Resistant:    Oak,
		ResistBurnP:  0,
		Fire:         Fire,
	})
	if err != nil {
		t.Fatal(err)
	}
	if size != 2 {
		t.Fatalf("burn across resistant oak = %d, want 2", size)
	}
	if g.At(2, 2) != Oak || g.At(3, 2) != Pine || g.At(4, 2) != Pine {
		t.Fatal("cells behind the oak firewall were burned")
	}
}

func TestSpatialSpeciesFollowsMask(t *testing.T) {
	const l = 8
	mask := make([]bool, l*l)
	for i := range mask {
		mask[i] = i%3 == 0
	}

	cfg := testConfig(l)
	cfg.GrowthP = 1
	cfg.LightningF = 0
	world, err := NewWithMask(cfg, mask)
	if err != nil {
		t.Fatal(err)
	}

	world.Step()

	for i, v := range world.Cells() {
		want := Pine
		if mask[i] {
			want = Oak
		}
		if v != want {
			t.Fatalf("cell %d grew species %d, mask wants %d", i, v, want)
		}
	}
}

func TestSpatialRegrowthReproducesSpecies(t *testing.T) {
	const l = 6
	mask := make([]bool, l*l)
	mask[l*3+3] = true

	cfg := testConfig(l)
	cfg.GrowthP = 1
	cfg.LightningF = 0
	world, err := NewWithMask(cfg, mask)
	if err != nil {
		t.Fatal(err)
	}

	world.Step()
	if world.Grid().At(3, 3) != Oak {
		t.Fatal("masked cell did not grow an oak")
	}

	// Clear the lattice by hand and regrow: position decides species again.
	world.Grid().Clear()
	world.Step()
	if world.Grid().At(3, 3) != Oak {
		t.Fatal("regrowth changed the species at a masked position")
	}
}

func TestNewWithMaskRejectsWrongLength(t *testing.T) {
	cfg := testConfig(8)
	if _, err := NewWithMask(cfg, make([]bool, 10)); !errors.Is(err, core.ErrStateMismatch) {
		t.Fatalf("expected ErrStateMismatch, got %v", err)
	}
}

func TestAdvancedFireClearsNextTick(t *testing.T) {
	cfg := testConfig(5)
	cfg.GrowthP = 0
	cfg.LightningF = 1
	cfg.PBurnOak = 1
	cfg.Advanced = true
	world, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	world.Grid().Set(2, 2, Oak)
	world.Step()

	if world.Grid().At(2, 2) != Fire {
		t.Fatalf("burned oak = %d, want Fire marker", world.Grid().At(2, 2))
	}
	if !slices.Equal(world.FireSizes(), []int{1}) {
		t.Fatalf("fire sizes = %v, want [1]", world.FireSizes())
	}

	world.Step()
	if world.Grid().At(2, 2) != Empty {
		t.Fatal("fire marker persisted into the next tick")
	}
}

func TestStepRecordedCensusMatchesGrid(t *testing.T) {
	cfg := testConfig(24)
	cfg.GrowthP = 0.2
	cfg.LightningF = 0.01
	world, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		rec := world.StepRecorded()
		if rec.MeanDensityBefore < 0 || rec.MeanDensityBefore > 1 {
			t.Fatalf("density %g outside [0,1]", rec.MeanDensityBefore)
		}
		total := 0
		for _, s := range rec.ClusterSizes {
			total += s
		}
		if total != world.Grid().CountNonZero() {
			t.Fatalf("cluster census %d cells, grid has %d", total, world.Grid().CountNonZero())
		}
	}
}

func TestSessionResumeEquivalence(t *testing.T) {
	cfg := testConfig(20)
	cfg.GrowthP = 0.1
	cfg.LightningF = 0.05
	const total, pause = 25, 10

	runAll := func(s *Session) Snapshot {
		var last Snapshot
		for {
			snap, ok := s.Next()
			if !ok {
				return last
			}
			last = snap
		}
	}

	contRand := newTestRand(9)
	cont, err := NewSession(cfg, total, WithRand(contRand))
	if err != nil {
		t.Fatal(err)
	}
	final := runAll(cont)

	pausedRand := newTestRand(9)
	paused, err := NewSession(cfg, pause, WithRand(pausedRand))
	if err != nil {
		t.Fatal(err)
	}
	saved := runAll(paused)

	resumed, err := NewSession(cfg, total,
		WithResume(saved.Grid, saved.FireSizes, saved.Step),
		WithRand(pausedRand))
	if err != nil {
		t.Fatal(err)
	}
	resumedFinal := runAll(resumed)

	if !slices.Equal(final.Grid.Cells(), resumedFinal.Grid.Cells()) {
		t.Fatal("resumed run diverged from the continuous run's grid")
	}
	if !slices.Equal(final.FireSizes, resumedFinal.FireSizes) {
		t.Fatal("resumed run diverged from the continuous run's fire history")
	}
}
