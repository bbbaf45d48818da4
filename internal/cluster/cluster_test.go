package cluster

import (
	"errors"
	"slices"
	"testing"

	"fire-ca/internal/core"
)

const (
	empty      uint8 = 0
	tree       uint8 = 1
	fire       uint8 = 2
	suppressed uint8 = 3
)

// plusCluster builds a 7x7 grid with a 5-cell plus shape centered at (3,3)
// and one disconnected tree at (0,0).
func plusCluster() *core.Grid {
	g := core.NewGrid(7, 7)
	g.Set(3, 3, tree)
	g.Set(2, 3, tree)
	g.Set(4, 3, tree)
	g.Set(3, 2, tree)
	g.Set(3, 4, tree)
	g.Set(0, 0, tree)
	return g
}

func baseOpts() BurnOptions {
	return BurnOptions{Connectivity: VonNeumann, Tree: tree, Fire: fire, Replanted: suppressed}
}

func TestBurnPlusShapedCluster(t *testing.T) {
	starts := [][2]int{{3, 3}, {2, 3}, {3, 4}}
	for _, start := range starts {
		g := plusCluster()
		rng := core.NewRNG(1)

		size, err := Burn(g, start[0], start[1], rng, baseOpts())
		if err != nil {
			t.Fatalf("Burn(%v): %v", start, err)
		}
		if size != 5 {
			t.Fatalf("Burn(%v) = %d, want 5", start, size)
		}
		if g.At(0, 0) != tree {
			t.Fatalf("disconnected tree at (0,0) was touched")
		}
		if got := g.CountNonZero(); got != 1 {
			t.Fatalf("expected only the disconnected tree to survive, %d cells occupied", got)
		}
	}
}

func TestBurnStartNotFlammable(t *testing.T) {
	g := plusCluster()
	rng := core.NewRNG(1)

	size, err := Burn(g, 1, 1, rng, baseOpts())
	if err != nil {
		t.Fatalf("Burn: %v", err)
	}
	if size != 0 {
		t.Fatalf("Burn on empty cell = %d, want 0", size)
	}
	if g.CountNonZero() != 6 {
		t.Fatal("burn on empty cell mutated the grid")
	}
}

func TestBurnOutOfBoundsStart(t *testing.T) {
	g := plusCluster()
	rng := core.NewRNG(1)

	if _, err := Burn(g, -1, 3, rng, baseOpts()); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := Burn(g, 3, 7, rng, baseOpts()); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestBurnInvalidConnectivity(t *testing.T) {
	g := plusCluster()
	opts := baseOpts()
	opts.Connectivity = 6

	if _, err := Burn(g, 3, 3, core.NewRNG(1), opts); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBurnMooreReachesDiagonals(t *testing.T) {
	g := core.NewGrid(5, 5)
	g.Set(1, 1, tree)
	g.Set(2, 2, tree)
	g.Set(3, 3, tree)

	opts := baseOpts()
	size, err := Burn(g.Clone(), 2, 2, core.NewRNG(1), opts)
	if err != nil {
		t.Fatal(err)
	}
	if size != 1 {
		t.Fatalf("von Neumann burn across diagonals = %d, want 1", size)
	}

	opts.Connectivity = Moore
	size, err = Burn(g, 2, 2, core.NewRNG(1), opts)
	if err != nil {
		t.Fatal(err)
	}
	if size != 3 {
		t.Fatalf("Moore burn across diagonals = %d, want 3", size)
	}
}

func TestBurnSuppressionBoundary(t *testing.T) {
	// suppress >= cluster size: everything replanted, fire size 0.
	g := plusCluster()
	opts := baseOpts()
	opts.Suppress = 9

	size, err := Burn(g, 3, 3, core.NewRNG(2), opts)
	if err != nil {
		t.Fatal(err)
	}
	if size != 0 {
		t.Fatalf("fully suppressed burn = %d, want 0", size)
	}
	if got := g.Count(tree); got != 6 {
		t.Fatalf("expected all 5 cluster cells plus the loner as trees, got %d", got)
	}

	// suppress = k < n: exactly k replanted, size n-k.
	g = plusCluster()
	opts.Suppress = 2
	size, err = Burn(g, 3, 3, core.NewRNG(2), opts)
	if err != nil {
		t.Fatal(err)
	}
	if size != 3 {
		t.Fatalf("partially suppressed burn = %d, want 3", size)
	}
	if got := g.Count(tree); got != 3 { // 2 replanted + disconnected loner
		t.Fatalf("expected 3 trees after replanting, got %d", got)
	}
}

func TestBurnAdvancedMarkers(t *testing.T) {
	g := plusCluster()
	opts := baseOpts()
	opts.Advanced = true
	opts.Suppress = 2

	size, err := Burn(g, 3, 3, core.NewRNG(3), opts)
	if err != nil {
		t.Fatal(err)
	}
	if size != 3 {
		t.Fatalf("burn size = %d, want 3", size)
	}
	if got := g.Count(fire); got != 3 {
		t.Fatalf("expected 3 fire markers, got %d", got)
	}
	if got := g.Count(suppressed); got != 2 {
		t.Fatalf("expected 2 suppressed markers, got %d", got)
	}
}

func TestBurnOakResistanceExtremes(t *testing.T) {
	const oak uint8 = 2

	// Pine row with an oak in the middle. With burn probability 0 the oak
	// is a firewall; with probability 1 the fire crosses it.
	build := func() *core.Grid {
		g := core.NewGrid(5, 1)
		for x := 0; x < 5; x++ {
			g.Set(x, 0, tree)
		}
		g.Set(2, 0, oak)
		return g
	}

	opts := baseOpts()
	opts.Resistant = oak
	opts.Fire = 3

	opts.ResistBurnP = 0
	g := build()
	size, err := Burn(g, 0, 0, core.NewRNG(4), opts)
	if err != nil {
		t.Fatal(err)
	}
	if size != 2 {
		t.Fatalf("burn blocked by oak = %d, want 2", size)
	}
	if g.At(2, 0) != oak || g.At(3, 0) != tree || g.At(4, 0) != tree {
		t.Fatal("cells behind the resisting oak should be untouched")
	}

	opts.ResistBurnP = 1
	g = build()
	size, err = Burn(g, 0, 0, core.NewRNG(4), opts)
	if err != nil {
		t.Fatal(err)
	}
	if size != 5 {
		t.Fatalf("burn through oak = %d, want 5", size)
	}
}

func TestSizesTwoComponents(t *testing.T) {
	g := core.NewGrid(8, 8)
	// 3-cell component.
	g.Set(0, 0, tree)
	g.Set(1, 0, tree)
	g.Set(1, 1, tree)
	// 7-cell component, well separated.
	for x := 0; x < 7; x++ {
		g.Set(x, 5, tree)
	}

	before := slices.Clone(g.Cells())
	sizes, err := Sizes(g, VonNeumann)
	if err != nil {
		t.Fatal(err)
	}

	slices.Sort(sizes)
	if !slices.Equal(sizes, []int{3, 7}) {
		t.Fatalf("Sizes = %v, want [3 7]", sizes)
	}
	if !slices.Equal(before, g.Cells()) {
		t.Fatal("Sizes mutated the grid")
	}
}

func TestSizesCountsAllSpecies(t *testing.T) {
	g := core.NewGrid(4, 1)
	g.Set(0, 0, 1)
	g.Set(1, 0, 2) // different species, same component
	g.Set(3, 0, 1)

	sizes, err := Sizes(g, VonNeumann)
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(sizes)
	if !slices.Equal(sizes, []int{1, 2}) {
		t.Fatalf("Sizes = %v, want [1 2]", sizes)
	}
}
