package core

import (
	"slices"
	"testing"
)

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(2, 1, 7)

	c := g.Clone()
	if !slices.Equal(g.Cells(), c.Cells()) {
		t.Fatal("clone differs from original")
	}

	c.Set(0, 0, 9)
	if g.At(0, 0) != 0 {
		t.Fatal("mutating the clone changed the original")
	}
}

func TestGridCopyFromChecksShape(t *testing.T) {
	g := NewGrid(4, 4)
	if g.CopyFrom(NewGrid(3, 4)) {
		t.Fatal("CopyFrom accepted mismatched dimensions")
	}

	src := NewGrid(4, 4)
	src.Set(1, 2, 5)
	if !g.CopyFrom(src) {
		t.Fatal("CopyFrom rejected matching dimensions")
	}
	if g.At(1, 2) != 5 {
		t.Fatal("CopyFrom did not copy cells")
	}
}

func TestGridWrap(t *testing.T) {
	g := NewGrid(5, 5)
	cases := []struct{ x, y, wantX, wantY int }{
		{-1, 0, 4, 0},
		{5, 2, 0, 2},
		{3, -2, 3, 3},
		{7, 11, 2, 1},
	}
	for _, c := range cases {
		x, y := g.Wrap(c.x, c.y)
		if x != c.wantX || y != c.wantY {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, x, y, c.wantX, c.wantY)
		}
	}
}

func TestGridCounts(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(0, 0, 1)
	g.Set(1, 1, 2)
	g.Set(2, 2, 1)

	if got := g.Count(1); got != 2 {
		t.Fatalf("Count(1) = %d, want 2", got)
	}
	if got := g.CountNonZero(); got != 3 {
		t.Fatalf("CountNonZero = %d, want 3", got)
	}

	g.Clear()
	if g.CountNonZero() != 0 {
		t.Fatal("Clear left occupied cells")
	}
}

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(123)
	b := NewRNG(123)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different draws")
		}
	}

	p := NewRNG(1).Perm(10)
	seen := make([]bool, 10)
	for _, v := range p {
		if v < 0 || v >= 10 || seen[v] {
			t.Fatalf("Perm produced invalid permutation %v", p)
		}
		seen[v] = true
	}
}
