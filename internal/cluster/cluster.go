// Package cluster implements the connected-component engine shared by the
// forest-fire variants: burning a cluster of trees and measuring the sizes
// of the surviving clusters.
package cluster

import (
	"fmt"

	"fire-ca/internal/core"
)

// Connectivity selects the neighbor adjacency for a traversal.
type Connectivity int

const (
	// VonNeumann is 4-neighbor (orthogonal) adjacency.
	VonNeumann Connectivity = 4
	// Moore is 8-neighbor (orthogonal + diagonal) adjacency.
	Moore Connectivity = 8
)

var (
	vonNeumannOffsets = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	mooreOffsets      = [][2]int{
		{0, 1}, {0, -1}, {1, 0}, {-1, 0},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

func (c Connectivity) offsets() ([][2]int, error) {
	switch c {
	case VonNeumann:
		return vonNeumannOffsets, nil
	case Moore:
		return mooreOffsets, nil
	default:
		return nil, fmt.Errorf("connectivity %d: %w", int(c), core.ErrInvalidParameter)
	}
}

// BurnOptions configures a single fire event.
type BurnOptions struct {
	Connectivity Connectivity

	// Tree is the state value of the always-flammable species. Resistant is
	// the optional second species (0 = none) that only catches fire with
	// probability ResistBurnP, rolled once per cell per fire event.
	Tree        uint8
	Resistant   uint8
	ResistBurnP float64

	// Suppress is the number of burned cells replanted after the traversal.
	Suppress int

	// Advanced keeps transient markers on the grid for rendering: consumed
	// cells become Fire instead of empty, replanted cells become Replanted
	// instead of Tree.
	Advanced  bool
	Fire      uint8
	Replanted uint8
}

func (o BurnOptions) flammable(v uint8) bool {
	return v == o.Tree || (o.Resistant != 0 && v == o.Resistant)
}

// Burn consumes the connected component of flammable cells containing the
// start coordinate, using an iterative depth-first flood fill. Consumed cells
// are set to empty (or Fire in advanced mode). After the traversal,
// min(burned, Suppress) of the burned cells are chosen uniformly without
// replacement and replanted. The return value is burned minus replanted,
// never negative.
//
// A resistant cell's flammability roll is evaluated the first time the fill
// reaches it and the outcome is final for this fire event: a cell that
// refused to burn is not re-rolled when rediscovered through another path.
//
// Starting on a non-flammable cell burns nothing and returns 0. Starting out
// of bounds is a caller bug and returns ErrOutOfRange.
func Burn(g *core.Grid, x, y int, rng *core.RNG, opts BurnOptions) (int, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("burn start (%d,%d) on %dx%d grid: %w", x, y, g.W, g.H, core.ErrOutOfRange)
	}
	offsets, err := opts.Connectivity.offsets()
	if err != nil {
		return 0, err
	}
	cells := g.Cells()
	if !opts.flammable(cells[g.Index(x, y)]) {
		return 0, nil
	}

	visited := make([]bool, len(cells))
	stack := []int{g.Index(x, y)}
	var burned []int

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			continue
		}
		visited[idx] = true

		v := cells[idx]
		if !opts.flammable(v) {
			continue
		}
		if opts.Resistant != 0 && v == opts.Resistant && !rng.Bernoulli(opts.ResistBurnP) {
			// Refused to burn; the visited mark makes the refusal final.
			continue
		}

		if opts.Advanced {
			cells[idx] = opts.Fire
		} else {
			cells[idx] = 0
		}
		burned = append(burned, idx)

		cx, cy := idx%g.W, idx/g.W
		for _, d := range offsets {
			nx, ny := cx+d[0], cy+d[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			nIdx := g.Index(nx, ny)
			if !visited[nIdx] && opts.flammable(cells[nIdx]) {
				stack = append(stack, nIdx)
			}
		}
	}

	replanted := 0
	if opts.Suppress > 0 && len(burned) > 0 {
		replanted = min(opts.Suppress, len(burned))
		order := rng.Perm(len(burned))
		for _, i := range order[:replanted] {
			if opts.Advanced {
				cells[burned[i]] = opts.Replanted
			} else {
				cells[burned[i]] = opts.Tree
			}
		}
	}

	return len(burned) - replanted, nil
}

// Sizes partitions all non-empty cells into connected components under the
// given adjacency and returns their sizes in discovery order of a row-major
// scan. The grid is not mutated.
func Sizes(g *core.Grid, conn Connectivity) ([]int, error) {
	offsets, err := conn.offsets()
	if err != nil {
		return nil, err
	}
	cells := g.Cells()
	visited := make([]bool, len(cells))
	var sizes []int

	for start, v := range cells {
		if v == 0 || visited[start] {
			continue
		}
		size := 0
		visited[start] = true
		stack := []int{start}
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			cx, cy := idx%g.W, idx/g.W
			for _, d := range offsets {
				nx, ny := cx+d[0], cy+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				nIdx := g.Index(nx, ny)
				if !visited[nIdx] && cells[nIdx] != 0 {
					visited[nIdx] = true
					stack = append(stack, nIdx)
				}
			}
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
