package core

// Grid stores a 2D lattice of byte-sized cell states in row-major order.
// The forest-fire models run on square L×L lattices, but the type itself
// carries independent width and height.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates an all-zero grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the cell value at (x, y).
func (g *Grid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Set writes the cell value at (x, y).
func (g *Grid) Set(x, y int, v uint8) { g.data[y*g.W+x] = v }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, data: make([]uint8, len(g.data))}
	copy(c.data, g.data)
	return c
}

// CopyFrom overwrites this grid's cells with src's. It reports whether the
// dimensions matched; on mismatch the grid is left untouched.
func (g *Grid) CopyFrom(src *Grid) bool {
	if src == nil || src.W != g.W || src.H != g.H {
		return false
	}
	copy(g.data, src.data)
	return true
}

// Count returns the number of cells holding the given value.
func (g *Grid) Count(v uint8) int {
	n := 0
	for _, c := range g.data {
		if c == v {
			n++
		}
	}
	return n
}

// CountNonZero returns the number of cells holding any non-zero value.
func (g *Grid) CountNonZero() int {
	n := 0
	for _, c := range g.data {
		if c != 0 {
			n++
		}
	}
	return n
}
