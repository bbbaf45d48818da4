package forest

import "image/color"

// forestPalette maps cell states to the fixed render colors: dark background
// for empty, green trees, red fire, blue suppressed.
var forestPalette = []color.RGBA{
	{R: 0x1d, G: 0x1d, B: 0x1d, A: 0xff}, // Empty
	{R: 0x1b, G: 0x5e, B: 0x20, A: 0xff}, // Tree
	{R: 0xb7, G: 0x1c, B: 0x1c, A: 0xff}, // Fire
	{R: 0x15, G: 0x65, B: 0xc0, A: 0xff}, // Suppressed
}

// Palette exposes the color palette used for rendering the forest grid.
func (w *World) Palette() []color.RGBA {
	return forestPalette
}
