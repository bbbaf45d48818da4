package oakpine

import "image/color"

// oakpinePalette maps cell states to render colors: dark background, bright
// green pine, olive oak, red fire.
var oakpinePalette = []color.RGBA{
	{R: 0x1d, G: 0x1d, B: 0x1d, A: 0xff}, // Empty
	{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}, // Pine
	{R: 0x82, G: 0x77, B: 0x17, A: 0xff}, // Oak
	{R: 0xb7, G: 0x1c, B: 0x1c, A: 0xff}, // Fire
}

// Palette exposes the color palette used for rendering the oakpine grid.
func (w *World) Palette() []color.RGBA {
	return oakpinePalette
}
