//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"fire-ca/internal/core"
	"fire-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Paletted is implemented by sims that carry their own state color map.
type Paletted interface {
	Palette() []color.RGBA
}

// FireCounted is implemented by sims that accumulate a fire-size record.
type FireCounted interface {
	FireSizes() []int
	StepIndex() int
}

// Game adapts a core simulation to the ebiten.Game interface. Display frames
// run at ebiten's rate; simulation ticks are paced separately by a FixedStep
// so slow tick rates stay watchable.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	pacer   *core.FixedStep
	palette []color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, tps int, seed int64) *Game {
	palette := []color.RGBA{{A: 0xff}, {R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	if p, ok := sim.(Paletted); ok {
		palette = p.Palette()
	}
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(sim.Size().W, sim.Size().H),
		pacer:   core.NewFixedStep(tps),
		palette: palette,
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		return nil
	}
	if !g.paused && g.pacer.ShouldStep() {
		g.sim.Step()
	}
	return nil
}

// Draw renders the current simulation state plus a small status line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	if fc, ok := g.sim.(FireCounted); ok {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("step %d  fires %d", fc.StepIndex(), len(fc.FireSizes())))
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
