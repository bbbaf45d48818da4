//go:build ebiten

package main

import (
	"errors"
	"flag"
	"strings"

	"fire-ca/internal/app"
	"fire-ca/internal/core"
	_ "fire-ca/internal/sims/forest"
	_ "fire-ca/internal/sims/oakpine"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)

	params := map[string]string{}
	flag.Func("param", "simulation parameter as key=value (repeatable)", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		if !ok {
			return errors.New("expected key=value")
		}
		params[key] = value
		return nil
	})
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatal("unknown sim", "sim", cfg.Sim)
	}
	sim, err := factory(params)
	if err != nil {
		log.Fatal("invalid configuration", "sim", cfg.Sim, "error", err)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.TPS, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("fire-ca — " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("viewer exited", "error", err)
	}
}
