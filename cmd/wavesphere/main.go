//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"wavesphere/internal/app"
	"wavesphere/internal/feedback"
	"wavesphere/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	s, err := sim.New(sim.FromMap(cfg.SimConfig()))
	if err != nil {
		log.Fatal(err)
	}

	if cfg.HapticsPin != "" {
		h, err := feedback.Open(cfg.HapticsPin, 0)
		if err != nil {
			log.Printf("haptics disabled: %v", err)
		} else {
			defer h.Close()
			s.Machine().OnFreshTap(h.Tap)
		}
	}

	game := app.New(s, cfg.Window, cfg.Audio)

	ebiten.SetWindowTitle("wavesphere")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Window, cfg.Window)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
