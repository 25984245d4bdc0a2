package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"wavesphere/internal/app"
	"wavesphere/internal/feedback"
	"wavesphere/internal/server"
	"wavesphere/internal/sim"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(s, cfg.TPS).Run(ctx, cfg.Listen); err != nil {
		log.Fatal(err)
	}
}
