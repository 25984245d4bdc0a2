package app

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"wavesphere/internal/sim"
)

// BuildReport renders a plain-text snapshot of the simulation for bug
// reports: configuration, tick count, field statistics.
func BuildReport(s *sim.Sim) string {
	cfg := s.Config()
	grid := s.Grid()

	minV, maxV := float32(0), float32(0)
	var sum float64
	for _, v := range grid.Front() {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += float64(v)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- wavesphere report ---\n")
	fmt.Fprintf(&b, "grid=%dx%d damping=%.4f strength=%.0f\n", cfg.Cols, cfg.Rows, cfg.Damping, cfg.ImpulseStrength)
	fmt.Fprintf(&b, "ticks=%d energy=%.3f\n", s.Ticks(), s.Energy())
	fmt.Fprintf(&b, "height[min/avg/max]=%.2f/%.2f/%.2f\n", minV, sum/float64(len(grid.Front())), maxV)
	for _, p := range s.Parameters().Params {
		fmt.Fprintf(&b, "param %s=%s\n", p.Key, p.Value)
	}
	return b.String()
}

// CopyReport places the report on the system clipboard.
func CopyReport(s *sim.Sim) error {
	return clipboard.WriteAll(BuildReport(s))
}
