package app

import (
	"strings"
	"testing"

	"wavesphere/internal/sim"
)

func TestBuildReportMentionsConfigAndState(t *testing.T) {
	s, err := sim.New(sim.DefaultConfig())
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	s.Injector().InjectPoint(10, 10, 400)
	s.Step()

	report := BuildReport(s)
	for _, want := range []string{"grid=256x128", "damping=0.9850", "ticks=1", "param damping", "param impulse_strength"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "energy=0.000") {
		t.Fatalf("report shows a dead field after injection:\n%s", report)
	}
}
