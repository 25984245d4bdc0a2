package server

import (
	"encoding/json"
	"testing"

	"wavesphere/internal/sim"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Cols = 16
	cfg.Rows = 8
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	return New(s, 60)
}

func TestGestureMessageEvent(t *testing.T) {
	cases := []struct {
		raw  string
		want sim.Event
	}{
		{`{"type":"begin","pointer":1,"x":0.2,"y":-0.1}`, sim.GestureBegin{Pointer: 1, X: 0.2, Y: -0.1}},
		{`{"type":"move","pointer":1,"x":0.3,"y":0.0}`, sim.GestureMove{Pointer: 1, X: 0.3}},
		{`{"type":"end","pointer":1}`, sim.GestureEnd{Pointer: 1}},
	}
	for _, tc := range cases {
		var msg GestureMessage
		if err := json.Unmarshal([]byte(tc.raw), &msg); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		ev, err := msg.Event()
		if err != nil {
			t.Fatalf("Event for %s: %v", tc.raw, err)
		}
		if ev != tc.want {
			t.Fatalf("event for %s = %#v, want %#v", tc.raw, ev, tc.want)
		}
	}
}

func TestGestureMessageRejectsUnknownType(t *testing.T) {
	if _, err := (GestureMessage{Type: "wiggle"}).Event(); err == nil {
		t.Fatal("expected an error for an unknown gesture type")
	}
}

func TestFrameSnapshotsHeights(t *testing.T) {
	sv := newTestServer(t)
	sv.sim.Injector().InjectPoint(3, 3, 100)

	frame := sv.frame()
	if frame.Cols != 16 || frame.Rows != 8 {
		t.Fatalf("frame dims = %dx%d, want 16x8", frame.Cols, frame.Rows)
	}
	if got := frame.Heights[3*16+3]; got != 100 {
		t.Fatalf("frame height at impulse = %v, want 100", got)
	}

	// Later ticks must not mutate an already captured frame.
	sv.sim.Step()
	sv.sim.Step()
	if got := frame.Heights[3*16+3]; got != 100 {
		t.Fatalf("captured frame changed after stepping: %v", got)
	}
}

func TestDrainEventsAppliesPendingGestures(t *testing.T) {
	sv := newTestServer(t)
	sv.events <- sim.GestureBegin{Pointer: 7, X: 0.1, Y: 0.1}
	sv.drainEvents()

	if got := sv.sim.Machine().State(7); got != sim.Drawing {
		t.Fatalf("pointer state after drain = %v, want drawing", got)
	}
}

func TestRemoteTapInjectsImpulse(t *testing.T) {
	sv := newTestServer(t)
	// Dead center of the view resolves onto the sphere surface.
	sv.events <- sim.GestureBegin{Pointer: 1, X: 0, Y: 0}
	sv.drainEvents()

	if sv.sim.Energy() == 0 {
		t.Fatal("expected a center tap to deform the field")
	}
}
