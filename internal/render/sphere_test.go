package render

import (
	"math"
	"testing"

	"wavesphere/internal/sim"
)

func testSurface(t *testing.T) *sim.Sim {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Cols = 64
	cfg.Rows = 32
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	return s
}

func TestPickMissesOutsideDisc(t *testing.T) {
	v := NewSphereView(128)
	if _, _, ok := v.Pick(1.2, 0); ok {
		t.Fatal("pick outside the disc reported a hit")
	}
	if _, _, ok := v.Pick(0.9, 0.9); ok {
		t.Fatal("pick outside the disc reported a hit")
	}
}

func TestPickCenterHitsFacingPoint(t *testing.T) {
	v := NewSphereView(128)
	theta, phi, ok := v.Pick(0, 0)
	if !ok {
		t.Fatal("center pick missed")
	}
	// The unrotated view faces model +Z: longitude π/2, equator.
	if math.Abs(theta-math.Pi/2) > 1e-9 {
		t.Fatalf("theta = %v, want %v", theta, math.Pi/2)
	}
	if math.Abs(phi-math.Pi/2) > 1e-9 {
		t.Fatalf("phi = %v, want %v", phi, math.Pi/2)
	}
}

func TestPickFollowsYaw(t *testing.T) {
	v := NewSphereView(128)
	before, _, _ := v.Pick(0, 0)
	v.Rotate(0.2, 0)
	after, _, _ := v.Pick(0, 0)
	if before == after {
		t.Fatal("yaw rotation did not move the picked longitude")
	}
}

func TestNormalizeRoundTripsCenter(t *testing.T) {
	v := NewSphereView(200)
	x, y := v.Normalize(100, 100)
	if x != 0 || y != 0 {
		t.Fatalf("center normalized to (%v, %v)", x, y)
	}
	x, y = v.Normalize(100+v.radius, 100)
	if math.Abs(x-1) > 1e-9 || y != 0 {
		t.Fatalf("radius-east normalized to (%v, %v)", x, y)
	}
}

func TestShadeCoversBufferAndReactsToHeight(t *testing.T) {
	s := testSurface(t)
	v := NewSphereView(64)

	flat := make([]byte, len(v.Shade(s)))
	copy(flat, v.buf)
	if len(flat) != 64*64*4 {
		t.Fatalf("buffer length = %d", len(flat))
	}
	for i := 3; i < len(flat); i += 4 {
		if flat[i] != 255 {
			t.Fatalf("pixel %d not opaque", i/4)
		}
	}

	// Raise the region facing the camera and require the image to change.
	col, row := s.AngleToIndex(math.Pi/2, math.Pi/2)
	s.Injector().InjectPoint(col, row, 400)
	rippled := v.Shade(s)
	same := true
	for i := range rippled {
		if rippled[i] != flat[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("an injected impulse did not change the shaded image")
	}
}
