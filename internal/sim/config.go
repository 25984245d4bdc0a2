package sim

import (
	"fmt"
	"strconv"
)

// Config controls a surface simulation. All values are fixed at construction;
// damping and impulse strength may later be adjusted through the explicit
// parameter setters on Sim, never through package state.
type Config struct {
	Cols int
	Rows int

	// Damping is the multiplicative decay applied each step. Must lie in
	// (0, 1); values >= 1 let the field grow without bound.
	Damping float64

	// ImpulseStrength is the displacement written at the center of an
	// injected impulse.
	ImpulseStrength float64

	// PointFalloff and PathFalloff scale the displacement written at the
	// eight neighbors of a tap impulse and of each drag path cell.
	PointFalloff float64
	PathFalloff  float64

	// DrawableRadiusMultiplier scales the sphere radius when classifying a
	// gesture start as draw-on-surface versus rotate-view.
	DrawableRadiusMultiplier float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Cols:                     256,
		Rows:                     128,
		Damping:                  0.985,
		ImpulseStrength:          400,
		PointFalloff:             0.7,
		PathFalloff:              0.6,
		DrawableRadiusMultiplier: 1.5,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys are ignored; malformed values keep the default.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["damping"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Damping = parsed
		}
	}
	if v, ok := cfg["impulse_strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.ImpulseStrength = parsed
		}
	}
	if v, ok := cfg["point_falloff"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.PointFalloff = parsed
		}
	}
	if v, ok := cfg["path_falloff"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.PathFalloff = parsed
		}
	}
	if v, ok := cfg["drawable_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.DrawableRadiusMultiplier = parsed
		}
	}
	return c
}

// Validate reports the first configuration value the simulation cannot run
// with. The simulation must never start in an invalid configuration, so
// callers treat a non-nil error as fatal.
func (c Config) Validate() error {
	if c.Cols < 1 {
		return fmt.Errorf("sim: cols must be >= 1, got %d", c.Cols)
	}
	if c.Rows < 3 {
		return fmt.Errorf("sim: rows must be >= 3, got %d", c.Rows)
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		return fmt.Errorf("sim: damping must lie in (0, 1), got %v", c.Damping)
	}
	if c.DrawableRadiusMultiplier <= 0 {
		return fmt.Errorf("sim: drawable radius multiplier must be > 0, got %v", c.DrawableRadiusMultiplier)
	}
	return nil
}
