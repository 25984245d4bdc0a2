package sim

import (
	"fmt"

	"wavesphere/internal/core"
)

// Sim is one self-contained surface simulation: the heightfield, the wave
// stepper, the impulse injector and the gesture machine, owned together so
// callers can run any number of independent instances. All mutation happens
// on the caller's execution context, interleaved strictly between ticks;
// nothing here locks or spawns goroutines.
//
// View-space positions in dispatched events are normalized to a unit sphere
// radius; front-ends divide pixel coordinates by the on-screen radius.
type Sim struct {
	cfg      Config
	grid     *core.HeightGrid
	mapper   Mapper
	wave     *Simulator
	injector *Injector
	machine  *Machine

	ticks uint64
}

// New validates the configuration and allocates the simulation. The grid is
// allocated once, zeroed, and never resized.
func New(cfg Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid := core.NewHeightGrid(cfg.Cols, cfg.Rows)
	mapper := NewMapper(grid)
	injector := NewInjector(grid, mapper, cfg.ImpulseStrength, cfg.PointFalloff, cfg.PathFalloff)
	return &Sim{
		cfg:      cfg,
		grid:     grid,
		mapper:   mapper,
		wave:     NewSimulator(cfg.Damping),
		injector: injector,
		machine:  NewMachine(injector, 1, cfg.DrawableRadiusMultiplier),
	}, nil
}

// Name identifies the simulation.
func (s *Sim) Name() string { return "wavesphere" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return s.grid.Size() }

// Config returns the construction-time configuration.
func (s *Sim) Config() Config { return s.cfg }

// Grid exposes the heightfield for bulk consumers.
func (s *Sim) Grid() *core.HeightGrid { return s.grid }

// Mapper exposes the angle/index mapping.
func (s *Sim) Mapper() Mapper { return s.mapper }

// Machine exposes the gesture machine so front-ends can install their angle
// resolver, rotation sink and tap listeners.
func (s *Sim) Machine() *Machine { return s.machine }

// Injector exposes the impulse injector for callers that bypass gestures,
// such as scripted replays and tests.
func (s *Sim) Injector() *Injector { return s.injector }

// Step advances the simulation exactly one tick. Any injection dispatched
// before this call is visible to it, since injections write the front buffer
// and the step reads the front buffer for its neighbor sums.
func (s *Sim) Step() {
	s.wave.Step(s.grid)
	s.ticks++
}

// Dispatch routes one interaction event through the gesture machine.
func (s *Sim) Dispatch(ev Event) {
	s.machine.Dispatch(ev)
}

// Ticks returns the number of steps taken since construction or Reset.
func (s *Sim) Ticks() uint64 { return s.ticks }

// Reset zeroes the field and the tick counter. Gesture and stroke state is
// left to the machine; an active drag simply continues on the flat surface.
func (s *Sim) Reset() {
	s.grid.Clear()
	s.ticks = 0
}

// AngleToIndex maps angles to the grid cell under them.
func (s *Sim) AngleToIndex(theta, phi float64) (col, row int) {
	return s.mapper.AngleToIndex(theta, phi)
}

// Height samples the displacement under the given angles.
func (s *Sim) Height(theta, phi float64) float32 {
	col, row := s.mapper.AngleToIndex(theta, phi)
	return s.mapper.Height(col, row)
}

// HeightAt reads the displacement at a grid cell.
func (s *Sim) HeightAt(col, row int) float32 {
	return s.mapper.Height(col, row)
}

// GradientAt samples the local height gradient at a grid cell.
func (s *Sim) GradientAt(col, row int) (dCol, dRow float32) {
	return s.mapper.GradientAt(col, row)
}

// Energy returns the total squared displacement of the readable field. With
// damping below one and no injections it never increases.
func (s *Sim) Energy() float64 {
	var total float64
	for _, v := range s.grid.Front() {
		total += float64(v) * float64(v)
	}
	return total
}

// Parameters reports the tunables shown on the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Params: []core.Parameter{
		{Key: "damping", Label: "Damping", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.4f", s.wave.Damping())},
		{Key: "impulse_strength", Label: "Impulse", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.0f", s.injector.Strength())},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "damping", Label: "Damping", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.001, Max: 0.999, HasMin: true, HasMax: true},
		{Key: "impulse_strength", Label: "Impulse", Type: core.ParamTypeFloat, Step: 25, Min: 25, Max: 2000, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a tunable after construction. Values that would
// violate the simulation's preconditions are rejected.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "damping":
		if value <= 0 || value >= 1 {
			return false
		}
		s.wave.SetDamping(value)
		return true
	case "impulse_strength":
		if value <= 0 {
			return false
		}
		s.injector.SetStrength(value)
		return true
	}
	return false
}
