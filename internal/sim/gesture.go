package sim

import "math"

// Event is a normalized interaction event dispatched into the gesture state
// machine. Positions are view-space coordinates relative to the sphere
// center, in the same units as the sphere radius.
type Event interface {
	pointer() int
}

// GestureBegin starts a gesture for a pointer.
type GestureBegin struct {
	Pointer int
	X, Y    float64
}

// GestureMove continues an active gesture.
type GestureMove struct {
	Pointer int
	X, Y    float64
}

// GestureEnd finishes a gesture unconditionally.
type GestureEnd struct {
	Pointer int
}

func (e GestureBegin) pointer() int { return e.Pointer }
func (e GestureMove) pointer() int  { return e.Pointer }
func (e GestureEnd) pointer() int   { return e.Pointer }

// GestureState classifies what an active pointer is doing.
type GestureState int

const (
	// Idle means no gesture is active for the pointer.
	Idle GestureState = iota
	// Rotating mutates only the external view rotation.
	Rotating
	// Drawing injects impulses into the grid through the injector.
	Drawing
)

// AngleResolver converts a view-space position into spherical angles. ok is
// false when the position misses the sphere surface.
type AngleResolver func(x, y float64) (theta, phi float64, ok bool)

// RotateFunc receives view-rotation deltas from Rotating gestures. The view
// rotation itself is owned by the front-end, not the simulation.
type RotateFunc func(dx, dy float64)

// Machine classifies gestures and routes them to the injector or to the
// external rotation sink. Classification happens once, at gesture start:
// a begin within drawableRadius of the sphere center draws on the surface,
// anything further out rotates the view. A gesture never switches class
// mid-flight.
type Machine struct {
	injector *Injector

	resolve AngleResolver
	rotate  RotateFunc
	onTap   []func()

	drawableRadius float64

	pointers map[int]*pointerState
}

type pointerState struct {
	state GestureState
	x, y  float64
}

// NewMachine constructs a state machine. radius is the sphere radius in view
// space; multiplier widens the drawable disc beyond it.
func NewMachine(injector *Injector, radius, multiplier float64) *Machine {
	return &Machine{
		injector:       injector,
		drawableRadius: radius * multiplier,
		pointers:       make(map[int]*pointerState),
	}
}

// SetAngleResolver installs the view-space to angle projection supplied by
// the front-end.
func (m *Machine) SetAngleResolver(r AngleResolver) { m.resolve = r }

// SetRotateFunc installs the external view-rotation sink.
func (m *Machine) SetRotateFunc(r RotateFunc) { m.rotate = r }

// OnFreshTap registers a listener fired exactly once per Drawing gesture, at
// its begin. Audio and haptic collaborators hook in here; their absence or
// failure never reaches the simulation.
func (m *Machine) OnFreshTap(fn func()) {
	if fn != nil {
		m.onTap = append(m.onTap, fn)
	}
}

// State reports the pointer's current gesture state.
func (m *Machine) State(pointer int) GestureState {
	if p, ok := m.pointers[pointer]; ok {
		return p.state
	}
	return Idle
}

// Dispatch feeds one event through the machine. Callers invoke it on the
// simulation's execution context, between frame ticks.
func (m *Machine) Dispatch(ev Event) {
	switch e := ev.(type) {
	case GestureBegin:
		m.begin(e)
	case GestureMove:
		m.move(e)
	case GestureEnd:
		m.end(e)
	}
}

func (m *Machine) begin(e GestureBegin) {
	p := &pointerState{x: e.X, y: e.Y}
	m.pointers[e.Pointer] = p

	if math.Hypot(e.X, e.Y) <= m.drawableRadius {
		p.state = Drawing
		for _, fn := range m.onTap {
			fn()
		}
		if m.resolve != nil {
			if theta, phi, ok := m.resolve(e.X, e.Y); ok {
				m.injector.BeginStroke(e.Pointer, theta, phi)
			}
		}
		return
	}
	p.state = Rotating
}

func (m *Machine) move(e GestureMove) {
	p, ok := m.pointers[e.Pointer]
	if !ok || p.state == Idle {
		return
	}
	dx := e.X - p.x
	dy := e.Y - p.y
	p.x, p.y = e.X, e.Y

	switch p.state {
	case Rotating:
		if m.rotate != nil {
			m.rotate(dx, dy)
		}
	case Drawing:
		if m.resolve != nil {
			if theta, phi, ok := m.resolve(e.X, e.Y); ok {
				m.injector.ContinueStroke(e.Pointer, theta, phi)
			}
		}
	}
}

func (m *Machine) end(e GestureEnd) {
	if p, ok := m.pointers[e.Pointer]; ok && p.state == Drawing {
		m.injector.EndStroke(e.Pointer)
	}
	delete(m.pointers, e.Pointer)
}
