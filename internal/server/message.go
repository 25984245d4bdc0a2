package server

import (
	"fmt"

	"wavesphere/internal/sim"
)

// Frame is the per-tick state pushed to every connected client. Heights is
// the full row-major field, boundary rows included.
type Frame struct {
	Type    string    `json:"type"`
	Tick    uint64    `json:"tick"`
	Cols    int       `json:"cols"`
	Rows    int       `json:"rows"`
	Heights []float32 `json:"heights"`
}

// GestureMessage is an inbound pointer event. X and Y are view-space
// coordinates normalized so the sphere has unit radius.
type GestureMessage struct {
	Type    string  `json:"type"`
	Pointer int     `json:"pointer"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

const (
	msgFrame        = "frame"
	msgGestureBegin = "begin"
	msgGestureMove  = "move"
	msgGestureEnd   = "end"
)

// Event converts the wire message into a simulation gesture event.
func (m GestureMessage) Event() (sim.Event, error) {
	switch m.Type {
	case msgGestureBegin:
		return sim.GestureBegin{Pointer: m.Pointer, X: m.X, Y: m.Y}, nil
	case msgGestureMove:
		return sim.GestureMove{Pointer: m.Pointer, X: m.X, Y: m.Y}, nil
	case msgGestureEnd:
		return sim.GestureEnd{Pointer: m.Pointer}, nil
	default:
		return nil, fmt.Errorf("server: unknown gesture type %q", m.Type)
	}
}
