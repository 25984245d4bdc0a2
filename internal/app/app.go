//go:build ebiten

package app

import (
	"log"

	"wavesphere/internal/render"
	"wavesphere/internal/sim"
	"wavesphere/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mousePointer is the pointer id reserved for the mouse; touch ids are
// offset past it.
const mousePointer = 0

// Game adapts a surface simulation to the ebiten.Game interface: it captures
// pointer input, normalizes it into gesture events, advances the simulation
// once per tick and blits the shaded sphere.
type Game struct {
	sim     *sim.Sim
	view    *render.SphereView
	overlay *ui.Overlay

	img *ebiten.Image
	buf []byte

	ping *tapPing

	paused   bool
	tickOnce bool

	mouseDown bool
	touches   []ebiten.TouchID
}

// New constructs a Game for the provided simulation and wires the gesture
// machine to the view's picking and rotation.
func New(s *sim.Sim, window int, audioOn bool) *Game {
	view := render.NewSphereView(window)
	g := &Game{
		sim:     s,
		view:    view,
		overlay: ui.NewOverlay(s),
		img:     ebiten.NewImage(view.SizePx(), view.SizePx()),
	}

	machine := s.Machine()
	machine.SetAngleResolver(view.Pick)
	machine.SetRotateFunc(view.Rotate)

	if audioOn {
		p, err := newTapPing()
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			g.ping = p
			machine.OnFreshTap(p.Trigger)
		}
	}
	return g
}

// Update handles per-frame input and advances the simulation one tick.
// Injection happens before the step, so every gesture dispatched here is
// visible to this frame's wave update.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := CopyReport(g.sim); err != nil {
			log.Printf("clipboard copy failed: %v", err)
		}
	}

	g.dispatchMouse()
	g.dispatchTouches()

	if g.overlay != nil {
		g.overlay.Update()
	}

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) dispatchMouse() {
	px, py := ebiten.CursorPosition()
	x, y := g.view.Normalize(float64(px), float64(py))

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouseDown = true
		g.sim.Dispatch(sim.GestureBegin{Pointer: mousePointer, X: x, Y: y})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.mouseDown = false
		g.sim.Dispatch(sim.GestureEnd{Pointer: mousePointer})
	case g.mouseDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.sim.Dispatch(sim.GestureMove{Pointer: mousePointer, X: x, Y: y})
	}
}

func (g *Game) dispatchTouches() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		px, py := ebiten.TouchPosition(id)
		x, y := g.view.Normalize(float64(px), float64(py))
		g.sim.Dispatch(sim.GestureBegin{Pointer: int(id) + 1, X: x, Y: y})
	}

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		if inpututil.TouchPressDuration(id) > 1 {
			px, py := ebiten.TouchPosition(id)
			x, y := g.view.Normalize(float64(px), float64(py))
			g.sim.Dispatch(sim.GestureMove{Pointer: int(id) + 1, X: x, Y: y})
		}
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		g.sim.Dispatch(sim.GestureEnd{Pointer: int(id) + 1})
	}
}

// Draw renders the shaded sphere and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.buf = g.view.Shade(g.sim)
	g.img.WritePixels(g.buf)
	screen.DrawImage(g.img, nil)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.SizePx(), g.view.SizePx()
}
