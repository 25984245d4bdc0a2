//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"wavesphere/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Stats is what the overlay needs from a simulation.
type Stats interface {
	Parameters() core.ParameterSnapshot
	ParameterControls() []core.ParameterControl
	Ticks() uint64
	Energy() float64
}

// Overlay draws a text panel with simulation state and keyboard-adjustable
// parameters. Toggle with H, pick a row with up/down, adjust with left/right.
type Overlay struct {
	stats  Stats
	setter core.FloatParameterSetter

	controls []core.ParameterControl
	selected int
	visible  bool
}

// NewOverlay constructs an overlay for the provided simulation.
func NewOverlay(stats Stats) *Overlay {
	o := &Overlay{stats: stats, visible: true}
	o.controls = stats.ParameterControls()
	if setter, ok := stats.(core.FloatParameterSetter); ok {
		o.setter = setter
	}
	return o
}

// Update handles overlay key bindings.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.visible = !o.visible
	}
	if !o.visible || len(o.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		o.selected = (o.selected + 1) % len(o.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		o.selected = (o.selected + len(o.controls) - 1) % len(o.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		o.adjust(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		o.adjust(1)
	}
}

func (o *Overlay) adjust(direction int) {
	if o.setter == nil || o.selected >= len(o.controls) {
		return
	}
	ctrl := o.controls[o.selected]
	if ctrl.Type != core.ParamTypeFloat {
		return
	}
	current, ok := o.currentValue(ctrl.Key)
	if !ok {
		return
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target := current + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if math.Abs(target-current) < 1e-9 {
		return
	}
	o.setter.SetFloatParameter(ctrl.Key, target)
}

func (o *Overlay) currentValue(key string) (float64, bool) {
	for _, p := range o.stats.Parameters().Params {
		if p.Key != key {
			continue
		}
		parsed, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// Draw paints the overlay text onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}
	face := basicfont.Face7x13
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	y := lineHeight
	text.Draw(screen, fmt.Sprintf("tick %d  energy %.1f", o.stats.Ticks(), o.stats.Energy()), face, panelPadding, y, bright)

	params := map[string]string{}
	for _, p := range o.stats.Parameters().Params {
		params[p.Key] = p.Value
	}
	for i, ctrl := range o.controls {
		y += lineHeight
		col := dim
		marker := "  "
		if i == o.selected {
			col = bright
			marker = "> "
		}
		value, ok := params[ctrl.Key]
		if !ok {
			value = "--"
		}
		text.Draw(screen, marker+ctrl.Label+" "+value, face, panelPadding, y, col)
	}

	y += lineHeight
	text.Draw(screen, "H hud  space pause  N step  R reset  C report", face, panelPadding, y, dim)
}

const (
	panelPadding = 8
	lineHeight   = 16
)
