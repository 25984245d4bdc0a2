package sim

import "wavesphere/internal/core"

// Simulator advances a heightfield one discrete step per tick. Simulated time
// is coupled to the tick rate; there is no sub-stepping and no variable
// timestep.
type Simulator struct {
	damping float32
}

// NewSimulator constructs a simulator with the given damping factor. The
// value is a precondition established by Config.Validate, not re-checked per
// step.
func NewSimulator(damping float64) *Simulator {
	return &Simulator{damping: float32(damping)}
}

// Damping returns the current decay factor.
func (w *Simulator) Damping() float64 { return float64(w.damping) }

// SetDamping replaces the decay factor. The caller keeps it inside (0, 1).
func (w *Simulator) SetDamping(d float64) { w.damping = float32(d) }

// Step computes the next field state. For every interior cell the new value
// is damping * (average of the eight front-buffer neighbors - back-buffer
// value at the cell), written into the back buffer in place; the back buffer
// is only ever read at the cell being written, so no scratch copy is needed.
// The neighbor sum accumulates in float64 so the average of equal neighbor
// values is exact. Columns wrap; rows 0 and rows-1 are never touched and stay
// at zero. The final Swap makes the freshly computed buffer the readable
// front.
func (w *Simulator) Step(g *core.HeightGrid) {
	cols := g.Cols()
	rows := g.Rows()
	src := g.Front()
	dst := g.Back()
	damping := float64(w.damping)

	for row := 1; row <= rows-2; row++ {
		base := row * cols
		up := base - cols
		down := base + cols
		for col := 0; col < cols; col++ {
			left := col - 1
			if left < 0 {
				left = cols - 1
			}
			right := col + 1
			if right == cols {
				right = 0
			}
			sum := float64(src[up+left]) + float64(src[up+col]) + float64(src[up+right]) +
				float64(src[base+left]) + float64(src[base+right]) +
				float64(src[down+left]) + float64(src[down+col]) + float64(src[down+right])
			dst[base+col] = float32(damping * (sum/8 - float64(dst[base+col])))
		}
	}
	g.Swap()
}
