package sim

import "wavesphere/internal/core"

// Injector writes point and path perturbations into the grid front buffer and
// keeps per-pointer drag-continuity state so move events interpolate a
// continuous stroke between the last and current angles.
//
// Injections overwrite cells rather than accumulating, so repeating the same
// injection is idempotent.
type Injector struct {
	grid   *core.HeightGrid
	mapper Mapper

	strength     float32
	pointFalloff float32
	pathFalloff  float32

	strokes map[int]strokeCursor
}

type strokeCursor struct {
	theta float64
	phi   float64
}

// NewInjector constructs an injector over the given grid.
func NewInjector(g *core.HeightGrid, m Mapper, strength, pointFalloff, pathFalloff float64) *Injector {
	return &Injector{
		grid:         g,
		mapper:       m,
		strength:     float32(strength),
		pointFalloff: float32(pointFalloff),
		pathFalloff:  float32(pathFalloff),
		strokes:      make(map[int]strokeCursor),
	}
}

// Strength returns the configured impulse strength.
func (in *Injector) Strength() float64 { return float64(in.strength) }

// SetStrength replaces the impulse strength for subsequent injections.
func (in *Injector) SetStrength(s float64) { in.strength = float32(s) }

// InjectPoint overwrites the cell with the given strength and its eight
// neighbors with strength scaled by the point falloff. Neighbor columns wrap;
// neighbor rows clamp to the interior band [1, rows-2]. The row passed in
// must already lie in the interior band (mapped via AngleToInteriorIndex).
func (in *Injector) InjectPoint(col, row int, strength float32) {
	in.grid.Set(col, row, strength)
	in.stampNeighbors(col, row, strength*in.pointFalloff)
}

// InjectPath maps both angle pairs to interior indices and writes the
// interpolated stroke between them: the strength at each interpolated cell
// and the path falloff at its eight neighbors. Interpolation runs in index
// space, not along the great circle; the step count is the Chebyshev distance
// between the endpoint indices.
func (in *Injector) InjectPath(fromTheta, fromPhi, toTheta, toPhi float64, strength float32) {
	fromCol, fromRow := in.mapper.AngleToInteriorIndex(fromTheta, fromPhi)
	toCol, toRow := in.mapper.AngleToInteriorIndex(toTheta, toPhi)

	dCol := toCol - fromCol
	dRow := toRow - fromRow
	steps := absInt(dCol)
	if absInt(dRow) > steps {
		steps = absInt(dRow)
	}

	for s := 0; s <= steps; s++ {
		col := fromCol
		row := fromRow
		if steps > 0 {
			col = fromCol + (dCol*s+signHalf(dCol, steps))/steps
			row = fromRow + (dRow*s+signHalf(dRow, steps))/steps
		}
		col = in.grid.WrapCol(col)
		row = clampInt(row, 1, in.grid.Rows()-2)
		in.grid.Set(col, row, strength)
		in.stampNeighbors(col, row, strength*in.pathFalloff)
	}
}

// BeginStroke injects a tap impulse at the given angles and records them as
// the stroke origin for the pointer.
func (in *Injector) BeginStroke(pointer int, theta, phi float64) {
	col, row := in.mapper.AngleToInteriorIndex(theta, phi)
	in.InjectPoint(col, row, in.strength)
	in.strokes[pointer] = strokeCursor{theta: theta, phi: phi}
}

// ContinueStroke injects a path from the recorded angles to the given ones
// and advances the cursor. A move without a preceding BeginStroke degrades to
// a fresh stroke begin.
func (in *Injector) ContinueStroke(pointer int, theta, phi float64) {
	last, ok := in.strokes[pointer]
	if !ok {
		in.BeginStroke(pointer, theta, phi)
		return
	}
	in.InjectPath(last.theta, last.phi, theta, phi, in.strength)
	in.strokes[pointer] = strokeCursor{theta: theta, phi: phi}
}

// EndStroke drops the pointer's cursor. Grid state written during the stroke
// stays; only the continuity state is cleared.
func (in *Injector) EndStroke(pointer int) {
	delete(in.strokes, pointer)
}

// stampNeighbors overwrites the eight neighbors of (col, row), skipping the
// center cell itself. Columns wrap, rows clamp to the interior band, so near
// a boundary row a clamped neighbor may land back on an already-written cell
// and overwrite it; that matches the stylized impulse shape.
func (in *Injector) stampNeighbors(col, row int, value float32) {
	rows := in.grid.Rows()
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dc == 0 && dr == 0 {
				continue
			}
			c := in.grid.WrapCol(col + dc)
			r := clampInt(row+dr, 1, rows-2)
			in.grid.Set(c, r, value)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// signHalf biases integer interpolation so the division rounds to nearest
// instead of truncating toward zero.
func signHalf(delta, steps int) int {
	if delta < 0 {
		return -steps / 2
	}
	return steps / 2
}
