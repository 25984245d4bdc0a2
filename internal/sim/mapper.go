package sim

import (
	"math"

	"wavesphere/internal/core"
)

// Mapper converts between continuous spherical angles and discrete grid
// indices. Theta is longitude in [0, 2π) on the periodic column axis; phi is
// colatitude in [0, π] on the bounded row axis.
type Mapper struct {
	grid *core.HeightGrid
}

// NewMapper binds a mapper to a grid.
func NewMapper(g *core.HeightGrid) Mapper {
	return Mapper{grid: g}
}

// AngleToIndex maps angles to a grid cell. The column is wrapped onto
// [0, cols); the row is clamped to [0, rows-1], so boundary rows are
// reachable. Impulse writers use AngleToInteriorIndex instead.
func (m Mapper) AngleToIndex(theta, phi float64) (col, row int) {
	cols := m.grid.Cols()
	rows := m.grid.Rows()
	col = m.grid.WrapCol(int(math.Floor(theta / (2 * math.Pi) * float64(cols))))
	row = clampInt(int(math.Floor(phi/math.Pi*float64(rows))), 0, rows-1)
	return col, row
}

// AngleToInteriorIndex maps angles to a grid cell with the row clamped to the
// interior band [1, rows-2], keeping writes off the fixed boundary rows.
func (m Mapper) AngleToInteriorIndex(theta, phi float64) (col, row int) {
	col, row = m.AngleToIndex(theta, phi)
	return col, clampInt(row, 1, m.grid.Rows()-2)
}

// Height reads the displacement at a cell.
func (m Mapper) Height(col, row int) float32 {
	return m.grid.At(col, row)
}

// GradientAt samples the local height gradient by forward finite difference
// against the next wrapped column and next clamped row. Renderers turn this
// into shading normals; the simulator itself never calls it.
func (m Mapper) GradientAt(col, row int) (dCol, dRow float32) {
	h := m.grid.At(col, row)
	nextCol := m.grid.WrapCol(col + 1)
	nextRow := row + 1
	if nextRow > m.grid.Rows()-1 {
		nextRow = m.grid.Rows() - 1
	}
	dCol = m.grid.At(nextCol, row) - h
	dRow = m.grid.At(col, nextRow) - h
	return dCol, dRow
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
