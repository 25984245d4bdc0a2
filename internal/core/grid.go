package core

import "fmt"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// HeightGrid stores a double-buffered 2D field of displacement values in
// row-major order. Columns wrap toroidally; rows 0 and rows-1 are fixed
// boundary rows that stay at zero for the lifetime of the grid.
//
// The front buffer always holds the most recent state: impulses write into
// it and the wave step reads neighbor values from it. The back buffer holds
// the state one tick older and is the step's in-place destination. Swap
// toggles the two roles; it never copies cells.
type HeightGrid struct {
	cols, rows int
	buf        [2][]float32
	front      int
}

// NewHeightGrid allocates a zeroed grid. Dimensions are immutable afterwards.
// A grid needs at least one column and three rows (two boundary rows plus one
// interior row); anything smaller is a programming error, not a runtime
// condition, so it panics.
func NewHeightGrid(cols, rows int) *HeightGrid {
	if cols < 1 || rows < 3 {
		panic(fmt.Sprintf("core: invalid grid dimensions %dx%d (need cols >= 1, rows >= 3)", cols, rows))
	}
	n := cols * rows
	return &HeightGrid{
		cols: cols,
		rows: rows,
		buf:  [2][]float32{make([]float32, n), make([]float32, n)},
	}
}

// Cols returns the column (longitude) count.
func (g *HeightGrid) Cols() int { return g.cols }

// Rows returns the row (colatitude) count.
func (g *HeightGrid) Rows() int { return g.rows }

// Size returns the grid dimensions.
func (g *HeightGrid) Size() Size { return Size{W: g.cols, H: g.rows} }

// Index returns the linear slice index for (col, row).
func (g *HeightGrid) Index(col, row int) int { return row*g.cols + col }

// WrapCol wraps a column index onto the periodic longitude axis.
func (g *HeightGrid) WrapCol(col int) int {
	return (col%g.cols + g.cols) % g.cols
}

// At reads the front buffer. The row must already lie in [0, rows-1] and the
// column in [0, cols); callers wrap columns via WrapCol or the mapper.
func (g *HeightGrid) At(col, row int) float32 {
	return g.buf[g.front][row*g.cols+col]
}

// Set writes the front buffer. Same index contract as At.
func (g *HeightGrid) Set(col, row int, v float32) {
	g.buf[g.front][row*g.cols+col] = v
}

// Front exposes the most recent state for bulk consumers (renderers, wire
// encoders). Callers must not resize the slice.
func (g *HeightGrid) Front() []float32 { return g.buf[g.front] }

// Back exposes the older buffer the simulator overwrites in place.
func (g *HeightGrid) Back() []float32 { return g.buf[g.front^1] }

// Swap toggles the front/back roles. Called once per simulation step after
// the back buffer has been filled with the freshly computed state.
func (g *HeightGrid) Swap() { g.front ^= 1 }

// Clear zeroes both buffers.
func (g *HeightGrid) Clear() {
	for i := range g.buf {
		for j := range g.buf[i] {
			g.buf[i][j] = 0
		}
	}
}
