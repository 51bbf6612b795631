package contour

import (
	"fmt"
)

// Grid is a dense, immutable 2D array of elevations. The interior
// Width x Height samples belong to the tile itself; an optional border of
// Border() cells on each side holds samples borrowed from neighboring tiles
// (see Assemble). Grids produced by Decode have no border.
type Grid struct {
	width  int // interior width
	height int // interior height
	border int
	data   []float32 // (height+2*border) rows of (width+2*border) samples
}

// BoundsError reports an At access outside a grid's valid extent. It wraps
// ErrGridBounds and is delivered by panic: out-of-range access is a bug in
// the caller, not a recoverable runtime condition.
type BoundsError struct {
	Row, Col int
	Grid     *Grid
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("contour: grid access out of bounds: (%d,%d) on %dx%d grid with border %d",
		e.Row, e.Col, e.Grid.height, e.Grid.width, e.Grid.border)
}

func (e *BoundsError) Unwrap() error { return ErrGridBounds }

// NewGrid builds a border-free grid from rectangular row-major elevation
// slices, deep-copying the input so the grid stays immutable. Empty input
// yields a zero-size grid; ragged rows fail with ErrNonRectangular.
func NewGrid(values [][]float32) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return &Grid{}, nil
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g := newGrid(w, h, 0)
	for r, row := range values {
		copy(g.data[r*w:(r+1)*w], row)
	}
	return g, nil
}

func newGrid(w, h, border int) *Grid {
	return &Grid{
		width:  w,
		height: h,
		border: border,
		data:   make([]float32, (w+2*border)*(h+2*border)),
	}
}

// Width returns the interior width in samples, excluding any border.
func (g *Grid) Width() int { return g.width }

// Height returns the interior height in samples, excluding any border.
func (g *Grid) Height() int { return g.height }

// Border returns the border depth in cells (0 or 1).
func (g *Grid) Border() int { return g.border }

// Empty reports whether the grid has no interior samples.
func (g *Grid) Empty() bool { return g.width == 0 || g.height == 0 }

// At returns the elevation at (row, col). Interior samples live at
// [0,Height)x[0,Width); with a border of b, the valid extent widens to
// [-b,Height+b)x[-b,Width+b). Access outside that extent panics with a
// *BoundsError.
func (g *Grid) At(row, col int) float32 {
	if row < -g.border || row >= g.height+g.border || col < -g.border || col >= g.width+g.border {
		panic(&BoundsError{Row: row, Col: col, Grid: g})
	}
	return g.data[(row+g.border)*(g.width+2*g.border)+(col+g.border)]
}

// set writes a sample during construction. Grids are immutable once returned
// to a caller, so this is never invoked afterwards.
func (g *Grid) set(row, col int, v float32) {
	g.data[(row+g.border)*(g.width+2*g.border)+(col+g.border)] = v
}

// clampRow restricts row to the interior extent.
func (g *Grid) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.height {
		return g.height - 1
	}
	return row
}

// clampCol restricts col to the interior extent.
func (g *Grid) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.width {
		return g.width - 1
	}
	return col
}
