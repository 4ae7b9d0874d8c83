package panel

import (
	"image"

	"github.com/go-drift/exoclock/pkg/errors"
)

// MaxColumns bounds the derived grid width.
const MaxColumns = 5

// Default pixel sizes.
const (
	DefaultCellSize     = 320
	DefaultHeaderHeight = 48
	minCellSize         = 32
)

// Layout places faces on a grid of square cells. Each cell is CellSize
// pixels square plus a TitleBand above it for the face title. The panel
// title occupies HeaderHeight pixels above the grid.
type Layout struct {
	Rows         int
	Columns      int
	CellSize     int
	TitleBand    int
	HeaderHeight int
}

// DefaultLayout returns a grid for n faces with at most MaxColumns
// columns; ten faces give two rows of five.
func DefaultLayout(n int) Layout {
	rows, cols := Grid(n, 0, 0)
	return Layout{
		Rows:         rows,
		Columns:      cols,
		CellSize:     DefaultCellSize,
		TitleBand:    DefaultCellSize / 10,
		HeaderHeight: DefaultHeaderHeight,
	}
}

// Grid fills in whichever of rows and columns is zero so that n faces fit.
func Grid(n, rows, columns int) (int, int) {
	n = max(n, 1)
	switch {
	case rows > 0 && columns > 0:
		return rows, columns
	case rows > 0:
		return rows, ceilDiv(n, rows)
	case columns > 0:
		return ceilDiv(n, columns), columns
	default:
		columns = min(n, MaxColumns)
		return ceilDiv(n, columns), columns
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// WithCellSize returns l with the given cell size and a title band scaled
// to match.
func (l Layout) WithCellSize(px int) Layout {
	l.CellSize = px
	l.TitleBand = px / 10
	return l
}

// Validate reports a configuration error if the layout cannot hold n faces.
func (l Layout) Validate(n int) error {
	const op = "panel.Layout.Validate"
	switch {
	case l.Rows <= 0 || l.Columns <= 0:
		return errors.Config(op, "grid %dx%d must have positive rows and columns", l.Rows, l.Columns)
	case l.Rows*l.Columns < n:
		return errors.Config(op, "grid %dx%d cannot hold %d clocks", l.Rows, l.Columns, n)
	case l.CellSize < minCellSize:
		return errors.Config(op, "cell size %d is below the minimum of %d pixels", l.CellSize, minCellSize)
	case l.TitleBand < 0 || l.TitleBand >= l.CellSize:
		return errors.Config(op, "title band %d must be in [0, %d)", l.TitleBand, l.CellSize)
	case l.HeaderHeight < 0:
		return errors.Config(op, "header height %d is negative", l.HeaderHeight)
	}
	return nil
}

// Bounds returns the size of the whole panel image.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Columns*l.CellSize, l.HeaderHeight+l.Rows*l.rowHeight())
}

// Header returns the rectangle of the panel title.
func (l Layout) Header() image.Rectangle {
	return image.Rect(0, 0, l.Columns*l.CellSize, l.HeaderHeight)
}

// CellRect returns the rectangle of the i-th face, filled row by row,
// including its title band.
func (l Layout) CellRect(i int) image.Rectangle {
	row, col := i/l.Columns, i%l.Columns
	x := col * l.CellSize
	y := l.HeaderHeight + row*l.rowHeight()
	return image.Rect(x, y, x+l.CellSize, y+l.rowHeight())
}

func (l Layout) rowHeight() int {
	return l.CellSize + l.TitleBand
}
