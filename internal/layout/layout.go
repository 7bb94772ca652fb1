package layout

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates layout parameters that cannot produce a
// printable grid, such as zero rows or cells that do not fit on the page.
var ErrConfiguration = errors.New("invalid layout configuration")

// Grid describes how QR cells are arranged on a page.
//
// All lengths share the unit of the page dimensions (millimeters for the
// standard A4 sheet). A Grid is computed once per run from configuration
// and never mutated afterwards.
type Grid struct {
	// PageWidth and PageHeight are the full page dimensions.
	PageWidth  float64
	PageHeight float64

	// Margin is the blank border on all four page edges.
	Margin float64

	// Gutter is the spacing between adjacent cells.
	Gutter float64

	// Rows and Cols define the cell grid inside the margins.
	Rows int
	Cols int
}

// Cell is one QR position, mapped to its origin and size on a page.
// Cells are derived deterministically from a Grid and never mutated.
type Cell struct {
	// Page is the 0-indexed page the cell belongs to.
	Page int

	// Row and Col are the cell's 0-indexed position within its page.
	Row int
	Col int

	// X and Y are the cell origin on the page.
	X float64
	Y float64

	// Width and Height are the cell dimensions.
	Width  float64
	Height float64
}

// Validate checks that the grid parameters can produce cells with positive
// dimensions. All failures wrap ErrConfiguration.
func (g Grid) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: grid must have positive rows and columns, got %dx%d", ErrConfiguration, g.Rows, g.Cols)
	}
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return fmt.Errorf("%w: page dimensions must be positive, got %gx%g", ErrConfiguration, g.PageWidth, g.PageHeight)
	}
	if g.Margin < 0 || g.Gutter < 0 {
		return fmt.Errorf("%w: margin and gutter must not be negative, got %g and %g", ErrConfiguration, g.Margin, g.Gutter)
	}
	w, h := g.cellSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %d columns x %d rows do not fit on a %gx%g page with margin %g and gutter %g",
			ErrConfiguration, g.Cols, g.Rows, g.PageWidth, g.PageHeight, g.Margin, g.Gutter)
	}
	return nil
}

func (g Grid) cellSize() (w, h float64) {
	usableW := g.PageWidth - 2*g.Margin - float64(g.Cols-1)*g.Gutter
	usableH := g.PageHeight - 2*g.Margin - float64(g.Rows-1)*g.Gutter
	return usableW / float64(g.Cols), usableH / float64(g.Rows)
}

// CellSize returns the computed dimensions of a single cell.
func (g Grid) CellSize() (w, h float64, err error) {
	if err := g.Validate(); err != nil {
		return 0, 0, err
	}
	w, h = g.cellSize()
	return w, h, nil
}

// PerPage returns the number of cells on one page.
func (g Grid) PerPage() int {
	return g.Rows * g.Cols
}

// Pages returns the number of pages needed to place n items.
// Zero items need zero pages; that is not an error.
func (g Grid) Pages(n int) (int, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	per := g.PerPage()
	return (n + per - 1) / per, nil
}

// Cell maps a 0-based item index to its page, row, column and origin.
//
// Item i lands on page i/(Rows*Cols); within the page it fills row-major
// order, so origins grow by Width+Gutter along a row and by Height+Gutter
// down a column.
func (g Grid) Cell(i int) (Cell, error) {
	if err := g.Validate(); err != nil {
		return Cell{}, err
	}
	if i < 0 {
		return Cell{}, fmt.Errorf("%w: negative item index %d", ErrConfiguration, i)
	}
	w, h := g.cellSize()
	per := g.PerPage()
	k := i % per
	row := k / g.Cols
	col := k % g.Cols
	return Cell{
		Page:   i / per,
		Row:    row,
		Col:    col,
		X:      g.Margin + float64(col)*(w+g.Gutter),
		Y:      g.Margin + float64(row)*(h+g.Gutter),
		Width:  w,
		Height: h,
	}, nil
}

// Cells maps item indices 0 through n-1 to their cells.
func (g Grid) Cells(n int) ([]Cell, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	cells := make([]Cell, n)
	for i := range cells {
		cell, err := g.Cell(i)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}
	return cells, nil
}
