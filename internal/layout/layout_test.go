package layout

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestGridCellSize(t *testing.T) {
	g := Grid{PageWidth: 100, PageHeight: 100, Margin: 10, Gutter: 5, Rows: 3, Cols: 3}

	w, h, err := g.CellSize()
	if err != nil {
		t.Fatalf("CellSize() error = %v", err)
	}

	want := (100.0 - 2*10 - 2*5) / 3
	if math.Abs(w-want) > 1e-9 {
		t.Errorf("cell width = %v, want %v", w, want)
	}
	if math.Abs(h-want) > 1e-9 {
		t.Errorf("cell height = %v, want %v", h, want)
	}
}

func TestGridCellOrigin(t *testing.T) {
	g := Grid{PageWidth: 100, PageHeight: 100, Margin: 10, Gutter: 5, Rows: 3, Cols: 3}

	// The 5th item (index 4) sits on page 0, row 1, column 1.
	cell, err := g.Cell(4)
	if err != nil {
		t.Fatalf("Cell(4) error = %v", err)
	}

	if cell.Page != 0 || cell.Row != 1 || cell.Col != 1 {
		t.Errorf("Cell(4) = page %d row %d col %d, want page 0 row 1 col 1", cell.Page, cell.Row, cell.Col)
	}

	size := (100.0 - 2*10 - 2*5) / 3
	want := 10 + size + 5
	if math.Abs(cell.X-want) > 1e-9 {
		t.Errorf("Cell(4).X = %v, want %v", cell.X, want)
	}
	if math.Abs(cell.Y-want) > 1e-9 {
		t.Errorf("Cell(4).Y = %v, want %v", cell.Y, want)
	}
}

func TestGridPages(t *testing.T) {
	g := Grid{PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 5, Cols: 4}

	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{19, 1},
		{20, 1},
		{21, 2},
		{40, 2},
		{41, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			got, err := g.Pages(tt.n)
			if err != nil {
				t.Fatalf("Pages(%d) error = %v", tt.n, err)
			}
			if got != tt.want {
				t.Errorf("Pages(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestGridCellUniqueness(t *testing.T) {
	g := Grid{PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 5, Cols: 4}

	cells, err := g.Cells(45)
	if err != nil {
		t.Fatalf("Cells(45) error = %v", err)
	}
	if len(cells) != 45 {
		t.Fatalf("Cells(45) returned %d cells", len(cells))
	}

	seen := make(map[[3]int]bool)
	for i, c := range cells {
		key := [3]int{c.Page, c.Row, c.Col}
		if seen[key] {
			t.Errorf("item %d reuses page %d row %d col %d", i, c.Page, c.Row, c.Col)
		}
		seen[key] = true

		if c.Row < 0 || c.Row >= g.Rows || c.Col < 0 || c.Col >= g.Cols {
			t.Errorf("item %d has out-of-range position row %d col %d", i, c.Row, c.Col)
		}
	}
}

func TestGridSpacing(t *testing.T) {
	g := Grid{PageWidth: 100, PageHeight: 100, Margin: 10, Gutter: 5, Rows: 3, Cols: 3}

	cells, err := g.Cells(9)
	if err != nil {
		t.Fatalf("Cells(9) error = %v", err)
	}

	// Origins advance by exactly cell size + gutter along both axes.
	colStep := cells[1].X - cells[0].X
	if math.Abs(colStep-(cells[0].Width+g.Gutter)) > 1e-9 {
		t.Errorf("column spacing = %v, want %v", colStep, cells[0].Width+g.Gutter)
	}
	rowStep := cells[3].Y - cells[0].Y
	if math.Abs(rowStep-(cells[0].Height+g.Gutter)) > 1e-9 {
		t.Errorf("row spacing = %v, want %v", rowStep, cells[0].Height+g.Gutter)
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		g    Grid
	}{
		{"zero rows", Grid{PageWidth: 100, PageHeight: 100, Margin: 10, Rows: 0, Cols: 3}},
		{"negative cols", Grid{PageWidth: 100, PageHeight: 100, Margin: 10, Rows: 3, Cols: -1}},
		{"zero page", Grid{Rows: 1, Cols: 1}},
		{"negative margin", Grid{PageWidth: 100, PageHeight: 100, Margin: -1, Rows: 2, Cols: 2}},
		{"margin eats page", Grid{PageWidth: 50, PageHeight: 50, Margin: 30, Rows: 2, Cols: 2}},
		{"gutter eats page", Grid{PageWidth: 50, PageHeight: 50, Margin: 5, Gutter: 50, Rows: 2, Cols: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.g.Validate(); !errors.Is(err, ErrConfiguration) {
				t.Errorf("Validate() = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestGridValidateOK(t *testing.T) {
	g := Grid{PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 5, Cols: 4}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
