// Package layout computes where QR cells sit on a printed page.
//
// A Grid holds the page dimensions, margin, gutter and the requested
// rows x columns. From it the package derives the cell size, the number
// of pages a batch needs, and the (page, row, column, origin) for every
// item index:
//
//	g := layout.Grid{PageWidth: 210, PageHeight: 297, Margin: 10, Rows: 5, Cols: 4}
//	pages, _ := g.Pages(45)   // 3 pages of 20 cells
//	cell, _ := g.Cell(4)      // page 0, row 1, column 0
//
// Layouts that cannot fit their cells (zero rows, margins larger than the
// page, ...) fail Validate with an error wrapping ErrConfiguration.
// A partially filled last page is allowed and leaves its remaining cells
// empty.
package layout
