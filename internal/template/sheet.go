package template

import (
	"fmt"
	"math"
	"strings"

	"github.com/solvberg/qrsheet/internal/layout"
	"github.com/solvberg/qrsheet/internal/model"
)

// SheetOptions control the generated page document used when no user
// template is supplied.
type SheetOptions struct {
	// CutGuides draws a dashed rectangle around every cell.
	CutGuides bool

	// CropMarks draws short corner marks outside every cell.
	CropMarks bool
}

const (
	guideStroke = 0.25
	guideDash   = "2,2"
	markStroke  = 0.4
)

// BuildSheet assembles one page document by placing each item's graphic
// at its cell. Guides and marks are drawn for the full grid so a partial
// last page still cuts cleanly; only the filled cells get graphics.
func BuildSheet(grid layout.Grid, pageCells []layout.Cell, items []model.QRItem, opts SheetOptions) string {
	var sb strings.Builder
	writeSVGOpen(&sb, grid.PageWidth, grid.PageHeight)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)

	if opts.CutGuides {
		for _, c := range pageCells {
			fmt.Fprintf(&sb,
				`<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#000000" stroke-width="%gmm" stroke-dasharray="%s"/>`,
				fmtNum(c.X), fmtNum(c.Y), fmtNum(c.Width), fmtNum(c.Height), guideStroke, guideDash)
		}
	}

	for i, item := range items {
		if i >= len(pageCells) {
			break
		}
		c := pageCells[i]
		sb.WriteString(item.Graphic.Fragment(c.X, c.Y, c.Width, c.Height))
		if item.Label != "" {
			writeLabel(&sb, c, item.Label)
		}
	}

	if opts.CropMarks {
		for _, c := range pageCells {
			writeCropMarks(&sb, c)
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// writeLabel centers the label inside the cell's bottom quiet zone, where
// the QR graphic carries no modules.
func writeLabel(sb *strings.Builder, c layout.Cell, label string) {
	size := math.Min(3, c.Height*0.08)
	x := c.X + c.Width/2
	y := c.Y + c.Height - size*0.4
	fmt.Fprintf(sb,
		`<text x="%s" y="%s" font-family="sans-serif" font-size="%s" text-anchor="middle" fill="#000000">%s</text>`,
		fmtNum(x), fmtNum(y), fmtNum(size), escapeText(label))
}

// writeCropMarks draws the eight corner marks around one cell.
func writeCropMarks(sb *strings.Builder, c layout.Cell) {
	markLen := math.Min(7, math.Min(c.Width, c.Height)*0.2)
	inset := markLen * 0.2
	x1, y1 := c.X, c.Y
	x2, y2 := c.X+c.Width, c.Y+c.Height

	line := func(ax, ay, bx, by float64) {
		fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#000000" stroke-width="%gmm"/>`,
			fmtNum(ax), fmtNum(ay), fmtNum(bx), fmtNum(by), markStroke)
	}

	// top-left
	line(x1-markLen, y1, x1+inset, y1)
	line(x1, y1-markLen, x1, y1+inset)
	// top-right
	line(x2-inset, y1, x2+markLen, y1)
	line(x2, y1-markLen, x2, y1+inset)
	// bottom-left
	line(x1-markLen, y2, x1+inset, y2)
	line(x1, y2-inset, x1, y2+markLen)
	// bottom-right
	line(x2-inset, y2, x2+markLen, y2)
	line(x2, y2-inset, x2, y2+markLen)
}

// writeSVGOpen emits the root element for a page document. Dimensions are
// in millimeters; the xlink namespace is declared for cloned template
// content that still uses xlink:href.
func writeSVGOpen(sb *strings.Builder, w, h float64) {
	fmt.Fprintf(sb,
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%smm" height="%smm" viewBox="0 0 %s %s">`,
		fmtNum(w), fmtNum(h), fmtNum(w), fmtNum(h))
}
