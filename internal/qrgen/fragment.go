package qrgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Vector renders a module grid as plain SVG rectangles, scaled into the
// target rectangle. Used when no logo overlay is configured.
type Vector struct {
	Grid [][]bool
}

// Fragment implements model.Graphic.
func (v Vector) Fragment(x, y, w, h float64) string {
	n := len(v.Grid)
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<g transform="translate(%s,%s) scale(%s,%s)">`,
		fmtNum(x), fmtNum(y), fmtNum(w/float64(n)), fmtNum(h/float64(n)))
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="#ffffff"/>`, n, n)
	for r, row := range v.Grid {
		for c, dark := range row {
			if dark {
				fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="1" height="1" fill="#000000"/>`, c, r)
			}
		}
	}
	sb.WriteString(`</g>`)
	return sb.String()
}

// Raster embeds a pre-rendered PNG, typically a QR graphic with a
// composited logo, as a data-URI image element.
type Raster struct {
	DataURI string
}

// Fragment implements model.Graphic. The plain href attribute needs no
// namespace declaration, so the fragment is valid in any host document.
func (r Raster) Fragment(x, y, w, h float64) string {
	return fmt.Sprintf(`<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet" href="%s"/>`,
		fmtNum(x), fmtNum(y), fmtNum(w), fmtNum(h), r.DataURI)
}

// fmtNum formats a coordinate with up to three decimals and no trailing
// zeros, keeping the generated markup compact.
func fmtNum(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
