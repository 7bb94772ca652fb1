package model

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Payload is a single string to encode, such as a URL or an ID.
// Payloads are immutable once read.
type Payload string

// Sequence generates n placeholder payloads named QR-1 through QR-n.
// Used when the caller asks for a count instead of supplying real data.
func Sequence(n int) []Payload {
	if n <= 0 {
		return nil
	}
	payloads := make([]Payload, n)
	for i := range payloads {
		payloads[i] = Payload(fmt.Sprintf("QR-%d", i+1))
	}
	return payloads
}

// Graphic renders an SVG fragment that fills the given rectangle on a page.
type Graphic interface {
	Fragment(x, y, w, h float64) string
}

// QRItem pairs a payload with its rendered graphic and optional label.
// An item is created per payload and consumed once when injected into a
// page document.
type QRItem struct {
	// Payload is the encoded string.
	Payload Payload

	// Number is the item's 1-indexed position in the batch.
	Number int

	// Label is the text printed next to the code. Empty means no label.
	Label string

	// Graphic renders the QR fragment for a cell or slot.
	Graphic Graphic
}

// LabelConfig controls label text per item.
//
// The Format supports placeholders that are replaced with actual values:
//   - {num} - the item's 1-indexed number in the batch
//   - {payload} - the encoded string
//
// An empty Format disables labels entirely.
type LabelConfig struct {
	Format string
}

// Label computes the label text for one item.
func (c LabelConfig) Label(num int, p Payload) string {
	if c.Format == "" {
		return ""
	}
	s := strings.ReplaceAll(c.Format, "{num}", strconv.Itoa(num))
	s = strings.ReplaceAll(s, "{payload}", string(p))
	return s
}

// OutputConfig controls where page documents are written.
//
// The SVGPattern may contain a {page} placeholder. Without one, a single
// page uses the pattern verbatim and later pages get a -<page> suffix
// inserted before the extension, so "out/codes.svg" becomes
// "out/codes-2.svg" for page two.
type OutputConfig struct {
	SVGPattern string
}

// PagePath computes the output path for one page. Pages are 1-indexed.
func (c OutputConfig) PagePath(page, total int) string {
	if strings.Contains(c.SVGPattern, "{page}") {
		return strings.ReplaceAll(c.SVGPattern, "{page}", strconv.Itoa(page))
	}
	if total <= 1 || page == 1 {
		return c.SVGPattern
	}
	ext := filepath.Ext(c.SVGPattern)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(c.SVGPattern, ext), page, ext)
}
