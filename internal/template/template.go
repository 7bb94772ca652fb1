package template

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/solvberg/qrsheet/internal/layout"
	"github.com/solvberg/qrsheet/internal/model"
)

var (
	// ErrTemplateFormat indicates a template without any usable graphic
	// slot. Nothing is written when parsing fails with it.
	ErrTemplateFormat = errors.New("template has no usable qr slot")

	// ErrTemplateMismatch indicates a multi-slot template with fewer
	// slots than a page requires.
	ErrTemplateMismatch = errors.New("template slot count does not match the layout")
)

// Slot conventions: a graphic slot is any element carrying id="qr-slot"
// (or id="qr-slot-<k>" in multi-slot templates) with width and height
// attributes; a label slot is a text element carrying id="qr-label" (or
// id="qr-label-<k>").
var (
	slotOpenRE = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9:_-]*)\b[^>]*\bid\s*=\s*"qr-slot(-[0-9]+)?"[^>]*?(/?)>`)
	labelRE    = regexp.MustCompile(`(?s)<text\b[^>]*\bid\s*=\s*"qr-label(-[0-9]+)?"[^>]*?(?:/>|>(.*?)</text\s*>)`)

	viewBoxRE = regexp.MustCompile(`viewBox\s*=\s*"\s*[0-9.eE+-]+\s+[0-9.eE+-]+\s+([0-9.eE+-]+)\s+([0-9.eE+-]+)\s*"`)
	widthRE   = regexp.MustCompile(`width\s*=\s*"([0-9.]+)`)
	heightRE  = regexp.MustCompile(`height\s*=\s*"([0-9.]+)`)
)

// Template is a parsed SVG template with recognized graphic and label
// slots. The parsed text is never mutated; every fill produces a fresh
// document, so pages cannot contaminate each other.
type Template struct {
	text   string
	width  float64 // document size, 0 when the template does not declare one
	height float64
	slots  []element
	labels []element
}

// element is one recognized slot, recorded as a byte span of the original
// text plus the attributes needed for substitution.
type element struct {
	start, end int
	open       string // opening tag markup
	tag        string
	index      int // parsed from the id suffix, -1 when absent
	x, y, w, h float64
}

// Parse analyzes template markup and locates its slots.
//
// Templates without a single graphic slot fail with ErrTemplateFormat,
// as do graphic slots lacking width or height attributes. A missing label
// slot is fine; labels are simply omitted.
func Parse(text string) (*Template, error) {
	t := &Template{text: text}
	t.width, t.height = DocSize(text)

	for _, m := range slotOpenRE.FindAllStringSubmatchIndex(text, -1) {
		el, err := parseSlot(text, m)
		if err != nil {
			return nil, err
		}
		t.slots = append(t.slots, el)
	}
	if len(t.slots) == 0 {
		return nil, fmt.Errorf("%w: no element with a qr-slot id", ErrTemplateFormat)
	}

	for _, m := range labelRE.FindAllStringSubmatchIndex(text, -1) {
		el := parseLabel(text, m)
		if insideAny(el, t.slots) {
			continue
		}
		t.labels = append(t.labels, el)
	}

	orderByIndex(t.slots)
	orderByIndex(t.labels)
	return t, nil
}

// parseSlot resolves one graphic slot match into an element, extending
// the span over an immediate closing tag or nested content when the slot
// element is not self-closing.
func parseSlot(text string, m []int) (element, error) {
	start, end := m[0], m[1]
	tag := text[m[2]:m[3]]
	index := -1
	if m[4] >= 0 {
		index, _ = strconv.Atoi(text[m[4]+1 : m[5]])
	}
	selfClosing := m[6] >= 0 && text[m[6]:m[7]] == "/"
	open := text[start:end]

	if !selfClosing {
		closed, err := findElementEnd(text, end, tag)
		if err != nil {
			return element{}, fmt.Errorf("%w: unterminated %s slot", ErrTemplateFormat, tag)
		}
		end = closed
	}

	el := element{start: start, end: end, open: open, tag: tag, index: index}
	el.x = attrFloat(open, "x")
	el.y = attrFloat(open, "y")
	el.w = attrFloat(open, "width")
	el.h = attrFloat(open, "height")
	if el.w <= 0 || el.h <= 0 {
		return element{}, fmt.Errorf("%w: slot %s needs positive width and height attributes", ErrTemplateFormat, slotName(index))
	}
	return el, nil
}

func parseLabel(text string, m []int) element {
	start, end := m[0], m[1]
	index := -1
	if m[2] >= 0 {
		index, _ = strconv.Atoi(text[m[2]+1 : m[3]])
	}
	full := text[start:end]
	open := full
	if !strings.HasSuffix(full, "/>") {
		if i := strings.IndexByte(full, '>'); i >= 0 {
			open = full[:i+1]
		}
	} else {
		// Normalize a self-closing label to an open/close pair.
		open = full[:len(full)-2] + ">"
	}
	return element{start: start, end: end, open: open, tag: "text", index: index}
}

// findElementEnd scans past nested same-name elements to the closing tag
// that matches the element opened just before pos.
func findElementEnd(text string, pos int, tag string) (int, error) {
	re := regexp.MustCompile(`(?s)<` + regexp.QuoteMeta(tag) + `\b[^>]*?(/?)>|</` + regexp.QuoteMeta(tag) + `\s*>`)
	depth := 1
	for _, m := range re.FindAllStringSubmatchIndex(text[pos:], -1) {
		if text[pos+m[0]+1] == '/' {
			depth--
			if depth == 0 {
				return pos + m[1], nil
			}
			continue
		}
		if !(m[2] >= 0 && text[pos+m[2]:pos+m[3]] == "/") {
			depth++
		}
	}
	return 0, fmt.Errorf("no closing tag for <%s>", tag)
}

func insideAny(el element, slots []element) bool {
	for _, s := range slots {
		if el.start >= s.start && el.end <= s.end {
			return true
		}
	}
	return false
}

// orderByIndex sorts slots by their id suffix when every slot carries
// one; otherwise document order is kept.
func orderByIndex(els []element) {
	for _, el := range els {
		if el.index < 0 {
			return
		}
	}
	sort.SliceStable(els, func(i, j int) bool { return els[i].index < els[j].index })
}

func slotName(index int) string {
	if index < 0 {
		return `"qr-slot"`
	}
	return fmt.Sprintf(`"qr-slot-%d"`, index)
}

func attrFloat(tag, name string) float64 {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*=\s*"(-?[0-9.]+)"`)
	m := re.FindStringSubmatch(tag)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return f
}

// Multi reports whether the template carries pre-positioned slots for
// several items on one page.
func (t *Template) Multi() bool {
	return len(t.slots) > 1
}

// SlotCount returns the number of graphic slots.
func (t *Template) SlotCount() int {
	return len(t.slots)
}

// Size returns the template document dimensions, or zeros when the
// template declares neither a viewBox nor width/height.
func (t *Template) Size() (w, h float64) {
	return t.width, t.height
}

// FillMulti substitutes items into the template's pre-positioned slots,
// item i into slot i in fill order, and returns the filled document.
//
// Items beyond the slot count fail with ErrTemplateMismatch. Leftover
// slots on a partial page are blanked so no placeholder markup survives
// into the output.
func (t *Template) FillMulti(items []model.QRItem) (string, error) {
	if len(items) > len(t.slots) {
		return "", fmt.Errorf("%w: page carries %d items, template has %d slots", ErrTemplateMismatch, len(items), len(t.slots))
	}

	var edits []edit
	for i, s := range t.slots {
		repl := "<g/>"
		if i < len(items) {
			repl = items[i].Graphic.Fragment(s.x, s.y, s.w, s.h)
		}
		edits = append(edits, edit{s.start, s.end, repl})
	}
	for i, l := range t.labels {
		content := ""
		if i < len(items) {
			content = escapeText(items[i].Label)
		}
		edits = append(edits, edit{l.start, l.end, l.open + content + "</" + l.tag + ">"})
	}
	return splice(t.text, edits), nil
}

// FillSingle clones the template once per item, fills the clone's slot and
// label, translates it to the item's cell and assembles the clones into
// one page document of the given dimensions.
//
// When the template declares its own size, clones are also scaled to the
// cell; otherwise they are only translated.
func (t *Template) FillSingle(items []model.QRItem, cells []layout.Cell, pageW, pageH float64) (string, error) {
	if len(items) > len(cells) {
		return "", fmt.Errorf("%w: %d items for %d cells", ErrTemplateMismatch, len(items), len(cells))
	}

	var sb strings.Builder
	writeSVGOpen(&sb, pageW, pageH)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)

	s := t.slots[0]
	for i, item := range items {
		cell := cells[i]

		edits := []edit{{s.start, s.end, item.Graphic.Fragment(s.x, s.y, s.w, s.h)}}
		if len(t.labels) > 0 {
			l := t.labels[0]
			edits = append(edits, edit{l.start, l.end, l.open + escapeText(item.Label) + "</" + l.tag + ">"})
		}
		clone := stripOuterSVG(splice(t.text, edits))

		transform := fmt.Sprintf("translate(%s,%s)", fmtNum(cell.X), fmtNum(cell.Y))
		if t.width > 0 && t.height > 0 {
			transform += fmt.Sprintf(" scale(%s,%s)", fmtNum(cell.Width/t.width), fmtNum(cell.Height/t.height))
		}
		fmt.Fprintf(&sb, `<g transform="%s">%s</g>`, transform, clone)
	}

	sb.WriteString(`</svg>`)
	return sb.String(), nil
}

// DocSize extracts document dimensions from a viewBox, falling back to
// width/height attributes. Returns zeros when neither is present.
func DocSize(text string) (w, h float64) {
	if m := viewBoxRE.FindStringSubmatch(text); m != nil {
		w, _ = strconv.ParseFloat(m[1], 64)
		h, _ = strconv.ParseFloat(m[2], 64)
		return w, h
	}
	mw := widthRE.FindStringSubmatch(text)
	mh := heightRE.FindStringSubmatch(text)
	if mw != nil && mh != nil {
		w, _ = strconv.ParseFloat(mw[1], 64)
		h, _ = strconv.ParseFloat(mh[1], 64)
	}
	return w, h
}

// stripOuterSVG returns the content between the root svg element's tags.
func stripOuterSVG(text string) string {
	i := strings.Index(text, "<svg")
	if i < 0 {
		return text
	}
	j := strings.IndexByte(text[i:], '>')
	end := strings.LastIndex(text, "</svg>")
	if j < 0 || end < i+j+1 {
		return text
	}
	return text[i+j+1 : end]
}

// edit is one pending substitution of a byte span.
type edit struct {
	start, end int
	repl       string
}

// splice applies non-overlapping edits to text in one pass.
func splice(text string, edits []edit) string {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var sb strings.Builder
	pos := 0
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		sb.WriteString(text[pos:e.start])
		sb.WriteString(e.repl)
		pos = e.end
	}
	sb.WriteString(text[pos:])
	return sb.String()
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func fmtNum(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
