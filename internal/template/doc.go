// Package template fills SVG page documents with QR graphics.
//
// Two substitution modes are supported, plus a generated fallback:
//
//   - Single-item templates carry one element with id="qr-slot" (and
//     optionally a text element with id="qr-label"). The template is
//     cloned once per cell, the clone's slot and label are substituted,
//     and the clone is translated (and scaled, when the template declares
//     its own size) to the cell.
//   - Multi-slot templates carry pre-positioned slots, id="qr-slot-1"
//     through id="qr-slot-N". Item i fills slot i; leftover slots on a
//     partial last page are blanked.
//   - BuildSheet generates a page from scratch: white background, the
//     graphics at their computed cells, optional dashed cut guides and
//     corner crop marks.
//
// Substitution works on the template text itself rather than on a parsed
// DOM, so unknown attributes, namespaces and structure survive untouched.
// Parsing a template never mutates it; each fill returns a new document,
// which keeps pages independent.
//
// A template without any graphic slot fails with ErrTemplateFormat. A
// multi-slot template with fewer slots than a page needs fails with
// ErrTemplateMismatch.
package template
