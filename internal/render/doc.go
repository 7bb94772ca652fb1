// Package render converts assembled SVG page documents to PDF.
//
// Each page is rasterized with oksvg/rasterx at the configured resolution
// and embedded as a full-page PNG in the output document, one PDF page per
// SVG page. Page dimensions stay in millimeters end to end, so a 210x297
// sheet prints as true A4.
package render
