// Package model defines the core data structures shared by the sheet
// pipeline.
//
// # Payload and QRItem
//
// A Payload is one string to encode. A QRItem pairs a payload with its
// rendered graphic and optional label text:
//
//	payloads := model.Sequence(20) // QR-1 ... QR-20
//
// # Labels
//
// LabelConfig turns a format with {num} and {payload} placeholders into
// per-item label text:
//
//	cfg := model.LabelConfig{Format: "{num}: {payload}"}
//	cfg.Label(3, "https://example.com") // "3: https://example.com"
//
// # Output naming
//
// OutputConfig computes per-page output paths, either from an explicit
// {page} placeholder or by suffixing -2, -3, ... for runs that need more
// than one page.
package model
