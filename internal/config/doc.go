// Package config provides configuration management for the sheet
// generator.
//
// Settings are read from an optional YAML sidecar file (qr_config.yaml by
// convention) on top of defaults, then overridden by command-line flags:
//
//	settings, err := config.Load("qr_config.yaml")
//	// 4x5 grid on A4, 10mm margin, level-H error correction
//
// A missing file silently yields DefaultSettings(), so the tool runs
// without any configuration at all.
//
// Validate rejects settings the layout engine cannot satisfy before any
// work starts; ToGrid, ToLabelConfig and ToOutputConfig hand the relevant
// slices of configuration to the packages that consume them.
package config
