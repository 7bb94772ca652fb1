// Package ioutils provides file system and image loading utilities.
//
// # File operations
//
//	// Read payloads, one per line
//	lines, err := ioutils.ReadLines(ctx, "urls.txt", 0)
//
//	// Write a page document
//	err := ioutils.WriteFile(ctx, "out/sheet.svg", data)
//
//	// Ensure a directory exists
//	err := ioutils.EnsureDir("out")
//
// # Logo loading
//
// The ImageService decodes raster logos and rasterizes SVG logos:
//
//	svc := ioutils.NewImageService()
//	logo, err := svc.LoadLogo(ctx, "logo.png", 1024)
package ioutils
