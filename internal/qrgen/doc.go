// Package qrgen turns payload strings into QR graphics ready for page
// injection.
//
// Encoding itself is delegated to github.com/skip2/go-qrcode; this package
// wraps the encoder's module grid in two model.Graphic implementations:
//
//   - Vector draws the grid as SVG rectangles, scaled into a cell. This is
//     the default and keeps pages fully vector.
//   - Raster embeds a PNG rendered by Composer, which is how logo overlays
//     are produced: the grid is drawn at a fixed box size, the logo is
//     fitted and pasted centered, and the result travels as a base64
//     data URI.
//
// # Logo coverage
//
// A centered logo hides modules, and a QR code only survives that up to
// its error-correction capacity. EstimateCoverage counts the hidden data
// modules for a given scale, and MaxLogoScale searches for the largest
// scale that keeps a requested share of the capacity in reserve:
//
//	grid, _ := qrgen.Encode("https://example.com", qrcode.Highest)
//	scale, _ := qrgen.MaxLogoScale(grid, qrcode.Highest, 15, 0.05, 0.6, 0.01)
package qrgen
