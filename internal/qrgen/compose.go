package qrgen

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
)

// Composer rasterizes module grids to images, overlaying an optional
// centered logo.
//
// The logo only covers modules visually; the pixels underneath are not
// cleared or moved, so recovering the covered data is entirely the
// error-correction level's job. Use EstimateCoverage to check whether a
// scale stays within that budget.
type Composer struct {
	// BoxSize is the rendered size of one module in pixels.
	// Zero picks a default of 10.
	BoxSize int

	// Logo is the overlay image. Nil disables the overlay.
	Logo image.Image

	// LogoScale is the logo footprint as a fraction of the image side.
	// Zero picks DefaultLogoScale.
	LogoScale float64
}

// Render draws the grid at BoxSize pixels per module and pastes the logo,
// if any, centered on top.
func (c *Composer) Render(grid [][]bool) (image.Image, error) {
	n := len(grid)
	if n == 0 {
		return nil, errors.New("empty module grid")
	}

	box := c.BoxSize
	if box <= 0 {
		box = 10
	}
	side := n * box

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	dark := image.NewUniform(color.Black)
	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			if grid[r][col] {
				rect := image.Rect(col*box, r*box, (col+1)*box, (r+1)*box)
				draw.Draw(img, rect, dark, image.Point{}, draw.Src)
			}
		}
	}

	if c.Logo != nil {
		scale := c.LogoScale
		if scale <= 0 {
			scale = DefaultLogoScale
		}
		maxSide := int(float64(side) * scale)
		logo := fitLogo(c.Logo, maxSide, maxSide)
		lb := logo.Bounds()
		off := image.Pt((side-lb.Dx())/2, (side-lb.Dy())/2)
		draw.Draw(img, image.Rectangle{Min: off, Max: off.Add(lb.Size())}, logo, lb.Min, draw.Over)
	}

	return img, nil
}

// fitLogo scales an image down to fit within maxW x maxH, preserving the
// aspect ratio. Images already within the bounds are returned unchanged;
// logos are never enlarged.
func fitLogo(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	ratio := float64(w) / float64(h)
	if float64(maxW)/float64(maxH) > ratio {
		// Height is the limiting factor
		w = int(float64(maxH) * ratio)
		h = maxH
	} else {
		// Width is the limiting factor
		h = int(float64(maxW) / ratio)
		w = maxW
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	// Catmull-Rom gives high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// PNGDataURI encodes an image as a base64 PNG data URI suitable for an
// SVG image element.
func PNGDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
