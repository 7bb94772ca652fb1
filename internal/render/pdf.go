package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const mmPerInch = 25.4

// Options configure rasterization and the PDF page size.
type Options struct {
	// DPI is the raster resolution in dots per inch. Zero picks 300.
	DPI float64

	// PageWidthMM and PageHeightMM are the page dimensions in millimeters.
	PageWidthMM  float64
	PageHeightMM float64
}

func (o Options) dpi() float64 {
	if o.DPI <= 0 {
		return 300
	}
	return o.DPI
}

// Rasterize parses an SVG document and renders it onto a white canvas
// sized for the configured page and resolution.
func Rasterize(svg []byte, opts Options) (image.Image, error) {
	dpi := opts.dpi()
	w := int(math.Round(opts.PageWidthMM / mmPerInch * dpi))
	h := int(math.Round(opts.PageHeightMM / mmPerInch * dpi))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%gmm at %g dpi", opts.PageWidthMM, opts.PageHeightMM, dpi)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	// The parser tolerates arbitrary text and yields an empty icon for
	// it. A real page always declares a viewBox.
	if len(icon.SVGPaths) == 0 && (icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0) {
		return nil, errors.New("parse svg: document has no drawable content")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// WritePDF converts page documents into a single PDF file, one page per
// document. Each page is rasterized and embedded as a full-page image.
func WritePDF(ctx context.Context, pages [][]byte, outPath string, opts Options) error {
	if len(pages) == 0 {
		return errors.New("no pages to convert")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: opts.PageWidthMM, Ht: opts.PageHeightMM},
	})

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		img, err := Rasterize(page, opts)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}

		pdf.AddPage()
		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, imgOpts, &buf)
		pdf.ImageOptions(name, 0, 0, opts.PageWidthMM, opts.PageHeightMM, false, imgOpts, 0, "")
	}

	return pdf.OutputFileAndClose(outPath)
}
