package ioutils

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ImageService loads and prepares logo images for compositing.
//
// PNG, JPEG and GIF logos are decoded directly; SVG logos are rasterized
// with oksvg at a caller-provided pixel budget so the compositor only ever
// deals with raster images.
//
// Example:
//
//	svc := ioutils.NewImageService()
//	logo, err := svc.LoadLogo(ctx, "logo.svg", 1024)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// LoadLogo reads a logo image from disk.
//
// Files ending in .svg are rasterized to at most maxPx pixels on their
// longer side, preserving the aspect ratio. Everything else is decoded
// with the registered image decoders.
func (s *ImageService) LoadLogo(ctx context.Context, path string, maxPx int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return s.renderSVG(path, maxPx, maxPx)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", path, err)
	}
	return img, nil
}

// renderSVG rasterizes an SVG file, preserving its aspect ratio within the
// max constraints.
func (s *ImageService) renderSVG(path string, maxW, maxH int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("parse svg logo %s: %w", path, err)
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = 100, 100
	}

	ratio := vw / vh
	w := maxW
	h := int(float64(w) / ratio)
	if h > maxH {
		h = maxH
		w = int(float64(h) * ratio)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
