package sheet

import (
	"context"
	"fmt"
	"image"
	"os"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/solvberg/qrsheet/internal/config"
	ioutils "github.com/solvberg/qrsheet/internal/io"
	"github.com/solvberg/qrsheet/internal/layout"
	"github.com/solvberg/qrsheet/internal/model"
	"github.com/solvberg/qrsheet/internal/qrgen"
	"github.com/solvberg/qrsheet/internal/render"
	"github.com/solvberg/qrsheet/internal/template"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a build progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Builder coordinates a sheet run: it encodes payloads, lays out pages,
// writes the SVG documents and optionally converts them to a PDF.
type Builder struct {
	settings *config.Settings
	grid     layout.Grid
	images   *ioutils.ImageService

	tmpl  *template.Template
	logo  image.Image
	level qrcode.RecoveryLevel
	items []model.QRItem

	onProgress func(ProgressEvent)
}

// NewBuilder creates a new sheet Builder.
func NewBuilder(settings *config.Settings, onProgress func(ProgressEvent)) *Builder {
	return &Builder{
		settings:   settings,
		grid:       settings.ToGrid(),
		images:     ioutils.NewImageService(),
		onProgress: onProgress,
	}
}

// Initialize validates the configuration, loads the template and logo and
// encodes every payload. No files are written; Run does that.
func (b *Builder) Initialize(ctx context.Context, payloads []model.Payload) error {
	if err := b.settings.Validate(); err != nil {
		return err
	}

	if b.settings.TemplatePath != "" {
		if err := b.loadTemplate(); err != nil {
			return err
		}
	}

	if b.settings.Logo != "" {
		logo, err := b.images.LoadLogo(ctx, b.settings.Logo, 1024)
		if err != nil {
			return fmt.Errorf("load logo: %w", err)
		}
		b.logo = logo
	}

	level, err := qrgen.ParseLevel(b.settings.ECCLevel)
	if err != nil {
		return err
	}
	b.level = level

	return b.encodeItems(ctx, payloads)
}

// loadTemplate parses the template file and checks it against the grid.
func (b *Builder) loadTemplate() error {
	data, err := os.ReadFile(b.settings.TemplatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	tmpl, err := template.Parse(string(data))
	if err != nil {
		return err
	}

	b.tmpl = tmpl
	b.progress(ProgressEvent{
		Message: fmt.Sprintf("Loaded template %s (%d slots)", b.settings.TemplatePath, tmpl.SlotCount()),
		Level:   LevelVerbose,
	})
	return nil
}

// encodeItems encodes every payload into a QRItem with its graphic and
// label prepared.
func (b *Builder) encodeItems(ctx context.Context, payloads []model.Payload) error {
	labelCfg := b.settings.ToLabelConfig()

	for i, p := range payloads {
		if err := ctx.Err(); err != nil {
			return err
		}

		grid, err := qrgen.Encode(string(p), b.level)
		if err != nil {
			return err
		}

		if i == 0 && b.logo != nil {
			b.checkCoverage(grid)
		}

		graphic, err := b.graphic(grid)
		if err != nil {
			return fmt.Errorf("render %q: %w", p, err)
		}

		b.items = append(b.items, model.QRItem{
			Payload: p,
			Number:  i + 1,
			Label:   labelCfg.Label(i+1, p),
			Graphic: graphic,
		})
		b.progress(ProgressEvent{Message: fmt.Sprintf("Encoded %s", p), Level: LevelVerbose})
	}

	b.progress(ProgressEvent{Message: fmt.Sprintf("Encoded %d payloads", len(b.items)), Level: LevelInfo})
	return nil
}

// checkCoverage warns when the logo hides more modules than the
// error-correction level can recover. Codes in one batch share a version,
// so the first grid stands in for all of them.
func (b *Builder) checkCoverage(grid [][]bool) {
	capacity := qrgen.CapacityPercent(b.level)
	_, _, pct := qrgen.EstimateCoverage(grid, b.settings.LogoScale)
	if pct > capacity {
		msg := fmt.Sprintf("Logo covers %.1f%% of data modules, above the %.0f%% correction capacity; codes may not scan", pct, capacity)
		if max, err := qrgen.MaxLogoScale(grid, b.level, 5, 0.05, b.settings.LogoScale, 0.005); err == nil {
			msg += fmt.Sprintf(" (try logo-scale %.2f or lower)", max)
		}
		b.progress(ProgressEvent{Message: msg, Level: LevelWarning})
	} else {
		b.progress(ProgressEvent{
			Message: fmt.Sprintf("Logo covers %.1f%% of data modules (%.0f%% recoverable)", pct, capacity),
			Level:   LevelVerbose,
		})
	}
}

// graphic builds the SVG graphic for one module grid. Runs with a logo
// composite the modules and the overlay into a PNG; plain runs stay fully
// vector.
func (b *Builder) graphic(grid [][]bool) (model.Graphic, error) {
	if b.logo == nil {
		return qrgen.Vector{Grid: grid}, nil
	}

	composer := &qrgen.Composer{
		BoxSize:   b.settings.BoxSize,
		Logo:      b.logo,
		LogoScale: b.settings.LogoScale,
	}
	img, err := composer.Render(grid)
	if err != nil {
		return nil, err
	}
	uri, err := qrgen.PNGDataURI(img)
	if err != nil {
		return nil, err
	}
	return qrgen.Raster{DataURI: uri}, nil
}

// perPage returns the item capacity of one page. A multi-slot template
// with fewer slots than the grid has cells paginates at its slot count.
func (b *Builder) perPage() int {
	per := b.grid.PerPage()
	if b.tmpl != nil && b.tmpl.Multi() && b.tmpl.SlotCount() < per {
		per = b.tmpl.SlotCount()
	}
	return per
}

// pages returns the number of pages the initialized items need.
func (b *Builder) pages() int {
	if len(b.items) == 0 {
		return 0
	}
	per := b.perPage()
	return (len(b.items) + per - 1) / per
}

// Summary describes the initialized run for dry-run output.
func (b *Builder) Summary() []string {
	pages := b.pages()
	lines := []string{
		fmt.Sprintf("%d payloads on %d page(s), %d cells per page", len(b.items), pages, b.perPage()),
		fmt.Sprintf("page %gx%gmm, %dx%d grid, margin %gmm, gutter %gmm",
			b.grid.PageWidth, b.grid.PageHeight, b.grid.Rows, b.grid.Cols, b.grid.Margin, b.grid.Gutter),
	}
	out := b.settings.ToOutputConfig()
	for p := 1; p <= pages; p++ {
		lines = append(lines, fmt.Sprintf("page %d -> %s", p, out.PagePath(p, pages)))
	}
	if b.settings.PDF && pages > 0 {
		lines = append(lines, fmt.Sprintf("pdf -> %s", b.settings.OutPDF))
	}
	return lines
}

// Run writes the page documents and, when enabled, the PDF.
func (b *Builder) Run(ctx context.Context) error {
	perPage := b.perPage()
	pages := b.pages()
	if pages == 0 {
		b.progress(ProgressEvent{Message: "No payloads, nothing to write", Level: LevelInfo})
		return nil
	}

	pageCells, err := b.grid.Cells(perPage)
	if err != nil {
		return err
	}
	pageW, pageH := b.pageSize()
	out := b.settings.ToOutputConfig()

	var docs [][]byte
	for p := 0; p < pages; p++ {
		first := p * perPage
		last := first + perPage
		if last > len(b.items) {
			last = len(b.items)
		}
		pageItems := b.items[first:last]

		doc, err := b.buildPage(pageItems, pageCells, pageW, pageH)
		if err != nil {
			return err
		}

		path := out.PagePath(p+1, pages)
		if err := ioutils.WriteFile(ctx, path, []byte(doc)); err != nil {
			return fmt.Errorf("write page %d: %w", p+1, err)
		}
		docs = append(docs, []byte(doc))
		b.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s (%d codes)", path, len(pageItems)), Level: LevelSuccess})
	}

	if b.settings.PDF {
		opts := render.Options{DPI: b.settings.DPI, PageWidthMM: pageW, PageHeightMM: pageH}
		if err := render.WritePDF(ctx, docs, b.settings.OutPDF, opts); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		b.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s (%d pages)", b.settings.OutPDF, pages), Level: LevelSuccess})
	}

	return nil
}

// buildPage assembles one page document from its items.
func (b *Builder) buildPage(items []model.QRItem, pageCells []layout.Cell, pageW, pageH float64) (string, error) {
	switch {
	case b.tmpl == nil:
		opts := template.SheetOptions{CutGuides: b.settings.CutGuides, CropMarks: b.settings.CropMarks}
		return template.BuildSheet(b.grid, pageCells, items, opts), nil
	case b.tmpl.Multi():
		return b.tmpl.FillMulti(items)
	default:
		return b.tmpl.FillSingle(items, pageCells[:len(items)], pageW, pageH)
	}
}

// pageSize returns the page dimensions of the generated documents. A
// multi-slot template is the page, so its own size wins when it declares
// one.
func (b *Builder) pageSize() (w, h float64) {
	if b.tmpl != nil && b.tmpl.Multi() {
		if tw, th := b.tmpl.Size(); tw > 0 && th > 0 {
			return tw, th
		}
	}
	return b.grid.PageWidth, b.grid.PageHeight
}

func (b *Builder) progress(event ProgressEvent) {
	if b.onProgress != nil {
		b.onProgress(event)
	}
}
