package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/solvberg/qrsheet/internal/layout"
	"github.com/solvberg/qrsheet/internal/model"
	"github.com/solvberg/qrsheet/internal/qrgen"
)

// Settings holds all configuration options for a sheet run.
//
// The layout, QR and decoration fields live in the sidecar config file;
// the run parameters at the bottom come from command-line flags.
type Settings struct {
	// Page layout (millimeters)
	Rows         int     `yaml:"rows"`
	Columns      int     `yaml:"columns"`
	MarginMM     float64 `yaml:"margin"`
	GutterMM     float64 `yaml:"gutter"`
	PageWidthMM  float64 `yaml:"page_width"`
	PageHeightMM float64 `yaml:"page_height"`

	// QR rendering
	ECCLevel  string  `yaml:"ecc_level"`  // L, M, Q or H
	BoxSize   int     `yaml:"box_size"`   // pixels per module for raster fragments
	Logo      string  `yaml:"logo"`       // path to a logo image, empty disables
	LogoScale float64 `yaml:"logo_scale"` // logo footprint as a fraction of the code

	// Sheet decorations
	CutGuides   bool   `yaml:"cut_guides"`
	CropMarks   bool   `yaml:"crop_marks"`
	LabelFormat string `yaml:"label_format"` // {num} and {payload} placeholders

	// PDF conversion
	DPI float64 `yaml:"dpi"`

	// Data is the default payload used when neither a count nor a
	// payload file is given on the command line.
	Data string `yaml:"data"`

	// Run parameters, set from command-line flags.
	TemplatePath string `yaml:"-"`
	OutSVG       string `yaml:"-"`
	OutPDF       string `yaml:"-"`
	PDF          bool   `yaml:"-"`
}

// DefaultSettings returns settings with default values: a 4x5 grid on A4
// with a 10mm margin, level-H error correction and 300dpi PDF output.
func DefaultSettings() *Settings {
	return &Settings{
		Rows:         5,
		Columns:      4,
		MarginMM:     10,
		GutterMM:     0,
		PageWidthMM:  210,
		PageHeightMM: 297,

		ECCLevel:  "H",
		BoxSize:   10,
		LogoScale: qrgen.DefaultLogoScale,

		CutGuides: true,
		CropMarks: true,

		DPI: 300,

		OutSVG: "qr_sheet.svg",
		OutPDF: "qr_sheet.pdf",
		PDF:    true,
	}
}

// Load reads settings from a YAML file. A missing file is not an error;
// defaults are returned so the sidecar config stays optional.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings can drive a run. All failures wrap
// layout.ErrConfiguration.
func (s *Settings) Validate() error {
	if err := s.ToGrid().Validate(); err != nil {
		return err
	}
	if s.LogoScale <= 0 || s.LogoScale >= 1 {
		return fmt.Errorf("%w: logo scale %g outside (0, 1)", layout.ErrConfiguration, s.LogoScale)
	}
	if s.BoxSize <= 0 {
		return fmt.Errorf("%w: box size must be positive, got %d", layout.ErrConfiguration, s.BoxSize)
	}
	if s.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %g", layout.ErrConfiguration, s.DPI)
	}
	if _, err := qrgen.ParseLevel(s.ECCLevel); err != nil {
		return fmt.Errorf("%w: %v", layout.ErrConfiguration, err)
	}
	return nil
}

// ToGrid converts settings to a layout grid.
func (s *Settings) ToGrid() layout.Grid {
	return layout.Grid{
		PageWidth:  s.PageWidthMM,
		PageHeight: s.PageHeightMM,
		Margin:     s.MarginMM,
		Gutter:     s.GutterMM,
		Rows:       s.Rows,
		Cols:       s.Columns,
	}
}

// ToLabelConfig converts settings to a LabelConfig.
func (s *Settings) ToLabelConfig() model.LabelConfig {
	return model.LabelConfig{Format: s.LabelFormat}
}

// ToOutputConfig converts settings to an OutputConfig.
func (s *Settings) ToOutputConfig() model.OutputConfig {
	return model.OutputConfig{SVGPattern: s.OutSVG}
}
