package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/solvberg/qrsheet/internal/layout"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Rows != 5 || s.Columns != 4 {
		t.Errorf("default grid = %dx%d, want 5x4", s.Rows, s.Columns)
	}
	if s.PageWidthMM != 210 || s.PageHeightMM != 297 {
		t.Errorf("default page = %gx%g, want A4", s.PageWidthMM, s.PageHeightMM)
	}
	if s.ECCLevel != "H" {
		t.Errorf("default ecc level = %q, want H", s.ECCLevel)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Rows != 5 {
		t.Errorf("missing file should yield defaults, got rows = %d", s.Rows)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr_config.yaml")
	content := "rows: 3\ncolumns: 2\nlogo: assets/logo.png\nlogo_scale: 0.2\ncut_guides: false\ndata: https://example.com\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Rows != 3 || s.Columns != 2 {
		t.Errorf("grid = %dx%d, want 3x2", s.Rows, s.Columns)
	}
	if s.Logo != "assets/logo.png" || s.LogoScale != 0.2 {
		t.Errorf("logo = %q at %g, want assets/logo.png at 0.2", s.Logo, s.LogoScale)
	}
	if s.CutGuides {
		t.Error("cut_guides: false not honored")
	}
	if s.Data != "https://example.com" {
		t.Errorf("data = %q", s.Data)
	}
	// Unset keys keep their defaults.
	if s.MarginMM != 10 {
		t.Errorf("margin = %g, want default 10", s.MarginMM)
	}
	if !s.CropMarks {
		t.Error("crop_marks default lost")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr_config.yaml")
	if err := os.WriteFile(path, []byte("rows: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "qr_config.yaml")

	s := DefaultSettings()
	s.Rows = 7
	s.LabelFormat = "{num}"
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Rows != 7 {
		t.Errorf("rows = %d, want 7", loaded.Rows)
	}
	if loaded.LabelFormat != "{num}" {
		t.Errorf("label format = %q, want {num}", loaded.LabelFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero rows", func(s *Settings) { s.Rows = 0 }},
		{"margin eats page", func(s *Settings) { s.MarginMM = 200 }},
		{"bad logo scale", func(s *Settings) { s.LogoScale = 1.5 }},
		{"zero box size", func(s *Settings) { s.BoxSize = 0 }},
		{"zero dpi", func(s *Settings) { s.DPI = 0 }},
		{"bad ecc level", func(s *Settings) { s.ECCLevel = "X" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, layout.ErrConfiguration) {
				t.Errorf("Validate() = %v, want ErrConfiguration", err)
			}
		})
	}
}
