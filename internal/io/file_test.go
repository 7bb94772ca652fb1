package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payloads.txt")
	content := "https://example.com/1\n\n  https://example.com/2  \n\nhttps://example.com/3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadLines(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}
	want := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReadLinesLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payloads.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadLines(context.Background(), path, 2)
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(context.Background(), filepath.Join(t.TempDir(), "absent.txt"), 0)
	if !os.IsNotExist(err) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "page.svg")

	if err := WriteFile(context.Background(), path, []byte("<svg/>")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("content = %q", data)
	}
}

func TestLoadLogoPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewImageService()
	img, err := svc.LoadLogo(context.Background(), path, 64)
	if err != nil {
		t.Fatalf("LoadLogo() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("logo size = %dx%d, want 8x8", b.Dx(), b.Dy())
	}
}

func TestLoadLogoSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"><rect width="20" height="10" fill="#ff0000"/></svg>`
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewImageService()
	img, err := svc.LoadLogo(context.Background(), path, 32)
	if err != nil {
		t.Fatalf("LoadLogo() error = %v", err)
	}
	b := img.Bounds()
	if b.Dx() > 32 || b.Dy() > 32 {
		t.Errorf("logo size = %dx%d, want within 32x32", b.Dx(), b.Dy())
	}
	if b.Dx() != 2*b.Dy() {
		t.Errorf("logo size = %dx%d, want 2:1 aspect", b.Dx(), b.Dy())
	}
}
