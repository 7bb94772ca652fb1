package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/solvberg/qrsheet/internal/config"
)

func TestCollectPayloadsZeroCount(t *testing.T) {
	payloads, err := collectPayloads(context.Background(), config.DefaultSettings(), "", 0, true)
	if err != nil {
		t.Fatalf("collectPayloads() error = %v", err)
	}
	if len(payloads) != 0 {
		t.Errorf("got %d payloads, want none", len(payloads))
	}
}

func TestCollectPayloadsBlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payloads.txt")
	if err := os.WriteFile(path, []byte("\n  \n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	payloads, err := collectPayloads(context.Background(), config.DefaultSettings(), path, 20, false)
	if err != nil {
		t.Fatalf("collectPayloads() error = %v", err)
	}
	if len(payloads) != 0 {
		t.Errorf("got %d payloads from a blank file, want none", len(payloads))
	}
}

func TestCollectPayloadsFileTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payloads.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// The count default does not truncate the file.
	payloads, err := collectPayloads(context.Background(), config.DefaultSettings(), path, 20, false)
	if err != nil {
		t.Fatalf("collectPayloads() error = %v", err)
	}
	if len(payloads) != 4 {
		t.Errorf("got %d payloads, want all 4", len(payloads))
	}

	// An explicit count does.
	payloads, err = collectPayloads(context.Background(), config.DefaultSettings(), path, 2, true)
	if err != nil {
		t.Fatalf("collectPayloads() error = %v", err)
	}
	if len(payloads) != 2 {
		t.Errorf("got %d payloads, want 2", len(payloads))
	}
}

func TestCollectPayloadsData(t *testing.T) {
	s := config.DefaultSettings()
	s.Data = "https://example.com"

	payloads, err := collectPayloads(context.Background(), s, "", 20, false)
	if err != nil {
		t.Fatalf("collectPayloads() error = %v", err)
	}
	if len(payloads) != 1 || string(payloads[0]) != "https://example.com" {
		t.Errorf("payloads = %v, want the configured data string", payloads)
	}

	// An explicit count wins over the configured data string.
	payloads, err = collectPayloads(context.Background(), s, "", 3, true)
	if err != nil {
		t.Fatalf("collectPayloads() error = %v", err)
	}
	if len(payloads) != 3 {
		t.Errorf("got %d payloads, want 3", len(payloads))
	}
}

func TestCollectPayloadsSequence(t *testing.T) {
	payloads, err := collectPayloads(context.Background(), config.DefaultSettings(), "", 5, false)
	if err != nil {
		t.Fatalf("collectPayloads() error = %v", err)
	}
	if len(payloads) != 5 || string(payloads[0]) != "QR-1" {
		t.Errorf("payloads = %v, want QR-1..QR-5", payloads)
	}
}
