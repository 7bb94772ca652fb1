package ioutils

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
)

// ReadLines reads a newline-delimited payload file.
//
// Lines are trimmed of surrounding whitespace and blank lines are
// dropped. A positive limit truncates the result to at most limit lines.
//
// Example:
//
//	payloads, err := ioutils.ReadLines(ctx, "urls.txt", 20)
func ReadLines(ctx context.Context, path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if limit > 0 && len(lines) == limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteFile writes data to a file with mode 0644, creating parent
// directories as needed. An existing file is truncated.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
