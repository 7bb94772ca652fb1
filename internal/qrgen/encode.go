package qrgen

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// quietZone is the border, in modules, that the encoder adds around the
// data area of the grid.
const quietZone = 4

// DefaultLogoScale is the logo footprint, as a fraction of the QR graphic,
// used when no scale is configured.
const DefaultLogoScale = 0.312

// ParseLevel maps a configuration letter to an error-correction level.
// Recognized values are L (7%), M (15%), Q (25%) and H (30%); the empty
// string defaults to H, which leaves the most headroom for logo overlays.
func ParseLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return qrcode.Low, nil
	case "M":
		return qrcode.Medium, nil
	case "Q":
		return qrcode.High, nil
	case "H", "":
		return qrcode.Highest, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

// Encode returns the module grid for a payload. The grid is square,
// includes the encoder's quiet zone, and true marks a dark module.
func Encode(payload string, level qrcode.RecoveryLevel) ([][]bool, error) {
	q, err := qrcode.New(payload, level)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", payload, err)
	}
	return q.Bitmap(), nil
}
