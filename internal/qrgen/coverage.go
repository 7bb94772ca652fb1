package qrgen

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// CapacityPercent returns the share of codewords, in percent, that the
// given error-correction level can recover.
func CapacityPercent(level qrcode.RecoveryLevel) float64 {
	switch level {
	case qrcode.Low:
		return 7
	case qrcode.Medium:
		return 15
	case qrcode.High:
		return 25
	default:
		return 30
	}
}

// EstimateCoverage reports how many data modules a centered logo of the
// given scale would cover. A module counts as covered when its center
// falls inside the logo footprint. The quiet zone is excluded from the
// totals since it carries no data.
func EstimateCoverage(grid [][]bool, logoScale float64) (covered, total int, pct float64) {
	n := len(grid)
	data := n - 2*quietZone
	if data <= 0 {
		return 0, 0, 0
	}
	total = data * data
	if logoScale <= 0 {
		return 0, total, 0
	}

	side := float64(n)
	logoSide := side * logoScale
	pos := (side - logoSide) / 2

	for r := 0; r < data; r++ {
		for c := 0; c < data; c++ {
			cx := float64(quietZone+c) + 0.5
			cy := float64(quietZone+r) + 0.5
			if cx >= pos && cx <= pos+logoSide && cy >= pos && cy <= pos+logoSide {
				covered++
			}
		}
	}

	pct = float64(covered) / float64(total) * 100
	return covered, total, pct
}

// MaxLogoScale binary-searches the largest logo scale whose module
// coverage leaves at least minECCLeft percent of the correction capacity
// unused. The search runs between start and max and stops once the
// bracket is narrower than tol.
func MaxLogoScale(grid [][]bool, level qrcode.RecoveryLevel, minECCLeft, start, max, tol float64) (float64, error) {
	capacity := CapacityPercent(level)
	if minECCLeft >= capacity {
		return 0, fmt.Errorf("minimum reserve %.1f%% is not below the level's %.0f%% capacity", minECCLeft, capacity)
	}
	allowed := capacity - minECCLeft

	if tol < 0.001 {
		tol = 0.001
	}
	low, high := start, max
	best := -1.0
	for i := 0; high-low > tol && i < 50; i++ {
		mid := (low + high) / 2
		if _, _, pct := EstimateCoverage(grid, mid); pct > allowed {
			high = mid
		} else {
			best = mid
			low = mid
		}
	}
	if best < 0 {
		return 0, errors.New("no logo scale satisfies the coverage limit")
	}
	return best, nil
}
