// Package track matches peaks across spectra by wavenumber proximity. It is
// the stateless primitive underneath all cross-temperature classification.
package track

import (
	"math"

	"raman/internal/spectrum"
)

// DefaultTolerance is the matching window in cm⁻¹.
const DefaultTolerance = 5.0

// Match returns the peak in peaks closest to target, provided it lies within
// tolerance cm⁻¹ (inclusive). Ties on distance go to the first candidate in
// input order. The second return is false when nothing is within tolerance.
func Match(target float64, peaks []spectrum.Peak, tolerance float64) (spectrum.Peak, bool) {
	var best spectrum.Peak
	bestDist := math.Inf(1)
	found := false
	for _, p := range peaks {
		d := math.Abs(p.Wavenumber - target)
		if d > tolerance {
			continue
		}
		if d < bestDist {
			best = p
			bestDist = d
			found = true
		}
	}
	return best, found
}
