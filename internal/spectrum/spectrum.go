package spectrum

import (
	"fmt"
	"math"

	"raman/internal/services"
)

// Spectrum is a single Raman trace recorded at one temperature. Wavenumbers
// and Intensities are parallel slices; wavenumbers are assumed strictly
// ascending. Treat a constructed Spectrum as immutable.
type Spectrum struct {
	Wavenumbers []float64
	Intensities []float64
	Temperature float64
	Label       string
}

// New validates and constructs a Spectrum. The slices are used as-is, not
// copied; callers must not mutate them afterwards.
func New(wavenumbers, intensities []float64, temperature float64, label string) (*Spectrum, error) {
	if len(wavenumbers) < 2 {
		return nil, services.Wrap(services.ErrInvalidSpectrum, "spectrum", "new",
			fmt.Sprintf("need at least 2 data points, got %d", len(wavenumbers)), nil)
	}
	if len(wavenumbers) != len(intensities) {
		return nil, services.Wrap(services.ErrInvalidSpectrum, "spectrum", "new",
			fmt.Sprintf("wavenumber/intensity length mismatch: %d vs %d", len(wavenumbers), len(intensities)), nil)
	}
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return nil, services.Wrap(services.ErrInvalidSpectrum, "spectrum", "new",
			"temperature must be finite", nil)
	}
	return &Spectrum{
		Wavenumbers: wavenumbers,
		Intensities: intensities,
		Temperature: temperature,
		Label:       label,
	}, nil
}

// MaxIntensity returns the maximum raw intensity value.
func (s *Spectrum) MaxIntensity() float64 {
	maxVal := s.Intensities[0]
	for _, v := range s.Intensities[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Len returns the number of data points.
func (s *Spectrum) Len() int {
	return len(s.Wavenumbers)
}
