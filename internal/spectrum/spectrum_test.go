package spectrum_test

import (
	"errors"
	"math"
	"testing"

	"raman/internal/services"
	"raman/internal/spectrum"
)

func TestNewRejectsShortAndMismatchedSlices(t *testing.T) {
	if _, err := spectrum.New([]float64{100}, []float64{1}, 100, ""); !errors.Is(err, services.ErrInvalidSpectrum) {
		t.Fatalf("expected invalid spectrum for single point, got %v", err)
	}
	if _, err := spectrum.New([]float64{100, 101, 102}, []float64{1, 2}, 100, ""); !errors.Is(err, services.ErrInvalidSpectrum) {
		t.Fatalf("expected invalid spectrum for mismatched lengths, got %v", err)
	}
}

func TestNewRejectsNonFiniteTemperature(t *testing.T) {
	for _, temp := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := spectrum.New([]float64{100, 101}, []float64{1, 2}, temp, ""); !errors.Is(err, services.ErrInvalidSpectrum) {
			t.Fatalf("expected invalid spectrum for temperature %v, got %v", temp, err)
		}
	}
}

func TestMaxIntensity(t *testing.T) {
	s, err := spectrum.New([]float64{100, 101, 102}, []float64{0.2, 1.5, 0.9}, 248, "")
	if err != nil {
		t.Fatalf("new spectrum: %v", err)
	}
	if got := s.MaxIntensity(); got != 1.5 {
		t.Fatalf("expected max intensity 1.5, got %v", got)
	}
}

func TestPeakListCounts(t *testing.T) {
	pl := spectrum.PeakList{
		{Wavenumber: 100},
		{Wavenumber: 150, Shoulder: true},
		{Wavenumber: 200},
	}
	if pl.Main() != 2 {
		t.Fatalf("expected 2 main peaks, got %d", pl.Main())
	}
	if pl.Shoulders() != 1 {
		t.Fatalf("expected 1 shoulder, got %d", pl.Shoulders())
	}
}
