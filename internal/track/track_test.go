package track_test

import (
	"testing"

	"raman/internal/spectrum"
	"raman/internal/track"
)

func peaksAt(wavenumbers ...float64) []spectrum.Peak {
	peaks := make([]spectrum.Peak, len(wavenumbers))
	for i, wn := range wavenumbers {
		peaks[i] = spectrum.Peak{Index: i, Wavenumber: wn}
	}
	return peaks
}

func TestMatchReturnsClosestWithinTolerance(t *testing.T) {
	peaks := peaksAt(195, 203, 210)
	got, ok := track.Match(200, peaks, 5)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Wavenumber != 203 {
		t.Fatalf("expected closest peak 203, got %v", got.Wavenumber)
	}
}

func TestMatchToleranceIsInclusive(t *testing.T) {
	peaks := peaksAt(205)
	if _, ok := track.Match(200, peaks, 5); !ok {
		t.Fatal("expected a match at exactly tolerance distance")
	}
	if _, ok := track.Match(200, peaks, 4.999); ok {
		t.Fatal("expected no match just inside tolerance")
	}
}

func TestMatchNoneWhenOutOfTolerance(t *testing.T) {
	peaks := peaksAt(100, 300)
	if _, ok := track.Match(200, peaks, 5); ok {
		t.Fatal("expected no match")
	}
	if _, ok := track.Match(200, nil, 5); ok {
		t.Fatal("expected no match against empty list")
	}
}

func TestMatchTiePrefersFirstInInputOrder(t *testing.T) {
	peaks := peaksAt(197, 203)
	got, ok := track.Match(200, peaks, 5)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Wavenumber != 197 {
		t.Fatalf("expected first-encountered peak 197 on tie, got %v", got.Wavenumber)
	}
}
