package detect_test

import (
	"errors"
	"math"
	"sort"
	"testing"

	"raman/internal/detect"
	"raman/internal/services"
	"raman/internal/spectrum"
)

func gaussianTrace(t *testing.T, n int, components ...[3]float64) *spectrum.Spectrum {
	t.Helper()
	wavenumbers := make([]float64, n)
	intensities := make([]float64, n)
	for i := 0; i < n; i++ {
		wavenumbers[i] = 100 + float64(i)*2
		for _, c := range components {
			amp, center, sigma := c[0], c[1], c[2]
			d := float64(i) - center
			intensities[i] += amp * math.Exp(-d*d/(2*sigma*sigma))
		}
	}
	s, err := spectrum.New(wavenumbers, intensities, 248, "synthetic")
	if err != nil {
		t.Fatalf("build spectrum: %v", err)
	}
	return s
}

func TestDetectSingleCleanPeak(t *testing.T) {
	s := gaussianTrace(t, 100, [3]float64{1.0, 50, 5})

	peaks, err := detect.Detect(s, detect.DefaultParams())
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(peaks) != 1 {
		t.Fatalf("expected 1 peak, got %d: %+v", len(peaks), peaks)
	}
	p := peaks[0]
	if p.Index != 50 {
		t.Fatalf("expected peak at index 50, got %d", p.Index)
	}
	if p.Wavenumber != s.Wavenumbers[50] {
		t.Fatalf("expected wavenumber %v, got %v", s.Wavenumbers[50], p.Wavenumber)
	}
	if p.Shoulder {
		t.Fatal("expected a main peak, got a shoulder")
	}
	if !p.HasProperties || p.Prominence <= 0 || p.Width < 2 {
		t.Fatalf("expected populated prominence/width, got %+v", p)
	}
	if math.Abs(p.RelativeIntensity-1.0) > 1e-9 {
		t.Fatalf("expected relative intensity 1.0 at the maximum, got %v", p.RelativeIntensity)
	}
}

func TestDetectTwoSeparatedPeaks(t *testing.T) {
	s := gaussianTrace(t, 100, [3]float64{1.0, 30, 4}, [3]float64{0.5, 70, 4})

	peaks, err := detect.Detect(s, detect.DefaultParams())
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d: %+v", len(peaks), peaks)
	}
	if peaks[0].Index != 30 || peaks[1].Index != 70 {
		t.Fatalf("expected peaks at 30 and 70, got %d and %d", peaks[0].Index, peaks[1].Index)
	}
	if math.Abs(peaks[1].RelativeIntensity-0.5) > 0.01 {
		t.Fatalf("expected secondary relative intensity near 0.5, got %v", peaks[1].RelativeIntensity)
	}
}

func TestDetectOutputSortedAndSubsetOfInput(t *testing.T) {
	s := gaussianTrace(t, 120, [3]float64{1.0, 25, 4}, [3]float64{0.7, 60, 5}, [3]float64{0.4, 95, 4})

	peaks, err := detect.Detect(s, detect.DefaultParams())
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(peaks) == 0 {
		t.Fatal("expected peaks")
	}
	if !sort.SliceIsSorted(peaks, func(a, b int) bool { return peaks[a].Wavenumber < peaks[b].Wavenumber }) {
		t.Fatalf("expected peaks sorted by wavenumber: %+v", peaks)
	}
	for _, p := range peaks {
		if p.Wavenumber != s.Wavenumbers[p.Index] {
			t.Fatalf("peak wavenumber %v is not the input value at index %d", p.Wavenumber, p.Index)
		}
	}
}

func TestDetectShoulderOnFlank(t *testing.T) {
	// A dominant band with a minor bump on its high-wavenumber flank. The
	// bump's prominence is too small to survive the main filter but its
	// smoothed height sits near 24% of the main peak, inside the strict
	// 20-30% shoulder window.
	s := gaussianTrace(t, 100, [3]float64{1.0, 50, 5}, [3]float64{0.24, 63, 1.5})

	params := detect.DefaultParams()
	params.Prominence = 0.1

	peaks, err := detect.Detect(s, params)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(peaks) != 2 {
		t.Fatalf("expected main peak plus shoulder, got %+v", peaks)
	}
	if peaks[0].Index != 50 || peaks[0].Shoulder {
		t.Fatalf("expected main peak at 50, got %+v", peaks[0])
	}
	sh := peaks[1]
	if !sh.Shoulder || sh.Index != 63 {
		t.Fatalf("expected shoulder at index 63, got %+v", sh)
	}
	if sh.HasProperties {
		t.Fatal("shoulders must not carry prominence/width")
	}

	params.DetectShoulders = false
	peaks, err = detect.Detect(s, params)
	if err != nil {
		t.Fatalf("detect without shoulders: %v", err)
	}
	if len(peaks) != 1 || peaks[0].Index != 50 {
		t.Fatalf("expected only the main peak with shoulders disabled, got %+v", peaks)
	}
}

func TestDetectIsIdempotent(t *testing.T) {
	s := gaussianTrace(t, 100, [3]float64{1.0, 40, 4}, [3]float64{0.6, 75, 5})
	params := detect.DefaultParams()

	first, err := detect.Detect(s, params)
	if err != nil {
		t.Fatalf("first detect: %v", err)
	}
	second, err := detect.Detect(s, params)
	if err != nil {
		t.Fatalf("second detect: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("peak counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("peak %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDetectRejectsFlatZeroSpectrum(t *testing.T) {
	s, err := spectrum.New([]float64{100, 102, 104, 106}, []float64{0, 0, 0, 0}, 248, "")
	if err != nil {
		t.Fatalf("build spectrum: %v", err)
	}
	if _, err := detect.Detect(s, detect.DefaultParams()); !errors.Is(err, services.ErrInvalidSpectrum) {
		t.Fatalf("expected invalid spectrum for flat-zero intensity, got %v", err)
	}
}

func TestDetectRejectsBadParameters(t *testing.T) {
	s := gaussianTrace(t, 50, [3]float64{1.0, 25, 4})

	cases := []detect.Params{
		{Prominence: -0.1, MinHeight: 0.005, MinWidth: 2, MinDistance: 3},
		{Prominence: 0.005, MinHeight: -1, MinWidth: 2, MinDistance: 3},
		{Prominence: 0.005, MinHeight: 0.005, MinWidth: 0, MinDistance: 3},
		{Prominence: 0.005, MinHeight: 0.005, MinWidth: 2, MinDistance: -1},
	}
	for i, params := range cases {
		if _, err := detect.Detect(s, params); !errors.Is(err, services.ErrInvalidParameters) {
			t.Fatalf("case %d: expected invalid parameters, got %v", i, err)
		}
	}
}
