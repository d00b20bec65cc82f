package detect

import (
	"fmt"
	"sort"

	"raman/internal/services"
	"raman/internal/spectrum"
)

// Params controls peak detection. Prominence and MinHeight are relative to
// the spectrum's maximum intensity; MinWidth and MinDistance are in samples.
type Params struct {
	Prominence      float64
	MinHeight       float64
	MinWidth        int
	MinDistance     int
	DetectShoulders bool
}

// DefaultParams returns the detection defaults tuned for weak-band Raman
// work: 0.5% prominence and height floors, 2-sample width, 3-sample spacing.
func DefaultParams() Params {
	return Params{
		Prominence:      0.005,
		MinHeight:       0.005,
		MinWidth:        2,
		MinDistance:     3,
		DetectShoulders: true,
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if p.Prominence < 0 {
		return services.Wrap(services.ErrInvalidParameters, "detect", "validate",
			fmt.Sprintf("prominence must be non-negative, got %g", p.Prominence), nil)
	}
	if p.MinHeight < 0 {
		return services.Wrap(services.ErrInvalidParameters, "detect", "validate",
			fmt.Sprintf("height must be non-negative, got %g", p.MinHeight), nil)
	}
	if p.MinWidth < 1 {
		return services.Wrap(services.ErrInvalidParameters, "detect", "validate",
			fmt.Sprintf("width must be at least 1 sample, got %d", p.MinWidth), nil)
	}
	if p.MinDistance < 0 {
		return services.Wrap(services.ErrInvalidParameters, "detect", "validate",
			fmt.Sprintf("distance must be non-negative, got %d", p.MinDistance), nil)
	}
	return nil
}

// mainPeak is an internal candidate that survived all filters.
type mainPeak struct {
	index      int
	prominence float64
	width      float64
}

// Detect finds main peaks and (optionally) shoulder features in the spectrum
// and returns them sorted ascending by wavenumber. The result is a pure
// function of the inputs: running it twice on the same spectrum with the same
// parameters yields identical lists.
func Detect(s *spectrum.Spectrum, p Params) (spectrum.PeakList, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s == nil || s.Len() == 0 {
		return nil, services.Wrap(services.ErrInvalidSpectrum, "detect", "normalize",
			"empty spectrum", nil)
	}
	maxIntensity := s.MaxIntensity()
	if maxIntensity <= 0 {
		return nil, services.Wrap(services.ErrInvalidSpectrum, "detect", "normalize",
			"maximum intensity is not positive; cannot normalize", nil)
	}

	normalized := make([]float64, s.Len())
	for i, v := range s.Intensities {
		normalized[i] = v / maxIntensity
	}
	smoothed := gaussianSmooth(normalized, smoothingSigma)

	mains := findMainPeaks(smoothed, p)

	selected := make(map[int]bool, len(mains))
	for _, m := range mains {
		selected[m.index] = true
	}

	peaks := make(spectrum.PeakList, 0, len(mains))
	for _, m := range mains {
		peaks = append(peaks, spectrum.Peak{
			Index:             m.index,
			Wavenumber:        s.Wavenumbers[m.index],
			Intensity:         s.Intensities[m.index],
			RelativeIntensity: s.Intensities[m.index] / maxIntensity,
			Prominence:        m.prominence,
			Width:             m.width,
			HasProperties:     true,
		})
	}

	if p.DetectShoulders {
		for _, idx := range findShoulders(smoothed, mains, selected) {
			peaks = append(peaks, spectrum.Peak{
				Index:             idx,
				Wavenumber:        s.Wavenumbers[idx],
				Intensity:         s.Intensities[idx],
				RelativeIntensity: s.Intensities[idx] / maxIntensity,
				Shoulder:          true,
			})
		}
	}

	sort.Slice(peaks, func(a, b int) bool {
		return peaks[a].Index < peaks[b].Index
	})
	return peaks, nil
}

// findMainPeaks runs the filter pipeline on the smoothed trace: local maxima,
// height floor, greedy distance suppression, then prominence and width
// measured against the surviving candidates.
func findMainPeaks(smoothed []float64, p Params) []mainPeak {
	candidates := localMaxima(smoothed)

	tall := candidates[:0]
	for _, idx := range candidates {
		if smoothed[idx] >= p.MinHeight {
			tall = append(tall, idx)
		}
	}

	heights := make([]float64, len(tall))
	for i, idx := range tall {
		heights[i] = smoothed[idx]
	}
	spaced := selectByDistance(tall, heights, p.MinDistance)

	var mains []mainPeak
	for _, idx := range spaced {
		prom, leftBase, rightBase := prominence(smoothed, idx)
		if prom < p.Prominence {
			continue
		}
		width := peakWidth(smoothed, idx, prom, leftBase, rightBase)
		if width < float64(p.MinWidth) {
			continue
		}
		mains = append(mains, mainPeak{index: idx, prominence: prom, width: width})
	}
	return mains
}
