package compare

import (
	"fmt"
	"sort"

	"raman/internal/services"
	"raman/internal/spectrum"
	"raman/internal/track"
)

// Fixed classification thresholds. A matched pair must move more than 30% in
// relative intensity to count as growing/diminishing, and more than 2 cm⁻¹ to
// count as shifting. The two checks are independent: one pair can fire both.
const (
	intensityChangeThreshold = 0.30
	shiftThreshold           = 2.0
)

// Detected pairs a spectrum with the peak list the caller obtained for it.
type Detected struct {
	Spectrum *spectrum.Spectrum
	Peaks    spectrum.PeakList
}

// Compare walks the temperature-sorted sequence pairwise and classifies every
// peak pairing or non-pairing between adjacent spectra. The input order does
// not matter; sorting is ascending by temperature. Emission order within each
// category follows pair order, then the per-pair sub-order appearing →
// disappearing → intensity changes → shifts. The same band may emit multiple
// records across different adjacent pairs; that tracks local transitions
// rather than a persistent band identity.
func Compare(detected []Detected, tolerance float64) (*ChangeSet, error) {
	if len(detected) < 2 {
		return nil, services.Wrap(services.ErrInsufficientData, "compare", "sort",
			fmt.Sprintf("need at least 2 spectra to compare, got %d", len(detected)), nil)
	}

	ordered := make([]Detected, len(detected))
	copy(ordered, detected)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Spectrum.Temperature < ordered[b].Spectrum.Temperature
	})

	changes := &ChangeSet{}
	for i := 1; i < len(ordered); i++ {
		prev, curr := ordered[i-1], ordered[i]
		if err := comparePair(changes, prev, curr, tolerance); err != nil {
			return nil, err
		}
	}
	return changes, nil
}

func comparePair(changes *ChangeSet, prev, curr Detected, tolerance float64) error {
	fromTemp := prev.Spectrum.Temperature
	toTemp := curr.Spectrum.Temperature

	for _, currPeak := range curr.Peaks {
		if _, ok := track.Match(currPeak.Wavenumber, prev.Peaks, tolerance); !ok {
			changes.Appearing = append(changes.Appearing, ChangeRecord{
				Category:   CategoryAppearing,
				Wavenumber: currPeak.Wavenumber,
				Intensity:  currPeak.RelativeIntensity,
				FromTemp:   fromTemp,
				ToTemp:     toTemp,
				Shoulder:   currPeak.Shoulder,
			})
		}
	}

	for _, prevPeak := range prev.Peaks {
		if _, ok := track.Match(prevPeak.Wavenumber, curr.Peaks, tolerance); !ok {
			changes.Disappearing = append(changes.Disappearing, ChangeRecord{
				Category:   CategoryDisappearing,
				Wavenumber: prevPeak.Wavenumber,
				FromTemp:   fromTemp,
				ToTemp:     toTemp,
				Shoulder:   prevPeak.Shoulder,
			})
		}
	}

	for _, prevPeak := range prev.Peaks {
		match, ok := track.Match(prevPeak.Wavenumber, curr.Peaks, tolerance)
		if !ok {
			continue
		}

		if prevPeak.RelativeIntensity == 0 {
			return services.Wrap(services.ErrDivideByZero, "compare", "intensity-change",
				fmt.Sprintf("peak at %.1f cm⁻¹ has zero relative intensity at %.2f K", prevPeak.Wavenumber, fromTemp), nil)
		}
		intensityChange := (match.RelativeIntensity - prevPeak.RelativeIntensity) / prevPeak.RelativeIntensity

		record := ChangeRecord{
			Wavenumber:    prevPeak.Wavenumber,
			FromTemp:      fromTemp,
			ToTemp:        toTemp,
			ChangePercent: intensityChange * 100,
			PrevIntensity: prevPeak.RelativeIntensity,
			CurrIntensity: match.RelativeIntensity,
			Shoulder:      prevPeak.Shoulder,
		}
		switch {
		case intensityChange > intensityChangeThreshold:
			record.Category = CategoryGrowing
			changes.Growing = append(changes.Growing, record)
		case intensityChange < -intensityChangeThreshold:
			record.Category = CategoryDiminishing
			changes.Diminishing = append(changes.Diminishing, record)
		}

		if shift := match.Wavenumber - prevPeak.Wavenumber; shift > shiftThreshold || shift < -shiftThreshold {
			changes.Shifting = append(changes.Shifting, ChangeRecord{
				Category:       CategoryShifting,
				FromWavenumber: prevPeak.Wavenumber,
				ToWavenumber:   match.Wavenumber,
				Shift:          shift,
				FromTemp:       fromTemp,
				ToTemp:         toTemp,
			})
		}
	}

	return nil
}
