// Package report renders analysis results as a plain-text report and as
// summary tables for terminal display.
package report

import (
	"fmt"
	"sort"
	"strings"

	"raman/internal/compare"
	"raman/internal/markers"
)

const rule = "================================================================================"

// Render produces the full text report: the per-spectrum summary followed by
// one section per non-empty change category. When marker bands are supplied,
// appearing and disappearing bands carry phase annotations.
func Render(detected []compare.Detected, changes *compare.ChangeSet, bands markers.Bands) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("RAMAN SPECTRAL CHANGES ANALYSIS REPORT\n")
	b.WriteString(rule + "\n\n")

	writeSpectraSummary(&b, detected)
	writeAppearing(&b, changes.Appearing, bands)
	writeDisappearing(&b, changes.Disappearing, bands)
	writeIntensitySection(&b, "PEAKS GROWING IN INTENSITY:", changes.Growing, "grows by")
	writeIntensitySection(&b, "PEAKS DIMINISHING IN INTENSITY:", changes.Diminishing, "decreases by")
	writeShifting(&b, changes.Shifting)

	b.WriteString(rule)
	return b.String()
}

func writeSpectraSummary(b *strings.Builder, detected []compare.Detected) {
	ordered := make([]compare.Detected, len(detected))
	copy(ordered, detected)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Spectrum.Temperature < ordered[j].Spectrum.Temperature
	})

	b.WriteString("ANALYZED SPECTRA:\n")
	for _, d := range ordered {
		total := len(d.Peaks)
		shoulders := d.Peaks.Shoulders()
		if shoulders > 0 {
			fmt.Fprintf(b, "  %.2f K: %d main peaks + %d shoulders = %d total features\n",
				d.Spectrum.Temperature, d.Peaks.Main(), shoulders, total)
		} else {
			fmt.Fprintf(b, "  %.2f K: %d peaks detected\n", d.Spectrum.Temperature, total)
		}
	}
	b.WriteString("\n")
}

// formatBand renders a wavenumber with shoulder notation where applicable.
func formatBand(wavenumber float64, shoulder bool) string {
	if shoulder {
		return fmt.Sprintf("%.0f cm⁻¹ (sh.)", wavenumber)
	}
	return fmt.Sprintf("%.0f cm⁻¹", wavenumber)
}

func sortByTempThenWavenumber(records []compare.ChangeRecord) []compare.ChangeRecord {
	ordered := make([]compare.ChangeRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ToTemp != ordered[j].ToTemp {
			return ordered[i].ToTemp < ordered[j].ToTemp
		}
		return ordered[i].Wavenumber < ordered[j].Wavenumber
	})
	return ordered
}

func writeAppearing(b *strings.Builder, records []compare.ChangeRecord, bands markers.Bands) {
	if len(records) == 0 {
		return
	}
	b.WriteString("NEW PEAKS APPEARING:\n")
	for _, r := range sortByTempThenWavenumber(records) {
		fmt.Fprintf(b, "  At %.2f K: Band appears at %s\n", r.ToTemp, formatBand(r.Wavenumber, r.Shoulder))
		if phase, ok := bands.Assign(r.Wavenumber); ok {
			fmt.Fprintf(b, "    → Assigned to %s phase\n", phase)
		}
	}
	b.WriteString("\n")
}

func writeDisappearing(b *strings.Builder, records []compare.ChangeRecord, bands markers.Bands) {
	if len(records) == 0 {
		return
	}
	b.WriteString("PEAKS DISAPPEARING:\n")
	for _, r := range sortByTempThenWavenumber(records) {
		fmt.Fprintf(b, "  At %.2f K: Band at %s disappears\n", r.ToTemp, formatBand(r.Wavenumber, r.Shoulder))
		if phase, ok := bands.Assign(r.Wavenumber); ok {
			fmt.Fprintf(b, "    → Was assigned to %s phase\n", phase)
		}
	}
	b.WriteString("\n")
}

func writeIntensitySection(b *strings.Builder, heading string, records []compare.ChangeRecord, verb string) {
	if len(records) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, r := range sortByTempThenWavenumber(records) {
		fmt.Fprintf(b, "  %.2f → %.2f K: Band at %s %s %.0f%%\n",
			r.FromTemp, r.ToTemp, formatBand(r.Wavenumber, r.Shoulder), verb, r.ChangePercent)
	}
	b.WriteString("\n")
}

func writeShifting(b *strings.Builder, records []compare.ChangeRecord) {
	if len(records) == 0 {
		return
	}
	ordered := make([]compare.ChangeRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ToTemp < ordered[j].ToTemp
	})

	b.WriteString("PEAKS SHIFTING POSITION:\n")
	for _, r := range ordered {
		fmt.Fprintf(b, "  %.2f → %.2f K: Band shifts from %.0f to %.0f cm⁻¹ (shift: %+.0f cm⁻¹)\n",
			r.FromTemp, r.ToTemp, r.FromWavenumber, r.ToWavenumber, r.Shift)
	}
	b.WriteString("\n")
}
