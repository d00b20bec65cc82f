// Package markers parses reference marker-band tables and assigns detected
// bands to a phase. Marker files list, per phase, the literature wavenumbers
// of that phase's Raman bands:
//
//	DEA:
//	  solid: [183, 285, 326, 1025-1029, 1300 (sh.)]
//	  liquid: [252, 374, 468–470]
//
// Parenthetical annotations are stripped and ranges collapse to their lower
// bound before numeric extraction.
package markers

import (
	"regexp"
	"strconv"
)

// AssignTolerance is the maximum distance, in cm⁻¹, between a band and a
// marker for phase assignment.
const AssignTolerance = 10.0

// Phase is one named phase with its reference band positions.
type Phase struct {
	Name  string
	Bands []float64
}

// Bands is an ordered list of phases. Order follows the source text so that
// first-match-wins assignment stays deterministic across runs.
type Bands []Phase

var (
	phasePattern      = regexp.MustCompile(`(\w+):\s*\[([\d,\s()\x{2013}\-\w.]+)\]`)
	annotationPattern = regexp.MustCompile(`\([^)]+\)`)
	rangePattern      = regexp.MustCompile(`(\d+)\s*[\x{2013}-]\s*(\d+)`)
	numberPattern     = regexp.MustCompile(`\d+`)
)

// Parse extracts all phase definitions from text, in order of appearance.
// Phases without any parsable number are dropped.
func Parse(text string) Bands {
	var bands Bands
	for _, m := range phasePattern.FindAllStringSubmatch(text, -1) {
		name, body := m[1], m[2]
		body = annotationPattern.ReplaceAllString(body, "")
		body = rangePattern.ReplaceAllString(body, "$1")

		var values []float64
		for _, num := range numberPattern.FindAllString(body, -1) {
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			continue
		}
		bands = append(bands, Phase{Name: name, Bands: values})
	}
	return bands
}

// Assign returns the name of the first phase, in parse order, with a marker
// within AssignTolerance of wavenumber, and true on success.
func (b Bands) Assign(wavenumber float64) (string, bool) {
	for _, phase := range b {
		for _, marker := range phase.Bands {
			d := wavenumber - marker
			if d < 0 {
				d = -d
			}
			if d <= AssignTolerance {
				return phase.Name, true
			}
		}
	}
	return "", false
}
