package spectrum

// Peak is one detected spectral feature. Prominence and Width are measured
// for main peaks only; shoulders carry neither (HasProperties reports which).
type Peak struct {
	Index             int
	Wavenumber        float64
	Intensity         float64
	RelativeIntensity float64
	Shoulder          bool
	Prominence        float64
	Width             float64
	HasProperties     bool
}

// PeakList holds detected peaks sorted ascending by wavenumber. It is an
// explicit value owned by the caller: re-running detection with different
// parameters yields a new list and never mutates the Spectrum it came from.
type PeakList []Peak

// Main returns the number of non-shoulder peaks.
func (pl PeakList) Main() int {
	n := 0
	for _, p := range pl {
		if !p.Shoulder {
			n++
		}
	}
	return n
}

// Shoulders returns the number of shoulder features.
func (pl PeakList) Shoulders() int {
	return len(pl) - pl.Main()
}
