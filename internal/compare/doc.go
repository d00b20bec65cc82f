// Package compare classifies how spectral bands evolve across a
// temperature-sorted sequence of spectra: appearance, disappearance,
// intensity growth and decay, and position shifts between adjacent
// temperature steps.
package compare
