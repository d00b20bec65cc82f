// Package spectrum holds the core value types for temperature-series Raman
// analysis: the Spectrum trace itself and the Peak/PeakList results produced
// by detection.
package spectrum
