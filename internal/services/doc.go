// Package services defines the shared error taxonomy for the analysis
// pipeline.
//
// Sentinel markers classify failures (bad spectrum data, bad detection
// parameters, too few spectra, zero-division during change computation) and
// the Wrap helper stamps component/operation context onto them so the CLI can
// decide whether to skip a file or abort the run.
package services
