// Package analysis orchestrates a full analysis run: per-spectrum peak
// detection, cross-temperature comparison, and phase annotation.
package analysis

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"raman/internal/compare"
	"raman/internal/config"
	"raman/internal/detect"
	"raman/internal/logging"
	"raman/internal/markers"
	"raman/internal/spectrum"
)

// Analyzer runs the detection and comparison pipeline with settings taken
// from the configuration.
type Analyzer struct {
	params    detect.Params
	tolerance float64
	bands     markers.Bands
	logger    *slog.Logger
}

// Result holds the outcome of one analysis run. Detected is sorted ascending
// by temperature.
type Result struct {
	Detected []compare.Detected
	Changes  *compare.ChangeSet
	TempMin  float64
	TempMax  float64
}

// New constructs an Analyzer from configuration. Marker bands are optional;
// when present, appearing and disappearing records are annotated with the
// matching phase.
func New(cfg *config.Config, bands markers.Bands, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		params: detect.Params{
			Prominence:      cfg.Detection.Prominence,
			MinHeight:       cfg.Detection.Height,
			MinWidth:        cfg.Detection.Width,
			MinDistance:     cfg.Detection.Distance,
			DetectShoulders: cfg.Detection.Shoulders,
		},
		tolerance: cfg.Matching.Tolerance,
		bands:     bands,
		logger:    logging.NewComponentLogger(logger, "analysis"),
	}
}

// Params returns the detection parameters the analyzer runs with.
func (a *Analyzer) Params() detect.Params {
	return a.params
}

// Tolerance returns the matching tolerance the analyzer runs with.
func (a *Analyzer) Tolerance() float64 {
	return a.tolerance
}

// Run detects peaks on every spectrum, compares adjacent temperatures, and
// annotates change records with phases. Detection is independent per spectrum
// and runs concurrently; the first detection error aborts the run.
func (a *Analyzer) Run(ctx context.Context, spectra []*spectrum.Spectrum) (*Result, error) {
	detected := make([]compare.Detected, len(spectra))
	errs := make([]error, len(spectra))

	var wg sync.WaitGroup
	for i, s := range spectra {
		wg.Add(1)
		go func(i int, s *spectrum.Spectrum) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			peaks, err := detect.Detect(s, a.params)
			if err != nil {
				errs[i] = err
				return
			}
			detected[i] = compare.Detected{Spectrum: s, Peaks: peaks}
		}(i, s)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, d := range detected {
		a.logger.Info("peaks detected",
			logging.Float64("temperature", d.Spectrum.Temperature),
			logging.String("label", d.Spectrum.Label),
			logging.Int("main", d.Peaks.Main()),
			logging.Int("shoulders", d.Peaks.Shoulders()),
		)
	}

	changes, err := compare.Compare(detected, a.tolerance)
	if err != nil {
		return nil, err
	}
	a.annotate(changes)

	for _, category := range compare.Categories() {
		if n := len(changes.ByCategory(category)); n > 0 {
			a.logger.Info("changes classified",
				logging.String("category", string(category)),
				logging.Int("count", n),
			)
		}
	}

	result := &Result{Detected: detected, Changes: changes}
	result.TempMin, result.TempMax = tempRange(detected)
	sortDetected(result.Detected)
	return result, nil
}

// annotate assigns a phase to appearing and disappearing records when a
// marker band lies within the assignment tolerance.
func (a *Analyzer) annotate(changes *compare.ChangeSet) {
	if len(a.bands) == 0 {
		return
	}
	for _, records := range [][]compare.ChangeRecord{changes.Appearing, changes.Disappearing} {
		for i := range records {
			if phase, ok := a.bands.Assign(records[i].Wavenumber); ok {
				records[i].Phase = phase
			}
		}
	}
}

func tempRange(detected []compare.Detected) (min, max float64) {
	if len(detected) == 0 {
		return 0, 0
	}
	min = detected[0].Spectrum.Temperature
	max = min
	for _, d := range detected[1:] {
		t := d.Spectrum.Temperature
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}
	return min, max
}

func sortDetected(detected []compare.Detected) {
	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Spectrum.Temperature < detected[j].Spectrum.Temperature
	})
}
