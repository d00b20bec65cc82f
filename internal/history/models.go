package history

import (
	"time"

	"raman/internal/detect"
)

// Run summarizes one persisted analysis run.
type Run struct {
	ID            string
	CreatedAt     time.Time
	Params        detect.Params
	Tolerance     float64
	SpectrumCount int
	TempMin       float64
	TempMax       float64
	RecordCount   int
}
