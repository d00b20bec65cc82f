// Package testsupport provides option-func fixtures shared by package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"raman/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "reports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DataDir = filepath.Join(base, "data")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTolerance overrides the matching tolerance on the test config.
func WithTolerance(tolerance float64) ConfigOption {
	return func(c *config.Config) {
		c.Matching.Tolerance = tolerance
	}
}

// WithoutHistory disables run persistence on the test config.
func WithoutHistory() ConfigOption {
	return func(c *config.Config) {
		c.History.Enabled = false
	}
}
