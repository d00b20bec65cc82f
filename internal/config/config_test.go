package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"raman/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
	if cfg.Detection.Prominence != 0.005 || cfg.Detection.Height != 0.005 {
		t.Fatalf("unexpected detection defaults: %+v", cfg.Detection)
	}
	if cfg.Matching.Tolerance != 5.0 {
		t.Fatalf("expected default tolerance 5.0, got %v", cfg.Matching.Tolerance)
	}
	if !cfg.Detection.Shoulders || !cfg.History.Enabled {
		t.Fatalf("expected shoulders and history enabled by default: %+v", cfg)
	}
}

func TestLoadAppliesOverridesAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"

[detection]
prominence = 0.01
height = 0.02
width = 3
distance = 5
shoulders = false

[matching]
tolerance = 8.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %s, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Detection.Prominence != 0.01 || cfg.Detection.Width != 3 || cfg.Detection.Shoulders {
		t.Fatalf("overrides not applied: %+v", cfg.Detection)
	}
	if cfg.Matching.Tolerance != 8.0 {
		t.Fatalf("expected tolerance 8.0, got %v", cfg.Matching.Tolerance)
	}
	if !filepath.IsAbs(cfg.Paths.LogDir) {
		t.Fatalf("expected absolute log dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.HistoryDBPath() != filepath.Join(cfg.Paths.DataDir, "history.db") {
		t.Fatalf("unexpected history db path %q", cfg.HistoryDBPath())
	}
}

func TestLoadRejectsInvalidDetection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[detection]\nwidth = 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "detection.width") {
		t.Fatalf("expected width validation error, got %v", err)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging validation error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	defaults := config.Default()
	if cfg.Detection != defaults.Detection || cfg.Matching != defaults.Matching {
		t.Fatalf("sample must match defaults: %+v", cfg)
	}
}
