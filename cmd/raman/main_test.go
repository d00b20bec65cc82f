package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "raman.toml")
	content := fmt.Sprintf(`[paths]
output_dir = %q
log_dir = %q
data_dir = %q
`, filepath.Join(base, "reports"), filepath.Join(base, "logs"), filepath.Join(base, "data"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func writeSpectrumFile(t *testing.T, dir, name string, components ...[3]float64) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < 100; i++ {
		wavenumber := 100 + float64(i)*2
		intensity := 0.0
		for _, c := range components {
			amp, center, sigma := c[0], c[1], c[2]
			d := float64(i) - center
			intensity += amp * math.Exp(-d*d/(2*sigma*sigma))
		}
		fmt.Fprintf(&b, "%.2f\t%.6f\n", wavenumber, intensity)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write spectrum file: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAnalyzeEndToEnd(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	cold := writeSpectrumFile(t, dataDir, "sample_100K.txt", [3]float64{1.0, 30, 4})
	hot := writeSpectrumFile(t, dataDir, "sample_300K.txt",
		[3]float64{1.0, 30, 4}, [3]float64{0.5, 70, 4})
	reportPath := filepath.Join(dataDir, "report.txt")

	out, err := runCommand(t,
		"--config", configPath,
		"analyze", cold, hot,
		"--output", reportPath,
	)
	if err != nil {
		t.Fatalf("analyze failed: %v\noutput:\n%s", err, out)
	}

	for _, want := range []string{
		"Successfully loaded 2 spectra",
		"RAMAN SPECTRAL CHANGES ANALYSIS REPORT",
		"NEW PEAKS APPEARING:",
		"Report saved to: " + reportPath,
		"Run saved to history:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, out)
		}
	}

	saved, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if !strings.Contains(string(saved), "At 300.00 K: Band appears at 240 cm⁻¹") {
		t.Errorf("saved report missing appearing band:\n%s", saved)
	}

	// The saved run shows up in history.
	listOut, err := runCommand(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list failed: %v\noutput:\n%s", err, listOut)
	}
	if !strings.Contains(listOut, "100.00 – 300.00 K") {
		t.Errorf("history list missing run:\n%s", listOut)
	}
}

func TestAnalyzeSkipsUnreadableFiles(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	cold := writeSpectrumFile(t, dataDir, "sample_100K.txt", [3]float64{1.0, 30, 4})
	missing := filepath.Join(dataDir, "missing_200K.txt")

	out, err := runCommand(t, "--config", configPath, "analyze", cold, missing, "--no-history")
	if err == nil {
		t.Fatalf("expected failure with a single loadable spectrum\noutput:\n%s", out)
	}
	if !strings.Contains(out, "✓ Loaded "+cold) {
		t.Errorf("output missing load success line:\n%s", out)
	}
	if !strings.Contains(out, "✗ Error loading "+missing) {
		t.Errorf("output missing load failure line:\n%s", out)
	}
}

func TestAnalyzeNoHistorySkipsStore(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	cold := writeSpectrumFile(t, dataDir, "a_100K.txt", [3]float64{1.0, 30, 4})
	hot := writeSpectrumFile(t, dataDir, "b_300K.txt", [3]float64{1.0, 30, 4})

	out, err := runCommand(t,
		"--config", configPath,
		"analyze", cold, hot,
		"--no-history",
		"--output", filepath.Join(dataDir, "report.txt"),
	)
	if err != nil {
		t.Fatalf("analyze failed: %v\noutput:\n%s", err, out)
	}
	if strings.Contains(out, "Run saved to history:") {
		t.Errorf("history should be skipped with --no-history:\n%s", out)
	}
}

func TestAnalyzeTemperatureOverride(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	// No temperature in the filename: the override must supply it.
	first := writeSpectrumFile(t, dataDir, "first.txt", [3]float64{1.0, 30, 4})
	second := writeSpectrumFile(t, dataDir, "second.txt", [3]float64{1.0, 30, 4})

	out, err := runCommand(t,
		"--config", configPath,
		"analyze", first, second,
		"--temperature", first+"=150.5",
		"--temperature", second+"=250",
		"--no-history",
		"--output", filepath.Join(dataDir, "report.txt"),
	)
	if err != nil {
		t.Fatalf("analyze failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "150.50 K") || !strings.Contains(out, "250.00 K") {
		t.Errorf("output missing overridden temperatures:\n%s", out)
	}
}

func TestAnalyzeRejectsInvalidFlagValues(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	cold := writeSpectrumFile(t, dataDir, "a_100K.txt", [3]float64{1.0, 30, 4})
	hot := writeSpectrumFile(t, dataDir, "b_300K.txt", [3]float64{1.0, 30, 4})

	if out, err := runCommand(t,
		"--config", configPath,
		"analyze", cold, hot,
		"--prominence", "-1",
	); err == nil {
		t.Fatalf("expected negative prominence to be rejected\noutput:\n%s", out)
	}
}

func TestParseTemperatureOverrides(t *testing.T) {
	overrides, err := parseTemperatureOverrides([]string{"a.txt=100", "b.txt=248.15"})
	if err != nil {
		t.Fatalf("parseTemperatureOverrides() error: %v", err)
	}
	if overrides["a.txt"] != 100 || overrides["b.txt"] != 248.15 {
		t.Errorf("unexpected overrides: %v", overrides)
	}

	for _, bad := range []string{"a.txt", "=100", "a.txt=warm"} {
		if _, err := parseTemperatureOverrides([]string{bad}); err == nil {
			t.Errorf("expected override %q to be rejected", bad)
		}
	}
}
