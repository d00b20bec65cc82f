package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"raman/internal/analysis"
	"raman/internal/history"
	"raman/internal/loader"
	"raman/internal/logging"
	"raman/internal/markers"
	"raman/internal/report"
	"raman/internal/services"
	"raman/internal/spectrum"
)

const defaultReportName = "spectral_changes_report.txt"

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		tolerance    float64
		prominence   float64
		height       float64
		width        int
		distance     int
		noShoulders  bool
		markersPath  string
		outputPath   string
		temperatures []string
		noHistory    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Detect peaks and classify spectral changes across temperatures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("tolerance") {
				cfg.Matching.Tolerance = tolerance
			}
			if flags.Changed("prominence") {
				cfg.Detection.Prominence = prominence
			}
			if flags.Changed("height") {
				cfg.Detection.Height = height
			}
			if flags.Changed("width") {
				cfg.Detection.Width = width
			}
			if flags.Changed("distance") {
				cfg.Detection.Distance = distance
			}
			if noShoulders {
				cfg.Detection.Shoulders = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			overrides, err := parseTemperatureOverrides(temperatures)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Loading %d spectrum files...\n", len(args))
			spectra := make([]*spectrum.Spectrum, 0, len(args))
			for _, path := range args {
				temperature, ok := overrides[path]
				if !ok {
					temperature = -1
				}
				s, loadErr := loader.Load(path, temperature)
				if loadErr != nil {
					fmt.Fprintln(out, loadStatusLine(false,
						fmt.Sprintf("Error loading %s: %v", path, loadErr), colorize))
					continue
				}
				fmt.Fprintln(out, loadStatusLine(true,
					fmt.Sprintf("Loaded %s: %.2f K, %d data points", path, s.Temperature, s.Len()), colorize))
				spectra = append(spectra, s)
			}
			if len(spectra) < 2 {
				return services.Wrap(services.ErrInsufficientData, "cli", "analyze",
					fmt.Sprintf("need at least 2 spectra to compare, loaded %d", len(spectra)), nil)
			}
			fmt.Fprintf(out, "\nSuccessfully loaded %d spectra\n\n", len(spectra))

			var bands markers.Bands
			if markersPath != "" {
				data, readErr := os.ReadFile(markersPath)
				if readErr != nil {
					fmt.Fprintf(out, "Warning: could not load marker bands: %v\n\n", readErr)
				} else {
					bands = markers.Parse(string(data))
					fmt.Fprintln(out, "Marker bands loaded:")
					for _, phase := range bands {
						fmt.Fprintf(out, "  %s: %d bands\n", phase.Name, len(phase.Bands))
					}
					fmt.Fprintln(out)
				}
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			analyzer := analysis.New(cfg, bands, logger)
			result, err := analyzer.Run(cmd.Context(), spectra)
			if err != nil {
				if services.IsDataError(err) {
					return fmt.Errorf("spectrum data problem: %w", err)
				}
				return err
			}

			text := report.Render(result.Detected, result.Changes, bands)
			fmt.Fprintln(out, text)
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.SpectraTable(result.Detected))
			fmt.Fprintln(out, report.ChangesTable(result.Changes))

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = filepath.Join(cfg.Paths.OutputDir, defaultReportName)
			}
			if err := os.WriteFile(target, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("save report to %s: %w", target, err)
			}
			fmt.Fprintf(out, "\nReport saved to: %s\n", target)

			if noHistory || !cfg.History.Enabled {
				return nil
			}
			store, err := history.Open(cfg)
			if err != nil {
				logger.Warn("history unavailable", logging.Args(logging.Error(err))...)
				return nil
			}
			defer store.Close()
			id, err := store.SaveRun(cmd.Context(), analyzer.Params(), analyzer.Tolerance(),
				len(result.Detected), result.TempMin, result.TempMax, result.Changes)
			if err != nil {
				return fmt.Errorf("save run to history: %w", err)
			}
			fmt.Fprintf(out, "Run saved to history: %s\n", id)
			return nil
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Wavenumber tolerance for cross-temperature peak matching (cm⁻¹)")
	cmd.Flags().Float64Var(&prominence, "prominence", 0, "Minimum peak prominence relative to the spectrum maximum")
	cmd.Flags().Float64Var(&height, "height", 0, "Minimum peak height relative to the spectrum maximum")
	cmd.Flags().IntVar(&width, "width", 0, "Minimum peak width in samples")
	cmd.Flags().IntVar(&distance, "distance", 0, "Minimum distance between peaks in samples")
	cmd.Flags().BoolVar(&noShoulders, "no-shoulders", false, "Skip shoulder detection")
	cmd.Flags().StringVar(&markersPath, "markers", "", "Marker band reference file for phase assignment")
	cmd.Flags().StringArrayVar(&temperatures, "temperature", nil, "Temperature override as FILE=KELVIN (repeatable)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report output path")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in history")

	return cmd
}

// parseTemperatureOverrides turns repeated FILE=KELVIN flags into a lookup map.
func parseTemperatureOverrides(values []string) (map[string]float64, error) {
	overrides := make(map[string]float64, len(values))
	for _, value := range values {
		file, kelvin, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(file) == "" {
			return nil, fmt.Errorf("invalid temperature override %q (expected FILE=KELVIN)", value)
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(kelvin), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature in override %q: %w", value, err)
		}
		overrides[strings.TrimSpace(file)] = parsed
	}
	return overrides, nil
}
