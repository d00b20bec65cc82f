// Package loader reads two-column spectrum text files and resolves the
// recording temperature from the filename when the caller does not supply one.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"raman/internal/services"
	"raman/internal/spectrum"
)

var (
	kelvinPattern = regexp.MustCompile(`(\d{2,3}(?:\.\d{1,2})?)\s*K`)
	numberPattern = regexp.MustCompile(`\d{3}`)
)

// TemperatureFromFilename extracts the temperature in Kelvin from names like
// "spectrum_248.15K.txt" or "spectrum_248K.txt". A bare three-digit number is
// accepted as a fallback.
func TemperatureFromFilename(name string) (float64, error) {
	base := filepath.Base(name)
	if m := kelvinPattern.FindStringSubmatch(base); m != nil {
		return strconv.ParseFloat(m[1], 64)
	}
	if m := numberPattern.FindString(base); m != "" {
		return strconv.ParseFloat(m, 64)
	}
	return 0, services.Wrap(services.ErrConfiguration, "loader", "temperature",
		fmt.Sprintf("cannot extract temperature from filename %q; provide it explicitly", base), nil)
}

// Load reads a spectrum file. Columns may be separated by whitespace, commas,
// or tabs; leading header lines that do not parse as two numbers are skipped.
// A negative temperature means extract it from the filename.
func Load(path string, temperature float64) (*spectrum.Spectrum, error) {
	if temperature < 0 {
		t, err := TemperatureFromFilename(path)
		if err != nil {
			return nil, err
		}
		temperature = t
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "loader", "open", path, err)
	}
	defer file.Close()

	var wavenumbers, intensities []float64
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		wn, in, ok := parseRow(scanner.Text())
		if !ok {
			// Header or comment line: tolerated before data, rejected inside.
			if len(wavenumbers) == 0 {
				continue
			}
			return nil, services.Wrap(services.ErrInvalidSpectrum, "loader", "parse",
				fmt.Sprintf("%s:%d: malformed data row", path, line), nil)
		}
		wavenumbers = append(wavenumbers, wn)
		intensities = append(intensities, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrInvalidSpectrum, "loader", "read", path, err)
	}

	s, err := spectrum.New(wavenumbers, intensities, temperature, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// parseRow splits one line on commas, tabs, or runs of spaces and parses
// exactly two floats.
func parseRow(text string) (wavenumber, intensity float64, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "#") {
		return 0, 0, false
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\t' || r == ' '
	})
	if len(fields) != 2 {
		return 0, 0, false
	}
	wavenumber, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, false
	}
	intensity, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return wavenumber, intensity, true
}
