package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"raman/internal/compare"
)

// Align selects column alignment for Table.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders a rounded-style table with per-column alignment.
func Table(headers []string, rows [][]string, aligns []Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// SpectraTable renders per-spectrum feature counts, ascending by temperature.
func SpectraTable(detected []compare.Detected) string {
	ordered := make([]compare.Detected, len(detected))
	copy(ordered, detected)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Spectrum.Temperature < ordered[j].Spectrum.Temperature
	})

	rows := make([][]string, 0, len(ordered))
	for _, d := range ordered {
		rows = append(rows, []string{
			fmt.Sprintf("%.2f K", d.Spectrum.Temperature),
			strconv.Itoa(d.Peaks.Main()),
			strconv.Itoa(d.Peaks.Shoulders()),
			strconv.Itoa(len(d.Peaks)),
		})
	}
	return Table(
		[]string{"Temperature", "Main Peaks", "Shoulders", "Total"},
		rows,
		[]Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	)
}

// ChangesTable renders per-category change counts in report order.
func ChangesTable(changes *compare.ChangeSet) string {
	caser := cases.Title(language.Und)
	rows := make([][]string, 0, len(compare.Categories()))
	for _, category := range compare.Categories() {
		rows = append(rows, []string{
			caser.String(string(category)),
			strconv.Itoa(len(changes.ByCategory(category))),
		})
	}
	return Table(
		[]string{"Change", "Count"},
		rows,
		[]Align{AlignLeft, AlignRight},
	)
}
