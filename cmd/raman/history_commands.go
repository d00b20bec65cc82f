package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"raman/internal/compare"
	"raman/internal/history"
	"raman/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded analysis runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func (c *commandContext) withStore(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				runs, err := store.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.CreatedAt.Local().Format(time.DateTime),
						strconv.Itoa(run.SpectrumCount),
						fmt.Sprintf("%.2f – %.2f K", run.TempMin, run.TempMax),
						strconv.Itoa(run.RecordCount),
					})
				}
				fmt.Fprintln(out, report.Table(
					[]string{"Run", "Recorded", "Spectra", "Temperature Range", "Changes"},
					rows,
					[]report.Align{report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignLeft, report.AlignRight},
				))
				return nil
			})
		},
	}
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one recorded run with its change records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				run, records, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:       %s\n", run.ID)
				fmt.Fprintf(out, "Recorded:  %s\n", run.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Spectra:   %d (%.2f – %.2f K)\n", run.SpectrumCount, run.TempMin, run.TempMax)
				fmt.Fprintf(out, "Tolerance: %.2f cm⁻¹\n", run.Tolerance)
				fmt.Fprintf(out, "Detection: prominence=%g height=%g width=%d distance=%d shoulders=%s\n\n",
					run.Params.Prominence, run.Params.MinHeight, run.Params.MinWidth,
					run.Params.MinDistance, yesNo(run.Params.DetectShoulders))

				if len(records) == 0 {
					fmt.Fprintln(out, "No changes recorded")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						string(record.Category),
						describeRecord(record),
						fmt.Sprintf("%.2f → %.2f K", record.FromTemp, record.ToTemp),
						record.Phase,
					})
				}
				fmt.Fprintln(out, report.Table(
					[]string{"Change", "Band", "Temperatures", "Phase"},
					rows,
					[]report.Align{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft},
				))
				return nil
			})
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			})
		},
	}
}

// describeRecord summarizes the category-specific fields of one record.
func describeRecord(record compare.ChangeRecord) string {
	suffix := ""
	if record.Shoulder {
		suffix = " (sh.)"
	}
	switch record.Category {
	case compare.CategoryShifting:
		return fmt.Sprintf("%.0f → %.0f cm⁻¹ (%+.1f)", record.FromWavenumber, record.ToWavenumber, record.Shift)
	case compare.CategoryGrowing, compare.CategoryDiminishing:
		return fmt.Sprintf("%.0f cm⁻¹%s (%+.0f%%)", record.Wavenumber, suffix, record.ChangePercent)
	default:
		return fmt.Sprintf("%.0f cm⁻¹%s", record.Wavenumber, suffix)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
