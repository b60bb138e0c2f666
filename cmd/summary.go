// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package cmd

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/derat/covidwatch/config"
	"github.com/derat/covidwatch/observability"
	"github.com/derat/covidwatch/timeseries"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// summaryCmd prints headline figures
//
//nolint:gochecknoglobals // Cobra commands are typically global
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print global and per-country headline figures",
	Long: `Print the latest global case count and its day-over-day change, followed by
the latest count, change, and per-million rate for each country of interest.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().String("textfile", "", "also write headline figures as Prometheus metrics to this file")
}

func runSummary(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cases, err := loadCases(cfg)
	if err != nil {
		return err
	}
	rates, err := loadRates(cfg, cases)
	if err != nil {
		return err
	}

	if err := writeSummary(cmd.OutOrStdout(), cfg, cases, rates); err != nil {
		return err
	}

	if p, _ := cmd.Flags().GetString("textfile"); p != "" {
		m := observability.NewMetrics()
		m.Observe(cases, rates, cfg.Countries())
		if err := m.WriteTextfile(p); err != nil {
			return fmt.Errorf("failed writing metrics: %w", err)
		}
		logger.WithField("path", p).Info("Wrote metrics")
	}
	return nil
}

// writeSummary writes human-readable headline figures to w.
// rates may be nil.
func writeSummary(w io.Writer, cfg *config.Config, cases, rates *timeseries.Table) error {
	date, _, ok := cases.Last()
	if !ok {
		return timeseries.ErrNoRecords
	}
	last := cases.Len() - 1
	global := cases.Sum()
	delta := timeseries.Diff(global)[last]
	pct := timeseries.PctChange(global)[last]

	if _, err := fmt.Fprintf(w, "As of %s, there are %s confirmed cases globally (%s, %s).\n\n",
		date.Format(cfg.DateLayout), formatCount(global[last]), formatDelta(delta), formatPct(pct)); err != nil {
		return err
	}

	diff := cases.Diff()
	pctChange := cases.PctChange()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "REGION\tCOUNTRY\tCASES\tNEW\tCHANGE\tPER MILLION\t")
	for _, r := range cfg.Regions {
		for _, c := range r.Countries {
			if !cases.Has(c) {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t\n", r.Name, c)
				continue
			}
			rate := "-"
			if rates != nil {
				rate = formatRate(rates.Value(last, c))
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", r.Name, c,
				formatCount(cases.Value(last, c)), formatDelta(diff.Value(last, c)),
				formatPct(pctChange.Value(last, c)), rate)
		}
	}
	return tw.Flush()
}

func formatCount(v float64) string {
	if timeseries.IsMissing(v) {
		return "?"
	}
	return humanize.Comma(int64(math.Round(v)))
}

func formatDelta(v float64) string {
	if timeseries.IsMissing(v) {
		return "?"
	}
	s := humanize.Comma(int64(math.Round(v)))
	if v >= 0 {
		s = "+" + s
	}
	return s
}

func formatPct(v float64) string {
	if timeseries.IsMissing(v) || math.IsInf(v, 0) {
		return "?"
	}
	return fmt.Sprintf("%+.1f%%", 100*v)
}

func formatRate(v float64) string {
	if timeseries.IsMissing(v) {
		return "?"
	}
	return humanize.CommafWithDigits(v, 1)
}
