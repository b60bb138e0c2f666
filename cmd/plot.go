// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/derat/covidwatch/config"
	"github.com/derat/covidwatch/filewriter"
	"github.com/derat/covidwatch/gnuplot"
	"github.com/derat/covidwatch/timeseries"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// plotCmd renders charts with gnuplot
//
//nolint:gochecknoglobals // Cobra commands are typically global
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render global and regional case charts with gnuplot",
	Long: `Render a chart of global confirmed cases and one chart per configured region
as PNG files in the output directory. gnuplot must be installed.`,
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)
	pf := plotCmd.Flags()
	pf.Bool("aligned", false, "also chart countries of interest aligned by days since exceeding --threshold")
	pf.Float64("threshold", 100, "case count used for aligned charts; overrides config")
	pf.Bool("per-million", false, "chart cases per million people instead of raw counts")
	pf.Bool("log", false, "use a logarithmic y axis for time-series charts")
	pf.Int("width", 1000, "image width in pixels")
	pf.Int("height", 600, "image height in pixels")
}

// chart describes a single chart to render.
type chart struct {
	name  string // base filename without extension
	tmpl  string
	data  plotData
	write func(w io.Writer) error // writes the chart's data file
}

func runPlot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cases, err := loadCases(cfg)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	yLabel := "Confirmed cases"
	if pm, _ := flags.GetBool("per-million"); pm {
		rates, err := loadRates(cfg, cases)
		if err != nil {
			return err
		}
		if rates == nil {
			logger.Warn("No population file configured; charting raw counts")
		} else {
			cases = rates
			yLabel = "Confirmed cases per million"
		}
	}
	logScale, _ := flags.GetBool("log")
	width, _ := flags.GetInt("width")
	height, _ := flags.GetInt("height")
	base := plotData{YLabel: yLabel, Width: width, Height: height, LogScale: logScale}

	charts, err := buildCharts(cfg, cases, base)
	if err != nil {
		return err
	}
	if aligned, _ := flags.GetBool("aligned"); aligned {
		if c, ok := alignedChart(cfg, cases, base); ok {
			charts = append(charts, c)
		} else {
			logger.WithField("threshold", cfg.Threshold).Warn("No countries of interest exceeded threshold; skipping aligned chart")
		}
	}

	for _, c := range charts {
		if err := renderChart(cmd.Context(), cfg, c); err != nil {
			return fmt.Errorf("failed rendering %v: %w", c.name, err)
		}
	}
	return nil
}

// buildCharts returns the global chart and one chart per region in cfg.
func buildCharts(cfg *config.Config, cases *timeseries.Table, base plotData) ([]chart, error) {
	global, err := timeseries.New(cases.Dates(), []timeseries.Column{{Name: "Global", Values: cases.Sum()}})
	if err != nil {
		return nil, err
	}
	d := base
	d.Title = "Global time series of confirmed cases"
	d.NumLines = 1
	charts := []chart{{"global", timeSeriesTmpl, d, func(w io.Writer) error {
		return global.WriteTSV(w, plotDateLayout)
	}}}

	for _, r := range cfg.Regions {
		rt := cases.Select(r.Countries...)
		if n := len(rt.Countries()); n < len(r.Countries) {
			logger.WithFields(logrus.Fields{
				"region":  r.Name,
				"missing": len(r.Countries) - n,
			}).Warn("Some countries not found in case data")
		}
		if len(rt.Countries()) == 0 {
			continue
		}
		d := base
		d.Title = "Time series of confirmed cases in " + r.Name
		d.NumLines = len(rt.Countries())
		charts = append(charts, chart{"region-" + slug(r.Name), timeSeriesTmpl, d, func(w io.Writer) error {
			return rt.WriteTSV(w, plotDateLayout)
		}})
	}
	return charts, nil
}

// alignedChart returns a chart of cfg's countries of interest aligned by the day
// before they exceeded cfg.Threshold. ok is false if none of them exceeded it.
func alignedChart(cfg *config.Config, cases *timeseries.Table, base plotData) (c chart, ok bool) {
	a := timeseries.AlignCases(cases.Select(cfg.Countries()...), cfg.Threshold)
	if len(a.Countries()) == 0 {
		return chart{}, false
	}
	d := base
	d.Title = "Countries of interest aligned by outbreak start"
	d.NumLines = len(a.Countries())
	d.Threshold = cfg.Threshold
	return chart{"aligned", alignedTmpl, d, a.WriteTSV}, true
}

// renderChart writes c's data file and renders it to a PNG in cfg's output directory.
func renderChart(ctx context.Context, cfg *config.Config, c chart) error {
	dp, err := outputPath(cfg, c.name+".data")
	if err != nil {
		return err
	}
	if err := filewriter.WriteFile(dp, c.write); err != nil {
		return err
	}
	c.data.DataPath = dp
	if c.data.Output, err = outputPath(cfg, c.name+".png"); err != nil {
		return err
	}
	log := logger.WithField("chart", c.name)
	if err := gnuplot.ExecTemplate(ctx, c.tmpl, c.data, log); err != nil {
		return err
	}
	log.WithField("path", c.data.Output).Info("Rendered chart")
	return nil
}

// slug returns a lowercase filename-friendly version of s, e.g. "south-america".
func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
