// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package cmd

import (
	"io"

	"github.com/derat/covidwatch/filewriter"
	"github.com/derat/covidwatch/timeseries"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const alignedFile = "aligned.data"

// alignCmd writes case series aligned by outbreak start
//
//nolint:gochecknoglobals // Cobra commands are typically global
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Write per-country series aligned by days since crossing a threshold",
	Long: `Restart each country's series one day before the first date on which its
confirmed cases exceeded --threshold, and write the result as tab-separated data
indexed by day. Countries that never exceeded the threshold are omitted.`,
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)
	alignCmd.Flags().Float64("threshold", 100, "case count that must be exceeded; overrides config")
	alignCmd.Flags().Bool("per-million", false, "align cases per million people instead of raw counts")
}

func runAlign(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cases, err := loadCases(cfg)
	if err != nil {
		return err
	}
	if pm, _ := cmd.Flags().GetBool("per-million"); pm {
		rates, err := loadRates(cfg, cases)
		if err != nil {
			return err
		}
		if rates == nil {
			logger.Warn("No population file configured; aligning raw counts")
		} else {
			cases = rates
		}
	}

	aligned := timeseries.AlignCases(cases, cfg.Threshold)
	p, err := outputPath(cfg, alignedFile)
	if err != nil {
		return err
	}
	if err := filewriter.WriteFile(p, func(w io.Writer) error { return aligned.WriteTSV(w) }); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"path":      p,
		"threshold": cfg.Threshold,
		"countries": len(aligned.Countries()),
		"days":      aligned.Len(),
	}).Info("Wrote aligned series")
	return nil
}
