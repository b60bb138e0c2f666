// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package cmd

import (
	"io"

	"github.com/derat/covidwatch/config"
	"github.com/derat/covidwatch/filewriter"
	"github.com/derat/covidwatch/partition"
	"github.com/derat/covidwatch/timeseries"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// splitCmd partitions case data into training, validation, and test sets
//
//nolint:gochecknoglobals // Cobra commands are typically global
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Partition case data into training, validation, and test sets",
	Long: `Partition case data into training, validation, and test sets sized from the
shortest outbreak run. With --seq-length 0 the table is split into contiguous date
ranges. Otherwise each country is cut into every window of that many days, and
the windows are split per country.`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().Int("seq-length", 0, "window length in days, or 0 to split by date; overrides config")
}

func runSplit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cases, err := loadCases(cfg)
	if err != nil {
		return err
	}

	if cfg.SeqLength == 0 {
		sp, err := partition.SplitByDate(cases)
		if err != nil {
			return err
		}
		logSizes(sp.Sizes).Info("Split by date")
		for name, t := range map[string]*timeseries.Table{
			"train": sp.Train, "val": sp.Val, "test": sp.Test,
		} {
			if err := writeSplitFile(cfg, name, func(w io.Writer) error {
				return t.WriteTSV(w, cfg.DateLayout)
			}); err != nil {
				return err
			}
		}
		return nil
	}

	sp, err := partition.SplitWindows(cases, cfg.SeqLength)
	if err != nil {
		return err
	}
	if len(sp.NoCases) > 0 {
		logger.WithField("countries", sp.NoCases).Debug("Left out countries without cases")
	}
	if len(sp.Skipped) > 0 {
		logger.WithField("countries", sp.Skipped).Warn("Skipped countries with too little history")
	}
	logSizes(sp.Sizes).WithFields(logrus.Fields{
		"seq_length": sp.SeqLength,
		"train":      len(sp.Train),
		"val":        len(sp.Val),
		"test":       len(sp.Test),
	}).Info("Split into windows")
	for name, ws := range map[string]partition.WindowSet{
		"train": sp.Train, "val": sp.Val, "test": sp.Test,
	} {
		if err := writeSplitFile(cfg, name, func(w io.Writer) error {
			return ws.WriteTSV(w, sp.SeqLength)
		}); err != nil {
			return err
		}
	}
	return nil
}

func logSizes(sz partition.Sizes) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"shortest":     sz.Shortest,
		"shortest_run": sz.ShortestRun,
		"test_len":     sz.TestLen,
		"train_len":    sz.TrainLen,
	})
}

func writeSplitFile(cfg *config.Config, name string, fn func(w io.Writer) error) error {
	p, err := outputPath(cfg, name+".data")
	if err != nil {
		return err
	}
	if err := filewriter.WriteFile(p, fn); err != nil {
		return err
	}
	logger.WithField("path", p).Debug("Wrote partition")
	return nil
}
