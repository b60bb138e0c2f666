// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package cmd

import (
	"errors"
	"io"

	"github.com/derat/covidwatch/filewriter"
	"github.com/spf13/cobra"
)

const ratesFile = "rates.data"

var errNoPopulation = errors.New("population file is required")

// rateCmd writes cases per million people
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Write confirmed cases per million people",
	Long: `Scale each country's confirmed cases by its latest World Bank population and
write the result as tab-separated data. Countries without a population entry keep
their unscaled counts.`,
	RunE: runRate,
}

func init() {
	rootCmd.AddCommand(rateCmd)
}

func runRate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Population == "" {
		return errNoPopulation
	}
	cases, err := loadCases(cfg)
	if err != nil {
		return err
	}
	rates, err := loadRates(cfg, cases)
	if err != nil {
		return err
	}

	p, err := outputPath(cfg, ratesFile)
	if err != nil {
		return err
	}
	if err := filewriter.WriteFile(p, func(w io.Writer) error {
		return rates.WriteTSV(w, cfg.DateLayout)
	}); err != nil {
		return err
	}
	logger.WithField("path", p).Info("Wrote per-million rates")
	return nil
}
