// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package cmd

import (
	"os"
	"path/filepath"

	"github.com/derat/covidwatch/config"
	"github.com/derat/covidwatch/jhu"
	"github.com/derat/covidwatch/percapita"
	"github.com/derat/covidwatch/timeseries"
	"github.com/derat/covidwatch/worldbank"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadConfig loads the config file and applies overrides from cmd's flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"cases":      &cfg.Cases,
		"population": &cfg.Population,
		"output-dir": &cfg.OutputDir,
		"log-level":  &cfg.Logging,
	} {
		if flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return nil, err
			}
		}
	}
	if flags.Lookup("threshold") != nil && flags.Changed("threshold") {
		if cfg.Threshold, err = flags.GetFloat64("threshold"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("seq-length") != nil && flags.Changed("seq-length") {
		if cfg.SeqLength, err = flags.GetInt("seq-length"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !flags.Changed("log-level") {
		setLogLevel(cfg.Logging)
	}
	logger.WithField("config", cfgFile).Debug("Loaded config")
	return cfg, nil
}

// loadCases reads the case file named by cfg and pivots it into a table.
func loadCases(cfg *config.Config) (*timeseries.Table, error) {
	recs, err := jhu.ReadFile(cfg.Cases, logger)
	if err != nil {
		return nil, err
	}
	cases, err := timeseries.Build(recs)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"countries": len(cases.Countries()),
		"days":      cases.Len(),
	}).Info("Loaded cases")
	return cases, nil
}

// loadRates reads the population file named by cfg and returns cases per million.
// If cfg doesn't name a population file, nil is returned.
func loadRates(cfg *config.Config, cases *timeseries.Table) (*timeseries.Table, error) {
	if cfg.Population == "" {
		logger.Debug("No population file; skipping per-capita rates")
		return nil, nil
	}
	indicator := cfg.Indicator
	if indicator == "" {
		indicator = worldbank.DefaultIndicator
	}
	pop, err := worldbank.ReadFile(cfg.Population, indicator, logger)
	if err != nil {
		return nil, err
	}

	latest := percapita.NewReconciler(cfg.Aliases).Reconcile(pop, cases.Countries())
	var unmatched []string
	for _, c := range cases.Countries() {
		if _, ok := latest[c]; !ok {
			unmatched = append(unmatched, c)
		}
	}
	if len(unmatched) > 0 {
		logger.WithField("countries", unmatched).Debug("No population for countries; leaving unscaled")
	}
	return percapita.CaseRate(cases, latest), nil
}

// outputPath returns the path of name within cfg's output directory, creating the directory if needed.
func outputPath(cfg *config.Config, name string) (string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(cfg.OutputDir, name), nil
}
