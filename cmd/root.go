// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package cmd contains covidwatch's command-line interface.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile string
	logger  *logrus.Logger
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "covidwatch",
	Short: "Personal COVID-19 case monitoring",
	Long: `covidwatch reads JHU CSSE confirmed-case time series and World Bank
population data, and summarizes, aligns, partitions, and charts them.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Silence usage on error
		cmd.SilenceUsage = true
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "./covidwatch.yaml", "config file")
	pf.String("log-level", "", "log level (debug, info, warn, error, fatal, panic); overrides config")
	pf.String("cases", "", "JHU CSSE confirmed-cases CSV file; overrides config")
	pf.String("population", "", "World Bank population CSV or ZIP file; overrides config")
	pf.String("output-dir", "", "directory for written files; overrides config")

	// Initialize logger
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func initLogging() {
	logLevel, err := rootCmd.PersistentFlags().GetString("log-level")
	if err != nil || logLevel == "" {
		return // set from config later
	}
	setLogLevel(logLevel)
}

func setLogLevel(s string) {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}
