// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package config loads covidwatch's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

var (
	ErrCasesRequired  = errors.New("cases path is required")
	ErrBadThreshold   = errors.New("threshold must be non-negative")
	ErrBadSeqLength   = errors.New("seq_length must be non-negative")
	ErrEmptyRegion    = errors.New("region has no countries")
	ErrUnnamedRegion  = errors.New("region has no name")
	ErrUnknownLogging = errors.New("unknown logging level")
)

// Region is a named group of countries that are charted together.
type Region struct {
	Name      string   `yaml:"name"`
	Countries []string `yaml:"countries"`
}

// Config holds settings shared by all commands.
type Config struct {
	// Logging level.
	Logging string `yaml:"logging" default:"info"`

	// Cases is the path to a JHU CSSE global time-series CSV file.
	Cases string `yaml:"cases"`
	// Population is the path to a World Bank indicator CSV file or ZIP bundle.
	// If empty, per-capita rates aren't computed.
	Population string `yaml:"population"`
	// Indicator is the World Bank indicator code used to pick a file from a ZIP bundle.
	Indicator string `yaml:"indicator" default:"SP.POP.TOTL"`

	// Aliases maps case-data country names to population-source names.
	// If unset, DefaultAliases is used.
	Aliases map[string]string `yaml:"aliases"`
	// Regions lists countries of interest. If unset, DefaultRegions is used.
	Regions []Region `yaml:"regions"`

	// Threshold is the count that countries must exceed before their aligned series start.
	Threshold float64 `yaml:"threshold" default:"100"`
	// SeqLength is the window length used when partitioning. 0 partitions by date.
	SeqLength int `yaml:"seq_length"`

	// OutputDir receives data files and charts.
	OutputDir string `yaml:"output_dir" default:"."`
	// DateLayout formats dates in written data files.
	DateLayout string `yaml:"date_layout" default:"2006-01-02"`
}

// Load reads the YAML config file at p.
// A missing file isn't an error; defaults are returned instead.
func Load(p string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.fill()
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed parsing %v: %w", p, err)
	}
	cfg.fill()
	return cfg, nil
}

// fill supplies default country data for fields that weren't set.
func (c *Config) fill() {
	if c.Aliases == nil {
		c.Aliases = DefaultAliases()
	}
	if c.Regions == nil {
		c.Regions = DefaultRegions()
	}
}

// Validate checks that c's settings are usable.
func (c *Config) Validate() error {
	if c.Cases == "" {
		return ErrCasesRequired
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: %v", ErrBadThreshold, c.Threshold)
	}
	if c.SeqLength < 0 {
		return fmt.Errorf("%w: %v", ErrBadSeqLength, c.SeqLength)
	}
	switch c.Logging {
	case "panic", "fatal", "error", "warn", "warning", "info", "debug", "trace":
	default:
		return fmt.Errorf("%w %q", ErrUnknownLogging, c.Logging)
	}
	for _, r := range c.Regions {
		if r.Name == "" {
			return ErrUnnamedRegion
		}
		if len(r.Countries) == 0 {
			return fmt.Errorf("%w: %v", ErrEmptyRegion, r.Name)
		}
	}
	return nil
}

// Countries returns the countries from all of c's regions in order.
func (c *Config) Countries() []string {
	var names []string
	for _, r := range c.Regions {
		names = append(names, r.Countries...)
	}
	return names
}
