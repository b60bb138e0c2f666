// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package jhu reads the Johns Hopkins CSSE COVID-19 time-series CSV files
// from https://github.com/CSSEGISandData/COVID-19.
package jhu

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/derat/covidwatch/timeseries"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoCountryColumn = errors.New("missing country column")
	ErrNoDateColumns   = errors.New("no date columns")
)

// countryCols lists the names used for the country column.
// The US files use underscores instead of slashes.
var countryCols = []string{"Country/Region", "Country_Region"}

// ParseDate parses a column header in MM/DD/YY or MM/DD/YYYY format.
// Leading zeros are optional. ok is false if s isn't a date.
func ParseDate(s string) (t time.Time, ok bool) {
	for _, layout := range []string{"1/2/06", "1/2/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReadFile reads the time-series CSV file at p. See Read.
func ReadFile(p string, log logrus.FieldLogger) ([]timeseries.Record, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := Read(f, log.WithField("path", p))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", p, err)
	}
	return recs, nil
}

// Read reads a time-series CSV file with one row per region and one column per date,
// returning one record per region and date. Province or state columns, coordinates,
// and other non-date columns are ignored. Empty cells yield missing values.
func Read(r io.Reader, log logrus.FieldLogger) ([]timeseries.Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed reading header: %w", err)
	}
	countryCol := -1
	type dateCol struct {
		i int
		d time.Time
	}
	var dateCols []dateCol
	var metaCols []string
	for i, s := range header {
		s = strings.TrimLeft(s, "\ufeff") // sigh
		if d, ok := ParseDate(s); ok {
			dateCols = append(dateCols, dateCol{i, d})
			continue
		}
		for _, name := range countryCols {
			if s == name {
				countryCol = i
			}
		}
		metaCols = append(metaCols, s)
	}
	if countryCol < 0 {
		return nil, ErrNoCountryColumn
	}
	if len(dateCols) == 0 {
		return nil, ErrNoDateColumns
	}
	log.WithFields(logrus.Fields{
		"dates": len(dateCols),
		"meta":  metaCols,
	}).Debug("Read header")

	var recs []timeseries.Record
	for line := 2; ; line++ {
		vals, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		country := vals[countryCol]
		if country == "" {
			log.WithField("line", line).Debug("Skipping row without country")
			continue
		}
		for _, dc := range dateCols {
			v := timeseries.Missing()
			if s := strings.TrimSpace(vals[dc.i]); s != "" {
				if v, err = strconv.ParseFloat(s, 64); err != nil {
					return nil, fmt.Errorf("line %d: bad value %q for %v on %v",
						line, s, country, header[dc.i])
				}
			}
			recs = append(recs, timeseries.Record{Country: country, Date: dc.d, Value: v})
		}
	}
	return recs, nil
}
