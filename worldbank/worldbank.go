// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package worldbank reads World Bank indicator data downloaded from
// http://api.worldbank.org/v2/en/indicator/<code>?downloadformat=csv.
package worldbank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/derat/covidwatch/percapita"
	"github.com/derat/covidwatch/timeseries"
	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

// DefaultIndicator is the code for total population.
const DefaultIndicator = "SP.POP.TOTL"

const (
	nameCol       = "Country Name"
	updatedLabel  = "Last Updated Date"
	updatedLayout = "2006-01-02"
	firstYearCol  = 4 // after name, code, indicator name, and indicator code
)

var (
	ErrNoHeader = errors.New("missing header")
	ErrNoFile   = errors.New("no matching file in archive")
)

// ReadFile reads indicator data from p, which may be either a CSV file
// or a ZIP archive as served by the World Bank API. See ReadZip.
func ReadFile(p, indicator string, log logrus.FieldLogger) (*percapita.Population, error) {
	log = log.WithField("path", p)
	if strings.EqualFold(filepath.Ext(p), ".zip") {
		return ReadZip(p, indicator, log)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pop, updated, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", p, err)
	}
	log.WithFields(logrus.Fields{
		"countries": len(pop.Values),
		"updated":   updated.Format(updatedLayout),
	}).Debug("Read population data")
	return pop, nil
}

// ReadZip reads indicator data from the ZIP archive at p.
// Archives contain a data file named like "API_<indicator>_DS2_en_csv_v2_<n>.csv"
// alongside metadata files. If there are multiple data files for indicator,
// the one with the latest "Last Updated Date" is used.
func ReadZip(p, indicator string, log logrus.FieldLogger) (*percapita.Population, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var best *percapita.Population
	var bestUpdated time.Time
	var bestName string
	prefix := "API_" + indicator
	for _, zf := range zr.File {
		name := path.Base(zf.Name)
		if !strings.HasPrefix(name, prefix) || !strings.EqualFold(path.Ext(name), ".csv") {
			continue
		}
		pop, updated, err := readZipFile(zf)
		if err != nil {
			return nil, fmt.Errorf("%v: %v: %w", p, zf.Name, err)
		}
		log.WithFields(logrus.Fields{
			"file":    zf.Name,
			"updated": updated.Format(updatedLayout),
		}).Debug("Found population data")
		if best == nil || updated.After(bestUpdated) {
			best, bestUpdated, bestName = pop, updated, zf.Name
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %v in %v", ErrNoFile, prefix, p)
	}
	log.WithField("file", bestName).Debug("Using population data")
	return best, nil
}

func readZipFile(zf *zip.File) (*percapita.Population, time.Time, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rc.Close()
	return Read(rc)
}

// Read reads a World Bank indicator CSV file. These files start with a short
// preamble including a "Last Updated Date" line, followed by a header line
// starting with "Country Name" and then one line per country with a column per year.
// Empty cells yield missing values. The file's last-updated date is also returned
// (or the zero time if the preamble doesn't include one).
func Read(r io.Reader) (pop *percapita.Population, updated time.Time, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // preamble lines are shorter

	var yearCols []int
	for {
		vals, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, time.Time{}, err
		}
		if len(vals) == 0 {
			continue
		}
		line, _ := cr.FieldPos(0) // blank lines are skipped, so count from the reader

		if pop == nil {
			switch strings.TrimLeft(vals[0], "\ufeff") {
			case updatedLabel:
				if len(vals) > 1 {
					if updated, err = time.Parse(updatedLayout, vals[1]); err != nil {
						return nil, time.Time{}, fmt.Errorf("line %d: bad update date %q", line, vals[1])
					}
				}
			case nameCol:
				pop = &percapita.Population{Values: make(map[string][]float64)}
				for i := firstYearCol; i < len(vals); i++ {
					if _, err := strconv.Atoi(vals[i]); err == nil {
						yearCols = append(yearCols, i)
						pop.Years = append(pop.Years, vals[i])
					}
				}
			}
			continue
		}

		pv := make([]float64, len(yearCols))
		for i, col := range yearCols {
			pv[i] = timeseries.Missing()
			if col >= len(vals) || vals[col] == "" {
				continue
			}
			if pv[i], err = strconv.ParseFloat(vals[col], 64); err != nil {
				return nil, time.Time{}, fmt.Errorf("line %d: bad value %q for %v in %v",
					line, vals[col], vals[0], pop.Years[i])
			}
		}
		pop.Values[vals[0]] = pv
	}

	if pop == nil {
		return nil, time.Time{}, ErrNoHeader
	}
	return pop, updated, nil
}
