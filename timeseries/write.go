// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package timeseries

import (
	"io"
	"strconv"
	"strings"
)

// missingStr is written in place of missing values. gnuplot skips it.
const missingStr = "?"

// WriteTSV writes t to w in gnuplot's format, i.e. lines with tab-separated values.
// The first line holds column names, and each following line starts with
// the row's date formatted using layout.
func (t *Table) WriteTSV(w io.Writer, layout string) error {
	rowNames := make([]string, t.Len())
	for i, d := range t.dates {
		rowNames[i] = d.Format(layout)
	}
	return writeTSV(w, "Date", rowNames, t.cols)
}

// WriteTSV writes a to w in the same format as Table.WriteTSV,
// with each line starting with the row's day offset.
func (a *Aligned) WriteTSV(w io.Writer) error {
	rowNames := make([]string, a.rows)
	for i := range rowNames {
		rowNames[i] = strconv.Itoa(i)
	}
	return writeTSV(w, "Day", rowNames, a.cols)
}

func writeTSV(w io.Writer, indexName string, rowNames []string, cols []Column) error {
	var writeErr error
	write := func(s string) {
		if writeErr == nil {
			_, writeErr = io.WriteString(w, s)
		}
	}

	names := make([]string, 0, 1+len(cols))
	names = append(names, indexName)
	for _, c := range cols {
		names = append(names, c.Name)
	}
	write(strings.Join(names, "\t") + "\n")

	for i, rn := range rowNames {
		vals := make([]string, 0, 1+len(cols))
		vals = append(vals, rn)
		for _, c := range cols {
			vals = append(vals, FormatValue(c.Values[i]))
		}
		write(strings.Join(vals, "\t") + "\n")
	}
	return writeErr
}

// FormatValue formats v as the shortest decimal representation, or "?" if v is missing.
func FormatValue(v float64) string {
	if IsMissing(v) {
		return missingStr
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
