// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package cmd

// plotDateLayout is used for data files read by gnuplot. It matches the templates' timefmt.
const plotDateLayout = "2006-01-02"

const (
	// timeSeriesTmpl plots every column of a date-indexed data file.
	timeSeriesTmpl = `
set terminal pngcairo size {{.Width}},{{.Height}}
set output {{gpquote .Output}}
set title {{gpquote .Title}}

set datafile separator "\t"
set datafile missing "?"

set xdata time
set timefmt '%Y-%m-%d'
set format x '%m/%d'
set xlabel 'Date'

set ylabel {{gpquote .YLabel}}
set yrange [0:*]
{{- if .LogScale}}
set logscale y
set yrange [1:*]
{{- end}}
set grid xtics ytics
set key autotitle columnheader top left

plot for [i=2:{{add .NumLines 1}}] {{gpquote .DataPath}} using 1:i with lines lw 2
`

	// alignedTmpl plots every column of a data file indexed by days since a threshold was crossed.
	alignedTmpl = `
set terminal pngcairo size {{.Width}},{{.Height}}
set output {{gpquote .Output}}
set title {{gpquote .Title}}

set datafile separator "\t"
set datafile missing "?"

set xlabel {{printf "Days since exceeding %v" .Threshold | gpquote}}
set ylabel {{gpquote .YLabel}}
set logscale y
set grid xtics ytics
set key autotitle columnheader top left

plot for [i=2:{{add .NumLines 1}}] {{gpquote .DataPath}} using 1:i with lines lw 2
`
)

// plotData is passed to timeSeriesTmpl and alignedTmpl.
type plotData struct {
	Title     string
	YLabel    string
	DataPath  string  // tab-separated data file
	NumLines  int     // number of data columns after the index column
	Output    string  // PNG file to write
	Width     int     // image width in pixels
	Height    int     // image height in pixels
	LogScale  bool    // use a logarithmic y axis
	Threshold float64 // used by alignedTmpl
}
