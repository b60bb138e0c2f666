// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package observability exports headline case figures as Prometheus metrics.
// Metrics are written in the node_exporter textfile collector's format.
package observability

import (
	"github.com/derat/covidwatch/timeseries"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds gauges describing the latest row of a case table.
type Metrics struct {
	reg *prometheus.Registry

	// Cases holds each country's latest cumulative count.
	Cases *prometheus.GaugeVec
	// NewCases holds each country's latest day-over-day change.
	NewCases *prometheus.GaugeVec
	// CasesPerMillion holds each country's latest per-capita rate.
	CasesPerMillion *prometheus.GaugeVec
	// GlobalCases holds the latest sum across all countries.
	GlobalCases prometheus.Gauge
	// LastDate holds the date of the latest row as a Unix timestamp.
	LastDate prometheus.Gauge
}

// NewMetrics returns Metrics registered with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Cases: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "covidwatch_confirmed_cases",
			Help: "Cumulative confirmed cases as of the latest date",
		}, []string{"country"}),
		NewCases: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "covidwatch_new_cases",
			Help: "Confirmed cases added on the latest date",
		}, []string{"country"}),
		CasesPerMillion: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "covidwatch_cases_per_million",
			Help: "Cumulative confirmed cases per million people as of the latest date",
		}, []string{"country"}),
		GlobalCases: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "covidwatch_global_confirmed_cases",
			Help: "Cumulative confirmed cases across all countries as of the latest date",
		}),
		LastDate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "covidwatch_last_date_timestamp_seconds",
			Help: "Date of the latest data as a Unix timestamp",
		}),
	}
	m.reg.MustRegister(m.Cases, m.NewCases, m.CasesPerMillion, m.GlobalCases, m.LastDate)
	return m
}

// Registry returns the registry holding m's gauges.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Observe sets m's gauges from the last rows of cases and rates.
// rates may be nil. Only countries in countries are exported individually,
// and missing values are left unset.
func (m *Metrics) Observe(cases, rates *timeseries.Table, countries []string) {
	date, _, ok := cases.Last()
	if !ok {
		return
	}
	last := cases.Len() - 1
	m.LastDate.Set(float64(date.Unix()))
	m.GlobalCases.Set(cases.Sum()[last])

	diff := cases.Diff()
	set := func(g *prometheus.GaugeVec, country string, v float64) {
		if !timeseries.IsMissing(v) {
			g.WithLabelValues(country).Set(v)
		}
	}
	for _, c := range countries {
		if !cases.Has(c) {
			continue
		}
		set(m.Cases, c, cases.Value(last, c))
		set(m.NewCases, c, diff.Value(last, c))
		if rates != nil {
			set(m.CasesPerMillion, c, rates.Value(last, c))
		}
	}
}

// WriteTextfile atomically writes m's metrics to p.
func (m *Metrics) WriteTextfile(p string) error {
	return prometheus.WriteToTextfile(p, m.reg)
}
