// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package percapita scales country case counts by population.
package percapita

import (
	"sort"

	"github.com/derat/covidwatch/timeseries"
)

// perMillion is the population base that rates are expressed against.
const perMillion = 1000000

// Population holds population figures from a reference source such as the World Bank,
// keyed by the source's own country names.
type Population struct {
	Years  []string             // column labels, oldest first
	Values map[string][]float64 // one value per year; missing values are NaN
}

// Latest returns country's most recent non-missing population.
// ok is false if country isn't present. If it is present but has no
// values, a missing value is returned.
func (p *Population) Latest(country string) (pop float64, ok bool) {
	vals, ok := p.Values[country]
	if !ok {
		return 0, false
	}
	for i := len(vals) - 1; i >= 0; i-- {
		if !timeseries.IsMissing(vals[i]) {
			return vals[i], true
		}
	}
	return timeseries.Missing(), true
}

// Countries returns the population source's country names in sorted order.
func (p *Population) Countries() []string {
	names := make([]string, 0, len(p.Values))
	for name := range p.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Latest maps case-table country names to their latest population.
type Latest map[string]float64

// Reconciler translates case-data country names to the names used by a population source.
type Reconciler struct {
	aliases map[string]string // case name to population name
}

// NewReconciler returns a Reconciler using aliases, which maps case-data country names to
// population-source names (e.g. "US" to "United States"). Names without an alias are
// assumed to be the same in both sources. A case name aliased to the empty string
// has no population counterpart. Several case names may share a population name.
func NewReconciler(aliases map[string]string) *Reconciler {
	rc := &Reconciler{aliases: make(map[string]string, len(aliases))}
	for cn, pn := range aliases {
		rc.aliases[cn] = pn
	}
	return rc
}

// PopulationName returns the population-source name for the case-data name country.
// ok is false if country is explicitly unmatchable.
func (rc *Reconciler) PopulationName(country string) (name string, ok bool) {
	pn, aliased := rc.aliases[country]
	if !aliased {
		return country, true
	}
	return pn, pn != ""
}

// Reconcile returns the latest population from pop for each of the case-data
// names in countries. Countries that can't be matched are omitted.
func (rc *Reconciler) Reconcile(pop *Population, countries []string) Latest {
	lt := make(Latest, len(countries))
	for _, c := range countries {
		pn, ok := rc.PopulationName(c)
		if !ok {
			continue
		}
		if v, ok := pop.Latest(pn); ok {
			lt[c] = v
		}
	}
	return lt
}

// CaseRate returns a table shaped like cases holding cases per million people.
// Countries without an entry in pop keep their unscaled counts.
// Countries whose population is missing or zero get missing values.
func CaseRate(cases *timeseries.Table, pop Latest) *timeseries.Table {
	return cases.Map(func(country string, vals []float64) []float64 {
		p, ok := pop[country]
		if !ok {
			return vals
		}
		for i, v := range vals {
			if timeseries.IsMissing(p) || p == 0 {
				vals[i] = timeseries.Missing()
			} else {
				vals[i] = perMillion * v / p
			}
		}
		return vals
	})
}
