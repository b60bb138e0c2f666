// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package percapita

import (
	"math"
	"testing"
	"time"

	"github.com/derat/covidwatch/timeseries"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var nan = math.NaN()

func makeCases(t *testing.T, cols ...timeseries.Column) *timeseries.Table {
	t.Helper()
	start := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for i := range cols[0].Values {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	tbl, err := timeseries.New(dates, cols)
	if err != nil {
		t.Fatal("New failed: ", err)
	}
	return tbl
}

func TestPopulation_Latest(t *testing.T) {
	pop := &Population{
		Years: []string{"2017", "2018", "2019"},
		Values: map[string][]float64{
			"Chad":    {10, 11, nan},
			"Nowhere": {nan, nan, nan},
		},
	}
	if v, ok := pop.Latest("Chad"); !ok || v != 11 {
		t.Errorf("Latest(Chad) = %v, %v; want 11, true", v, ok)
	}
	if v, ok := pop.Latest("Nowhere"); !ok || !math.IsNaN(v) {
		t.Errorf("Latest(Nowhere) = %v, %v; want NaN, true", v, ok)
	}
	if _, ok := pop.Latest("Ruritania"); ok {
		t.Error("Latest(Ruritania) unexpectedly succeeded")
	}
}

func TestReconciler(t *testing.T) {
	rc := NewReconciler(map[string]string{
		"US":               "United States",
		"Diamond Princess": "",
		"Korea, South":     "Korea, Rep.",
	})
	for _, tc := range []struct {
		in   string
		want string
		ok   bool
	}{
		{"US", "United States", true},
		{"Chad", "Chad", true},
		{"Diamond Princess", "", false},
	} {
		if got, ok := rc.PopulationName(tc.in); got != tc.want || ok != tc.ok {
			t.Errorf("PopulationName(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}

	pop := &Population{
		Years: []string{"2019"},
		Values: map[string][]float64{
			"United States":    {328},
			"Korea, Rep.":      {51},
			"Chad":             {16},
			"US":               {1}, // shouldn't shadow "United States"
			"Diamond Princess": {3},
		},
	}
	countries := []string{"US", "Korea, South", "Chad", "Diamond Princess", "Narnia"}
	if diff := cmp.Diff(Latest{"US": 328, "Korea, South": 51, "Chad": 16}, rc.Reconcile(pop, countries)); diff != "" {
		t.Error("Reconcile returned wrong populations:\n" + diff)
	}
}

func TestReconciler_SharedAlias(t *testing.T) {
	rc := NewReconciler(map[string]string{
		"Taiwan*":      "Taiwan",
		"Taiwan (ROC)": "Taiwan",
		"Formosa":      "Taiwan",
	})
	pop := &Population{Years: []string{"2019"}, Values: map[string][]float64{"Taiwan": {23}}}
	countries := []string{"Formosa", "Taiwan (ROC)", "Taiwan*"}
	want := Latest{"Formosa": 23, "Taiwan (ROC)": 23, "Taiwan*": 23}
	for i := 0; i < 50; i++ {
		if diff := cmp.Diff(want, rc.Reconcile(pop, countries)); diff != "" {
			t.Fatalf("Reconcile returned wrong populations on run %d:\n%s", i, diff)
		}
	}
}

func TestCaseRate(t *testing.T) {
	cases := makeCases(t,
		timeseries.Column{Name: "US", Values: []float64{1000, 4000}},
		timeseries.Column{Name: "Ruritania", Values: []float64{7, nan}},
		timeseries.Column{Name: "Zero", Values: []float64{1, 2}},
		timeseries.Column{Name: "Unknown", Values: []float64{1, 2}})
	rc := NewReconciler(map[string]string{"US": "United States"})
	pop := &Population{
		Years: []string{"2018", "2019"},
		Values: map[string][]float64{
			"United States": {1000000, 2000000},
			"Zero":          {0, 0},
			"Unknown":       {nan, nan},
		},
	}
	rate := CaseRate(cases, rc.Reconcile(pop, cases.Countries()))

	if diff := cmp.Diff([]timeseries.Column{
		{Name: "US", Values: []float64{500, 2000}},
		{Name: "Ruritania", Values: []float64{7, nan}},
		{Name: "Zero", Values: []float64{nan, nan}},
		{Name: "Unknown", Values: []float64{nan, nan}},
	}, rate.Columns(), cmpopts.EquateNaNs()); diff != "" {
		t.Error("CaseRate returned wrong columns:\n" + diff)
	}
	if diff := cmp.Diff(cases.Dates(), rate.Dates()); diff != "" {
		t.Error("CaseRate returned wrong dates:\n" + diff)
	}

	// The input table shouldn't be modified.
	if v := cases.Value(1, "US"); v != 4000 {
		t.Errorf("Input US value = %v after CaseRate; want 4000", v)
	}
}
