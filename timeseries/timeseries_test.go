// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

package timeseries

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var nan = math.NaN()

// makeDates returns n consecutive days starting at start ("2006-01-02").
func makeDates(start string, n int) []time.Time {
	t, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(fmt.Sprintf("Failed parsing %q: %v", start, err))
	}
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = t.AddDate(0, 0, i)
	}
	return dates
}

func makeTable(t *testing.T, dates []time.Time, cols ...Column) *Table {
	t.Helper()
	tbl, err := New(dates, cols)
	if err != nil {
		t.Fatal("New failed: ", err)
	}
	return tbl
}

// scenarioTable returns a table where A first exceeds 1 on day 5 and B never does.
func scenarioTable(t *testing.T) *Table {
	return makeTable(t, makeDates("2020-03-01", 8),
		Column{"A", []float64{0, 0, 0, 0, 0, 2, 5, 9}},
		Column{"B", []float64{0, 0, 1, 1, 1, 1, 1, 1}})
}

func TestNew_Invalid(t *testing.T) {
	dates := makeDates("2020-03-01", 3)
	for _, tc := range []struct {
		dates []time.Time
		cols  []Column
		want  error
	}{
		{[]time.Time{dates[1], dates[0]}, nil, ErrUnsortedDates},
		{[]time.Time{dates[0], dates[0]}, nil, ErrUnsortedDates},
		{dates, []Column{{"A", []float64{1, 2}}}, ErrLengthMismatch},
		{dates, []Column{{"A", []float64{1, 2, 3}}, {"A", []float64{1, 2, 3}}}, ErrDuplicateCountry},
	} {
		if _, err := New(tc.dates, tc.cols); !errors.Is(err, tc.want) {
			t.Errorf("New(%v, %v) returned %v; want %v", tc.dates, tc.cols, err, tc.want)
		}
	}
}

func TestNew_CopiesInput(t *testing.T) {
	vals := []float64{1, 2, 3}
	tbl := makeTable(t, makeDates("2020-03-01", 3), Column{"A", vals})
	vals[0] = 100
	if v := tbl.Value(0, "A"); v != 1 {
		t.Errorf("Value(0, A) = %v after modifying input; want 1", v)
	}
	col, _ := tbl.Column("A")
	col[1] = 100
	if v := tbl.Value(1, "A"); v != 2 {
		t.Errorf("Value(1, A) = %v after modifying returned column; want 2", v)
	}
}

func TestBuild(t *testing.T) {
	d := makeDates("2020-03-01", 3)
	recs := []Record{
		{"Canada", d[1], 5},
		{"Canada", d[0].Add(13 * time.Hour), 1}, // truncated to day
		{"Australia", d[2], 7},
		{"Canada", d[1], 3}, // another province
		{"Australia", d[0], 2},
		{"Canada", d[2], nan},
	}
	tbl, err := Build(recs)
	if err != nil {
		t.Fatal("Build failed: ", err)
	}
	if diff := cmp.Diff(d, tbl.Dates()); diff != "" {
		t.Error("Didn't build expected dates:\n" + diff)
	}
	if diff := cmp.Diff([]Column{
		{"Australia", []float64{2, nan, 7}},
		{"Canada", []float64{1, 8, nan}},
	}, tbl.Columns(), cmpopts.EquateNaNs()); diff != "" {
		t.Error("Didn't build expected columns:\n" + diff)
	}
}

func TestBuild_Empty(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrNoRecords) {
		t.Errorf("Build(nil) returned %v; want %v", err, ErrNoRecords)
	}
}

func TestFirstCrossed(t *testing.T) {
	tbl := scenarioTable(t)
	cr := FirstCrossed(tbl, 1)
	if diff := cmp.Diff(map[string]time.Time{"A": tbl.Date(5)}, cr.Map()); diff != "" {
		t.Error("FirstCrossed returned wrong crossings:\n" + diff)
	}
	if _, ok := cr.Date("B"); ok {
		t.Error("B unexpectedly crossed threshold")
	}
	if row, _ := cr.Row("A"); row != 5 {
		t.Errorf("Row(A) = %v; want 5", row)
	}
	if start, _ := cr.Start("A"); start != 4 {
		t.Errorf("Start(A) = %v; want 4", start)
	}
}

func TestFirstCrossed_StrictlyGreater(t *testing.T) {
	dates := makeDates("2020-03-01", 6)
	tbl := makeTable(t, dates,
		Column{"C", []float64{1, 3, 10, 10, 11, 20}},
		Column{"B", []float64{nan, nan, 4, 11, 12, 13}},
		Column{"A", []float64{20, 30, 40, 50, 60, 70}})
	const threshold = 10
	cr := FirstCrossed(tbl, threshold)

	// Discovery order follows column order.
	if diff := cmp.Diff([]string{"C", "B", "A"}, cr.Countries()); diff != "" {
		t.Error("Countries returned wrong order:\n" + diff)
	}
	for _, name := range cr.Countries() {
		row, _ := cr.Row(name)
		col, _ := tbl.Column(name)
		if !(col[row] > threshold) {
			t.Errorf("%v's value %v at crossing row %v doesn't exceed %v", name, col[row], row, threshold)
		}
		for i := 0; i < row; i++ {
			if col[i] > threshold {
				t.Errorf("%v's earlier value %v at row %v exceeds %v", name, col[i], i, threshold)
			}
		}
	}
	if start, _ := cr.Start("A"); start != 0 {
		t.Errorf("Start(A) = %v for first-row crossing; want 0", start)
	}
}

func TestAlignCases(t *testing.T) {
	a := AlignCases(scenarioTable(t), 1)
	if diff := cmp.Diff([]Column{{"A", []float64{0, 2, 5, 9}}}, a.Columns()); diff != "" {
		t.Error("AlignCases returned wrong columns:\n" + diff)
	}
	if a.Len() != 4 {
		t.Errorf("Len() = %v; want 4", a.Len())
	}
}

func TestAlignCases_Padding(t *testing.T) {
	tbl := makeTable(t, makeDates("2020-03-01", 6),
		Column{"Late", []float64{0, 0, 0, 0, 3, 4}},
		Column{"Early", []float64{0, 2, 3, 4, 5, 6}},
		Column{"Never", []float64{0, 0, 0, 0, 0, 0}})
	a := AlignCases(tbl, 1)
	if diff := cmp.Diff([]Column{
		{"Late", []float64{0, 3, 4, nan, nan, nan}},
		{"Early", []float64{0, 2, 3, 4, 5, 6}},
	}, a.Columns(), cmpopts.EquateNaNs()); diff != "" {
		t.Error("AlignCases returned wrong columns:\n" + diff)
	}

	cr := FirstCrossed(tbl, 1)
	for _, name := range a.Countries() {
		row, _ := cr.Row(name)
		if got, want := a.Observed(name), tbl.Len()-row+1; got != want {
			t.Errorf("Observed(%v) = %v; want %v", name, got, want)
		}
	}
}

func TestAlignCases_DateGap(t *testing.T) {
	// There's no row for the day before the crossing, so the run starts on the crossing date.
	d := makeDates("2020-03-01", 5)
	tbl := makeTable(t, []time.Time{d[0], d[2], d[3], d[4]},
		Column{"A", []float64{0, 5, 6, 7}})
	a := AlignCases(tbl, 1)
	if diff := cmp.Diff([]Column{{"A", []float64{5, 6, 7}}}, a.Columns()); diff != "" {
		t.Error("AlignCases returned wrong columns:\n" + diff)
	}
}

func TestDeterminism(t *testing.T) {
	tbl := scenarioTable(t)
	if diff := cmp.Diff(FirstCrossed(tbl, 0).Map(), FirstCrossed(tbl, 0).Map()); diff != "" {
		t.Error("FirstCrossed isn't deterministic:\n" + diff)
	}
	if diff := cmp.Diff(AlignCases(tbl, 0).Columns(), AlignCases(tbl, 0).Columns(),
		cmpopts.EquateNaNs()); diff != "" {
		t.Error("AlignCases isn't deterministic:\n" + diff)
	}
}

func TestTable_Ops(t *testing.T) {
	tbl := makeTable(t, makeDates("2020-03-01", 4),
		Column{"A", []float64{0, 2, 3, 6}},
		Column{"B", []float64{10, nan, 20, 30}})

	date, last, ok := tbl.Last()
	if !ok || !date.Equal(tbl.Date(3)) {
		t.Errorf("Last() returned date %v, ok %v; want %v, true", date, ok, tbl.Date(3))
	}
	if diff := cmp.Diff([]float64{6, 30}, last); diff != "" {
		t.Error("Last() returned wrong values:\n" + diff)
	}
	if diff := cmp.Diff([]float64{10, 2, 23, 36}, tbl.Sum()); diff != "" {
		t.Error("Sum() returned wrong values:\n" + diff)
	}
	if diff := cmp.Diff([]Column{
		{"A", []float64{nan, 2, 1, 3}},
		{"B", []float64{nan, nan, nan, 10}},
	}, tbl.Diff().Columns(), cmpopts.EquateNaNs()); diff != "" {
		t.Error("Diff() returned wrong columns:\n" + diff)
	}
	if diff := cmp.Diff([]Column{
		{"A", []float64{nan, math.Inf(1), 0.5, 1}},
		{"B", []float64{nan, nan, nan, 0.5}},
	}, tbl.PctChange().Columns(), cmpopts.EquateNaNs()); diff != "" {
		t.Error("PctChange() returned wrong columns:\n" + diff)
	}
}

func TestTable_SliceAndSelect(t *testing.T) {
	tbl := makeTable(t, makeDates("2020-03-01", 4),
		Column{"A", []float64{1, 2, 3, 4}},
		Column{"B", []float64{5, 6, 7, 8}})
	s := tbl.Slice(1, 3).Select("B", "Ruritania", "A")
	if diff := cmp.Diff([]Column{
		{"B", []float64{6, 7}},
		{"A", []float64{2, 3}},
	}, s.Columns()); diff != "" {
		t.Error("Slice and Select returned wrong columns:\n" + diff)
	}
	if !s.Date(0).Equal(tbl.Date(1)) {
		t.Errorf("Date(0) = %v; want %v", s.Date(0), tbl.Date(1))
	}
}

func TestWriteTSV(t *testing.T) {
	tbl := makeTable(t, makeDates("2020-03-01", 2),
		Column{"A", []float64{1.5, nan}},
		Column{"New Zealand", []float64{0, 3}})
	var b bytes.Buffer
	if err := tbl.WriteTSV(&b, "2006-01-02"); err != nil {
		t.Fatal("WriteTSV failed: ", err)
	}
	const want = "Date\tA\tNew Zealand\n" +
		"2020-03-01\t1.5\t0\n" +
		"2020-03-02\t?\t3\n"
	if got := b.String(); got != want {
		t.Errorf("WriteTSV wrote %q; want %q", got, want)
	}

	b.Reset()
	if err := AlignCases(scenarioTable(t), 1).WriteTSV(&b); err != nil {
		t.Fatal("WriteTSV failed: ", err)
	}
	const wantAligned = "Day\tA\n0\t0\n1\t2\n2\t5\n3\t9\n"
	if got := b.String(); got != wantAligned {
		t.Errorf("Aligned.WriteTSV wrote %q; want %q", got, wantAligned)
	}
}
