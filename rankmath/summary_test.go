// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRowColumns(t *testing.T) {
	check := func(r *Row, want ...string) {
		t.Helper()
		if diff := cmp.Diff(want, r.Columns()); diff != "" {
			t.Errorf("%s columns (-want +got):\n%s", r.Test, diff)
		}
	}
	check(&Row{Test: "MWU", Stat: StatU}, "U-val", "tail", "p-val", "RBC", "CLES", "n")
	check(&Row{Test: "Wilcoxon", Stat: StatW}, "W-val", "tail", "p-val", "RBC", "CLES", "n")
	check(&Row{Test: "Kruskal", Stat: StatH}, "Source", "ddof1", "H", "p-unc", "n")
	check(&Row{Test: "Friedman", Stat: StatQ}, "Source", "ddof1", "Q", "W", "p-unc", "n")

	s := &Summary{Rows: []*Row{{Test: "Kruskal", Stat: StatH}, {Test: "Friedman", Stat: StatQ}}}
	want := []string{"Source", "ddof1", "H", "p-unc", "n", "Q", "W"}
	if diff := cmp.Diff(want, s.Columns()); diff != "" {
		t.Errorf("Summary.Columns (-want +got):\n%s", diff)
	}
}

func TestRowCell(t *testing.T) {
	r := &Row{Test: "MWU", Stat: StatU, Value: 2.5, P: 0.1234567890123, Tail: Less, RBC: math.NaN(), CLES: 0.25, N: 9}
	for col, want := range map[string]string{
		"U-val":  "2.5",
		"p-val":  "0.1234567890123",
		"tail":   "less",
		"RBC":    "",
		"CLES":   "0.25",
		"n":      "9",
		"Source": "",
		"H":      "",
	} {
		if got := r.Cell(col); got != want {
			t.Errorf("Cell(%q) = %q, want %q", col, got, want)
		}
	}
	if got, want := r.String(), "MWU: U-val=2.5 p-val=0.123 (less) n=9"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseRow(t *testing.T) {
	s, err := MWU([]float64{1.5, 2.25, 3, 9}, []float64{2, 4, 8, 16, 0.5}, OneSided)
	if err != nil {
		t.Fatal(err)
	}
	samples := normalSamples(1, 3, 10)
	f, err := Friedman(longTable(t, samples), "DV", "Time")
	if err != nil {
		t.Fatal(err)
	}
	k, err := Kruskal(longTable(t, samples), "DV", "Time")
	if err != nil {
		t.Fatal(err)
	}

	opts := cmp.Options{cmpopts.EquateNaNs(), cmpopts.IgnoreFields(Row{}, "Warnings")}
	for _, want := range []*Row{s.Rows[0], f.Rows[0], k.Rows[0]} {
		cols := want.Columns()
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = want.Cell(c)
		}
		got, err := ParseRow(want.Test, cols, cells)
		if err != nil {
			t.Errorf("ParseRow(%v): %v", cells, err)
			continue
		}
		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("%s round trip (-want +got):\n%s", want.Test, diff)
		}
	}

	if _, err := ParseRow("X", []string{"n"}, []string{"3"}); err == nil {
		t.Errorf("ParseRow without statistic: want error")
	}
	if _, err := ParseRow("X", []string{"H", "n"}, []string{"1"}); err == nil {
		t.Errorf("ParseRow with missing cell: want error")
	}
	if _, err := ParseRow("X", []string{"H", "p-unc"}, []string{"1", "abc"}); err == nil {
		t.Errorf("ParseRow with bad p-value: want error")
	}
}
