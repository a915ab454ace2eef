// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Statistic column names.
const (
	StatU = "U-val" // Mann-Whitney U
	StatW = "W-val" // Wilcoxon signed-rank W
	StatH = "H"     // Kruskal-Wallis H
	StatQ = "Q"     // Friedman Q
)

// A Summary is the result of one or more tests, keyed by test name.
// It is never modified after a test returns it.
type Summary struct {
	Rows []*Row
}

// A Row holds the result of a single test.
type Row struct {
	// Test is the name of the test: "MWU", "Wilcoxon",
	// "Kruskal", or "Friedman". It is the key of the row.
	Test string

	// Stat is the column name of the test statistic (one of
	// StatU, StatW, StatH, StatQ) and Value is its value,
	// rounded to the requested number of decimals.
	Stat  string
	Value float64

	// P is the p-value of the test. It is not corrected for
	// multiple comparisons and is never rounded.
	P float64

	// Tail is the alternative hypothesis of a pairwise test,
	// after resolving OneSided to a direction.
	Tail Tail

	// RBC is the rank-biserial correlation and CLES the common
	// language effect size of a pairwise test. Both are NaN for
	// omnibus tests.
	RBC, CLES float64

	// Source is the grouping column of an omnibus test and DDOF1
	// its degrees of freedom (number of groups - 1).
	Source string
	DDOF1  int

	// W is Kendall's coefficient of concordance for a Friedman
	// test, rounded like Value. It is NaN for other tests.
	W float64

	// N is the number of observations the statistic was computed
	// from after missing values were excluded: the total for MWU
	// and Kruskal, the number of non-zero pairs for Wilcoxon,
	// and the number of complete subjects for Friedman.
	N int

	// Warnings is a list of warnings about this result. They are
	// not exported.
	Warnings []error
}

// Pairwise reports whether r is the result of a two-sample test.
func (r *Row) Pairwise() bool {
	return r.Stat == StatU || r.Stat == StatW
}

// PName returns the column name of r's p-value: "p-val" for pairwise
// tests and "p-unc" for omnibus tests.
func (r *Row) PName() string {
	if r.Pairwise() {
		return "p-val"
	}
	return "p-unc"
}

// Columns returns the names of r's exported columns, in order.
func (r *Row) Columns() []string {
	if r.Pairwise() {
		return []string{r.Stat, "tail", r.PName(), "RBC", "CLES", "n"}
	}
	cols := []string{"Source", "ddof1", r.Stat}
	if r.Stat == StatQ {
		cols = append(cols, "W")
	}
	return append(cols, r.PName(), "n")
}

// Cell returns the formatted value of column col, or "" if r has no
// such column. Statistics are formatted with exactly the precision
// they were rounded to; p-values and effect sizes are formatted so
// they parse back to the identical float64.
func (r *Row) Cell(col string) string {
	switch col {
	case r.Stat:
		return formatStat(r.Value)
	case "W":
		if r.Stat == StatQ {
			return formatStat(r.W)
		}
	case r.PName():
		return formatFloat(r.P)
	case "tail":
		if r.Pairwise() {
			return r.Tail.String()
		}
	case "RBC":
		if r.Pairwise() {
			return formatFloat(r.RBC)
		}
	case "CLES":
		if r.Pairwise() {
			return formatFloat(r.CLES)
		}
	case "Source":
		if !r.Pairwise() {
			return r.Source
		}
	case "ddof1":
		if !r.Pairwise() {
			return strconv.Itoa(r.DDOF1)
		}
	case "n":
		return strconv.Itoa(r.N)
	}
	return ""
}

// Float returns the numeric value of column col.
func (r *Row) Float(col string) (float64, bool) {
	switch col {
	case r.Stat:
		return r.Value, true
	case r.PName():
		return r.P, true
	case "n":
		return float64(r.N), true
	}
	if r.Pairwise() {
		switch col {
		case "RBC":
			return r.RBC, true
		case "CLES":
			return r.CLES, true
		}
		return 0, false
	}
	switch col {
	case "ddof1":
		return float64(r.DDOF1), true
	case "W":
		if r.Stat == StatQ {
			return r.W, true
		}
	}
	return 0, false
}

// String summarizes r in the form "Test: S=value p=P n=N".
func (r *Row) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s=%s %s=%.3g", r.Test, r.Stat, formatStat(r.Value), r.PName(), r.P)
	if r.Pairwise() {
		fmt.Fprintf(&b, " (%s)", r.Tail)
	}
	fmt.Fprintf(&b, " n=%d", r.N)
	return b.String()
}

// Row returns the row for the named test, or nil.
func (s *Summary) Row(test string) *Row {
	for _, r := range s.Rows {
		if r.Test == test {
			return r
		}
	}
	return nil
}

// Value returns the value of column col in the row of the named test.
// For example, s.Value("Q", "Friedman") is the Friedman statistic.
func (s *Summary) Value(col, test string) (float64, bool) {
	r := s.Row(test)
	if r == nil {
		return 0, false
	}
	return r.Float(col)
}

// Columns returns the union of the exported columns of s's rows in
// order of first appearance.
func (s *Summary) Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	for _, r := range s.Rows {
		for _, c := range r.Columns() {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	return cols
}

// ParseRow reconstructs a Row from exported columns and their cell
// values, as written using Row.Columns and Row.Cell.
func ParseRow(test string, cols, cells []string) (*Row, error) {
	if len(cols) != len(cells) {
		return nil, fmt.Errorf("%d columns but %d cells", len(cols), len(cells))
	}
	r := &Row{Test: test, RBC: math.NaN(), CLES: math.NaN(), W: math.NaN()}
	for _, c := range cols {
		switch c {
		case StatU, StatW, StatH, StatQ:
			if r.Stat != "" {
				return nil, fmt.Errorf("row %s: statistics %s and %s", test, r.Stat, c)
			}
			r.Stat = c
		}
	}
	if r.Stat == "" {
		return nil, fmt.Errorf("row %s: no statistic column", test)
	}

	var err error
	for i, c := range cols {
		cell := cells[i]
		if cell == "" {
			continue
		}
		switch c {
		case r.Stat:
			r.Value, err = strconv.ParseFloat(cell, 64)
		case "W":
			r.W, err = strconv.ParseFloat(cell, 64)
		case "p-val", "p-unc":
			r.P, err = strconv.ParseFloat(cell, 64)
		case "tail":
			r.Tail, err = ParseTail(cell)
		case "RBC":
			r.RBC, err = strconv.ParseFloat(cell, 64)
		case "CLES":
			r.CLES, err = strconv.ParseFloat(cell, 64)
		case "Source":
			r.Source = cell
		case "ddof1":
			r.DDOF1, err = strconv.Atoi(cell)
		case "n":
			r.N, err = strconv.Atoi(cell)
		}
		if err != nil {
			return nil, fmt.Errorf("row %s column %s: %v", test, c, err)
		}
	}
	return r, nil
}

func formatStat(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func formatFloat(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
