// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"golang.org/x/rankstat/longtable"
)

// Kruskal performs the Kruskal-Wallis H test of whether the groups of
// column dv defined by the levels of column between come from the
// same distribution.
//
// Rows whose DV is NaN are excluded. Groups left with no observations
// are ignored, and at least two groups must remain. H is corrected
// for ties and the p-value uses the chi-squared distribution with
// (number of groups - 1) degrees of freedom.
func Kruskal(data *longtable.Table, dv, between string, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	groups, err := data.Groups(dv, between)
	if err != nil {
		return nil, invalid(err)
	}

	var (
		pooled   []float64
		sizes    []int
		missing  int
		warnings []error
	)
	for _, g := range groups {
		vals := dropNaN(g.Values)
		missing += len(g.Values) - len(vals)
		if len(vals) == 0 {
			warnings = append(warnings, fmt.Errorf("group %q has no observations", g.Label))
			continue
		}
		pooled = append(pooled, vals...)
		sizes = append(sizes, len(vals))
	}
	if len(sizes) < 2 {
		return nil, invalidf("Kruskal needs at least two groups in %q, have %d", between, len(sizes))
	}
	if missing > 0 {
		warnings = append(warnings, fmt.Errorf("excluded %d missing values", missing))
	}

	ranks, ties := rank(pooled)
	n := float64(len(pooled))
	correction := 1 - tieSum(ties)/(n*n*n-n)
	if correction == 0 {
		return nil, invalidf("Kruskal: all values of %q are identical", dv)
	}
	var sum float64
	off := 0
	for _, size := range sizes {
		var rs float64
		for _, r := range ranks[off : off+size] {
			rs += r
		}
		sum += rs * rs / float64(size)
		off += size
	}
	h := (12/(n*(n+1))*sum - 3*(n+1)) / correction

	df := len(sizes) - 1
	row := &Row{
		Test:     "Kruskal",
		Stat:     StatH,
		Value:    o.round(h),
		P:        distuv.ChiSquared{K: float64(df)}.Survival(h),
		Source:   between,
		DDOF1:    df,
		RBC:      math.NaN(),
		CLES:     math.NaN(),
		W:        math.NaN(),
		N:        len(pooled),
		Warnings: warnings,
	}
	return o.finish(&Summary{Rows: []*Row{row}})
}
