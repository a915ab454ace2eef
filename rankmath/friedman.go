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

// Friedman performs the Friedman test of whether the levels of the
// within-subject column within differ in column dv, for a
// repeated-measures design.
//
// Blocks are formed as described by Blocks. Subjects with a missing
// value at any level are excluded. Values are ranked within each
// subject; Q is corrected for ties and the p-value uses the
// chi-squared distribution with (number of levels - 1) degrees of
// freedom. The row also reports Kendall's W = Q / (n(k-1)).
func Friedman(data *longtable.Table, dv, within string, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	b, err := Blocks(data, dv, within, opts...)
	if err != nil {
		return nil, err
	}
	k := len(b.Levels)
	if k < 2 {
		return nil, invalidf("Friedman needs at least two levels of %q, have %d", within, k)
	}
	blocks := b.Complete()
	if len(blocks) == 0 {
		return nil, invalidf("Friedman: no subject has values at every level of %q", within)
	}

	sums := make([]float64, k)
	var ties float64
	for _, block := range blocks {
		ranks, t := rank(block)
		for j, r := range ranks {
			sums[j] += r
		}
		ties += tieSum(t)
	}
	n, fk := float64(len(blocks)), float64(k)
	correction := 1 - ties/(n*fk*(fk*fk-1))
	if correction == 0 {
		return nil, invalidf("Friedman: every subject has identical values at all levels of %q", within)
	}
	var ssbn float64
	for _, s := range sums {
		ssbn += s * s
	}
	q := (12/(n*fk*(fk+1))*ssbn - 3*n*(fk+1)) / correction

	var warnings []error
	if dropped := len(b.Values) - len(blocks); dropped > 0 {
		warnings = append(warnings, fmt.Errorf("excluded %d subjects with missing values", dropped))
	}
	row := &Row{
		Test:     "Friedman",
		Stat:     StatQ,
		Value:    o.round(q),
		P:        distuv.ChiSquared{K: fk - 1}.Survival(q),
		Source:   within,
		DDOF1:    k - 1,
		RBC:      math.NaN(),
		CLES:     math.NaN(),
		W:        o.round(q / (n * (fk - 1))),
		N:        len(blocks),
		Warnings: warnings,
	}
	return o.finish(&Summary{Rows: []*Row{row}})
}
