// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"errors"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// MWU performs the Mann-Whitney U test (also called the Wilcoxon
// rank-sum test) of whether independent samples x and y come from
// the same distribution.
//
// x and y may differ in length. NaN values are removed from each
// sample independently; each sample must retain at least one value.
//
// The statistic U is the U of x: the rank sum of x in the pooled
// sample minus n₁(n₁+1)/2. The p-value is exact for small samples
// without ties and uses the tie-corrected normal approximation
// otherwise. If every value is identical the test is meaningless; P
// is then 1 and the row carries a warning.
//
// The row also reports the rank-biserial correlation
// RBC = 1 - 2U/(n₁n₂) and the common language effect size
// CLES = P(X > Y) + P(X = Y)/2.
func MWU(x, y []float64, tail Tail, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	x, y = dropNaN(x), dropNaN(y)
	if len(x) == 0 || len(y) == 0 {
		return nil, invalidf("MWU needs at least one value in each sample, have %d and %d", len(x), len(y))
	}
	alt, err := tail.resolve(x, y)
	if err != nil {
		return nil, err
	}

	n1, n2 := len(x), len(y)
	pooled := make([]float64, 0, n1+n2)
	pooled = append(append(pooled, x...), y...)
	ranks, _ := rank(pooled)
	var r1 float64
	for _, r := range ranks[:n1] {
		r1 += r
	}
	u := r1 - float64(n1*(n1+1))/2

	row := &Row{
		Test:  "MWU",
		Stat:  StatU,
		Value: o.round(u),
		Tail:  alt,
		RBC:   1 - 2*u/float64(n1*n2),
		CLES:  cles(x, y),
		W:     math.NaN(),
		N:     n1 + n2,
	}

	res, err := stats.MannWhitneyUTest(x, y, alt.location())
	switch err {
	case nil:
		row.P = res.P
	case stats.ErrSamplesEqual:
		row.P = 1
		row.Warnings = append(row.Warnings, errors.New("all samples are equal"))
	default:
		return nil, invalidf("MWU: %v", err)
	}
	return o.finish(&Summary{Rows: []*Row{row}})
}

// cles returns the common language effect size of x over y: the
// probability that a random value of x exceeds a random value of y,
// counting ties as one half.
func cles(x, y []float64) float64 {
	var wins float64
	for _, xi := range x {
		for _, yj := range y {
			switch {
			case xi > yj:
				wins++
			case xi == yj:
				wins += 0.5
			}
		}
	}
	return wins / float64(len(x)*len(y))
}
