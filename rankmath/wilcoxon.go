// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// wilcoxonExactMax is the largest number of non-zero differences for
// which Wilcoxon computes an exact p-value.
const wilcoxonExactMax = 50

// Wilcoxon performs the Wilcoxon signed-rank test of whether the
// paired differences x[i] - y[i] are symmetric about zero.
//
// x and y must have the same length. Pairs where either value is NaN
// are removed, as are pairs of equal infinities and pairs with a zero
// difference. At least one non-zero difference must remain.
//
// For TwoSided, the statistic W is the smaller of the positive and
// negative rank sums; for a directional alternative it is the
// positive rank sum. The p-value is exact when there are at most 50
// differences and no ties among their magnitudes. Otherwise it uses
// the normal approximation with tie correction and no continuity
// correction.
//
// The row also reports the matched-pairs rank-biserial correlation
// RBC = (R⁺ - R⁻) / (R⁺ + R⁻) and the common language effect size
// over all pairs of x and y values.
func Wilcoxon(x, y []float64, tail Tail, opts ...Option) (*Summary, error) {
	o := newOptions(opts)
	if len(x) != len(y) {
		return nil, invalidf("Wilcoxon needs paired samples of equal length, have %d and %d", len(x), len(y))
	}

	var px, py, d []float64
	for i := range x {
		// NaN for missing values and for equal infinities.
		diff := x[i] - y[i]
		if math.IsNaN(diff) {
			continue
		}
		px = append(px, x[i])
		py = append(py, y[i])
		if diff != 0 {
			d = append(d, diff)
		}
	}
	if len(d) == 0 {
		return nil, invalidf("Wilcoxon needs at least one non-zero paired difference, have %d pairs", len(px))
	}
	alt, err := tail.resolve(px, py)
	if err != nil {
		return nil, err
	}

	abs := make([]float64, len(d))
	for i, v := range d {
		abs[i] = math.Abs(v)
	}
	ranks, ties := rank(abs)
	var rPlus, rMinus float64
	for i, r := range ranks {
		if d[i] > 0 {
			rPlus += r
		} else {
			rMinus += r
		}
	}

	n := len(d)
	w := rPlus
	if alt == TwoSided {
		w = math.Min(rPlus, rMinus)
	}
	var p float64
	if len(ties) == 0 && n <= wilcoxonExactMax {
		p = signedRankExactP(n, rPlus, alt)
	} else {
		p = signedRankNormalP(n, rPlus, tieSum(ties), alt)
	}

	row := &Row{
		Test:  "Wilcoxon",
		Stat:  StatW,
		Value: o.round(w),
		P:     p,
		Tail:  alt,
		RBC:   (rPlus - rMinus) / (rPlus + rMinus),
		CLES:  cles(px, py),
		W:     math.NaN(),
		N:     n,
	}
	if zeros := len(px) - n; zeros > 0 {
		row.Warnings = append(row.Warnings, fmt.Errorf("dropped %d zero differences", zeros))
	}
	if dropped := len(x) - len(px); dropped > 0 {
		row.Warnings = append(row.Warnings, fmt.Errorf("dropped %d pairs with missing values", dropped))
	}
	return o.finish(&Summary{Rows: []*Row{row}})
}

// signedRankExactP returns the exact p-value of the positive rank sum
// rPlus of n untied differences.
func signedRankExactP(n int, rPlus float64, alt Tail) float64 {
	// counts[s] is the number of subsets of {1..n} summing to s.
	// Under the null hypothesis each of the 2^n sign assignments
	// is equally likely. For n <= 50, every count is exactly
	// representable as a float64.
	maxSum := n * (n + 1) / 2
	counts := make([]float64, maxSum+1)
	counts[0] = 1
	for k := 1; k <= n; k++ {
		for s := maxSum; s >= k; s-- {
			counts[s] += counts[s-k]
		}
	}
	total := math.Ldexp(1, n)
	cdf := func(r int) float64 {
		var c float64
		for s := 0; s <= r && s <= maxSum; s++ {
			c += counts[s]
		}
		return c / total
	}

	r := int(math.Round(rPlus))
	less := cdf(r)
	greater := 1 - cdf(r-1)
	switch alt {
	case Less:
		return less
	case Greater:
		return greater
	}
	return math.Min(1, 2*math.Min(less, greater))
}

// signedRankNormalP returns the normal-approximation p-value of the
// positive rank sum rPlus of n differences whose tie runs sum to
// ties = Σ(t³ - t).
func signedRankNormalP(n int, rPlus, ties float64, alt Tail) float64 {
	fn := float64(n)
	mean := fn * (fn + 1) / 4
	variance := fn*(fn+1)*(2*fn+1)/24 - ties/48
	z := (rPlus - mean) / math.Sqrt(variance)
	switch alt {
	case Less:
		return distuv.UnitNormal.CDF(z)
	case Greater:
		return distuv.UnitNormal.Survival(z)
	}
	return math.Min(1, 2*distuv.UnitNormal.Survival(math.Abs(z)))
}
