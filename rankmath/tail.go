// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"fmt"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// A Tail specifies the alternative hypothesis of a pairwise test.
type Tail int

const (
	// TwoSided tests whether the two samples differ in location
	// in either direction.
	TwoSided Tail = iota

	// OneSided tests in the direction of the observed effect:
	// it resolves to Less if the median of x is below the median
	// of y, and to Greater otherwise.
	OneSided

	// Less tests whether x is located below y.
	Less

	// Greater tests whether x is located above y.
	Greater
)

var tailNames = []string{
	TwoSided: "two-sided",
	OneSided: "one-sided",
	Less:     "less",
	Greater:  "greater",
}

func (t Tail) String() string {
	if t < 0 || int(t) >= len(tailNames) {
		return fmt.Sprintf("Tail(%d)", int(t))
	}
	return tailNames[t]
}

// ParseTail parses the name of a Tail, as returned by Tail.String.
// "two.sided" and "one.sided" are also accepted.
func ParseTail(s string) (Tail, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ".", "-")
	for t, n := range tailNames {
		if n == name {
			return Tail(t), nil
		}
	}
	return 0, invalidf("unknown tail %q (want two-sided, one-sided, less, or greater)", s)
}

// resolve turns OneSided into a concrete direction using the medians
// of x and y.
func (t Tail) resolve(x, y []float64) (Tail, error) {
	switch t {
	case TwoSided, Less, Greater:
		return t, nil
	case OneSided:
		mx := stats.Sample{Xs: x}.Quantile(0.5)
		my := stats.Sample{Xs: y}.Quantile(0.5)
		if mx < my {
			return Less, nil
		}
		return Greater, nil
	}
	return 0, invalidf("unknown tail %v", t)
}

// location returns the go-moremath hypothesis for a resolved tail.
func (t Tail) location() stats.LocationHypothesis {
	switch t {
	case Less:
		return stats.LocationLess
	case Greater:
		return stats.LocationGreater
	}
	return stats.LocationDiffers
}
