// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longtable

import (
	"math"

	"github.com/montanaflynn/stats"
)

// A Description summarizes the DV values of one group.
type Description struct {
	Label string

	// N is the number of non-missing values and Missing is the
	// number of NaN values.
	N, Missing int

	// Mean, Median, Min, and Max are computed over the
	// non-missing values. They are NaN if N is 0.
	Mean, Median, Min, Max float64
}

// Describe returns descriptive statistics of column dv for each level
// of column by, in order of first appearance.
func (t *Table) Describe(dv, by string) ([]Description, error) {
	groups, err := t.Groups(dv, by)
	if err != nil {
		return nil, err
	}
	out := make([]Description, len(groups))
	for i, g := range groups {
		var data stats.Float64Data
		for _, v := range g.Values {
			if !math.IsNaN(v) {
				data = append(data, v)
			}
		}
		d := Description{
			Label:   g.Label,
			N:       len(data),
			Missing: len(g.Values) - len(data),
			Mean:    math.NaN(),
			Median:  math.NaN(),
			Min:     math.NaN(),
			Max:     math.NaN(),
		}
		if len(data) > 0 {
			// These only fail on empty input.
			d.Mean, _ = data.Mean()
			d.Median, _ = data.Median()
			d.Min, _ = data.Min()
			d.Max, _ = data.Max()
		}
		out[i] = d
	}
	return out, nil
}
