// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"math"
	"strconv"

	"golang.org/x/rankstat/longtable"
)

// A BlockDesign is a repeated-measures layout of a long-format table:
// one row per subject, one column per level of the within-subject
// factor.
type BlockDesign struct {
	// Levels are the levels of the within-subject column, in
	// order of first appearance.
	Levels []string

	// Subjects identify each block. If no subject column was
	// given, they are the 1-based positions of the observations
	// within each level.
	Subjects []string

	// Values[i][j] is the DV of subject i at level j. It is NaN
	// if the value is missing.
	Values [][]float64
}

// Blocks arranges column dv of data into a BlockDesign by the levels
// of column within.
//
// If the SubjectColumn option is given, observations with the same
// subject label form a block, and a subject/level pair may appear at
// most once. A subject that has no row for some level gets NaN there.
// Otherwise the i'th observation of each level forms block i, and
// every level must have the same number of observations.
func Blocks(data *longtable.Table, dv, within string, opts ...Option) (*BlockDesign, error) {
	o := newOptions(opts)
	groups, err := data.Groups(dv, within)
	if err != nil {
		return nil, invalid(err)
	}
	b := &BlockDesign{}
	for _, g := range groups {
		b.Levels = append(b.Levels, g.Label)
	}

	if o.subject == "" {
		n := 0
		for i, g := range groups {
			if i == 0 {
				n = len(g.Values)
			} else if len(g.Values) != n {
				return nil, invalidf("level %q of %q has %d observations, but level %q has %d; name a subject column to match observations", g.Label, within, len(g.Values), groups[0].Label, n)
			}
		}
		for i := 0; i < n; i++ {
			row := make([]float64, len(groups))
			for j, g := range groups {
				row[j] = g.Values[i]
			}
			b.Subjects = append(b.Subjects, strconv.Itoa(i+1))
			b.Values = append(b.Values, row)
		}
		return b, nil
	}

	subjects, err := data.Labels(o.subject)
	if err != nil {
		return nil, invalid(err)
	}
	index := make(map[string]int)
	for _, s := range subjects {
		if _, ok := index[s]; !ok {
			index[s] = len(b.Subjects)
			b.Subjects = append(b.Subjects, s)
			row := make([]float64, len(groups))
			for j := range row {
				row[j] = math.NaN()
			}
			b.Values = append(b.Values, row)
		}
	}
	seen := make([][]bool, len(b.Subjects))
	for i := range seen {
		seen[i] = make([]bool, len(groups))
	}
	for j, g := range groups {
		for k, r := range g.Rows {
			i := index[subjects[r]]
			if seen[i][j] {
				return nil, invalidf("subject %q has more than one observation at level %q", subjects[r], g.Label)
			}
			seen[i][j] = true
			b.Values[i][j] = g.Values[k]
		}
	}
	return b, nil
}

// Complete returns the rows of b that have no missing values.
func (b *BlockDesign) Complete() [][]float64 {
	var out [][]float64
rows:
	for _, row := range b.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue rows
			}
		}
		out = append(out, row)
	}
	return out
}

// Column returns the values of level j across all subjects.
func (b *BlockDesign) Column(j int) []float64 {
	out := make([]float64, len(b.Values))
	for i, row := range b.Values {
		out[i] = row[j]
	}
	return out
}
