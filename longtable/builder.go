// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longtable

import (
	"fmt"

	"github.com/aclements/go-gg/table"
)

// A Builder constructs a Table one column at a time.
//
// The zero value of a Builder represents an empty Table. Builder
// methods return the Builder so calls can be chained; the first
// error encountered is reported by Done.
type Builder struct {
	b    table.Builder
	rows int
	cols int
	err  error
}

// Float64s adds a numeric column. NaN marks a missing value.
func (b *Builder) Float64s(name string, data []float64) *Builder {
	return b.add(name, data, len(data))
}

// Strings adds a categorical column.
func (b *Builder) Strings(name string, data []string) *Builder {
	return b.add(name, data, len(data))
}

func (b *Builder) add(name string, data table.Slice, n int) *Builder {
	if b.err != nil {
		return b
	}
	if b.b.Has(name) {
		b.err = fmt.Errorf("duplicate column %q", name)
		return b
	}
	if b.cols > 0 && n != b.rows {
		b.err = fmt.Errorf("cannot add column %q with %d rows to table with %d rows", name, n, b.rows)
		return b
	}
	b.b.Add(name, data)
	b.rows = n
	b.cols++
	return b
}

// Done returns the constructed Table and resets b.
func (b *Builder) Done() (*Table, error) {
	if err := b.err; err != nil {
		*b = Builder{}
		return nil, err
	}
	t := &Table{t: b.b.Done()}
	*b = Builder{}
	return t, nil
}

// Repeat returns each label repeated n times, in order:
// Repeat([]string{"A", "B"}, 2) is ["A", "A", "B", "B"].
func Repeat(labels []string, n int) []string {
	out := make([]string, 0, len(labels)*n)
	for _, l := range labels {
		for i := 0; i < n; i++ {
			out = append(out, l)
		}
	}
	return out
}
