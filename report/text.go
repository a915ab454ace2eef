// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"golang.org/x/rankstat/longtable"
	"golang.org/x/rankstat/rankmath"
)

// FormatText writes s as an aligned text table, followed by any
// warnings.
func FormatText(w io.Writer, s *rankmath.Summary) error {
	header, rows := grid(s)
	t := newTable(header)
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	for _, warn := range warnings(s) {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}

// FormatDescribe writes a text table of descriptive statistics of
// column dv by the levels of column by.
func FormatDescribe(w io.Writer, dv, by string, ds []longtable.Description) error {
	t := newTable([]string{by, "n", "missing", "mean", "median", "min", "max"})
	t.SetTitle(dv)
	for _, d := range ds {
		t.AppendRow(table.Row{d.Label, d.N, d.Missing,
			describeFloat(d.Mean), describeFloat(d.Median), describeFloat(d.Min), describeFloat(d.Max)})
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newTable(header []string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(toRow(header))
	return t
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func describeFloat(x float64) string {
	if math.IsNaN(x) {
		return "-"
	}
	return strconv.FormatFloat(x, 'g', 4, 64)
}
