// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats rankmath summaries and descriptive
// statistics for people to read.
//
// Every format shows the same cells as the export format of
// golang.org/x/rankstat/export, so a report never shows more or less
// precision than an exported file.
package report

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/rankstat/export"
	"golang.org/x/rankstat/rankmath"
)

// A Formatter writes a summary to w.
type Formatter func(w io.Writer, s *rankmath.Summary) error

var formatters = map[string]Formatter{
	"text": FormatText,
	"csv":  FormatCSV,
	"tsv":  FormatTSV,
	"html": FormatHTML,
	"yaml": FormatYAML,
}

// Formats returns the names of the supported formats, sorted.
func Formats() []string {
	var names []string
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format writes s to w in the named format.
func Format(w io.Writer, name string, s *rankmath.Summary) error {
	f, ok := formatters[name]
	if !ok {
		return fmt.Errorf("unknown format %q (want one of %v)", name, Formats())
	}
	return f(w, s)
}

// FormatCSV writes s in the comma-separated export format.
func FormatCSV(w io.Writer, s *rankmath.Summary) error {
	return export.Write(w, s, ',')
}

// FormatTSV writes s in the tab-separated export format.
func FormatTSV(w io.Writer, s *rankmath.Summary) error {
	return export.Write(w, s, '\t')
}

// grid returns the header and cells of s in export layout.
func grid(s *rankmath.Summary) (header []string, rows [][]string) {
	cols := s.Columns()
	header = append([]string{export.TestColumn}, cols...)
	for _, r := range s.Rows {
		row := []string{r.Test}
		for _, c := range cols {
			row = append(row, r.Cell(c))
		}
		rows = append(rows, row)
	}
	return header, rows
}

// warnings returns the warnings of every row of s, prefixed by the
// row's test.
func warnings(s *rankmath.Summary) []string {
	var out []string
	for _, r := range s.Rows {
		for _, w := range r.Warnings {
			out = append(out, fmt.Sprintf("%s: %v", r.Test, w))
		}
	}
	return out
}
