// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export reads and writes rankmath summaries as delimited
// text, and provides rankmath.Exporter implementations that store
// them in local files and Google Cloud Storage objects.
//
// The format has a header row whose first cell is "Test" followed by
// the union of the columns of the summary's rows, and one row per
// test. Cells that do not apply to a test are empty. Statistics are
// written with exactly the precision they were rounded to and
// p-values with enough digits to parse back to the identical value,
// so Read(Write(s)) reproduces s.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/rankstat/rankmath"
)

// TestColumn is the name of the first column, which holds the name of
// each row's test.
const TestColumn = "Test"

// Write writes s to w as delimited text with the given separator.
func Write(w io.Writer, s *rankmath.Summary, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	cols := s.Columns()
	if err := cw.Write(append([]string{TestColumn}, cols...)); err != nil {
		return err
	}
	for _, r := range s.Rows {
		rec := make([]string, 1+len(cols))
		rec[0] = r.Test
		for i, c := range cols {
			rec[1+i] = r.Cell(c)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read parses a summary written by Write.
func Read(r io.Reader, comma rune) (*rankmath.Summary, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	header := recs[0]
	if len(header) == 0 || header[0] != TestColumn {
		return nil, fmt.Errorf("header must start with %q, got %q", TestColumn, header)
	}
	cols := header[1:]

	s := &rankmath.Summary{}
	for i, rec := range recs[1:] {
		// Keep only the columns this row has a value for, so
		// each row sees just its own statistic.
		var rc, cells []string
		for j, cell := range rec[1:] {
			if cell != "" {
				rc = append(rc, cols[j])
				cells = append(cells, cell)
			}
		}
		row, err := rankmath.ParseRow(rec[0], rc, cells)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// Comma returns the field separator for a file called name: a tab
// for ".tsv" files and a comma otherwise.
func Comma(name string) rune {
	if strings.EqualFold(filepath.Ext(name), ".tsv") {
		return '\t'
	}
	return ','
}
