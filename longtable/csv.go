// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package longtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
)

// ReadCSV reads a Table from CSV data. The first record names the
// columns. Columns whose cells all parse as integers or floats are
// stored as numbers; all others are kept as strings and parsed on
// demand by Float64s, which is how missing values such as "NA" are
// accepted in a DV column.
func ReadCSV(r io.Reader) (*Table, error) {
	return readDelimited(r, ',')
}

// ReadFile reads a Table from the named file. Files ending in ".tsv"
// are tab separated; anything else is read as CSV.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}
	t, err := readDelimited(f, comma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func readDelimited(r io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}
	header := records[0]
	seen := make(map[string]bool)
	for _, h := range header {
		if seen[h] {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		seen[h] = true
	}
	return &Table{t: table.TableFromStrings(header, records[1:], true)}, nil
}
