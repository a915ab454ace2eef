// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"golang.org/x/rankstat/export"
	"golang.org/x/rankstat/rankmath"
)

// FormatYAML writes s as a YAML sequence with one mapping per row.
// Each mapping has the row's export columns in order, omitting empty
// cells, and a "warnings" list if the row has warnings.
func FormatYAML(w io.Writer, s *rankmath.Summary) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range s.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		add := func(key string, value *yaml.Node) {
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
		}
		add(export.TestColumn, str(r.Test))
		for _, c := range r.Columns() {
			cell := r.Cell(c)
			switch {
			case cell == "":
			case c == "Source" || c == "tail":
				add(c, str(cell))
			default:
				add(c, scalar(cell))
			}
		}
		if len(r.Warnings) > 0 {
			ws := &yaml.Node{Kind: yaml.SequenceNode}
			for _, warn := range r.Warnings {
				ws.Content = append(ws.Content, str(warn.Error()))
			}
			add("warnings", ws)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// scalar returns a scalar node whose type YAML resolves from v. Cells
// are numbers.
func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

// str returns a scalar node that is always a string, quoted if v would
// otherwise read as another type.
func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
