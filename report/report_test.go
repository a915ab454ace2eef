// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"golang.org/x/rankstat/export"
	"golang.org/x/rankstat/longtable"
	"golang.org/x/rankstat/rankmath"
)

func testSummary() *rankmath.Summary {
	nan := math.NaN()
	return &rankmath.Summary{Rows: []*rankmath.Row{
		{Test: "MWU", Stat: rankmath.StatU, Value: 0, P: 0.028571428571428577, Tail: rankmath.TwoSided, RBC: 1, CLES: 0, W: nan, N: 8},
		{Test: "Friedman", Stat: rankmath.StatQ, Value: 0.42, P: 0.8105842459701871, RBC: nan, CLES: nan, Source: "Time", DDOF1: 2, W: 0.002, N: 100,
			Warnings: []error{errors.New("excluded 1 subjects with missing values")}},
	}}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"csv", "html", "text", "tsv", "yaml"}, Formats())
	var buf bytes.Buffer
	assert.Error(t, Format(&buf, "xml", testSummary()))
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, "text", testSummary()))
	out := buf.String()
	for _, want := range []string{"Test", "U-val", "p-val", "Friedman", "0.028571428571428577", "two-sided", "Time", "0.002",
		"warning: Friedman: excluded 1 subjects with missing values"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatCSV(t *testing.T) {
	s := testSummary()
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, "csv", s))
	assert.True(t, strings.HasPrefix(buf.String(), "Test,U-val,tail,p-val,RBC,CLES,n,Source,ddof1,Q,W,p-unc\n"), buf.String())

	got, err := export.Read(&buf, ',')
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, s.Rows[0].P, got.Rows[0].P)
	assert.Equal(t, s.Rows[1].Value, got.Rows[1].Value)

	buf.Reset()
	require.NoError(t, Format(&buf, "tsv", s))
	assert.True(t, strings.HasPrefix(buf.String(), "Test\tU-val\t"))
}

func TestFormatHTML(t *testing.T) {
	s := testSummary()
	s.Rows[1].Source = "<b>Time</b>"
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, "html", s))
	out := buf.String()
	assert.Contains(t, out, "<th>U-val</th>")
	assert.Contains(t, out, "<td>0.028571428571428577</td>")
	assert.Contains(t, out, "&lt;b&gt;Time&lt;/b&gt;")
	assert.NotContains(t, out, "<b>Time</b>")
	assert.Contains(t, out, "<li>Friedman: excluded 1 subjects with missing values</li>")
}

func TestFormatYAML(t *testing.T) {
	s := testSummary()
	s.Rows[1].Source = "yes"
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, "yaml", s))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got), buf.String())
	require.Len(t, got, 2)
	assert.Equal(t, "MWU", got[0]["Test"])
	assert.Equal(t, 0.028571428571428577, got[0]["p-val"])
	assert.Equal(t, 8, got[0]["n"])
	assert.Equal(t, "two-sided", got[0]["tail"])
	assert.NotContains(t, got[0], "W")
	assert.Equal(t, "yes", got[1]["Source"])
	assert.Equal(t, 0.42, got[1]["Q"])
	assert.Equal(t, []interface{}{"excluded 1 subjects with missing values"}, got[1]["warnings"])
}

func TestFormatDescribe(t *testing.T) {
	var b longtable.Builder
	tab, err := b.Float64s("Score", []float64{1, 2, 3, math.NaN(), math.NaN()}).
		Strings("Group", []string{"a", "a", "a", "b", "b"}).
		Done()
	require.NoError(t, err)
	ds, err := tab.Describe("Score", "Group")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FormatDescribe(&buf, "Score", "Group", ds))
	out := buf.String()
	for _, want := range []string{"Score", "Group", "median", "a", "b", "-"} {
		assert.Contains(t, out, want)
	}
}
