// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package longtable implements long-format tables of observations.
//
// A long-format table has one observation per row: a numeric
// dependent variable (DV) column and one or more categorical columns
// that label each observation with its group, time point, or
// subject. This is the input layout of the omnibus tests in
// golang.org/x/rankstat/rankmath.
//
// Tables are immutable once built. They are backed by
// github.com/aclements/go-gg/table, so columns may have any slice
// type, but DV columns are always read back as []float64 and label
// columns as []string.
package longtable

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

var (
	// ErrUnknownColumn is returned when a named column does not
	// exist in a Table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrColumnType is returned when a column cannot be
	// interpreted as the requested kind of data.
	ErrColumnType = errors.New("bad column type")
)

// A Table is an immutable long-format table.
//
// The zero Table has no rows and no columns.
type Table struct {
	t *table.Table
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	if t == nil || t.t == nil {
		return 0
	}
	return t.t.Len()
}

// Columns returns the names of t's columns in the order they were
// added.
func (t *Table) Columns() []string {
	if t == nil || t.t == nil {
		return nil
	}
	return t.t.Columns()
}

// Has reports whether t has a column called name.
func (t *Table) Has(name string) bool {
	for _, c := range t.Columns() {
		if c == name {
			return true
		}
	}
	return false
}

func (t *Table) column(name string) (table.Slice, error) {
	if !t.Has(name) {
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return t.t.Column(name), nil
}

// Float64s returns column name as a []float64.
//
// Numeric columns of any integer or float type are converted.
// String columns are parsed; empty cells and the usual spellings of
// a missing value ("NA", "NaN", "null") become NaN. The returned
// slice must not be modified.
func (t *Table) Float64s(name string) ([]float64, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	switch col := col.(type) {
	case []float64:
		return col, nil
	case []string:
		out := make([]float64, len(col))
		for i, s := range col {
			v, err := parseFloat(s)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q row %d: %v", ErrColumnType, name, i, err)
			}
			out[i] = v
		}
		return out, nil
	}
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32:
		var out []float64
		slice.Convert(&out, col)
		return out, nil
	}
	return nil, fmt.Errorf("%w: column %q has type %T, want numbers", ErrColumnType, name, col)
}

// Labels returns column name as a []string. Non-string columns are
// formatted with %v.
func (t *Table) Labels(name string) ([]string, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if col, ok := col.([]string); ok {
		return col, nil
	}
	rv := reflect.ValueOf(col)
	out := make([]string, rv.Len())
	for i := range out {
		out[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return out, nil
}

// A Group is the DV values of one level of a categorical column.
type Group struct {
	// Label is the level of the grouping column.
	Label string

	// Values are the DV values of the rows in this level, in
	// table order. They may include NaN.
	Values []float64

	// Rows are the indexes in the original table of each value
	// in Values.
	Rows []int
}

// Groups splits the dv column of t by the levels of column by.
// Groups are returned in order of first appearance of their level.
func (t *Table) Groups(dv, by string) ([]Group, error) {
	if _, err := t.Float64s(dv); err != nil {
		return nil, err
	}
	labels, err := t.Labels(by)
	if err != nil {
		return nil, err
	}

	// Group on the string form of the labels and a row index so
	// each group also knows where its rows came from.
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	var b table.Builder
	b.Add("label", labels).Add("row", rows)

	g := table.GroupBy(b.Done(), "label")
	all, _ := t.Float64s(dv)
	var out []Group
	for _, gid := range g.Tables() {
		sub := g.Table(gid)
		idx := sub.MustColumn("row").([]int)
		vals := make([]float64, len(idx))
		for i, r := range idx {
			vals[i] = all[r]
		}
		out = append(out, Group{Label: gid.Label().(string), Values: vals, Rows: idx})
	}
	return out, nil
}

// Levels returns the distinct values of column name in order of
// first appearance.
func (t *Table) Levels(name string) ([]string, error) {
	labels, err := t.Labels(name)
	if err != nil {
		return nil, err
	}
	return slice.Nub(labels).([]string), nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null", "none":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
