// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rankmath implements rank-based nonparametric hypothesis
// tests.
//
// The pairwise tests, MWU and Wilcoxon, compare two samples. The
// omnibus tests, Kruskal and Friedman, compare three or more groups
// held in a long-format table (see golang.org/x/rankstat/longtable).
// Every test returns a Summary holding one Row per test. Statistics
// are rounded to a fixed number of decimals (3 by default); p-values
// are kept at full precision and are not corrected for multiple
// comparisons.
//
// Missing values (NaN) are a supported input and are excluded from
// the computation rather than propagated. Malformed input is
// reported with an error wrapping ErrInvalidInput.
//
// Analysis results may carry warnings, captured as an []error value
// in Row.Warnings. These aren't errors that prevent analysis, but
// should be presented to the user along with analysis results.
package rankmath

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the kind of every error caused by bad input to a
// test: unknown columns, incompatible sample sizes, too few groups,
// and so on. Use errors.Is to check for it.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// invalid marks err, typically a longtable column error, as an
// ErrInvalidInput.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// An Exporter persists a Summary somewhere outside the process, such
// as a delimited text file or a database.
//
// Export must write exactly the values in s. Implementations must
// release any resources they acquire before returning, whether or
// not the write succeeds.
type Exporter interface {
	Export(ctx context.Context, s *Summary) error
}

// An ExportError reports that a Summary was computed but could not be
// exported. It is distinct from ErrInvalidInput: the accompanying
// Summary is complete and valid.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return "export summary: " + e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// An Option configures a test.
type Option func(*options)

type options struct {
	decimals int
	subject  string
	ctx      context.Context
	export   Exporter
}

func newOptions(opts []Option) *options {
	o := &options{decimals: DefaultDecimals, ctx: context.Background()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DefaultDecimals is the number of decimal places statistics are
// rounded to by default.
const DefaultDecimals = 3

// Decimals sets the number of decimal places the test statistic is
// rounded to. A negative value disables rounding.
func Decimals(n int) Option {
	return func(o *options) {
		o.decimals = n
	}
}

// SubjectColumn names the column identifying the subject (block) of
// each observation in a repeated-measures design. It is used by
// Friedman and Blocks. If it is not given, observations are matched
// by their order within each level.
func SubjectColumn(name string) Option {
	return func(o *options) {
		o.subject = name
	}
}

// ExportTo makes the test write its Summary to e before returning.
// The written values are identical to the returned values.
func ExportTo(ctx context.Context, e Exporter) Option {
	return func(o *options) {
		o.ctx = ctx
		o.export = e
	}
}

// finish exports s if requested by o.
func (o *options) finish(s *Summary) (*Summary, error) {
	if o.export == nil {
		return s, nil
	}
	if err := o.export.Export(o.ctx, s); err != nil {
		return s, &ExportError{err}
	}
	return s, nil
}

func (o *options) round(x float64) float64 {
	if o.decimals < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	scale := math.Pow(10, float64(o.decimals))
	return math.Round(x*scale) / scale
}

// dropNaN returns the non-NaN values of xs.
func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
