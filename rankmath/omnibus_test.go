// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rankmath

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"golang.org/x/rankstat/longtable"
)

var levels = []string{"T1", "T2", "T3"}

// normalSamples returns k samples of n standard normal values drawn
// from a source seeded with seed.
func normalSamples(seed uint64, k, n int) [][]float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	out := make([][]float64, k)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = dist.Rand()
		}
	}
	return out
}

// longTable builds a table with a "DV" column holding the
// concatenation of samples, a "Time" column naming the sample, and a
// "Subject" column naming each observation's position in its sample.
func longTable(t *testing.T, samples [][]float64) *longtable.Table {
	t.Helper()
	var dv []float64
	var time, subject []string
	for i, s := range samples {
		dv = append(dv, s...)
		for j := range s {
			time = append(time, levels[i])
			subject = append(subject, fmt.Sprintf("s%d", j))
		}
	}
	var b longtable.Builder
	tab, err := b.Float64s("DV", dv).Strings("Time", time).Strings("Subject", subject).Done()
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

// naiveRank returns the average rank of v among xs.
func naiveRank(v float64, xs []float64) float64 {
	var less, equal float64
	for _, x := range xs {
		if x < v {
			less++
		} else if x == v {
			equal++
		}
	}
	return less + (equal+1)/2
}

// refFriedman computes the tie-corrected Friedman statistic as
// (k-1) Σ_j (R_j - n(k+1)/2)² / (Σ r² - nk(k+1)²/4).
func refFriedman(blocks [][]float64) float64 {
	n, k := float64(len(blocks)), float64(len(blocks[0]))
	sums := make([]float64, len(blocks[0]))
	var sumSq float64
	for _, b := range blocks {
		for j, v := range b {
			r := naiveRank(v, b)
			sums[j] += r
			sumSq += r * r
		}
	}
	var num float64
	for _, s := range sums {
		d := s - n*(k+1)/2
		num += d * d
	}
	return (k - 1) * num / (sumSq - n*k*(k+1)*(k+1)/4)
}

// refKruskal computes the tie-corrected Kruskal-Wallis statistic as
// (N-1) Σ nᵢ(r̄ᵢ - r̄)² / Σ (r - r̄)².
func refKruskal(groups [][]float64) float64 {
	var all []float64
	for _, g := range groups {
		all = append(all, g...)
	}
	n := float64(len(all))
	mean := (n + 1) / 2
	var num, den float64
	for _, g := range groups {
		var sum float64
		for _, v := range g {
			r := naiveRank(v, all)
			sum += r
			den += (r - mean) * (r - mean)
		}
		gm := sum / float64(len(g))
		num += float64(len(g)) * (gm - mean) * (gm - mean)
	}
	return (n - 1) * num / den
}

// checkRounded checks that got is want rounded to 3 decimals.
func checkRounded(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.0005+1e-9 || got != math.Round(got*1000)/1000 {
		t.Errorf("%s: got %v, want %v rounded to 3 decimals", name, got, want)
	}
}

func TestFriedman(t *testing.T) {
	samples := normalSamples(1234, 3, 100)
	tab := longTable(t, samples)

	s, err := Friedman(tab, "DV", "Time")
	if err != nil {
		t.Fatal(err)
	}
	blocks := make([][]float64, 100)
	for i := range blocks {
		blocks[i] = []float64{samples[0][i], samples[1][i], samples[2][i]}
	}
	q := refFriedman(blocks)

	r := s.Row("Friedman")
	if r == nil {
		t.Fatalf("no Friedman row in %v", s.Rows)
	}
	checkRounded(t, "Q", r.Value, q)
	if got, ok := s.Value("Q", "Friedman"); !ok || got != r.Value {
		t.Errorf("Value(Q, Friedman) = %v, %v", got, ok)
	}
	// The chi-squared survival function with 2 degrees of freedom
	// is exp(-x/2).
	if want := math.Exp(-q / 2); !aeq(r.P, want) {
		t.Errorf("p-unc: got %v, want %v", r.P, want)
	}
	checkRounded(t, "W", r.W, q/(100*2))
	if r.Source != "Time" || r.DDOF1 != 2 || r.N != 100 || r.PName() != "p-unc" {
		t.Errorf("got %+v", r)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", r.Warnings)
	}

	// Matching by subject gives the same answer.
	s2, err := Friedman(tab, "DV", "Time", SubjectColumn("Subject"))
	if err != nil {
		t.Fatal(err)
	}
	if r2 := s2.Rows[0]; r2.Value != r.Value || r2.P != r.P || r2.W != r.W {
		t.Errorf("with subject column: got %v, want %v", r2, r)
	}
}

func TestFriedmanMissing(t *testing.T) {
	samples := normalSamples(1234, 3, 100)
	samples[1][5] = math.NaN()
	s, err := Friedman(longTable(t, samples), "DV", "Time")
	if err != nil {
		t.Fatal(err)
	}

	var complete [][]float64
	for i := range samples[0] {
		if i != 5 {
			complete = append(complete, []float64{samples[0][i], samples[1][i], samples[2][i]})
		}
	}
	q := refFriedman(complete)
	r := s.Rows[0]
	checkRounded(t, "Q", r.Value, q)
	if want := math.Exp(-q / 2); !aeq(r.P, want) {
		t.Errorf("p-unc: got %v, want %v", r.P, want)
	}
	if r.N != 99 || len(r.Warnings) != 1 {
		t.Errorf("got n=%d warnings=%v, want n=99 and one warning", r.N, r.Warnings)
	}
}

func TestFriedmanTies(t *testing.T) {
	blocks := [][]float64{
		{1, 2, 3},
		{2, 2, 3},
		{1, 3, 3},
		{3, 1, 2},
		{1, 2, 2},
	}
	samples := make([][]float64, 3)
	for _, b := range blocks {
		for j, v := range b {
			samples[j] = append(samples[j], v)
		}
	}
	s, err := Friedman(longTable(t, samples), "DV", "Time", Decimals(-1))
	if err != nil {
		t.Fatal(err)
	}
	if want := refFriedman(blocks); !aeq(s.Rows[0].Value, want) {
		t.Errorf("Q: got %v, want %v", s.Rows[0].Value, want)
	}
}

func TestKruskal(t *testing.T) {
	samples := normalSamples(1234, 3, 100)
	s, err := Kruskal(longTable(t, samples), "DV", "Time")
	if err != nil {
		t.Fatal(err)
	}
	h := refKruskal(samples)
	r := s.Row("Kruskal")
	if r == nil {
		t.Fatalf("no Kruskal row in %v", s.Rows)
	}
	checkRounded(t, "H", r.Value, h)
	if want := math.Exp(-h / 2); !aeq(r.P, want) {
		t.Errorf("p-unc: got %v, want %v", r.P, want)
	}
	if r.Source != "Time" || r.DDOF1 != 2 || r.N != 300 {
		t.Errorf("got %+v", r)
	}
	if !math.IsNaN(r.W) || !math.IsNaN(r.RBC) {
		t.Errorf("got W=%v RBC=%v, want NaN", r.W, r.RBC)
	}
}

func TestKruskalMissing(t *testing.T) {
	samples := normalSamples(1234, 3, 100)
	nan := math.NaN()
	samples[0][3], samples[2][40], samples[2][41] = nan, nan, nan

	s, err := Kruskal(longTable(t, samples), "DV", "Time")
	if err != nil {
		t.Fatal(err)
	}
	omitted := make([][]float64, len(samples))
	for i, sample := range samples {
		omitted[i] = dropNaN(sample)
	}
	want, err := Kruskal(longTable(t, omitted), "DV", "Time")
	if err != nil {
		t.Fatal(err)
	}
	got, w := s.Rows[0], want.Rows[0]
	if got.Value != w.Value || got.P != w.P || got.N != 297 || w.N != 297 {
		t.Errorf("with NaN: got %v, want %v", got, w)
	}
	checkRounded(t, "H", got.Value, refKruskal(omitted))
}

func TestKruskalTies(t *testing.T) {
	groups := [][]float64{
		{1, 2, 2, 3},
		{2, 3, 3, 4},
		{4, 4, 5, 1},
	}
	s, err := Kruskal(longTable(t, groups), "DV", "Time", Decimals(-1))
	if err != nil {
		t.Fatal(err)
	}
	if want := refKruskal(groups); !aeq(s.Rows[0].Value, want) {
		t.Errorf("H: got %v, want %v", s.Rows[0].Value, want)
	}
}

func TestOmnibusInvalid(t *testing.T) {
	check := func(name string, err error, target ...error) {
		t.Helper()
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", name, err)
		}
		for _, tgt := range target {
			if !errors.Is(err, tgt) {
				t.Errorf("%s: got %v, want %v", name, err, tgt)
			}
		}
	}
	tab := longTable(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	one := longTable(t, [][]float64{{1, 2, 3}})
	flat := longTable(t, [][]float64{{1, 1}, {1, 1}})
	ragged := longTable(t, [][]float64{{1, 2, 3}, {4, 5}})

	_, err := Kruskal(tab, "Score", "Time")
	check("Kruskal unknown DV", err, longtable.ErrUnknownColumn)
	_, err = Kruskal(tab, "DV", "Group")
	check("Kruskal unknown group", err, longtable.ErrUnknownColumn)
	_, err = Kruskal(one, "DV", "Time")
	check("Kruskal one group", err)
	_, err = Kruskal(flat, "DV", "Time")
	check("Kruskal identical", err)

	_, err = Friedman(tab, "Score", "Time")
	check("Friedman unknown DV", err, longtable.ErrUnknownColumn)
	_, err = Friedman(tab, "DV", "Time", SubjectColumn("Who"))
	check("Friedman unknown subject", err, longtable.ErrUnknownColumn)
	_, err = Friedman(one, "DV", "Time")
	check("Friedman one level", err)
	_, err = Friedman(ragged, "DV", "Time")
	check("Friedman ragged", err)
	_, err = Friedman(flat, "DV", "Time")
	check("Friedman identical", err)
	_, err = Friedman(longTable(t, [][]float64{{1, math.NaN()}, {math.NaN(), 2}}), "DV", "Time")
	check("Friedman no complete subject", err)

	var b longtable.Builder
	dup, err := b.Float64s("DV", []float64{1, 2, 3, 4}).
		Strings("Time", []string{"T1", "T1", "T2", "T2"}).
		Strings("Subject", []string{"a", "a", "a", "b"}).
		Done()
	if err != nil {
		t.Fatal(err)
	}
	_, err = Friedman(dup, "DV", "Time", SubjectColumn("Subject"))
	check("Friedman duplicate subject", err)
}

func TestBlocks(t *testing.T) {
	var b longtable.Builder
	tab, err := b.Float64s("DV", []float64{1, 2, 3, 4, 5}).
		Strings("Time", []string{"pre", "pre", "post", "post", "post"}).
		Strings("Subject", []string{"b", "a", "a", "c", "b"}).
		Done()
	if err != nil {
		t.Fatal(err)
	}
	d, err := Blocks(tab, "DV", "Time", SubjectColumn("Subject"))
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(d.Levels) != "[pre post]" || fmt.Sprint(d.Subjects) != "[b a c]" {
		t.Fatalf("got levels %v subjects %v", d.Levels, d.Subjects)
	}
	if got := fmt.Sprint(d.Values); got != "[[1 5] [2 3] [NaN 4]]" {
		t.Errorf("got values %s", got)
	}
	if got := fmt.Sprint(d.Complete()); got != "[[1 5] [2 3]]" {
		t.Errorf("got complete %s", got)
	}
	if got := fmt.Sprint(d.Column(1)); got != "[5 3 4]" {
		t.Errorf("got column %s", got)
	}
}

type fakeExporter struct {
	got *Summary
	err error
}

func (e *fakeExporter) Export(ctx context.Context, s *Summary) error {
	e.got = s
	return e.err
}

func TestExportTo(t *testing.T) {
	ctx := context.Background()
	x := []float64{2, 1, 3, 5}
	y := []float64{12, 11, 13, 15}

	var e fakeExporter
	s, err := MWU(x, y, TwoSided, ExportTo(ctx, &e))
	if err != nil {
		t.Fatal(err)
	}
	if e.got != s {
		t.Errorf("exported %v, returned %v", e.got, s)
	}

	failure := errors.New("disk full")
	e = fakeExporter{err: failure}
	s, err = Kruskal(longTable(t, [][]float64{x, y}), "DV", "Time", ExportTo(ctx, &e))
	var ee *ExportError
	if !errors.As(err, &ee) || !errors.Is(err, failure) {
		t.Fatalf("got error %v, want *ExportError wrapping %v", err, failure)
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Errorf("export failure %v reported as invalid input", err)
	}
	if s == nil || s.Row("Kruskal") == nil {
		t.Errorf("export failure discarded summary %v", s)
	}
}
