// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rankstat runs rank-based nonparametric tests on long-format data.
//
// Usage:
//
//	rankstat [global flags] command [flags] data.csv
//
// The input is a CSV file (or a TSV file, if its name ends in .tsv)
// with a header row and one observation per row. One column holds the
// dependent variable (--dv); other columns label each observation
// with its group, condition, or subject. Empty cells and "NA" are
// missing values and are excluded from the tests.
//
// The commands are:
//
//	mwu       Mann-Whitney U test of the two levels of --between
//	wilcoxon  Wilcoxon signed-rank test of the two levels of --within
//	kruskal   Kruskal-Wallis H test across the levels of --between
//	friedman  Friedman test across the levels of --within
//	describe  descriptive statistics of --dv by the levels of --by
//
// For the repeated-measures tests, --subject names the column that
// identifies each subject. Without it, the i'th observation of each
// level belongs to subject i.
//
// Results are printed in the --format given (text, csv, tsv, html, or
// yaml). Statistics are rounded to --decimals places; p-values are
// printed at full precision and are not corrected for multiple
// comparisons.
//
// With --export, the result is also written to a destination:
//
//	path/to/file.csv       a local CSV or TSV file
//	gs://bucket/object     a Google Cloud Storage object
//	sqlite3:path/to/db     a new run in a SQLite database
//	mysql:user@tcp(host)/db  a new run in a MySQL database
//
// Every flag can also be set by an environment variable named
// RANKSTAT_<COMMAND>_<FLAG> or RANKSTAT_<FLAG> (for example,
// RANKSTAT_KRUSKAL_DV or RANKSTAT_LOG_LEVEL), or by a key in the
// --config file, either at the top level or in a section named for
// the command. Flags take precedence over the environment, which
// takes precedence over the config file. Variables in a .env file in
// the current directory are loaded into the environment first.
//
// Rankstat exits with status 2 for usage errors and 1 for any other
// failure. If the result cannot be exported, it is still printed
// before rankstat exits with status 1.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var exit = os.Exit // replaced during testing

func main() {
	a := newApp(os.Stdout, os.Stderr)
	err := a.run(context.Background(), os.Args[1:])
	if err == nil {
		return
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		a.log.Error(err)
		exit(2)
		return
	}
	a.log.Fatal(err)
}

// rankstat runs the command line args, writing results to stdout and
// logs to stderr.
func rankstat(stdout, stderr io.Writer, args []string) error {
	return newApp(stdout, stderr).run(context.Background(), args)
}

// A usageError is an error in the command line.
type usageError struct {
	error
}

func (e usageError) Unwrap() error {
	return e.error
}

// An app is one invocation of rankstat.
type app struct {
	stdout io.Writer
	log    *logrus.Logger

	// global flags
	configFile string
	logLevel   string
	logFormat  string
	gcs        gcsFlags
}

func newApp(stdout, stderr io.Writer) *app {
	log := logrus.New()
	log.Out = stderr
	log.ExitFunc = exit
	return &app{stdout: stdout, log: log}
}

// configureLog applies the logging flags.
func (a *app) configureLog() error {
	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return usageError{err}
	}
	a.log.SetLevel(level)
	switch a.logFormat {
	case "text":
		a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return usageError{errors.New(`--log-format must be "text" or "json"`)}
	}
	return nil
}
