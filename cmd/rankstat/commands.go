// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"golang.org/x/rankstat/longtable"
	"golang.org/x/rankstat/rankmath"
	"golang.org/x/rankstat/report"
)

// run parses and executes the command line args.
func (a *app) run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "rankstat",
		Short:         "Rank-based nonparametric tests on long-format data",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return usageError{errors.New("missing command")}
			}
			return usageError{fmt.Errorf("unknown command %q", args[0])}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.log.Out)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "read flag defaults from config `file` (YAML, JSON, or TOML)")
	pf.StringVar(&a.logLevel, "log-level", "info", "log `level`: debug, info, warn, or error")
	pf.StringVar(&a.logFormat, "log-format", "text", "log `format`: text or json")
	a.gcs.register(pf)

	root.AddCommand(
		a.testCommand("mwu", "Mann-Whitney U test of two independent groups", "between", true, a.mwu),
		a.testCommand("wilcoxon", "Wilcoxon signed-rank test of two paired conditions", "within", true, a.wilcoxon),
		a.testCommand("kruskal", "Kruskal-Wallis H test of independent groups", "between", false, a.kruskal),
		a.testCommand("friedman", "Friedman test of repeated measures", "within", false, a.friedman),
		a.describeCommand(),
	)
	return root
}

// setup loads the environment and config into the flags of cmd and
// configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	if err := loadDotEnv(); err != nil {
		return err
	}
	env, err := newConfig("")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("config") && env.IsSet("config") {
		a.configFile = env.GetString("config")
	}
	v, err := newConfig(a.configFile)
	if err != nil {
		return err
	}
	if err := applyConfig(cmd, v); err != nil {
		return err
	}
	return a.configureLog()
}

// testFlags are the flags of a test command.
type testFlags struct {
	dv       string
	group    string // --between or --within
	subject  string
	tail     string
	format   string
	export   string
	decimals int
}

// A testFunc runs a test on data.
type testFunc func(data *longtable.Table, f *testFlags, tail rankmath.Tail, opts []rankmath.Option) (*rankmath.Summary, error)

func (a *app) testCommand(name, short, groupFlag string, pairwise bool, test testFunc) *cobra.Command {
	f := &testFlags{}
	var tail rankmath.Tail
	cmd := &cobra.Command{
		Use:   name + " [flags] data.csv",
		Short: short,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{errors.New("specify exactly one data file")}
			}
			if err := requireFlags(cmd, "dv", groupFlag); err != nil {
				return err
			}
			if !validFormat(f.format) {
				return usageError{fmt.Errorf("unknown format %q (want one of %s)", f.format, strings.Join(report.Formats(), ", "))}
			}
			if !pairwise {
				return nil
			}
			var err error
			if tail, err = rankmath.ParseTail(f.tail); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTest(cmd.Context(), args[0], f, tail, test)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.dv, "dv", "", "dependent variable `column`")
	fs.StringVar(&f.group, groupFlag, "", "grouping `column`")
	if groupFlag == "within" {
		fs.StringVar(&f.subject, "subject", "", "subject `column` (default: match observations by position)")
	}
	if pairwise {
		fs.StringVar(&f.tail, "tail", "two-sided", "alternative `hypothesis`: two-sided, one-sided, less, or greater")
	}
	fs.StringVar(&f.format, "format", "text", "output `format`: "+strings.Join(report.Formats(), ", "))
	fs.StringVar(&f.export, "export", "", "also export the result to `dest` (file, gs://bucket/object, sqlite3:dsn, or mysql:dsn)")
	fs.IntVar(&f.decimals, "decimals", rankmath.DefaultDecimals, "round statistics to `n` decimal places (negative: no rounding)")
	return cmd
}

func (a *app) runTest(ctx context.Context, path string, f *testFlags, tail rankmath.Tail, test testFunc) (err error) {
	data, err := a.readData(path)
	if err != nil {
		return err
	}
	opts := []rankmath.Option{rankmath.Decimals(f.decimals)}
	if f.subject != "" {
		opts = append(opts, rankmath.SubjectColumn(f.subject))
	}
	if f.export != "" {
		dest, derr := a.openDest(ctx, f.export)
		if derr != nil {
			return derr
		}
		defer func() {
			if cerr := dest.Close(); err == nil {
				err = cerr
			}
		}()
		opts = append(opts, rankmath.ExportTo(ctx, dest))
	}

	s, err := test(data, f, tail, opts)
	var exportErr *rankmath.ExportError
	if err != nil && !errors.As(err, &exportErr) {
		return err
	}
	if f.format != "text" {
		for _, r := range s.Rows {
			for _, w := range r.Warnings {
				a.log.WithField("test", r.Test).Warn(w)
			}
		}
	}
	if ferr := report.Format(a.stdout, f.format, s); ferr != nil {
		return ferr
	}
	if exportErr != nil {
		return exportErr
	}
	if f.export != "" {
		a.log.WithField("dest", f.export).Info("exported summary")
	}
	return nil
}

func (a *app) readData(path string) (*longtable.Table, error) {
	data, err := longtable.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"file":    path,
		"rows":    data.Len(),
		"columns": data.Columns(),
	}).Debug("read data")
	return data, nil
}

func (a *app) mwu(data *longtable.Table, f *testFlags, tail rankmath.Tail, opts []rankmath.Option) (*rankmath.Summary, error) {
	groups, err := data.Groups(f.dv, f.group)
	if err != nil {
		return nil, err
	}
	if len(groups) != 2 {
		return nil, fmt.Errorf("mwu needs exactly two levels of %q, have %d", f.group, len(groups))
	}
	a.log.Debugf("comparing %s=%s to %s=%s", f.group, groups[0].Label, f.group, groups[1].Label)
	return rankmath.MWU(groups[0].Values, groups[1].Values, tail, opts...)
}

func (a *app) wilcoxon(data *longtable.Table, f *testFlags, tail rankmath.Tail, opts []rankmath.Option) (*rankmath.Summary, error) {
	b, err := rankmath.Blocks(data, f.dv, f.group, opts...)
	if err != nil {
		return nil, err
	}
	if len(b.Levels) != 2 {
		return nil, fmt.Errorf("wilcoxon needs exactly two levels of %q, have %d", f.group, len(b.Levels))
	}
	a.log.Debugf("comparing %s=%s to %s=%s over %d subjects", f.group, b.Levels[0], f.group, b.Levels[1], len(b.Subjects))
	return rankmath.Wilcoxon(b.Column(0), b.Column(1), tail, opts...)
}

func (a *app) kruskal(data *longtable.Table, f *testFlags, _ rankmath.Tail, opts []rankmath.Option) (*rankmath.Summary, error) {
	return rankmath.Kruskal(data, f.dv, f.group, opts...)
}

func (a *app) friedman(data *longtable.Table, f *testFlags, _ rankmath.Tail, opts []rankmath.Option) (*rankmath.Summary, error) {
	return rankmath.Friedman(data, f.dv, f.group, opts...)
}

func (a *app) describeCommand() *cobra.Command {
	var dv, by string
	cmd := &cobra.Command{
		Use:   "describe [flags] data.csv",
		Short: "Descriptive statistics of a column by group",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{errors.New("specify exactly one data file")}
			}
			return requireFlags(cmd, "dv", "by")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readData(args[0])
			if err != nil {
				return err
			}
			ds, err := data.Describe(dv, by)
			if err != nil {
				return err
			}
			return report.FormatDescribe(a.stdout, dv, by, ds)
		},
	}
	cmd.Flags().StringVar(&dv, "dv", "", "dependent variable `column`")
	cmd.Flags().StringVar(&by, "by", "", "grouping `column`")
	return cmd
}

// requireFlags checks that each named flag of cmd is set, either on the
// command line or from the environment or config.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f != nil && f.Value.String() == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return usageError{fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))}
	}
	return nil
}

func validFormat(name string) bool {
	for _, f := range report.Formats() {
		if f == name {
			return true
		}
	}
	return false
}
