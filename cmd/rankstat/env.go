// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "rankstat"

// loadDotEnv loads .env from the current directory, if there is one.
// Variables already in the environment are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// newConfig returns a viper instance that reads RANKSTAT_* environment
// variables and, if configFile is not empty, the named config file.
func newConfig(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// applyConfig sets every flag of command that was not given on the
// command line from v. A key scoped to the command ("kruskal.dv", or
// RANKSTAT_KRUSKAL_DV) takes precedence over a global one ("dv", or
// RANKSTAT_DV).
func applyConfig(command *cobra.Command, v *viper.Viper) error {
	var errs []string
	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		for _, key := range []string{command.Name() + "." + f.Name, f.Name} {
			if !v.IsSet(key) {
				continue
			}
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(key))); err != nil {
				errs = append(errs, err.Error())
			}
			return
		}
	})
	if len(errs) == 0 {
		return nil
	}
	return usageError{fmt.Errorf("error mapping environment variables and config to command flags: %s", strings.Join(errs, "; "))}
}
