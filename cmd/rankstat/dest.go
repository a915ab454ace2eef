// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/pflag"

	"golang.org/x/rankstat/export"
	"golang.org/x/rankstat/rankmath"
	"golang.org/x/rankstat/store"
	_ "golang.org/x/rankstat/store/sqlite3"
)

// A destination is an export destination that must be closed after
// use.
type destination interface {
	rankmath.Exporter
	io.Closer
}

// gcsFlags configure access to Google Cloud Storage.
type gcsFlags struct {
	credentials string
	token       string
	endpoint    string
}

func (g *gcsFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.credentials, "gcs-credentials", "", "service account key `file` for gs:// exports")
	fs.StringVar(&g.token, "gcs-token", "", "OAuth2 access `token` for gs:// exports")
	fs.StringVar(&g.endpoint, "gcs-endpoint", "", "storage API `url` for gs:// exports, such as an emulator")
}

// openDest opens the export destination named by dest: a gs:// URL, a
// database "driver:dsn" for the sqlite3 and mysql drivers, or a local
// file path.
func (a *app) openDest(ctx context.Context, dest string) (destination, error) {
	if strings.HasPrefix(dest, "gs://") {
		bucket, object, err := export.ParseGCSURL(dest)
		if err != nil {
			return nil, usageError{err}
		}
		client, err := export.NewGCSClient(ctx, export.GCSConfig{
			CredentialsFile: a.gcs.credentials,
			Token:           a.gcs.token,
			Endpoint:        a.gcs.endpoint,
		})
		if err != nil {
			return nil, err
		}
		return struct {
			rankmath.Exporter
			io.Closer
		}{&export.GCS{Client: client, Bucket: bucket, Object: object}, client}, nil
	}

	for _, driver := range []string{"sqlite3", "mysql"} {
		dsn, ok := strings.CutPrefix(dest, driver+":")
		if !ok {
			continue
		}
		db, err := store.OpenSQL(driver, dsn)
		if err != nil {
			return nil, err
		}
		run, err := db.NewRun(ctx)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.log.WithField("run", run.ID).Infof("exporting to %s database", driver)
		return struct {
			rankmath.Exporter
			io.Closer
		}{run, db}, nil
	}

	return nopCloser{&export.File{Path: dest}}, nil
}

type nopCloser struct {
	rankmath.Exporter
}

func (nopCloser) Close() error { return nil }
