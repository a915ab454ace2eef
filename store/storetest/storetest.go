// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storetest opens empty result stores for tests.
//
// By default each store is a private in-memory SQLite database. With
// -cloud, tests instead run against a throwaway database on the Cloud
// SQL instance named by -cloudsql, which is dropped when the test ends.
package storetest

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"

	"golang.org/x/rankstat/store"
	_ "golang.org/x/rankstat/store/sqlite3"
)

var (
	cloud    = flag.Bool("cloud", false, "run store tests against Cloud SQL instead of in-memory SQLite")
	cloudsql = flag.String("cloudsql", "golang-org:us-central1:golang-org", "Cloud SQL `instance` for -cloud")
)

// NewDB returns an empty store that is closed when t finishes.
func NewDB(t *testing.T) *store.DB {
	t.Helper()
	driver, dsn := "sqlite3", ":memory:"
	if *cloud {
		driver, dsn = "mysql", cloudDSN(t)
	}
	db, err := store.OpenSQL(driver, dsn)
	if err != nil {
		t.Fatalf("opening %s store: %v", driver, err)
	}
	// Registered after cloudDSN's cleanup, so it runs first.
	t.Cleanup(func() { db.Close() })

	n, err := db.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("new store has %d runs, want 0", n)
	}
	return db
}

// cloudDSN creates a uniquely named MySQL database for t on the Cloud
// SQL instance and returns its DSN. The database is dropped when t
// finishes.
func cloudDSN(t *testing.T) string {
	t.Helper()
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		t.Fatal(err)
	}
	name := "rankstat_runs_" + hex.EncodeToString(suffix)
	server := fmt.Sprintf("root:@cloudsql(%s)/", *cloudsql)

	admin, err := sql.Open("mysql", server)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := admin.Exec("CREATE DATABASE `" + name + "`"); err != nil {
		admin.Close()
		t.Fatalf("creating %s: %v", name, err)
	}
	t.Logf("storing runs in Cloud SQL database %s", name)
	t.Cleanup(func() {
		defer admin.Close()
		if _, err := admin.Exec("DROP DATABASE `" + name + "`"); err != nil {
			t.Errorf("dropping %s: %v", name, err)
		}
	})
	return server + name
}
