// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps rankmath summaries in a SQL database.
//
// Summaries are grouped into runs. Each run has a random ID and holds
// the rows of every summary exported to it, in order. A Run
// implements rankmath.Exporter, so a test can write its result
// straight to the database with rankmath.ExportTo.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"golang.org/x/rankstat/rankmath"
)

// ErrNoRun is returned when a run ID does not exist.
var ErrNoRun = errors.New("no such run")

// DB is a high-level interface to a database of summaries. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun *sql.Stmt
	insertRow *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 package to
// register a ConnectHook. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID VARCHAR(36) PRIMARY KEY,
	Created BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS Summaries (
	RunID VARCHAR(36) NOT NULL,
	Seq INTEGER NOT NULL,
	Test VARCHAR(64) NOT NULL,
	Stat VARCHAR(16) NOT NULL,
	Value DOUBLE,
	P DOUBLE,
	Tail VARCHAR(16),
	RBC DOUBLE,
	CLES DOUBLE,
	Factor VARCHAR(255),
	DDOF1 INTEGER,
	W DOUBLE,
	N INTEGER,
	PRIMARY KEY (RunID, Seq),
{{if not .sqlite3}}
	Index (Test),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS SummariesTest ON Summaries(Test);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(RunID, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertRow, err = db.sql.Prepare("INSERT INTO Summaries(RunID, Seq, Test, Stat, Value, P, Tail, RBC, CLES, Factor, DDOF1, W, N) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is the time source for run creation times. Tests replace it.
var now = time.Now

// A Run is a collection of summary rows that share a run ID.
type Run struct {
	// ID identifies the run. It is a random UUID.
	ID string

	// Created is when the run was created.
	Created time.Time

	// seq is the index of the next row to insert.
	seq int64
	// db is the underlying database that this run is going to.
	db *DB
}

// NewRun returns a run for storing new summaries.
func (db *DB) NewRun(ctx context.Context) (*Run, error) {
	r := &Run{
		ID:      uuid.NewString(),
		Created: now().UTC().Truncate(time.Second),
		db:      db,
	}
	if _, err := db.insertRun.ExecContext(ctx, r.ID, r.Created.Unix()); err != nil {
		return nil, err
	}
	return r, nil
}

// Export inserts every row of s into the run in a single transaction.
// It implements rankmath.Exporter.
func (r *Run) Export(ctx context.Context, s *rankmath.Summary) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	seq := r.seq
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		if err = tx.Commit(); err == nil {
			r.seq = seq
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertRow)
	for _, row := range s.Rows {
		_, err = stmt.ExecContext(ctx, r.ID, seq, row.Test, row.Stat,
			nullFloat(row.Value), nullFloat(row.P), row.Tail.String(),
			nullFloat(row.RBC), nullFloat(row.CLES),
			row.Source, row.DDOF1, nullFloat(row.W), row.N)
		if err != nil {
			return fmt.Errorf("insert %s row: %w", row.Test, err)
		}
		seq++
	}
	return nil
}

// Summary returns every row stored in the run with the given ID, in
// the order they were exported.
func (db *DB) Summary(ctx context.Context, runID string) (*rankmath.Summary, error) {
	var created int64
	err := db.sql.QueryRowContext(ctx, "SELECT Created FROM Runs WHERE RunID = ?", runID).Scan(&created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
	} else if err != nil {
		return nil, err
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Test, Stat, Value, P, Tail, RBC, CLES, Factor, DDOF1, W, N FROM Summaries WHERE RunID = ? ORDER BY Seq", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := &rankmath.Summary{}
	for rows.Next() {
		var (
			row                    rankmath.Row
			value, p, rbc, cles, w sql.NullFloat64
			tail, source           sql.NullString
			ddof1, n               sql.NullInt64
		)
		if err := rows.Scan(&row.Test, &row.Stat, &value, &p, &tail, &rbc, &cles, &source, &ddof1, &w, &n); err != nil {
			return nil, err
		}
		row.Value, row.P = fromNull(value), fromNull(p)
		row.RBC, row.CLES, row.W = fromNull(rbc), fromNull(cles), fromNull(w)
		row.Source = source.String
		row.DDOF1, row.N = int(ddof1.Int64), int(n.Int64)
		if tail.Valid {
			if row.Tail, err = rankmath.ParseTail(tail.String); err != nil {
				return nil, fmt.Errorf("run %s row %s: %v", runID, row.Test, err)
			}
		}
		s.Rows = append(s.Rows, &row)
	}
	return s, rows.Err()
}

// Runs returns the IDs of all runs, oldest first.
func (db *DB) Runs(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID FROM Runs ORDER BY Created, RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteRun deletes the run with the given ID and all of its rows.
func (db *DB) DeleteRun(ctx context.Context, runID string) error {
	res, err := db.sql.ExecContext(ctx, "DELETE FROM Runs WHERE RunID = ?", runID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %s", ErrNoRun, runID)
	}
	return nil
}

// CountRuns returns the number of runs in the database.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertRow.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}

// nullFloat stores NaN as SQL NULL.
func nullFloat(x float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: x, Valid: !math.IsNaN(x)}
}

func fromNull(x sql.NullFloat64) float64 {
	if !x.Valid {
		return math.NaN()
	}
	return x.Float64
}

var _ rankmath.Exporter = (*Run)(nil)
