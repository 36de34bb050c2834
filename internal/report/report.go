// Package report persists rename logs. Each pass run appends one row
// per rewritten name, which makes normalization runs diffable after the
// fact.
package report

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/rename"
)

const schema = `
CREATE TABLE IF NOT EXISTS renames (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	file      TEXT NOT NULL,
	line      INTEGER NOT NULL,
	col       INTEGER NOT NULL,
	original  TEXT NOT NULL,
	renamed   TEXT NOT NULL,
	stamp     TEXT NOT NULL
);`

// Recorder is a ChangeSink writing every rewrite into a SQLite file.
// Errors are collected and surfaced on Close, so the rename passes stay
// free of I/O error paths.
type Recorder struct {
	db   *sql.DB
	file string
	err  error
}

// Open creates or opens the rename log at path. file names the source
// file the subsequent reports belong to.
func Open(path, file string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Recorder{db: db, file: file}, nil
}

// ReportChange logs one rewritten name node. The original spelling is
// recovered from the suffix structure of the new name.
func (r *Recorder) ReportChange(n *ast.Node) {
	if r.err != nil {
		return
	}
	_, r.err = r.db.Exec(
		`INSERT INTO renames (file, line, col, original, renamed, stamp) VALUES (?, ?, ?, ?, ?, ?)`,
		r.file, n.Line, n.Column, rename.OriginalName(n.Text()), n.Text(),
		time.Now().UTC().Format(time.RFC3339),
	)
}

func (r *Recorder) ReportChangeToEnclosingScope(*ast.Node) {}

// Close flushes the log and returns the first error hit while
// recording, if any.
func (r *Recorder) Close() error {
	if err := r.db.Close(); r.err == nil {
		r.err = err
	}
	return r.err
}
