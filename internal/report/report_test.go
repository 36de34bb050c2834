package report

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sable-lang/sable/internal/ast"
)

func TestRecorderLogsRenames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renames.db")
	rec, err := Open(path, "main.sbl")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	n := ast.Name("x$sable$1")
	n.Line, n.Column = 3, 9
	rec.ReportChange(n)
	rec.ReportChangeToEnclosingScope(n)

	if err := rec.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var file, original, renamed string
	var line, col int
	row := db.QueryRow(`SELECT file, line, col, original, renamed FROM renames`)
	if err := row.Scan(&file, &line, &col, &original, &renamed); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if file != "main.sbl" || line != 3 || col != 9 {
		t.Errorf("position = %s:%d:%d", file, line, col)
	}
	if original != "x" || renamed != "x$sable$1" {
		t.Errorf("rename = %q -> %q", original, renamed)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM renames`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1 (scope reports are not logged)", count)
	}
}

func TestRecorderAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renames.db")
	for i := 0; i < 2; i++ {
		rec, err := Open(path, "main.sbl")
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		rec.ReportChange(ast.Name("y$sable$1"))
		if err := rec.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM renames`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("row count = %d, want 2", count)
	}
}
