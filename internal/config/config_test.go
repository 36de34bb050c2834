package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "sable.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rename.Policy != PolicyContextual {
		t.Errorf("policy = %q, want %q", cfg.Rename.Policy, PolicyContextual)
	}
	if cfg.Printer.Width != DefaultPrinterWidth {
		t.Errorf("width = %d, want %d", cfg.Printer.Width, DefaultPrinterWidth)
	}
}

func TestParseConfigFull(t *testing.T) {
	data := []byte(`
rename:
  policy: inline
  prefix: inj
  whitelist: [a, b]
  invert: true
  report: renames.db
printer:
  width: 80
`)
	cfg, err := ParseConfig(data, "sable.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rename.Policy != PolicyInline || cfg.Rename.Prefix != "inj" {
		t.Errorf("rename = %+v", cfg.Rename)
	}
	if len(cfg.Rename.Whitelist) != 2 {
		t.Errorf("whitelist = %v", cfg.Rename.Whitelist)
	}
	if !cfg.Rename.Invert || cfg.Rename.Report != "renames.db" {
		t.Errorf("rename = %+v", cfg.Rename)
	}
	if cfg.Printer.Width != 80 {
		t.Errorf("width = %d", cfg.Printer.Width)
	}
}

func TestParseConfigRejectsUnknownPolicy(t *testing.T) {
	if _, err := ParseConfig([]byte("rename:\n  policy: bogus\n"), "sable.yaml"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestParseConfigInlineRequiresPrefix(t *testing.T) {
	if _, err := ParseConfig([]byte("rename:\n  policy: inline\n"), "sable.yaml"); err == nil {
		t.Error("expected error for inline policy without prefix")
	}
	if _, err := ParseConfig([]byte("rename:\n  policy: boilerplate\n"), "sable.yaml"); err == nil {
		t.Error("expected error for boilerplate policy without prefix")
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rename.Policy != PolicyContextual {
		t.Errorf("policy = %q", cfg.Rename.Policy)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("rename:\n  invert: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Rename.Invert {
		t.Error("invert not loaded from file")
	}
}
