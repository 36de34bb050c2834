package cli

import (
	"strings"
	"testing"

	"github.com/sable-lang/sable/internal/config"
	"github.com/sable-lang/sable/internal/rename"
)

func TestRunPipelineNormalizes(t *testing.T) {
	source := `
function f() { var x = 1; return x; }
function g() { var x = 2; return x; }
`
	cfg := config.Default()
	ctx, closeReport, err := runPipeline(source, "test.sbl", cfg)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	defer closeReport()

	if len(ctx.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", ctx.Errors[0])
	}
	if !strings.Contains(ctx.Output, "x$sable$1") {
		t.Errorf("output not normalized:\n%s", ctx.Output)
	}
	if ctx.Changes != 2 {
		t.Errorf("changes = %d, want 2", ctx.Changes)
	}
}

func TestRunPipelineInvertRoundTrip(t *testing.T) {
	source := `
function f() { var x = 1; return x; }
function g() { var x = 2; return x; }
`
	cfg := config.Default()
	cfg.Rename.Invert = true
	ctx, closeReport, err := runPipeline(source, "test.sbl", cfg)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	defer closeReport()

	if strings.Contains(ctx.Output, rename.UniqueIDSeparator) {
		t.Errorf("round trip left suffixes behind:\n%s", ctx.Output)
	}
}

func TestRunPipelineReportsSyntaxErrors(t *testing.T) {
	cfg := config.Default()
	ctx, closeReport, err := runPipeline(`var = 1;`, "test.sbl", cfg)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	defer closeReport()

	if len(ctx.Errors) == 0 {
		t.Fatal("expected syntax errors")
	}
	if ctx.Errors[0].File != "test.sbl" {
		t.Errorf("error file = %q", ctx.Errors[0].File)
	}
}

func TestBuildRenamerPolicies(t *testing.T) {
	cfg := config.Default()
	if _, err := buildRenamer(cfg); err != nil {
		t.Errorf("contextual: %v", err)
	}

	cfg.Rename.Policy = config.PolicyInline
	cfg.Rename.Prefix = "inj"
	r, err := buildRenamer(cfg)
	if err != nil {
		t.Fatalf("inline: %v", err)
	}
	if !r.StripConstIfReplaced() {
		t.Error("inline policy must strip const markers")
	}

	cfg.Rename.Policy = config.PolicyBoilerplate
	if _, err := buildRenamer(cfg); err != nil {
		t.Errorf("boilerplate: %v", err)
	}

	cfg.Rename.Policy = "bogus"
	if _, err := buildRenamer(cfg); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestMergeFlagsOverridesConfig(t *testing.T) {
	cfg := config.Default()
	mergeFlags(cfg, options{policy: "inline", prefix: "p", invert: true})
	if cfg.Rename.Policy != "inline" || cfg.Rename.Prefix != "p" || !cfg.Rename.Invert {
		t.Errorf("merged = %+v", cfg.Rename)
	}
}

func TestIsSourceFile(t *testing.T) {
	if !isSourceFile("main.sbl") {
		t.Error("main.sbl must be recognized")
	}
	if isSourceFile("main.go") {
		t.Error("main.go must not be recognized")
	}
}
