// Package cli implements the sable command line: normalize source
// files so every declared name is unique, optionally invert a previous
// normalization, and print the result.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/sable-lang/sable/internal/config"
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser"
	"github.com/sable-lang/sable/internal/pipeline"
	"github.com/sable-lang/sable/internal/printer"
	"github.com/sable-lang/sable/internal/rename"
	"github.com/sable-lang/sable/internal/report"
	"github.com/sable-lang/sable/internal/token"
)

// options are the effective settings for one invocation, merged from
// sable.yaml and command-line flags (flags win).
type options struct {
	policy    string
	prefix    string
	whitelist []string
	invert    bool
	reportDB  string
	output    string
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run is the entry point for cmd/sable. It returns the process exit
// code.
func Run(args []string) int {
	// Normalizing is the only command; the verb is optional.
	if len(args) > 0 && args[0] == "normalize" {
		args = args[1:]
	}

	var inputPath string
	opts := options{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-help", "--help", "help":
			printUsage(os.Stdout)
			return 0
		case "-policy":
			if i+1 < len(args) {
				opts.policy = args[i+1]
				i++
			}
		case "-prefix":
			if i+1 < len(args) {
				opts.prefix = args[i+1]
				i++
			}
		case "-whitelist":
			if i+1 < len(args) {
				opts.whitelist = strings.Split(args[i+1], ",")
				i++
			}
		case "-invert":
			opts.invert = true
		case "-report":
			if i+1 < len(args) {
				opts.reportDB = args[i+1]
				i++
			}
		case "-o":
			if i+1 < len(args) {
				opts.output = args[i+1]
				i++
			}
		default:
			if strings.HasPrefix(args[i], "-") {
				fmt.Fprintf(os.Stderr, "Unknown flag: %s\n", args[i])
				printUsage(os.Stderr)
				return 1
			}
			if inputPath != "" {
				fmt.Fprintf(os.Stderr, "Error: multiple input files given\n")
				return 1
			}
			inputPath = args[i]
		}
	}

	source, filePath, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	cfg, err := loadConfig(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	mergeFlags(cfg, opts)

	ctx, closeReport, err := runPipeline(source, filePath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	if len(ctx.Errors) > 0 {
		printErrors(ctx.Errors)
		closeReport()
		return 1
	}

	if err := writeOutput(opts.output, ctx.Output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		closeReport()
		return 1
	}

	if err := closeReport(); err != nil {
		reportErr := diagnostics.NewError(diagnostics.ErrN001, token.Token{},
			fmt.Sprintf("writing rename report: %s", err))
		reportErr.File = filePath
		printErrors([]*diagnostics.DiagnosticError{reportErr})
		return 1
	}
	return 0
}

// runPipeline assembles and runs the normalize pipeline for one file.
// The returned close function flushes the rename report, if one was
// requested.
func runPipeline(source, filePath string, cfg *config.Config) (*pipeline.PipelineContext, func() error, error) {
	var sink rename.ChangeSink
	closeReport := func() error { return nil }
	if cfg.Rename.Report != "" {
		rec, err := report.Open(cfg.Rename.Report, filePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening rename report: %w", err)
		}
		sink = rec
		closeReport = rec.Close
	}

	renamer, err := buildRenamer(cfg)
	if err != nil {
		closeReport()
		return nil, nil, err
	}

	stages := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&rename.NormalizeProcessor{Renamer: renamer, Sink: sink},
	}
	if cfg.Rename.Invert {
		stages = append(stages, &rename.InvertProcessor{Sink: sink})
	}
	stages = append(stages, &printer.PrinterProcessor{})

	ctx := &pipeline.PipelineContext{
		FilePath: filePath,
		Source:   source,
		Config:   cfg,
	}
	return pipeline.New(stages...).Run(ctx), closeReport, nil
}

// buildRenamer constructs the configured naming policy. A nil result
// selects the contextual default inside the pass.
func buildRenamer(cfg *config.Config) (rename.Renamer, error) {
	var renamer rename.Renamer
	switch cfg.Rename.Policy {
	case "", config.PolicyContextual:
		renamer = rename.NewContextualRenamer()
	case config.PolicyInline:
		renamer = rename.NewInlineRenamer(
			rename.UnderscoreConvention{}, uuidSupplier(), cfg.Rename.Prefix, true, nil)
	case config.PolicyBoilerplate:
		renamer = rename.NewBoilerplateRenamer(
			rename.UnderscoreConvention{}, uuidSupplier(), cfg.Rename.Prefix)
	default:
		return nil, fmt.Errorf("unknown rename policy %q", cfg.Rename.Policy)
	}

	if len(cfg.Rename.Whitelist) > 0 {
		allowed := make(map[string]bool, len(cfg.Rename.Whitelist))
		for _, name := range cfg.Rename.Whitelist {
			if name = strings.TrimSpace(name); name != "" {
				allowed[name] = true
			}
		}
		renamer = rename.NewWhitelistedRenamer(renamer, allowed)
	}
	return renamer, nil
}

// uuidSupplier produces short ids for injected names. The first
// segment of a v4 UUID is enough: the id prefix scopes collisions to
// one injection site.
func uuidSupplier() rename.UniqueIDSupplier {
	return func() string {
		id := uuid.NewString()
		return id[:strings.Index(id, "-")]
	}
}

func readInput(path string) (source, filePath string, err error) {
	if path == "" {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", "", fmt.Errorf("usage: sable <file%s> or pipe from stdin", config.SourceFileExt)
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}

	if !isSourceFile(path) {
		return "", "", fmt.Errorf("%s: not a recognized source file (want %s)", path, config.SourceFileExt)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return string(data), abs, nil
}

// loadConfig reads sable.yaml next to the input file, or from the
// working directory when reading stdin.
func loadConfig(filePath string) (*config.Config, error) {
	dir := "."
	if filePath != "" && filePath != "<stdin>" {
		dir = filepath.Dir(filePath)
	}
	return config.LoadConfig(dir)
}

func mergeFlags(cfg *config.Config, opts options) {
	if opts.policy != "" {
		cfg.Rename.Policy = opts.policy
	}
	if opts.prefix != "" {
		cfg.Rename.Prefix = opts.prefix
	}
	if len(opts.whitelist) > 0 {
		cfg.Rename.Whitelist = opts.whitelist
	}
	if opts.invert {
		cfg.Rename.Invert = true
	}
	if opts.reportDB != "" {
		cfg.Rename.Report = opts.reportDB
	}
}

func writeOutput(path, output string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(output)
		return err
	}
	return os.WriteFile(path, []byte(output), 0644)
}

func printErrors(errs []*diagnostics.DiagnosticError) {
	colored := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	for _, err := range errs {
		if colored {
			fmt.Fprintf(os.Stderr, "\x1b[31m- %s\x1b[0m\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "- %s\n", err.Error())
		}
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage: sable [normalize] [flags] <file%s>

Normalizes a source file so every declared name is unique, then prints
the result. Reads from stdin when no file is given. Settings come from
sable.yaml next to the input file; flags override it.

Flags:
  -policy <name>     naming policy: contextual (default), inline, boilerplate
  -prefix <id>       id prefix, required for inline and boilerplate
  -whitelist <a,b>   only rename the listed names
  -invert            collapse suffixed names back where collision-free
  -report <file>     append a rename log to a SQLite file
  -o <file>          write output to file instead of stdout
`, config.SourceFileExt)
}
