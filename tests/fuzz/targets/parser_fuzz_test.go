package targets

import (
	"testing"

	"github.com/sable-lang/sable/internal/lexer"
	"github.com/sable-lang/sable/internal/parser"
)

// FuzzParser is the entry point for fuzzing the parser. It tokenizes
// arbitrary input and attempts to parse it. The parser must recover
// from any input without panicking.
func FuzzParser(f *testing.F) {
	f.Add("function f(a, b) { return a + b; }")
	f.Add("var x = 1; let y = {a, b: 2};")
	f.Add("if (x) { f(); } else { g(); }")
	f.Add("try { f(); } catch (e) { g(e); } finally { h(); }")
	f.Add("var {a, b: [c, ...d]} = o;")

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 10000 {
			return
		}

		p := parser.New(lexer.Tokens(input))
		program := p.ParseProgram()

		if program == nil {
			t.Fatal("ParseProgram returned nil")
		}
		// Error recovery must terminate with the errors it found, not
		// drop them.
		if !program.HasChildren() && len(p.Errors()) == 0 && len(input) > 0 {
			// Comment-only or whitespace-only input; nothing to check.
			return
		}
	})
}
