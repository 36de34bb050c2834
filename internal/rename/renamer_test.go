package rename

import (
	"testing"

	"github.com/sable-lang/sable/internal/ast"
)

func blockIn(fn *ast.Node) *ast.Node {
	return ast.FunctionBody(fn)
}

func newFunction(name string) *ast.Node {
	return ast.Function(ast.Name(name), ast.ParamList(), ast.Block())
}

func TestContextualRenamer_GlobalOnlyReserves(t *testing.T) {
	r := NewContextualRenamer()
	r.AddDeclaredName("x", true)
	if got := r.GetReplacementName("x"); got != "" {
		t.Errorf("global declarations must not be renamed, got %q", got)
	}

	fn := newFunction("f")
	child := r.CreateForChildScope(fn.ChildAt(1), true)
	child.AddDeclaredName("x", true)
	if got := child.GetReplacementName("x"); got != "x$sable$1" {
		t.Errorf("reserved name must yield a suffixed local, got %q", got)
	}
}

func TestContextualRenamer_FirstDeclarationUnrenamed(t *testing.T) {
	r := NewContextualRenamer()
	fn := newFunction("f")
	child := r.CreateForChildScope(fn.ChildAt(1), true)
	child.AddDeclaredName("y", true)
	if got := child.GetReplacementName("y"); got != "" {
		t.Errorf("first declaration must keep its spelling, got %q", got)
	}

	other := r.CreateForChildScope(newFunction("g").ChildAt(1), true)
	other.AddDeclaredName("y", true)
	if got := other.GetReplacementName("y"); got != "y$sable$1" {
		t.Errorf("second declaration must be suffixed, got %q", got)
	}
}

func TestContextualRenamer_RegistrationIsIdempotent(t *testing.T) {
	r := NewContextualRenamer()
	child := r.CreateForChildScope(newFunction("f").ChildAt(1), true)
	child.AddDeclaredName("z", true)
	child.AddDeclaredName("z", true)

	other := r.CreateForChildScope(newFunction("g").ChildAt(1), true)
	other.AddDeclaredName("z", true)
	if got := other.GetReplacementName("z"); got != "z$sable$1" {
		t.Errorf("repeated registration must not consume ids, got %q", got)
	}
}

func TestContextualRenamer_HoistedDelegatesToHoistScope(t *testing.T) {
	r := NewContextualRenamer()
	fn := newFunction("f")
	fnFrame := r.CreateForChildScope(fn.ChildAt(1), true)
	block := blockIn(fn)
	blockFrame := fnFrame.CreateForChildScope(block, false)

	blockFrame.AddDeclaredName("v", true)
	if got := fnFrame.GetReplacementName("v"); got != "" {
		t.Errorf("first hoisted declaration stays unrenamed, got %q", got)
	}
	if _, ok := blockFrame.(*ContextualRenamer); !ok {
		t.Fatalf("expected contextual child frame, got %T", blockFrame)
	}
	if got := blockFrame.GetReplacementName("v"); got != "" {
		t.Errorf("hoisted name must not register in the block frame, got %q", got)
	}
}

func TestContextualRenamer_ArgumentsIgnored(t *testing.T) {
	r := NewContextualRenamer()
	child := r.CreateForChildScope(newFunction("f").ChildAt(1), true)
	child.AddDeclaredName(Arguments, true)
	if got := child.GetReplacementName(Arguments); got != "" {
		t.Errorf("arguments must never rename, got %q", got)
	}
}

func TestContextualRenamer_ChildScopeContractPanics(t *testing.T) {
	r := NewContextualRenamer()
	fn := newFunction("f")

	cases := []struct {
		name  string
		root  *ast.Node
		hoist bool
	}{
		{"function as hoist target", fn, true},
		{"block as hoist target", blockIn(fn), true},
		{"non-scope node", ast.Name("x"), false},
	}
	for _, tc := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", tc.name)
				}
			}()
			r.CreateForChildScope(tc.root, tc.hoist)
		}()
	}
}

func TestInlineRenamer_SuffixStripping(t *testing.T) {
	r := NewInlineRenamer(NoConvention{}, counterSupplier(), "p", true, nil)
	r.AddDeclaredName("v$sable$7", false)
	if got := r.GetReplacementName("v$sable$7"); got != "v$sable$p0" {
		t.Errorf("expected stripped base with fresh suffix, got %q", got)
	}
}

func TestWhitelistedRenamer_FiltersLookups(t *testing.T) {
	inner := NewInlineRenamer(NoConvention{}, counterSupplier(), "p", true, nil)
	r := NewWhitelistedRenamer(inner, map[string]bool{"keep": true})

	r.AddDeclaredName("keep", false)
	r.AddDeclaredName("skip", false)
	if got := r.GetReplacementName("keep"); got == "" {
		t.Error("whitelisted name must rename")
	}
	if got := r.GetReplacementName("skip"); got != "" {
		t.Errorf("non-whitelisted name must not rename, got %q", got)
	}
}

func TestOriginalName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"x", "x"},
		{"x$sable$1", "x"},
		{"x$sable$tpl0", "x"},
		{"$sable$1", ""},
		{"a$sable$1$sable$2", "a$sable$1"},
	}
	for _, tc := range cases {
		if got := OriginalName(tc.in); got != tc.want {
			t.Errorf("OriginalName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
