package parser

import (
	"strings"
	"testing"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/lexer"
)

func parse(t *testing.T, input string) *ast.Node {
	t.Helper()
	p := New(lexer.Tokens(input))
	root := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("parse failed:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return root
}

func expectParseError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	p := New(lexer.Tokens(input))
	p.ParseProgram()
	for _, e := range p.Errors() {
		if e.Code == code {
			return
		}
	}
	var msgs []string
	for _, e := range p.Errors() {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
}

func kinds(n *ast.Node) []string {
	var out []string
	for c := n.FirstChild(); c != nil; c = c.Next() {
		out = append(out, c.Kind().String())
	}
	return out
}

func TestParseVarDeclaration(t *testing.T) {
	root := parse(t, `var a = 1, b;`)
	decl := root.FirstChild()
	if decl.Kind() != ast.KindVar {
		t.Fatalf("got %s, want Var", decl.Kind())
	}
	a := decl.FirstChild()
	if a.Text() != "a" || !a.HasChildren() {
		t.Errorf("first declarator: %s with init expected", a)
	}
	b := a.Next()
	if b.Text() != "b" || b.HasChildren() {
		t.Errorf("second declarator: bare name expected, got %s", b)
	}
}

func TestParseConstMarksDeclaredConstant(t *testing.T) {
	root := parse(t, `const k = 1;`)
	k := root.FirstChild().FirstChild()
	if !k.DeclaredConstant() {
		t.Error("const binding must carry the declared constant marker")
	}
}

func TestParseConstRequiresInitializer(t *testing.T) {
	expectParseError(t, `const k;`, diagnostics.ErrP003)
}

func TestParseFunctionShape(t *testing.T) {
	root := parse(t, `function f(a, b) { return a; }`)
	fn := root.FirstChild()
	got := kinds(fn)
	want := []string{"Name", "ParamList", "Block"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("function children = %v, want %v", got, want)
	}
	if ast.FunctionName(fn).Text() != "f" {
		t.Errorf("function name = %q", ast.FunctionName(fn).Text())
	}
	if !ast.IsFunctionDeclaration(fn) {
		t.Error("top-level function must be a declaration")
	}
}

func TestParseAnonymousFunctionExpression(t *testing.T) {
	root := parse(t, `var f = function() {};`)
	fn := root.FirstChild().FirstChild().FirstChild()
	if !fn.IsFunction() {
		t.Fatalf("initializer is %s, want Function", fn.Kind())
	}
	if ast.FunctionName(fn).Text() != "" {
		t.Errorf("anonymous function must carry an empty name node")
	}
	if ast.IsFunctionDeclaration(fn) {
		t.Error("function expression must not classify as declaration")
	}
}

func TestParseFunctionDeclarationRequiresName(t *testing.T) {
	expectParseError(t, `function () {}`, diagnostics.ErrP001)
}

func TestParseDestructuringDeclaration(t *testing.T) {
	root := parse(t, `var [a, ...rest] = xs, {b, c: d, e = 1} = o;`)
	decl := root.FirstChild()
	first := decl.FirstChild()
	if first.Kind() != ast.KindDestructuringLHS {
		t.Fatalf("got %s, want DestructuringLHS", first.Kind())
	}
	names := ast.LhsNodesOf(decl)
	var texts []string
	for _, n := range names {
		texts = append(texts, n.Text())
	}
	if strings.Join(texts, ",") != "a,rest,b,d,e" {
		t.Errorf("binding names = %v", texts)
	}
}

func TestParseObjectPatternShorthandIsExpanded(t *testing.T) {
	root := parse(t, `var {a} = o;`)
	pattern := root.FirstChild().FirstChild().FirstChild()
	if pattern.Kind() != ast.KindObjectPattern {
		t.Fatalf("got %s, want ObjectPattern", pattern.Kind())
	}
	key := pattern.FirstChild()
	if !key.IsStringKey() || !key.HasChildren() {
		t.Fatal("pattern shorthand must expand to a keyed name")
	}
	if key.FirstChild().Text() != "a" {
		t.Errorf("expanded binding = %q", key.FirstChild().Text())
	}
}

func TestParseObjectLiteralShorthandStaysImplicit(t *testing.T) {
	root := parse(t, `var o = {a, b: 1};`)
	lit := root.FirstChild().FirstChild().FirstChild()
	if lit.Kind() != ast.KindObjectLit {
		t.Fatalf("got %s, want ObjectLit", lit.Kind())
	}
	a := lit.FirstChild()
	if !a.IsStringKey() || a.HasChildren() {
		t.Error("literal shorthand must stay a childless key until renaming forces expansion")
	}
	b := a.Next()
	if !b.HasChildren() {
		t.Error("explicit property must carry its value")
	}
}

func TestParseDestructuringRequiresInitializer(t *testing.T) {
	expectParseError(t, `var [a];`, diagnostics.ErrP003)
}

func TestParsePropertyAccessIsNotAName(t *testing.T) {
	root := parse(t, `x.y;`)
	get := root.FirstChild().FirstChild()
	if get.Kind() != ast.KindGetProp {
		t.Fatalf("got %s, want GetProp", get.Kind())
	}
	if get.Text() != "y" {
		t.Errorf("property text = %q", get.Text())
	}
	if !get.FirstChild().IsName() {
		t.Error("object operand must be a name")
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	root := parse(t, `try { f(); } catch (e) { g(e); } finally { h(); }`)
	try := root.FirstChild()
	got := kinds(try)
	want := []string{"Block", "Catch", "Block"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("try children = %v, want %v", got, want)
	}
}

func TestParseTryRequiresCatchOrFinally(t *testing.T) {
	expectParseError(t, `try { f(); }`, diagnostics.ErrP001)
}

func TestParseForHeader(t *testing.T) {
	root := parse(t, `for (let i = 0; i < 3; i++) { f(i); }`)
	loop := root.FirstChild()
	got := kinds(loop)
	want := []string{"Let", "Binary", "Postfix", "Block"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("for children = %v, want %v", got, want)
	}
}

func TestParseClass(t *testing.T) {
	root := parse(t, `class A extends B { run(x) { return x; } }`)
	cls := root.FirstChild()
	if cls.Kind() != ast.KindClass {
		t.Fatalf("got %s, want Class", cls.Kind())
	}
	if cls.FirstChild().Text() != "A" {
		t.Errorf("class name = %q", cls.FirstChild().Text())
	}
	member := cls.LastChild().FirstChild()
	if member.Kind() != ast.KindMember || member.Text() != "run" {
		t.Fatalf("member = %s", member)
	}
	if !member.FirstChild().IsFunction() {
		t.Error("member must wrap an anonymous function")
	}
}

func TestParsePrecedence(t *testing.T) {
	root := parse(t, `var r = a + b * c === d && e;`)
	init := root.FirstChild().FirstChild().FirstChild()
	// (((a + (b * c)) === d) && e)
	if init.Kind() != ast.KindBinary || init.Text() != "&&" {
		t.Fatalf("top operator = %s %q", init.Kind(), init.Text())
	}
	eq := init.FirstChild()
	if eq.Text() != "===" {
		t.Fatalf("second level = %q, want ===", eq.Text())
	}
	plus := eq.FirstChild()
	if plus.Text() != "+" {
		t.Fatalf("third level = %q, want +", plus.Text())
	}
	if plus.LastChild().Text() != "*" {
		t.Errorf("rhs of + = %q, want *", plus.LastChild().Text())
	}
}

func TestParseAssignmentTargetValidation(t *testing.T) {
	expectParseError(t, `1 = x;`, diagnostics.ErrP002)
}

func TestParseRecoversAndCollectsMultipleErrors(t *testing.T) {
	p := New(lexer.Tokens("var = 1;\nconst k;\n"))
	p.ParseProgram()
	if len(p.Errors()) < 2 {
		t.Errorf("expected at least 2 errors, got %d", len(p.Errors()))
	}
}
