// Package printer renders the uniform AST back to source text. Output
// is normalized (four-space indent, explicit semicolons) rather than a
// reproduction of the input layout.
package printer

import (
	"bytes"
	"strings"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/config"
)

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||":  1,
	"&&":  2,
	"==":  3,
	"!=":  3,
	"===": 3,
	"!==": 3,
	"<":   4,
	">":   4,
	"<=":  4,
	">=":  4,
	"+":   5,
	"-":   5,
	"*":   6,
	"/":   6,
	"%":   6,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
	width  int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{width: config.DefaultPrinterWidth}
}

// SetWidth overrides the target line width. Object and array literals
// that would overflow it are printed one element per line.
func (p *CodePrinter) SetWidth(w int) {
	if w > 0 {
		p.width = w
	}
}

// Print renders the tree rooted at root and returns the source text.
func (p *CodePrinter) Print(root *ast.Node) string {
	p.buf.Reset()
	p.indent = 0
	if root.IsScript() {
		for c := root.FirstChild(); c != nil; c = c.Next() {
			p.printStatement(c)
		}
	} else {
		p.printStatement(root)
	}
	return p.buf.String()
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) line(s string) {
	p.writeIndent()
	p.buf.WriteString(s)
	p.buf.WriteString("\n")
}

func (p *CodePrinter) printStatement(n *ast.Node) {
	switch n.Kind() {
	case ast.KindVar, ast.KindLet, ast.KindConst:
		p.line(p.declarationText(n) + ";")
	case ast.KindFunction:
		p.writeIndent()
		p.printFunction(n)
		p.buf.WriteString("\n")
	case ast.KindClass:
		p.printClass(n)
	case ast.KindBlock:
		p.line("{")
		p.indent++
		for c := n.FirstChild(); c != nil; c = c.Next() {
			p.printStatement(c)
		}
		p.indent--
		p.line("}")
	case ast.KindIf:
		p.printIf(n)
	case ast.KindWhile:
		p.writeIndent()
		p.buf.WriteString("while (" + p.expr(n.FirstChild()) + ") ")
		p.printBlockInline(n.LastChild())
		p.buf.WriteString("\n")
	case ast.KindFor:
		p.printFor(n)
	case ast.KindTry:
		p.printTry(n)
	case ast.KindReturn:
		if n.HasChildren() {
			p.line("return " + p.expr(n.FirstChild()) + ";")
		} else {
			p.line("return;")
		}
	case ast.KindBreak:
		p.line("break;")
	case ast.KindContinue:
		p.line("continue;")
	case ast.KindExprResult:
		p.line(p.expr(n.FirstChild()) + ";")
	case ast.KindEmpty:
		// Elided branches print nothing.
	default:
		p.line(p.expr(n) + ";")
	}
}

func (p *CodePrinter) declarationText(n *ast.Node) string {
	var kw string
	switch n.Kind() {
	case ast.KindVar:
		kw = "var"
	case ast.KindLet:
		kw = "let"
	case ast.KindConst:
		kw = "const"
	}
	parts := make([]string, 0, n.ChildCount())
	for c := n.FirstChild(); c != nil; c = c.Next() {
		parts = append(parts, p.declarator(c))
	}
	return kw + " " + strings.Join(parts, ", ")
}

// declarator prints one binding of a declaration statement: a name with
// an optional initializer child, or a destructuring pattern with its
// required initializer.
func (p *CodePrinter) declarator(n *ast.Node) string {
	if n.Kind() == ast.KindDestructuringLHS {
		return p.pattern(n.FirstChild()) + " = " + p.expr(n.LastChild())
	}
	if n.HasChildren() {
		return n.Text() + " = " + p.expr(n.FirstChild())
	}
	return n.Text()
}

func (p *CodePrinter) printFunction(n *ast.Node) {
	name := ast.FunctionName(n).Text()
	p.buf.WriteString("function")
	if name != "" {
		p.buf.WriteString(" " + name)
	}
	p.buf.WriteString("(" + p.paramList(n.ChildAt(1)) + ") ")
	p.printBlockInline(ast.FunctionBody(n))
}

func (p *CodePrinter) paramList(params *ast.Node) string {
	parts := make([]string, 0, params.ChildCount())
	for c := params.FirstChild(); c != nil; c = c.Next() {
		parts = append(parts, p.bindingElement(c))
	}
	return strings.Join(parts, ", ")
}

func (p *CodePrinter) bindingElement(n *ast.Node) string {
	switch n.Kind() {
	case ast.KindRest:
		return "..." + p.bindingElement(n.FirstChild())
	case ast.KindDefaultValue:
		return p.bindingElement(n.FirstChild()) + " = " + p.expr(n.LastChild())
	case ast.KindArrayPattern, ast.KindObjectPattern:
		return p.pattern(n)
	default:
		return n.Text()
	}
}

func (p *CodePrinter) pattern(n *ast.Node) string {
	switch n.Kind() {
	case ast.KindArrayPattern:
		parts := make([]string, 0, n.ChildCount())
		for c := n.FirstChild(); c != nil; c = c.Next() {
			parts = append(parts, p.bindingElement(c))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ast.KindObjectPattern:
		parts := make([]string, 0, n.ChildCount())
		for c := n.FirstChild(); c != nil; c = c.Next() {
			parts = append(parts, p.patternProperty(c))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return p.bindingElement(n)
	}
}

// patternProperty re-shorthands a key whose binding still matches the
// key text; a renamed binding forces the explicit form.
func (p *CodePrinter) patternProperty(n *ast.Node) string {
	if n.Kind() == ast.KindRest {
		return "..." + p.bindingElement(n.FirstChild())
	}
	if n.Kind() != ast.KindStringKey {
		return p.bindingElement(n)
	}
	target := n.FirstChild()
	if target != nil && target.IsName() && target.Text() == n.Text() {
		return n.Text()
	}
	return n.Text() + ": " + p.bindingElement(target)
}

func (p *CodePrinter) printClass(n *ast.Node) {
	p.writeIndent()
	name := n.FirstChild()
	p.buf.WriteString("class")
	if name.Text() != "" {
		p.buf.WriteString(" " + name.Text())
	}
	if super := n.ChildAt(1); super != nil && !super.IsEmpty() {
		p.buf.WriteString(" extends " + p.expr(super))
	}
	p.buf.WriteString(" {\n")
	p.indent++
	for m := n.LastChild().FirstChild(); m != nil; m = m.Next() {
		p.writeIndent()
		fn := m.FirstChild()
		p.buf.WriteString(m.Text() + "(" + p.paramList(fn.ChildAt(1)) + ") ")
		p.printBlockInline(ast.FunctionBody(fn))
		p.buf.WriteString("\n")
	}
	p.indent--
	p.line("}")
}

func (p *CodePrinter) printIf(n *ast.Node) {
	p.writeIndent()
	p.buf.WriteString("if (" + p.expr(n.FirstChild()) + ") ")
	then := n.ChildAt(1)
	p.printBlockInline(then)
	if els := n.ChildAt(2); els != nil && !els.IsEmpty() {
		p.buf.WriteString(" else ")
		if els.Kind() == ast.KindIf {
			// else-if chains stay on one header line.
			rest := p.capture(func() { p.printIf(els) })
			p.buf.WriteString(strings.TrimLeft(strings.TrimRight(rest, "\n"), " "))
		} else {
			p.printBlockInline(els)
		}
	}
	p.buf.WriteString("\n")
}

func (p *CodePrinter) printFor(n *ast.Node) {
	p.writeIndent()
	init := n.ChildAt(0)
	cond := n.ChildAt(1)
	update := n.ChildAt(2)
	p.buf.WriteString("for (")
	if !init.IsEmpty() {
		switch init.Kind() {
		case ast.KindVar, ast.KindLet, ast.KindConst:
			p.buf.WriteString(p.declarationText(init))
		default:
			p.buf.WriteString(p.expr(init))
		}
	}
	p.buf.WriteString("; ")
	if !cond.IsEmpty() {
		p.buf.WriteString(p.expr(cond))
	}
	p.buf.WriteString("; ")
	if !update.IsEmpty() {
		p.buf.WriteString(p.expr(update))
	}
	p.buf.WriteString(") ")
	p.printBlockInline(n.LastChild())
	p.buf.WriteString("\n")
}

func (p *CodePrinter) printTry(n *ast.Node) {
	p.writeIndent()
	p.buf.WriteString("try ")
	p.printBlockInline(n.FirstChild())
	if catch := n.ChildAt(1); catch != nil && !catch.IsEmpty() {
		p.buf.WriteString(" catch (" + p.bindingElement(catch.FirstChild()) + ") ")
		p.printBlockInline(catch.LastChild())
	}
	if fin := n.ChildAt(2); fin != nil && !fin.IsEmpty() {
		p.buf.WriteString(" finally ")
		p.printBlockInline(fin)
	}
	p.buf.WriteString("\n")
}

// printBlockInline prints a statement body whose opening brace
// continues the current line. Single-statement bodies are normalized
// into braced form.
func (p *CodePrinter) printBlockInline(n *ast.Node) {
	p.buf.WriteString("{\n")
	p.indent++
	if n.IsBlock() {
		for c := n.FirstChild(); c != nil; c = c.Next() {
			p.printStatement(c)
		}
	} else {
		p.printStatement(n)
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}")
}

// capture renders via fn into a fresh region of the buffer and returns
// the produced text.
func (p *CodePrinter) capture(fn func()) string {
	mark := p.buf.Len()
	fn()
	out := p.buf.String()[mark:]
	p.buf.Truncate(mark)
	return out
}

func (p *CodePrinter) expr(n *ast.Node) string {
	return p.exprPrec(n, 0)
}

func (p *CodePrinter) exprPrec(n *ast.Node, parent int) string {
	switch n.Kind() {
	case ast.KindName:
		return n.Text()
	case ast.KindNumber:
		return n.Text()
	case ast.KindString:
		return quote(n.Text())
	case ast.KindTrue:
		return "true"
	case ast.KindFalse:
		return "false"
	case ast.KindNull:
		return "null"
	case ast.KindThis:
		return "this"
	case ast.KindAssign:
		out := p.exprPrec(n.FirstChild(), 1) + " " + n.Text() + " " + p.exprPrec(n.LastChild(), 0)
		if parent > 0 {
			return "(" + out + ")"
		}
		return out
	case ast.KindHook:
		out := p.exprPrec(n.ChildAt(0), 1) + " ? " + p.exprPrec(n.ChildAt(1), 0) + " : " + p.exprPrec(n.ChildAt(2), 0)
		if parent > 0 {
			return "(" + out + ")"
		}
		return out
	case ast.KindBinary:
		prec := getPrecedence(n.Text())
		out := p.exprPrec(n.FirstChild(), prec) + " " + n.Text() + " " + p.exprPrec(n.LastChild(), prec+1)
		if prec < parent {
			return "(" + out + ")"
		}
		return out
	case ast.KindUnary:
		op := n.Text()
		sep := ""
		if op == "typeof" {
			sep = " "
		}
		return op + sep + p.exprPrec(n.FirstChild(), 9)
	case ast.KindPostfix:
		return p.exprPrec(n.FirstChild(), 9) + n.Text()
	case ast.KindCall:
		return p.callee(n.FirstChild()) + "(" + p.args(n) + ")"
	case ast.KindNew:
		return "new " + p.callee(n.FirstChild()) + "(" + p.args(n) + ")"
	case ast.KindGetProp:
		return p.callee(n.FirstChild()) + "." + n.Text()
	case ast.KindGetElem:
		return p.callee(n.FirstChild()) + "[" + p.expr(n.LastChild()) + "]"
	case ast.KindFunction:
		return p.capture(func() { p.printFunction(n) })
	case ast.KindObjectLit:
		return p.objectLit(n)
	case ast.KindArrayLit:
		parts := make([]string, 0, n.ChildCount())
		for c := n.FirstChild(); c != nil; c = c.Next() {
			parts = append(parts, p.expr(c))
		}
		return p.wrap("[", parts, "]")
	default:
		return n.Text()
	}
}

// callee wraps operand positions that would reparse wrong without
// parentheses.
func (p *CodePrinter) callee(n *ast.Node) string {
	switch n.Kind() {
	case ast.KindFunction, ast.KindAssign, ast.KindBinary, ast.KindHook:
		return "(" + p.expr(n) + ")"
	}
	return p.exprPrec(n, 9)
}

func (p *CodePrinter) args(call *ast.Node) string {
	parts := make([]string, 0, call.ChildCount()-1)
	for c := call.FirstChild().Next(); c != nil; c = c.Next() {
		parts = append(parts, p.expr(c))
	}
	return strings.Join(parts, ", ")
}

func (p *CodePrinter) objectLit(n *ast.Node) string {
	parts := make([]string, 0, n.ChildCount())
	for c := n.FirstChild(); c != nil; c = c.Next() {
		if !c.HasChildren() {
			// Shorthand key: the implicit value survived renaming.
			parts = append(parts, c.Text())
			continue
		}
		v := c.FirstChild()
		if v.IsName() && v.Text() == c.Text() {
			parts = append(parts, c.Text())
			continue
		}
		parts = append(parts, c.Text()+": "+p.expr(v))
	}
	return p.wrap("{", parts, "}")
}

// wrap joins literal elements on one line when they fit within the
// target width at the current indent, one element per line otherwise.
func (p *CodePrinter) wrap(open string, parts []string, closing string) string {
	single := open + strings.Join(parts, ", ") + closing
	if len(parts) == 0 || p.indent*4+len(single) <= p.width {
		return single
	}
	inner := strings.Repeat("    ", p.indent+1)
	var b strings.Builder
	b.WriteString(open + "\n")
	for i, part := range parts {
		b.WriteString(inner + part)
		if i < len(parts)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("    ", p.indent) + closing)
	return b.String()
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
