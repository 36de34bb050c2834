package parser

import (
	"fmt"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/token"
)

// Parser is a recursive-descent parser producing the uniform ast.Node
// tree consumed by the rename passes and the printer.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []*diagnostics.DiagnosticError
}

func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []token.Token{{Type: token.EOF}}
	}
	return &Parser{tokens: tokens}
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

// ParseProgram parses the whole token stream into a Script root.
func (p *Parser) ParseProgram() *ast.Node {
	script := ast.NewNode(ast.KindScript)
	for !p.check(token.EOF) {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			script.AddChildToBack(stmt)
		}
		if p.pos == before {
			// Statement parsing made no progress; skip the offending token.
			p.advance()
		}
	}
	return script
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t token.Type) bool {
	return p.cur().Type == t
}

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t token.Type) token.Token {
	if p.check(t) {
		return p.advance()
	}
	tok := p.cur()
	p.errorAt(tok, diagnostics.ErrP001, fmt.Sprintf("expected %q, found %q", string(t), tok.Lexeme))
	return tok
}

func (p *Parser) errorAt(tok token.Token, code diagnostics.ErrorCode, msg string) {
	p.errors = append(p.errors, diagnostics.NewError(code, tok, msg))
}

// node creates an AST node positioned at tok.
func (p *Parser) node(kind ast.Kind, tok token.Token, children ...*ast.Node) *ast.Node {
	n := ast.NewNode(kind, children...)
	n.Line = tok.Line
	n.Column = tok.Column
	return n
}

// name creates a Name node from an identifier token.
func (p *Parser) name(tok token.Token) *ast.Node {
	n := ast.Name(tok.Lexeme)
	n.Line = tok.Line
	n.Column = tok.Column
	return n
}

// semicolon consumes a statement terminator, tolerating a missing one
// before a closing brace or at end of input.
func (p *Parser) semicolon() {
	if p.match(token.SEMICOLON) {
		return
	}
	if p.check(token.RBRACE) || p.check(token.EOF) {
		return
	}
	p.errorAt(p.cur(), diagnostics.ErrP001, fmt.Sprintf("expected \";\", found %q", p.cur().Lexeme))
}
