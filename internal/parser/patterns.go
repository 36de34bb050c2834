package parser

import (
	"fmt"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/token"
)

// parsePattern parses a binding pattern: a plain name, an array pattern
// or an object pattern. Object pattern shorthand is expanded eagerly
// ({a} becomes a key with an explicit name child) so every binding has
// a Name node.
func (p *Parser) parsePattern() *ast.Node {
	switch p.cur().Type {
	case token.IDENT:
		return p.name(p.advance())
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		tok := p.cur()
		p.errorAt(tok, diagnostics.ErrP003, fmt.Sprintf("bad binding pattern at %q", tok.Lexeme))
		p.advance()
		return p.node(ast.KindEmpty, tok)
	}
}

// parseBindingElement parses a pattern with an optional default value.
func (p *Parser) parseBindingElement() *ast.Node {
	target := p.parsePattern()
	if p.check(token.ASSIGN) {
		tok := p.advance()
		return p.node(ast.KindDefaultValue, tok, target, p.parseAssignment())
	}
	return target
}

func (p *Parser) parseArrayPattern() *ast.Node {
	tok := p.expect(token.LBRACKET)
	pat := p.node(ast.KindArrayPattern, tok)
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		if p.check(token.ELLIPSIS) {
			restTok := p.advance()
			pat.AddChildToBack(p.node(ast.KindRest, restTok, p.name(p.expect(token.IDENT))))
			break
		}
		pat.AddChildToBack(p.parseBindingElement())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return pat
}

func (p *Parser) parseObjectPattern() *ast.Node {
	tok := p.expect(token.LBRACE)
	pat := p.node(ast.KindObjectPattern, tok)
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		keyTok := p.expect(token.IDENT)
		key := p.node(ast.KindStringKey, keyTok)
		key.SetText(keyTok.Lexeme)

		var target *ast.Node
		if p.match(token.COLON) {
			target = p.parsePattern()
		} else {
			target = p.name(keyTok)
		}
		if p.check(token.ASSIGN) {
			defTok := p.advance()
			target = p.node(ast.KindDefaultValue, defTok, target, p.parseAssignment())
		}
		key.AddChildToBack(target)
		pat.AddChildToBack(key)

		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return pat
}
