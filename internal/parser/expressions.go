package parser

import (
	"fmt"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/token"
)

func (p *Parser) parseExpression() *ast.Node {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() *ast.Node {
	left := p.parseConditional()
	switch p.cur().Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
		token.ASTERISK_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
		tok := p.advance()
		if !isAssignTarget(left) {
			p.errorAt(tok, diagnostics.ErrP002, "invalid assignment target")
		}
		assign := p.node(ast.KindAssign, tok, left, p.parseAssignment())
		assign.SetText(tok.Lexeme)
		return assign
	}
	return left
}

func isAssignTarget(n *ast.Node) bool {
	switch n.Kind() {
	case ast.KindName, ast.KindGetProp, ast.KindGetElem:
		return true
	}
	return false
}

func (p *Parser) parseConditional() *ast.Node {
	cond := p.parseBinary(0)
	if !p.check(token.QUESTION) {
		return cond
	}
	tok := p.advance()
	then := p.parseAssignment()
	p.expect(token.COLON)
	return p.node(ast.KindHook, tok, cond, then, p.parseAssignment())
}

// Binary operator precedence levels, lowest first.
var binaryLevels = [][]token.Type{
	{token.OR},
	{token.AND},
	{token.EQ, token.NOT_EQ, token.STRICT_EQ, token.STRICT_NOT_EQ},
	{token.LT, token.GT, token.LT_EQ, token.GT_EQ},
	{token.PLUS, token.MINUS},
	{token.ASTERISK, token.SLASH, token.PERCENT},
}

func (p *Parser) parseBinary(level int) *ast.Node {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}
	left := p.parseBinary(level + 1)
	for {
		matched := false
		for _, t := range binaryLevels[level] {
			if p.check(t) {
				tok := p.advance()
				right := p.parseBinary(level + 1)
				bin := p.node(ast.KindBinary, tok, left, right)
				bin.SetText(tok.Lexeme)
				left = bin
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
	}
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.cur().Type {
	case token.BANG, token.MINUS, token.PLUS, token.TYPEOF, token.INC, token.DEC:
		tok := p.advance()
		un := p.node(ast.KindUnary, tok, p.parseUnary())
		un.SetText(tok.Lexeme)
		return un
	case token.NEW:
		return p.parseNew()
	}
	return p.parsePostfix()
}

func (p *Parser) parseNew() *ast.Node {
	tok := p.expect(token.NEW)
	callee := p.parsePrimary()
	callee = p.parseMemberChain(callee, false)
	n := p.node(ast.KindNew, tok, callee)
	if p.match(token.LPAREN) {
		p.parseArguments(n)
	}
	// Accesses and calls on the constructed object continue the chain.
	return p.parseMemberChain(n, true)
}

func (p *Parser) parsePostfix() *ast.Node {
	expr := p.parseCallMember()
	if p.check(token.INC) || p.check(token.DEC) {
		tok := p.advance()
		post := p.node(ast.KindPostfix, tok, expr)
		post.SetText(tok.Lexeme)
		return post
	}
	return expr
}

func (p *Parser) parseCallMember() *ast.Node {
	return p.parseMemberChain(p.parsePrimary(), true)
}

// parseMemberChain extends expr with property accesses, element
// accesses and (when calls is set) call expressions.
func (p *Parser) parseMemberChain(expr *ast.Node, calls bool) *ast.Node {
	for {
		switch {
		case p.check(token.DOT):
			tok := p.advance()
			prop := p.expect(token.IDENT)
			get := p.node(ast.KindGetProp, tok, expr)
			get.SetText(prop.Lexeme)
			expr = get
		case p.check(token.LBRACKET):
			tok := p.advance()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = p.node(ast.KindGetElem, tok, expr, index)
		case calls && p.check(token.LPAREN):
			tok := p.advance()
			call := p.node(ast.KindCall, tok, expr)
			p.parseArguments(call)
			expr = call
		default:
			return expr
		}
	}
}

// parseArguments parses a call argument list (opening paren already
// consumed) and appends the arguments to n.
func (p *Parser) parseArguments(n *ast.Node) {
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		n.AddChildToBack(p.parseAssignment())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
}

func (p *Parser) parsePrimary() *ast.Node {
	tok := p.cur()
	switch tok.Type {
	case token.IDENT:
		return p.name(p.advance())
	case token.NUMBER:
		p.advance()
		n := p.node(ast.KindNumber, tok)
		n.SetText(tok.Lexeme)
		return n
	case token.STRING:
		p.advance()
		n := p.node(ast.KindString, tok)
		n.SetText(tok.Literal)
		return n
	case token.TRUE:
		p.advance()
		return p.node(ast.KindTrue, tok)
	case token.FALSE:
		p.advance()
		return p.node(ast.KindFalse, tok)
	case token.NULL:
		p.advance()
		return p.node(ast.KindNull, tok)
	case token.THIS:
		p.advance()
		return p.node(ast.KindThis, tok)
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.FUNCTION:
		return p.parseFunction(false)
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	default:
		p.errorAt(tok, diagnostics.ErrP001, fmt.Sprintf("unexpected token %q", tok.Lexeme))
		p.advance()
		return p.node(ast.KindEmpty, tok)
	}
}

// parseObjectLiteral parses { key: value, shorthand, ... }. A shorthand
// property is a StringKey without children; the rename pass expands it
// when the implied variable is renamed.
func (p *Parser) parseObjectLiteral() *ast.Node {
	tok := p.expect(token.LBRACE)
	obj := p.node(ast.KindObjectLit, tok)
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		keyTok := p.cur()
		var key *ast.Node
		switch keyTok.Type {
		case token.IDENT, token.STRING:
			p.advance()
			text := keyTok.Lexeme
			if keyTok.Type == token.STRING {
				text = keyTok.Literal
			}
			key = p.node(ast.KindStringKey, keyTok)
			key.SetText(text)
		default:
			p.errorAt(keyTok, diagnostics.ErrP001, fmt.Sprintf("bad object key %q", keyTok.Lexeme))
			p.advance()
			continue
		}
		if p.match(token.COLON) {
			key.AddChildToBack(p.parseAssignment())
		} else if keyTok.Type == token.STRING {
			p.errorAt(keyTok, diagnostics.ErrP001, "string key requires a value")
		}
		obj.AddChildToBack(key)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return obj
}

func (p *Parser) parseArrayLiteral() *ast.Node {
	tok := p.expect(token.LBRACKET)
	arr := p.node(ast.KindArrayLit, tok)
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		arr.AddChildToBack(p.parseAssignment())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return arr
}
