package parser

import (
	"fmt"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/token"
)

func (p *Parser) parseStatement() *ast.Node {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR, token.LET, token.CONST:
		decl := p.parseVarDeclaration()
		p.semicolon()
		return decl
	case token.FUNCTION:
		return p.parseFunction(true)
	case token.CLASS:
		return p.parseClass()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.TRY:
		return p.parseTry()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		tok := p.advance()
		p.semicolon()
		return p.node(ast.KindBreak, tok)
	case token.CONTINUE:
		tok := p.advance()
		p.semicolon()
		return p.node(ast.KindContinue, tok)
	case token.SEMICOLON:
		tok := p.advance()
		return p.node(ast.KindEmpty, tok)
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.Node {
	tok := p.expect(token.LBRACE)
	block := p.node(ast.KindBlock, tok)
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.AddChildToBack(stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return block
}

// parseVarDeclaration parses a var/let/const statement without its
// terminator, so the for-initializer can reuse it.
func (p *Parser) parseVarDeclaration() *ast.Node {
	tok := p.advance()
	var kind ast.Kind
	switch tok.Type {
	case token.VAR:
		kind = ast.KindVar
	case token.LET:
		kind = ast.KindLet
	default:
		kind = ast.KindConst
	}
	decl := p.node(kind, tok)
	for {
		decl.AddChildToBack(p.parseDeclarator(kind))
		if !p.match(token.COMMA) {
			return decl
		}
	}
}

// parseDeclarator parses one binding of a declaration statement: either
// a name with an optional initializer child, or a destructuring pattern
// paired with its initializer.
func (p *Parser) parseDeclarator(kind ast.Kind) *ast.Node {
	if p.check(token.LBRACKET) || p.check(token.LBRACE) {
		patTok := p.cur()
		pattern := p.parsePattern()
		lhs := p.node(ast.KindDestructuringLHS, patTok, pattern)
		if p.match(token.ASSIGN) {
			lhs.AddChildToBack(p.parseAssignment())
		} else {
			p.errorAt(patTok, diagnostics.ErrP003, "destructuring declaration requires an initializer")
		}
		return lhs
	}

	tok := p.expect(token.IDENT)
	name := p.name(tok)
	if kind == ast.KindConst {
		name.SetDeclaredConstant(true)
	}
	if p.match(token.ASSIGN) {
		name.AddChildToBack(p.parseAssignment())
	} else if kind == ast.KindConst {
		p.errorAt(tok, diagnostics.ErrP003, fmt.Sprintf("const %q requires an initializer", tok.Lexeme))
	}
	return name
}

// parseFunction parses a function declaration or expression. The name
// slot is always present; anonymous functions carry an empty name node.
func (p *Parser) parseFunction(declaration bool) *ast.Node {
	tok := p.expect(token.FUNCTION)

	var name *ast.Node
	if p.check(token.IDENT) {
		name = p.name(p.advance())
	} else {
		if declaration {
			p.errorAt(p.cur(), diagnostics.ErrP001, "function declaration requires a name")
		}
		name = p.name(token.Token{Line: tok.Line, Column: tok.Column})
	}

	params := p.parseParamList()
	body := p.parseBlock()
	return p.node(ast.KindFunction, tok, name, params, body)
}

func (p *Parser) parseParamList() *ast.Node {
	tok := p.expect(token.LPAREN)
	params := p.node(ast.KindParamList, tok)
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		if p.check(token.ELLIPSIS) {
			restTok := p.advance()
			rest := p.node(ast.KindRest, restTok, p.name(p.expect(token.IDENT)))
			params.AddChildToBack(rest)
		} else {
			params.AddChildToBack(p.parseBindingElement())
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseClass() *ast.Node {
	tok := p.expect(token.CLASS)
	name := p.name(p.expect(token.IDENT))

	var super *ast.Node
	if p.match(token.EXTENDS) {
		super = p.name(p.expect(token.IDENT))
	} else {
		super = ast.Empty()
	}

	bodyTok := p.expect(token.LBRACE)
	body := p.node(ast.KindClassBody, bodyTok)
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		before := p.pos
		body.AddChildToBack(p.parseClassMember())
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return p.node(ast.KindClass, tok, name, super, body)
}

// parseClassMember parses a method definition. The method's function is
// anonymous; the member node carries the method name, which is a
// property and therefore never renamed.
func (p *Parser) parseClassMember() *ast.Node {
	tok := p.expect(token.IDENT)
	fn := ast.Function(
		p.name(token.Token{Line: tok.Line, Column: tok.Column}),
		p.parseParamList(),
		p.parseBlock(),
	)
	fn.Line = tok.Line
	fn.Column = tok.Column
	member := p.node(ast.KindMember, tok, fn)
	member.SetText(tok.Lexeme)
	return member
}

func (p *Parser) parseIf() *ast.Node {
	tok := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	if p.match(token.ELSE) {
		return p.node(ast.KindIf, tok, cond, then, p.parseStatement())
	}
	return p.node(ast.KindIf, tok, cond, then)
}

func (p *Parser) parseWhile() *ast.Node {
	tok := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	return p.node(ast.KindWhile, tok, cond, p.parseStatement())
}

func (p *Parser) parseFor() *ast.Node {
	tok := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init *ast.Node
	switch p.cur().Type {
	case token.SEMICOLON:
		init = ast.Empty()
	case token.VAR, token.LET, token.CONST:
		init = p.parseVarDeclaration()
	default:
		init = p.parseExpression()
	}
	p.expect(token.SEMICOLON)

	cond := ast.Empty()
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)

	update := ast.Empty()
	if !p.check(token.RPAREN) {
		update = p.parseExpression()
	}
	p.expect(token.RPAREN)

	return p.node(ast.KindFor, tok, init, cond, update, p.parseStatement())
}

func (p *Parser) parseTry() *ast.Node {
	tok := p.expect(token.TRY)
	block := p.parseBlock()

	catch := ast.Empty()
	if p.check(token.CATCH) {
		catchTok := p.advance()
		p.expect(token.LPAREN)
		var param *ast.Node
		if p.check(token.LBRACKET) || p.check(token.LBRACE) {
			param = p.parsePattern()
		} else {
			param = p.name(p.expect(token.IDENT))
		}
		p.expect(token.RPAREN)
		catch = p.node(ast.KindCatch, catchTok, param, p.parseBlock())
	}

	finally := ast.Empty()
	if p.match(token.FINALLY) {
		finally = p.parseBlock()
	}

	if catch.IsEmpty() && finally.IsEmpty() {
		p.errorAt(tok, diagnostics.ErrP001, "try requires catch or finally")
	}
	return p.node(ast.KindTry, tok, block, catch, finally)
}

func (p *Parser) parseReturn() *ast.Node {
	tok := p.expect(token.RETURN)
	if p.check(token.SEMICOLON) || p.check(token.RBRACE) || p.check(token.EOF) {
		p.semicolon()
		return p.node(ast.KindReturn, tok)
	}
	value := p.parseExpression()
	p.semicolon()
	return p.node(ast.KindReturn, tok, value)
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	tok := p.cur()
	expr := p.parseExpression()
	p.semicolon()
	return p.node(ast.KindExprResult, tok, expr)
}
