package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/sable-lang/sable/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokens lexes the whole input, ending with an EOF token.
func Tokens(input string) []token.Token {
	l := New(input)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	var tok token.Token

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = l.makeToken(token.STRICT_EQ, "===")
			} else {
				tok = l.makeToken(token.EQ, "==")
			}
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = l.makeToken(token.ARROW, "=>")
		} else {
			tok = l.makeToken(token.ASSIGN, "=")
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok = l.makeToken(token.INC, "++")
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.PLUS_ASSIGN, "+=")
		} else {
			tok = l.makeToken(token.PLUS, "+")
		}
	case '-':
		if l.peekChar() == '-' {
			l.readChar()
			tok = l.makeToken(token.DEC, "--")
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.MINUS_ASSIGN, "-=")
		} else {
			tok = l.makeToken(token.MINUS, "-")
		}
	case '*':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.ASTERISK_ASSIGN, "*=")
		} else {
			tok = l.makeToken(token.ASTERISK, "*")
		}
	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.SLASH_ASSIGN, "/=")
		} else {
			tok = l.makeToken(token.SLASH, "/")
		}
	case '%':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.PERCENT_ASSIGN, "%=")
		} else {
			tok = l.makeToken(token.PERCENT, "%")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = l.makeToken(token.STRICT_NOT_EQ, "!==")
			} else {
				tok = l.makeToken(token.NOT_EQ, "!=")
			}
		} else {
			tok = l.makeToken(token.BANG, "!")
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.LT_EQ, "<=")
		} else {
			tok = l.makeToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.GT_EQ, ">=")
		} else {
			tok = l.makeToken(token.GT, ">")
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.makeToken(token.AND, "&&")
		} else {
			tok = l.makeToken(token.ILLEGAL, string(l.ch))
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.makeToken(token.OR, "||")
		} else {
			tok = l.makeToken(token.ILLEGAL, string(l.ch))
		}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				tok = l.makeToken(token.ELLIPSIS, "...")
			} else {
				tok = l.makeToken(token.ILLEGAL, "..")
			}
		} else {
			tok = l.makeToken(token.DOT, ".")
		}
	case '?':
		tok = l.makeToken(token.QUESTION, "?")
	case '(':
		tok = l.makeToken(token.LPAREN, "(")
	case ')':
		tok = l.makeToken(token.RPAREN, ")")
	case '{':
		tok = l.makeToken(token.LBRACE, "{")
	case '}':
		tok = l.makeToken(token.RBRACE, "}")
	case '[':
		tok = l.makeToken(token.LBRACKET, "[")
	case ']':
		tok = l.makeToken(token.RBRACKET, "]")
	case ',':
		tok = l.makeToken(token.COMMA, ",")
	case ';':
		tok = l.makeToken(token.SEMICOLON, ";")
	case ':':
		tok = l.makeToken(token.COLON, ":")
	case '"', '\'':
		return l.readString(l.ch)
	case 0:
		tok = token.Token{Type: token.EOF, Line: l.line, Column: l.column}
	default:
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.makeToken(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) makeToken(t token.Type, lexeme string) token.Token {
	col := l.column - (len(lexeme) - 1)
	if col < 1 {
		col = 1
	}
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: l.line, Column: col}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
			continue
		}
		return
	}
}

func (l *Lexer) readIdentifier() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{
		Type:    token.LookupIdent(lexeme),
		Lexeme:  lexeme,
		Literal: lexeme,
		Line:    line,
		Column:  col,
	}
}

func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.column
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

func (l *Lexer) readString(quote rune) token.Token {
	line, col := l.line, l.column
	start := l.position
	var value []rune
	l.readChar() // consume opening quote
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case 'r':
				value = append(value, '\r')
			default:
				value = append(value, l.ch)
			}
		} else {
			value = append(value, l.ch)
		}
		l.readChar()
	}
	if l.ch == 0 {
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Literal: "unterminated string", Line: line, Column: col}
	}
	l.readChar() // consume closing quote
	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[start:l.position],
		Literal: string(value),
		Line:    line,
		Column:  col,
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}
