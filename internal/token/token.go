package token

type Type string

// Token is a single lexical token with its source position.
type Token struct {
	Type    Type
	Lexeme  string // exact source text
	Literal string // decoded value (e.g. string contents without quotes)
	Line    int
	Column  int
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT  Type = "IDENT"
	NUMBER Type = "NUMBER"
	STRING Type = "STRING"

	// Operators
	ASSIGN          Type = "="
	PLUS            Type = "+"
	MINUS           Type = "-"
	ASTERISK        Type = "*"
	SLASH           Type = "/"
	PERCENT         Type = "%"
	BANG            Type = "!"
	PLUS_ASSIGN     Type = "+="
	MINUS_ASSIGN    Type = "-="
	ASTERISK_ASSIGN Type = "*="
	SLASH_ASSIGN    Type = "/="
	PERCENT_ASSIGN  Type = "%="
	INC             Type = "++"
	DEC             Type = "--"
	EQ              Type = "=="
	NOT_EQ          Type = "!="
	STRICT_EQ       Type = "==="
	STRICT_NOT_EQ   Type = "!=="
	LT              Type = "<"
	GT              Type = ">"
	LT_EQ           Type = "<="
	GT_EQ           Type = ">="
	AND             Type = "&&"
	OR              Type = "||"
	QUESTION        Type = "?"
	ELLIPSIS        Type = "..."
	ARROW           Type = "=>"

	// Delimiters
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"
	COMMA     Type = ","
	SEMICOLON Type = ";"
	COLON     Type = ":"
	DOT       Type = "."

	// Keywords
	VAR      Type = "VAR"
	LET      Type = "LET"
	CONST    Type = "CONST"
	FUNCTION Type = "FUNCTION"
	RETURN   Type = "RETURN"
	IF       Type = "IF"
	ELSE     Type = "ELSE"
	WHILE    Type = "WHILE"
	FOR      Type = "FOR"
	BREAK    Type = "BREAK"
	CONTINUE Type = "CONTINUE"
	TRY      Type = "TRY"
	CATCH    Type = "CATCH"
	FINALLY  Type = "FINALLY"
	CLASS    Type = "CLASS"
	EXTENDS  Type = "EXTENDS"
	NEW      Type = "NEW"
	THIS     Type = "THIS"
	TYPEOF   Type = "TYPEOF"
	TRUE     Type = "TRUE"
	FALSE    Type = "FALSE"
	NULL     Type = "NULL"
)

var keywords = map[string]Type{
	"var":      VAR,
	"let":      LET,
	"const":    CONST,
	"function": FUNCTION,
	"return":   RETURN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"try":      TRY,
	"catch":    CATCH,
	"finally":  FINALLY,
	"class":    CLASS,
	"extends":  EXTENDS,
	"new":      NEW,
	"this":     THIS,
	"typeof":   TYPEOF,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) Type {
	if kw, ok := keywords[ident]; ok {
		return kw
	}
	return IDENT
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// IsIdentifier reports whether s is a syntactically valid, non-reserved
// identifier. Identifiers start with a letter, '_' or '$' and continue
// with letters, digits, '_' or '$'.
func IsIdentifier(s string) bool {
	if s == "" || IsKeyword(s) {
		return false
	}
	for i, r := range s {
		if isIdentLetter(r) {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func isIdentLetter(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
