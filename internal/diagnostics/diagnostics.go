package diagnostics

import (
	"fmt"

	"github.com/sable-lang/sable/internal/token"
)

type ErrorCode string

// Error codes by stage: Lxxx lexer, Pxxx parser, Nxxx normalize/rename.
const (
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // unterminated string

	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // bad assignment target
	ErrP003 ErrorCode = "P003" // bad binding pattern

	ErrN001 ErrorCode = "N001" // rename report failure
)

// DiagnosticError is a positioned compiler diagnostic.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	if e.Token.Line == 0 {
		return fmt.Sprintf("%s: [%s] %s", file, e.Code, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: [%s] %s", file, e.Token.Line, e.Token.Column, e.Code, e.Message)
}
