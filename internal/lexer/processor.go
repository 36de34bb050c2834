package lexer

import (
	"fmt"

	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/pipeline"
	"github.com/sable-lang/sable/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens := Tokens(ctx.Source)
	for _, tok := range tokens {
		if tok.Type != token.ILLEGAL {
			continue
		}
		code := diagnostics.ErrL001
		msg := fmt.Sprintf("illegal character %q", tok.Lexeme)
		if tok.Literal == "unterminated string" {
			code = diagnostics.ErrL002
			msg = "unterminated string literal"
		}
		err := diagnostics.NewError(code, tok, msg)
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}
	ctx.TokenStream = tokens
	return ctx
}
