package parser

import (
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/pipeline"
	"github.com/sable-lang/sable/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// This case should not be hit if the lexer runs first, but as a safeguard:
		err := diagnostics.NewError("P000", token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	parser := New(ctx.TokenStream)
	ctx.AstRoot = parser.ParseProgram()
	ctx.Errors = append(ctx.Errors, parser.Errors()...)

	// Ensure all errors have file path set
	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}

	return ctx
}
