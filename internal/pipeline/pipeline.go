package pipeline

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/config"
	"github.com/sable-lang/sable/internal/diagnostics"
	"github.com/sable-lang/sable/internal/token"
)

// PipelineContext carries one compilation unit through the stages.
type PipelineContext struct {
	FilePath    string
	Source      string
	TokenStream []token.Token
	AstRoot     *ast.Node
	Output      string
	Config      *config.Config
	Errors      []*diagnostics.DiagnosticError

	// Changes counts identifier rewrites performed by the rename passes.
	Changes int
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
