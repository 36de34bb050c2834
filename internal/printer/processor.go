package printer

import "github.com/sable-lang/sable/internal/pipeline"

type PrinterProcessor struct{}

func (pp *PrinterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	cp := NewCodePrinter()
	if ctx.Config != nil {
		cp.SetWidth(ctx.Config.Printer.Width)
	}
	ctx.Output = cp.Print(ctx.AstRoot)
	return ctx
}
