package rename

import "github.com/sable-lang/sable/internal/pipeline"

// NormalizeProcessor runs MakeNamesUnique as a pipeline stage. A nil
// Renamer selects the contextual policy.
type NormalizeProcessor struct {
	Renamer Renamer
	Sink    ChangeSink
}

func (np *NormalizeProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	counter := &ChangeCounter{}
	sink := ChangeSink(counter)
	if np.Sink != nil {
		sink = MultiSink{counter, np.Sink}
	}
	NewMakeNamesUnique(np.Renamer, true, sink).Process(ctx.AstRoot)
	ctx.Changes += counter.Renames
	return ctx
}

// InvertProcessor runs ContextualRenameInverter as a pipeline stage.
type InvertProcessor struct {
	Sink ChangeSink
}

func (ip *InvertProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	counter := &ChangeCounter{}
	sink := ChangeSink(counter)
	if ip.Sink != nil {
		sink = MultiSink{counter, ip.Sink}
	}
	NewContextualRenameInverter(true, sink).Process(ctx.AstRoot)
	ctx.Changes += counter.Renames
	return ctx
}
