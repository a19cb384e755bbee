package pipeline

// Processor is one stage of the pipeline: it reads and mutates ctx,
// returning the same (or a replacement) Context for the next stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Every processor is called; the inference, checking and codegen
		// processors return early once the sink holds errors, so a failing
		// stage blocks the stages after it.
	}
	return ctx
}
