// Package postprocessors rewrites loaded outline items before the document is built.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple PostProcessors and runs them in order.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the items through all processors in order.
// Each processor receives the output of the previous one.
func (p *Pipeline) Process(ctx context.Context, items []domain.OutlineItem) ([]domain.OutlineItem, error) {
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		items, err = processor.Process(ctx, items)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return items, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.processors))
	for _, proc := range p.processors {
		names = append(names, proc.Name())
	}
	return names
}
