// Package depthclamp repairs gappy outlines so every item can be placed
// in the specification tree.
package depthclamp

import (
	"context"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

// Name is the processor name used in configuration.
const Name = "depth-clamp"

// Processor clamps each item's depth to at most one level below the
// previous item, and optionally to a maximum depth.
// It implements the PostProcessor interface.
type Processor struct {
	maxDepth int
}

// Option configures the processor.
type Option func(*Processor)

// WithMaxDepth caps every depth at max. Negative values mean no cap.
func WithMaxDepth(max int) Option {
	return func(p *Processor) {
		p.maxDepth = max
	}
}

// New creates a new depth clamp.
func New(opts ...Option) *Processor {
	p := &Processor{maxDepth: -1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process returns a copy of items with depths clamped.
func (p *Processor) Process(_ context.Context, items []domain.OutlineItem) ([]domain.OutlineItem, error) {
	out := make([]domain.OutlineItem, len(items))
	prev := -1
	for i, item := range items {
		depth := item.Depth
		if depth > prev+1 {
			depth = prev + 1
		}
		if p.maxDepth >= 0 && depth > p.maxDepth {
			depth = p.maxDepth
		}
		if depth < 0 {
			depth = 0
		}
		item.Depth = depth
		out[i] = item
		prev = depth
	}
	return out, nil
}
