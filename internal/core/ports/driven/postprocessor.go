package driven

import (
	"context"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

// PostProcessor rewrites outline items after loading and before the build.
// PostProcessors are chained in a pipeline (e.g., depth clamping, trimming).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes the items in order and returns the rewritten items.
	Process(ctx context.Context, items []domain.OutlineItem) ([]domain.OutlineItem, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the items through all processors in order.
	Process(ctx context.Context, items []domain.OutlineItem) ([]domain.OutlineItem, error)
}

// PipelineBuilder assembles a pipeline from configured processor names.
type PipelineBuilder interface {
	// Pipeline returns a pipeline running names in order. configs supplies
	// per-processor options keyed by name and may be nil.
	// Returns ErrUnsupportedType for an unknown processor name.
	Pipeline(names []string, configs map[string]map[string]any) (PostProcessorPipeline, error)
}
