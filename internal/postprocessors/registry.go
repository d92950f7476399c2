package postprocessors

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.PipelineBuilder = (*Registry)(nil)

// BuilderFunc creates a PostProcessor from generic config.
// Config is a map of processor-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Registry maps processor names to their builders.
// It allows dynamic construction of processors from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new processor registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a processor builder to the registry.
// Name should be unique and match the processor's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a processor by name with the given config.
// Returns ErrUnsupportedType if the processor name is not registered.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown processor: %s", domain.ErrUnsupportedType, name)
	}
	return builder(cfg)
}

// BuildPipeline creates a pipeline running the named processors in order.
// configs supplies per-processor options keyed by name; it may be nil.
func (r *Registry) BuildPipeline(names []string, configs map[string]map[string]any) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range names {
		proc, err := r.Build(name, configs[name])
		if err != nil {
			return nil, fmt.Errorf("build processor %s: %w", name, err)
		}
		p.Add(proc)
	}
	return p, nil
}

// Pipeline is BuildPipeline behind the driven.PipelineBuilder port.
func (r *Registry) Pipeline(names []string, configs map[string]map[string]any) (driven.PostProcessorPipeline, error) {
	p, err := r.BuildPipeline(names, configs)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Has returns true if a processor with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered processor names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
