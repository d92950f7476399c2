package normalisers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps text formats to normalisers.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[string]driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{
		normalisers: make(map[string]driven.Normaliser),
	}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Get returns the normaliser for format.
func (r *Registry) Get(format string) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.normalisers[format]
	if !ok {
		return nil, fmt.Errorf("%w: text format %q", domain.ErrUnsupportedType, format)
	}
	return n, nil
}

// Register adds a normaliser, replacing any existing one for its format.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[normaliser.Format()] = normaliser
}

// Formats returns all registered formats in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]string, 0, len(r.normalisers))
	for f := range r.normalisers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
