package connectors

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reqif-cli/internal/connectors/doorstop"
	"github.com/custodia-labs/reqif-cli/internal/connectors/markdown"
	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory creates connectors from source configuration.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.ConnectorBuilder
}

// NewFactory creates an empty connector factory.
func NewFactory() *Factory {
	return &Factory{
		builders: make(map[string]driven.ConnectorBuilder),
	}
}

// NewDefaultFactory creates a factory with every built-in connector registered.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	RegisterDefaults(f)
	return f
}

// RegisterDefaults registers the built-in connector types with f.
func RegisterDefaults(f driven.ConnectorFactory) {
	f.Register(doorstop.ConnectorType, func(source domain.Source) (driven.Connector, error) {
		return doorstop.New(source.Path, doorstop.WithPrefix(source.Option("prefix", ""))), nil
	})
	f.Register(markdown.ConnectorType, func(source domain.Source) (driven.Connector, error) {
		return markdown.New(source.Path,
			markdown.WithPrefix(source.Option("prefix", markdown.DefaultPrefix)),
			markdown.WithInclude(source.Option("include", markdown.DefaultInclude)),
		), nil
	})
	f.Register(sqlite.ConnectorType, func(source domain.Source) (driven.Connector, error) {
		return sqlite.NewConnector(source.Path), nil
	})
}

// Create returns a Connector for the given source.
func (f *Factory) Create(source domain.Source) (driven.Connector, error) {
	f.mu.RLock()
	builder, ok := f.builders[source.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: connector %q", domain.ErrUnsupportedType, source.Type)
	}
	if source.Path == "" {
		return nil, fmt.Errorf("%w: %s source has no path", domain.ErrInvalidInput, source.Type)
	}
	return builder(source)
}

// Register adds a connector builder for the given type.
func (f *Factory) Register(connectorType string, builder driven.ConnectorBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[connectorType] = builder
}

// SupportedTypes returns all registered connector types in sorted order.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
