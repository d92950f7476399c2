package driven

import "github.com/custodia-labs/reqif-cli/internal/core/domain"

// ConnectorBuilder creates a Connector from a Source.
type ConnectorBuilder func(source domain.Source) (Connector, error)

// ConnectorFactory creates connectors from source configuration.
// It maintains a registry of connector types and their builders.
type ConnectorFactory interface {
	// Create returns a Connector for the given source.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(source domain.Source) (Connector, error)

	// Register adds a connector builder for the given type.
	Register(connectorType string, builder ConnectorBuilder)

	// SupportedTypes returns all registered connector types.
	SupportedTypes() []string
}
