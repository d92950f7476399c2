package driven

import (
	"context"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

// Connector reads requirements from a source.
// Each connector type (doorstop, markdown, sqlite) implements this interface.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// Validate checks the source exists and is readable.
	// Returns nil if ready to load, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// Load reads the whole source as an ordered outline.
	Load(ctx context.Context) (*domain.Outline, error)

	// WatchPaths returns the filesystem paths whose changes should trigger
	// a reload. Empty for sources that cannot be watched.
	WatchPaths() []string

	// Close releases resources.
	Close() error
}
