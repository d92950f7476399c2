package driving

import (
	"context"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

// ExportService turns a requirement source into an interchange document.
type ExportService interface {
	// Outline loads the configured source and runs the post-processor
	// pipeline, returning the items that Build would place in the tree.
	Outline(ctx context.Context, settings domain.AppSettings) (*domain.Outline, error)

	// Build loads the source and assembles the document in memory.
	// With settings.Strict the document is validated before it is returned.
	Build(ctx context.Context, settings domain.AppSettings) (*domain.Document, error)

	// Render serializes a built document.
	Render(doc *domain.Document, indent bool) ([]byte, error)

	// Export builds, renders and writes the document to settings.Output.Path.
	Export(ctx context.Context, settings domain.AppSettings) (*ExportResult, error)

	// WatchPaths returns the paths whose changes should trigger a re-export.
	WatchPaths(ctx context.Context, settings domain.AppSettings) ([]string, error)
}

// ExportResult summarises a completed export.
type ExportResult struct {
	// Destination is the file the document was written to.
	Destination string

	// Requirements is the number of requirements in the document.
	Requirements int

	// Bytes is the size of the rendered document.
	Bytes int

	// Digest is the hex BLAKE3 digest of the rendered document.
	Digest string

	// Written is false when the destination already held identical content.
	Written bool
}
