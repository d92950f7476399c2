package driven

import (
	"context"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

// Normaliser converts requirement text in one source format into the
// embedded XHTML content of an attribute value.
type Normaliser interface {
	// Format returns the text format this normaliser handles (e.g. "markdown").
	Format() string

	// Normalise converts text into an XHTML value.
	Normalise(ctx context.Context, text string) (domain.XHTMLValue, error)
}
