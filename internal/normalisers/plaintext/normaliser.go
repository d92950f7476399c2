package plaintext

import (
	"context"
	"strings"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser keeps requirement text as literal characters.
// The serializer escapes it; no markup is produced.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the text format this normaliser handles.
func (n *Normaliser) Format() string {
	return domain.TextFormatPlain.String()
}

// Normalise unifies line endings and trims surrounding blank space.
func (n *Normaliser) Normalise(ctx context.Context, text string) (domain.XHTMLValue, error) {
	if err := ctx.Err(); err != nil {
		return domain.XHTMLValue{}, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return domain.PlainText(strings.TrimSpace(text)), nil
}
