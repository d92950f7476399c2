package driven

import "github.com/custodia-labs/reqif-cli/internal/core/domain"

// Serializer renders a fully built document as interchange bytes.
// Implementations produce the whole output in memory and never
// write partially.
type Serializer interface {
	// Serialize renders doc. indent only affects whitespace.
	// Failures wrap domain.ErrSerialization.
	Serialize(doc *domain.Document, indent bool) ([]byte, error)
}
