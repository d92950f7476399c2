package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown source, renderer or processor type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Document Errors.

	// ErrDuplicateIdentifier indicates an identifier is already used in the document.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrDanglingReference indicates a reference names an entity that does not exist.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrMissingIntermediateLevel indicates a hierarchy insertion asked for a depth
	// whose parent chain does not exist yet.
	ErrMissingIntermediateLevel = errors.New("no node exists at the requested intermediate level")

	// ErrEmptyOutline indicates a requirement source produced no items.
	ErrEmptyOutline = errors.New("outline has no items")

	// Output Errors.

	// ErrSerialization indicates the XML emission step could not render the document.
	ErrSerialization = errors.New("serialization failed")

	// ErrSinkFailure indicates the produced bytes could not be written out.
	ErrSinkFailure = errors.New("sink write failed")
)

// MissingLevelError reports which level was missing during a hierarchy insertion.
type MissingLevelError struct {
	// Depth is the depth that was requested.
	Depth int

	// Level is the first level that had no node to descend into.
	Level int
}

// Error implements error.
func (e *MissingLevelError) Error() string {
	return fmt.Sprintf("%s: level %d is empty (requested depth %d)",
		ErrMissingIntermediateLevel.Error(), e.Level, e.Depth)
}

// Unwrap lets errors.Is match ErrMissingIntermediateLevel.
func (e *MissingLevelError) Unwrap() error {
	return ErrMissingIntermediateLevel
}
