package domain

import (
	"fmt"
	"strings"
)

// Specification is a named, typed root of one hierarchy tree.
type Specification struct {
	identifier string
	lastChange string
	longName   string
	typeRef    string
	tree       HierarchyTree
}

// NewSpecification builds an empty specification bound to the registry's
// module specification type.
func NewSpecification(id, lastChange, name string, reg *TypeRegistry) (*Specification, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: specification %q: nil type registry", ErrInvalidInput, id)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: specification identifier is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: specification %q: display name is empty", ErrInvalidInput, id)
	}
	return &Specification{
		identifier: id,
		lastChange: lastChange,
		longName:   name,
		typeRef:    reg.SpecificationType().Identifier,
	}, nil
}

// Identifier returns the specification identifier.
func (s *Specification) Identifier() string { return s.identifier }

// LastChange returns the last-change timestamp.
func (s *Specification) LastChange() string { return s.lastChange }

// LongName returns the display name.
func (s *Specification) LongName() string { return s.longName }

// TypeRef returns the identifier of the bound SpecificationType.
func (s *Specification) TypeRef() string { return s.typeRef }

// Insert adds node to the specification's hierarchy at depth.
// See HierarchyTree.Insert.
func (s *Specification) Insert(node HierarchyNode, depth int) error {
	return s.tree.Insert(node, depth)
}

// Hierarchy returns the specification's tree for read-only traversal.
func (s *Specification) Hierarchy() *HierarchyTree {
	return &s.tree
}
