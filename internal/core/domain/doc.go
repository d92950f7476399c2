// Package domain defines the core ReqIF entities for reqif.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TypeRegistry: The fixed catalogue of datatypes and type definitions
//   - Requirement: A SpecObject bound to the requirement type
//   - HierarchyTree: The depth-addressed outline of a specification
//   - Specification: A named, typed root of one hierarchy tree
//   - Document: The interchange document that owns all of the above
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
