package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Interchange format constants written into every document.
const (
	// ReqIFNamespace is the default namespace of the interchange schema.
	ReqIFNamespace = "http://www.omg.org/spec/ReqIF/20110401/reqif.xsd"

	// XHTMLNamespace is the namespace of embedded markup, bound to the xhtml prefix.
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"

	// FormatVersion is the REQ-IF-VERSION header value.
	FormatVersion = "1.0"
)

// Header is the document's THE-HEADER metadata.
type Header struct {
	// Identifier is the document identifier.
	Identifier string

	// CreationTime is an RFC3339 timestamp supplied by the caller's clock.
	CreationTime string

	// RepositoryID identifies the repository the requirements came from.
	RepositoryID string

	// ReqIFToolID identifies the tool that produced the document.
	ReqIFToolID string

	// ReqIFVersion is the format version; defaults to FormatVersion.
	ReqIFVersion string

	// SourceToolID identifies the tool that owns the requirements.
	SourceToolID string

	// Title is the document title.
	Title string
}

// Document is the interchange document. It owns the registry, the flat
// requirement list and the specifications, all in insertion order.
// A Document is not safe for concurrent mutation.
type Document struct {
	header         Header
	registry       *TypeRegistry
	requirements   []Requirement
	specifications []*Specification

	// ids tracks every identifier taken by the header, the catalogue,
	// requirements and specifications.
	ids map[string]struct{}
}

// NewDocument creates an empty document around header and reg.
func NewDocument(header Header, reg *TypeRegistry) *Document {
	if header.ReqIFVersion == "" {
		header.ReqIFVersion = FormatVersion
	}
	d := &Document{
		header:   header,
		registry: reg,
		ids:      make(map[string]struct{}),
	}
	if header.Identifier != "" {
		d.ids[header.Identifier] = struct{}{}
	}
	if reg != nil {
		for _, id := range reg.Identifiers() {
			d.ids[id] = struct{}{}
		}
	}
	return d
}

// Header returns the header metadata.
func (d *Document) Header() Header { return d.header }

// Registry returns the type registry.
func (d *Document) Registry() *TypeRegistry { return d.registry }

// Requirements returns the requirements in insertion order.
func (d *Document) Requirements() []Requirement {
	return append([]Requirement(nil), d.requirements...)
}

// Specifications returns the specifications in insertion order.
func (d *Document) Specifications() []*Specification {
	return append([]*Specification(nil), d.specifications...)
}

// Requirement looks up a requirement by identifier.
func (d *Document) Requirement(id string) (Requirement, error) {
	for _, r := range d.requirements {
		if r.identifier == id {
			return r, nil
		}
	}
	return Requirement{}, fmt.Errorf("requirement %q: %w", id, ErrNotFound)
}

// AddRequirement appends r to the flat requirement list.
func (d *Document) AddRequirement(r Requirement) error {
	if r.identifier == "" {
		return fmt.Errorf("%w: requirement was not built with NewRequirement", ErrInvalidInput)
	}
	if err := d.claim(r.identifier); err != nil {
		return err
	}
	d.requirements = append(d.requirements, r)
	return nil
}

// AddSpecification appends s to the specification list.
func (d *Document) AddSpecification(s *Specification) error {
	if s == nil || s.identifier == "" {
		return fmt.Errorf("%w: specification was not built with NewSpecification", ErrInvalidInput)
	}
	if err := d.claim(s.identifier); err != nil {
		return err
	}
	d.specifications = append(d.specifications, s)
	return nil
}

func (d *Document) claim(id string) error {
	if _, taken := d.ids[id]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, id)
	}
	d.ids[id] = struct{}{}
	return nil
}

// Validate checks the cross-reference invariants of the whole document:
// hierarchy node identifiers are unique and every object reference names a
// requirement in the flat list. All violations are reported together.
func (d *Document) Validate() error {
	var errs []error

	if strings.TrimSpace(d.header.Identifier) == "" {
		errs = append(errs, fmt.Errorf("%w: document identifier is empty", ErrInvalidInput))
	}
	if d.registry == nil {
		errs = append(errs, fmt.Errorf("%w: document has no type registry", ErrInvalidInput))
	}

	requirementIDs := make(map[string]struct{}, len(d.requirements))
	for _, r := range d.requirements {
		requirementIDs[r.identifier] = struct{}{}
		if d.registry == nil {
			continue
		}
		if r.typeRef != d.registry.RequirementType().Identifier {
			errs = append(errs, fmt.Errorf("%w: requirement %q type %q", ErrDanglingReference, r.identifier, r.typeRef))
		}
		for _, v := range r.values {
			if !d.registry.HasAttribute(v.DefinitionRef) {
				errs = append(errs, fmt.Errorf("%w: requirement %q attribute definition %q",
					ErrDanglingReference, r.identifier, v.DefinitionRef))
			}
		}
	}

	nodeIDs := make(map[string]struct{})
	for _, s := range d.specifications {
		err := s.tree.Walk(func(_ NodeRef, n HierarchyNode, _ int) error {
			if _, dup := d.ids[n.Identifier]; dup {
				errs = append(errs, fmt.Errorf("%w: hierarchy node %q in specification %q",
					ErrDuplicateIdentifier, n.Identifier, s.identifier))
			} else if _, dup := nodeIDs[n.Identifier]; dup {
				errs = append(errs, fmt.Errorf("%w: hierarchy node %q in specification %q",
					ErrDuplicateIdentifier, n.Identifier, s.identifier))
			}
			nodeIDs[n.Identifier] = struct{}{}

			if _, ok := requirementIDs[n.ObjectRef]; !ok {
				errs = append(errs, fmt.Errorf("%w: hierarchy node %q references unknown requirement %q",
					ErrDanglingReference, n.Identifier, n.ObjectRef))
			}
			return nil
		}, nil)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
