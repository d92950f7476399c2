package domain

import (
	"fmt"
	"strings"
)

// AttributeValue is one XHTML attribute value of a requirement.
type AttributeValue struct {
	// Value is the embedded-markup content.
	Value XHTMLValue

	// DefinitionRef names the AttributeDefinition this value instantiates.
	DefinitionRef string
}

// Requirement is a SpecObject bound to the requirement type.
// Build it with NewRequirement; the zero value is not usable.
type Requirement struct {
	identifier string
	lastChange string
	longName   string
	typeRef    string
	values     []AttributeValue
}

// NewRequirement builds a requirement whose body is plain text.
func NewRequirement(id, lastChange, name, text string, reg *TypeRegistry) (Requirement, error) {
	return NewRichRequirement(id, lastChange, name, PlainText(text), reg)
}

// NewRichRequirement builds a requirement with an arbitrary XHTML body.
// The external ID value carries the requirement identifier itself.
func NewRichRequirement(id, lastChange, name string, body XHTMLValue, reg *TypeRegistry) (Requirement, error) {
	if reg == nil {
		return Requirement{}, fmt.Errorf("%w: requirement %q: nil type registry", ErrInvalidInput, id)
	}
	if strings.TrimSpace(id) == "" {
		return Requirement{}, fmt.Errorf("%w: requirement identifier is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return Requirement{}, fmt.Errorf("%w: requirement %q: display name is empty", ErrInvalidInput, id)
	}

	return Requirement{
		identifier: id,
		lastChange: lastChange,
		longName:   name,
		typeRef:    reg.RequirementType().Identifier,
		values: []AttributeValue{
			{Value: PlainText(id), DefinitionRef: reg.ExternalIDAttribute().Identifier},
			{Value: body, DefinitionRef: reg.TextAttribute().Identifier},
		},
	}, nil
}

// Identifier returns the requirement identifier.
func (r Requirement) Identifier() string { return r.identifier }

// LastChange returns the last-change timestamp.
func (r Requirement) LastChange() string { return r.lastChange }

// LongName returns the display name.
func (r Requirement) LongName() string { return r.longName }

// TypeRef returns the identifier of the bound SpecObjectType.
func (r Requirement) TypeRef() string { return r.typeRef }

// Values returns the attribute values in output order: external ID, then text.
func (r Requirement) Values() []AttributeValue {
	return append([]AttributeValue(nil), r.values...)
}

// Text returns the body text with markup stripped.
func (r Requirement) Text() string {
	if len(r.values) < 2 {
		return ""
	}
	return r.values[1].Value.String()
}
