package domain

// Catalogue identifiers. Consumers of the interchange format match on these
// values, so they must never change.
const (
	XHTMLDatatypeID       = "DATATYPE-DEFINITION-XHTML-IDENTIFIER"
	RequirementTypeID     = "SPEC-OBJEC-TYPE-REQ-TYPE-IDENTIFIER"
	TextAttributeID       = "ATTRIBUTE-DEFINITION-XHTML-REQIF.Text-ID"
	ExternalIDAttributeID = "ATTRIBUTE-DEFINITION-XHTML-PUID-ID"
	ModuleSpecificationID = "MODULE-SPECIFICATION-TYPE-ID"
	NameAttributeID       = "ATTRIBUTE-DEFINITION-XHTML-REQIF.NAME-ID"
)

const (
	xhtmlDatatypeName       = "XHTMLString"
	requirementTypeName     = "Requirement Type"
	textAttributeName       = "ReqIF.Text"
	externalIDAttributeName = "IE PUID"
	moduleSpecificationName = "Module Type"
	nameAttributeName       = "ReqIF.Name"
)

// DataTypeDefinition describes one primitive value kind.
type DataTypeDefinition struct {
	// Identifier is the datatype identifier.
	Identifier string

	// LastChange is the RFC3339 timestamp of the last modification.
	LastChange string

	// LongName is the human-readable name.
	LongName string
}

// AttributeDefinition is a named, typed field declared on a type.
type AttributeDefinition struct {
	Identifier string
	LastChange string
	LongName   string

	// DatatypeRef names the DataTypeDefinition of the attribute's values.
	DatatypeRef string
}

// SpecObjectType is the type of a requirement.
type SpecObjectType struct {
	Identifier string
	LastChange string
	LongName   string

	// Attributes are emitted in this order.
	Attributes []AttributeDefinition
}

// SpecificationType is the type of a specification.
type SpecificationType struct {
	Identifier string
	LastChange string
	LongName   string
	Attributes []AttributeDefinition
}

// TypeRegistry owns the closed catalogue of datatypes and type definitions
// that requirements and specifications reference by identifier.
// It is immutable once built; accessors hand out copies.
type TypeRegistry struct {
	datatype          DataTypeDefinition
	textAttribute     AttributeDefinition
	externalAttribute AttributeDefinition
	nameAttribute     AttributeDefinition
	requirementType   SpecObjectType
	specificationType SpecificationType
}

// NewTypeRegistry builds the catalogue. Every entity is stamped with lastChange.
func NewTypeRegistry(lastChange string) *TypeRegistry {
	datatype := DataTypeDefinition{
		Identifier: XHTMLDatatypeID,
		LastChange: lastChange,
		LongName:   xhtmlDatatypeName,
	}

	attr := func(id, name string) AttributeDefinition {
		return AttributeDefinition{
			Identifier:  id,
			LastChange:  lastChange,
			LongName:    name,
			DatatypeRef: datatype.Identifier,
		}
	}

	r := &TypeRegistry{
		datatype:          datatype,
		textAttribute:     attr(TextAttributeID, textAttributeName),
		externalAttribute: attr(ExternalIDAttributeID, externalIDAttributeName),
		nameAttribute:     attr(NameAttributeID, nameAttributeName),
	}

	r.requirementType = SpecObjectType{
		Identifier: RequirementTypeID,
		LastChange: lastChange,
		LongName:   requirementTypeName,
		Attributes: []AttributeDefinition{r.textAttribute, r.externalAttribute},
	}
	r.specificationType = SpecificationType{
		Identifier: ModuleSpecificationID,
		LastChange: lastChange,
		LongName:   moduleSpecificationName,
		Attributes: []AttributeDefinition{r.nameAttribute},
	}

	return r
}

// Datatype returns the long-text datatype definition.
func (r *TypeRegistry) Datatype() DataTypeDefinition {
	return r.datatype
}

// TextAttribute returns the requirement text attribute definition.
func (r *TypeRegistry) TextAttribute() AttributeDefinition {
	return r.textAttribute
}

// ExternalIDAttribute returns the external ID attribute definition.
func (r *TypeRegistry) ExternalIDAttribute() AttributeDefinition {
	return r.externalAttribute
}

// RequirementType returns the single SpecObjectType.
func (r *TypeRegistry) RequirementType() SpecObjectType {
	t := r.requirementType
	t.Attributes = append([]AttributeDefinition(nil), t.Attributes...)
	return t
}

// SpecificationType returns the single module SpecificationType.
func (r *TypeRegistry) SpecificationType() SpecificationType {
	t := r.specificationType
	t.Attributes = append([]AttributeDefinition(nil), t.Attributes...)
	return t
}

// HasAttribute reports whether id names an attribute definition in the catalogue.
func (r *TypeRegistry) HasAttribute(id string) bool {
	switch id {
	case r.textAttribute.Identifier, r.externalAttribute.Identifier, r.nameAttribute.Identifier:
		return true
	}
	return false
}

// Identifiers returns every identifier owned by the catalogue.
func (r *TypeRegistry) Identifiers() []string {
	return []string{
		r.datatype.Identifier,
		r.requirementType.Identifier,
		r.textAttribute.Identifier,
		r.externalAttribute.Identifier,
		r.specificationType.Identifier,
		r.nameAttribute.Identifier,
	}
}
