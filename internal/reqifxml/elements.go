package reqifxml

// Element and attribute names of the interchange schema.
const (
	elRoot        = "REQ-IF"
	elTheHeader   = "THE-HEADER"
	elHeader      = "REQ-IF-HEADER"
	elCreation    = "CREATION-TIME"
	elRepository  = "REPOSITORY-ID"
	elToolID      = "REQ-IF-TOOL-ID"
	elVersion     = "REQ-IF-VERSION"
	elSourceTool  = "SOURCE-TOOL-ID"
	elTitle       = "TITLE"
	elCoreContent = "CORE-CONTENT"
	elContent     = "REQ-IF-CONTENT"

	elDatatypes     = "DATATYPES"
	elDatatypeXHTML = "DATATYPE-DEFINITION-XHTML"
	elSpecTypes     = "SPEC-TYPES"
	elObjectType    = "SPEC-OBJECT-TYPE"
	elSpecType      = "SPECIFICATION-TYPE"
	elSpecAttrs     = "SPEC-ATTRIBUTES"
	elAttrDefXHTML  = "ATTRIBUTE-DEFINITION-XHTML"
	elType          = "TYPE"
	elDatatypeRef   = "DATATYPE-DEFINITION-XHTML-REF"

	elSpecObjects  = "SPEC-OBJECTS"
	elSpecObject   = "SPEC-OBJECT"
	elObjectTypeRf = "SPEC-OBJECT-TYPE-REF"
	elValues       = "VALUES"
	elValueXHTML   = "ATTRIBUTE-VALUE-XHTML"
	elTheValue     = "THE-VALUE"
	elDefinition   = "DEFINITION"
	elAttrDefRef   = "ATTRIBUTE-DEFINITION-XHTML-REF"

	elSpecifications = "SPECIFICATIONS"
	elSpecification  = "SPECIFICATION"
	elSpecTypeRef    = "SPECIFICATION-TYPE-REF"
	elChildren       = "CHILDREN"
	elHierarchy      = "SPEC-HIERARCHY"
	elObject         = "OBJECT"
	elObjectRef      = "SPEC-OBJECT-REF"

	// xhtmlPrefix is bound to the XHTML namespace on the root element.
	xhtmlPrefix = "xhtml:"
	elXHTMLDiv  = xhtmlPrefix + "div"

	attrIdentifier = "IDENTIFIER"
	attrLastChange = "LAST-CHANGE"
	attrLongName   = "LONG-NAME"
	attrXMLNS      = "xmlns"
	attrXMLNSXHTML = "xmlns:xhtml"
)
