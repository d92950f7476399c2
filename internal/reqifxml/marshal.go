package reqifxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// DefaultIndent is used when Options.Indent is set without an IndentString.
const DefaultIndent = "  "

// Options controls whitespace only; it never changes the element tree.
type Options struct {
	// Indent pretty-prints the document.
	Indent bool

	// IndentString is the per-level indentation. Defaults to DefaultIndent.
	IndentString string
}

// Marshal renders doc as a complete XML document, declaration included.
// Errors wrap domain.ErrSerialization.
func Marshal(doc *domain.Document, opts Options) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	if doc.Registry() == nil {
		return nil, fmt.Errorf("%w: document has no type registry", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	w := newWriter(&buf, opts)
	w.document(doc)
	if err := w.close(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSerialization, err)
	}
	if opts.Indent {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Ensure Encoder implements the interface.
var _ driven.Serializer = (*Encoder)(nil)

// Encoder is the driven.Serializer backed by Marshal.
type Encoder struct {
	indent string
}

// NewEncoder creates a serializer. An empty indent selects DefaultIndent.
func NewEncoder(indent string) *Encoder {
	return &Encoder{indent: indent}
}

// Serialize renders doc.
func (e *Encoder) Serialize(doc *domain.Document, indent bool) ([]byte, error) {
	return Marshal(doc, Options{Indent: indent, IndentString: e.indent})
}

// writer emits tokens and keeps the first error, so the emit functions
// read as a straight description of the element tree.
type writer struct {
	buf *bytes.Buffer
	enc *xml.Encoder
	err error
}

func newWriter(buf *bytes.Buffer, opts Options) *writer {
	enc := xml.NewEncoder(buf)
	if opts.Indent {
		indent := opts.IndentString
		if indent == "" {
			indent = DefaultIndent
		}
		enc.Indent("", indent)
	}
	return &writer{buf: buf, enc: enc}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func identity(id, lastChange, longName string) []xml.Attr {
	return []xml.Attr{
		attr(attrIdentifier, id),
		attr(attrLastChange, lastChange),
		attr(attrLongName, longName),
	}
}

func (w *writer) token(t xml.Token) {
	if w.err != nil {
		return
	}
	if w.err = checkToken(t); w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(t)
}

// checkToken rejects text and attribute values that XML 1.0 cannot carry.
// encoding/xml would otherwise replace them with U+FFFD.
func checkToken(t xml.Token) error {
	switch t := t.(type) {
	case xml.CharData:
		return checkChars(string(t))
	case xml.StartElement:
		for _, a := range t.Attr {
			if err := checkChars(a.Value); err != nil {
				return fmt.Errorf("attribute %s: %w", a.Name.Local, err)
			}
		}
	}
	return nil
}

func checkChars(s string) error {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("invalid UTF-8 at byte %d", i)
			}
		}
		if !isXMLChar(r) {
			return fmt.Errorf("character %U at byte %d is not allowed in XML", r, i)
		}
	}
	return nil
}

// isXMLChar matches the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

func (w *writer) start(name string, attrs ...xml.Attr) {
	w.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (w *writer) end(name string) {
	w.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *writer) text(s string) {
	if s == "" {
		return
	}
	w.token(xml.CharData(s))
}

// leaf writes <name attrs>text</name>.
func (w *writer) leaf(name, text string, attrs ...xml.Attr) {
	w.start(name, attrs...)
	w.text(text)
	w.end(name)
}

// ref writes <outer><inner>id</inner></outer>.
func (w *writer) ref(outer, inner, id string) {
	w.start(outer)
	w.leaf(inner, id)
	w.end(outer)
}

func (w *writer) close() error {
	if w.err != nil {
		return w.err
	}
	return w.enc.Close()
}

func (w *writer) document(doc *domain.Document) {
	w.start(elRoot,
		attr(attrXMLNS, domain.ReqIFNamespace),
		attr(attrXMLNSXHTML, domain.XHTMLNamespace),
	)
	w.header(doc.Header())

	w.start(elCoreContent)
	w.start(elContent)
	w.datatypes(doc.Registry())
	w.specTypes(doc.Registry())
	w.specObjects(doc.Requirements())
	w.specifications(doc.Specifications())
	w.end(elContent)
	w.end(elCoreContent)

	w.end(elRoot)
}

func (w *writer) header(h domain.Header) {
	w.start(elTheHeader)
	w.start(elHeader, attr(attrIdentifier, h.Identifier))
	w.leaf(elCreation, h.CreationTime)
	w.leaf(elRepository, h.RepositoryID)
	w.leaf(elToolID, h.ReqIFToolID)
	w.leaf(elVersion, h.ReqIFVersion)
	w.leaf(elSourceTool, h.SourceToolID)
	w.leaf(elTitle, h.Title)
	w.end(elHeader)
	w.end(elTheHeader)
}

func (w *writer) datatypes(reg *domain.TypeRegistry) {
	dt := reg.Datatype()
	w.start(elDatatypes)
	w.leaf(elDatatypeXHTML, "", identity(dt.Identifier, dt.LastChange, dt.LongName)...)
	w.end(elDatatypes)
}

func (w *writer) specTypes(reg *domain.TypeRegistry) {
	w.start(elSpecTypes)

	ot := reg.RequirementType()
	w.start(elObjectType, identity(ot.Identifier, ot.LastChange, ot.LongName)...)
	w.attributeDefinitions(ot.Attributes)
	w.end(elObjectType)

	st := reg.SpecificationType()
	w.start(elSpecType, identity(st.Identifier, st.LastChange, st.LongName)...)
	w.attributeDefinitions(st.Attributes)
	w.end(elSpecType)

	w.end(elSpecTypes)
}

func (w *writer) attributeDefinitions(defs []domain.AttributeDefinition) {
	w.start(elSpecAttrs)
	for _, def := range defs {
		w.start(elAttrDefXHTML, identity(def.Identifier, def.LastChange, def.LongName)...)
		w.ref(elType, elDatatypeRef, def.DatatypeRef)
		w.end(elAttrDefXHTML)
	}
	w.end(elSpecAttrs)
}

func (w *writer) specObjects(reqs []domain.Requirement) {
	w.start(elSpecObjects)
	for _, r := range reqs {
		w.start(elSpecObject, identity(r.Identifier(), r.LastChange(), r.LongName())...)
		w.ref(elType, elObjectTypeRf, r.TypeRef())
		w.start(elValues)
		for _, v := range r.Values() {
			w.start(elValueXHTML)
			w.start(elTheValue)
			w.xhtml(v.Value)
			w.end(elTheValue)
			w.ref(elDefinition, elAttrDefRef, v.DefinitionRef)
			w.end(elValueXHTML)
		}
		w.end(elValues)
		w.end(elSpecObject)
	}
	w.end(elSpecObjects)
}

func (w *writer) specifications(specs []*domain.Specification) {
	w.start(elSpecifications)
	for _, s := range specs {
		w.start(elSpecification, identity(s.Identifier(), s.LastChange(), s.LongName())...)
		w.ref(elType, elSpecTypeRef, s.TypeRef())
		w.hierarchy(s.Hierarchy())
		w.end(elSpecification)
	}
	w.end(elSpecifications)
}

// hierarchy writes the tree iteratively. A node's CHILDREN element is
// opened on entry and closed on exit only when the node has children.
func (w *writer) hierarchy(tree *domain.HierarchyTree) {
	w.start(elChildren)
	err := tree.Walk(
		func(ref domain.NodeRef, n domain.HierarchyNode, _ int) error {
			w.start(elHierarchy, attr(attrIdentifier, n.Identifier), attr(attrLastChange, n.LastChange))
			w.ref(elObject, elObjectRef, n.ObjectRef)
			if tree.HasChildren(ref) {
				w.start(elChildren)
			}
			return w.err
		},
		func(ref domain.NodeRef, _ domain.HierarchyNode, _ int) error {
			if tree.HasChildren(ref) {
				w.end(elChildren)
			}
			w.end(elHierarchy)
			return w.err
		},
	)
	if err != nil && w.err == nil {
		w.err = err
	}
	w.end(elChildren)
}

// xhtml writes the wrapping div and its content. Markup fragments are
// written without indentation so mixed content keeps its whitespace.
func (w *writer) xhtml(v domain.XHTMLValue) {
	w.start(elXHTMLDiv)
	if !v.IsMarkup() {
		w.text(v.Text)
		w.end(elXHTMLDiv)
		return
	}

	if w.err == nil {
		w.err = w.enc.Flush()
	}
	if w.err == nil {
		inner := xml.NewEncoder(w.buf)
		w.err = encodeMarkup(inner, v.Markup)
		if w.err == nil {
			w.err = inner.Close()
		}
	}
	w.end(elXHTMLDiv)
}

// encodeMarkup writes nodes depth-first with an explicit stack.
func encodeMarkup(enc *xml.Encoder, nodes []domain.MarkupNode) error {
	type frame struct {
		node domain.MarkupNode
		exit bool
	}

	stack := make([]frame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: nodes[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		name := xml.Name{Local: xhtmlPrefix + f.node.Element}

		switch {
		case f.node.IsText():
			if f.node.Text == "" {
				continue
			}
			text := xml.CharData(f.node.Text)
			if err := checkToken(text); err != nil {
				return err
			}
			if err := enc.EncodeToken(text); err != nil {
				return err
			}
		case f.exit:
			if err := enc.EncodeToken(xml.EndElement{Name: name}); err != nil {
				return err
			}
		default:
			attrs := make([]xml.Attr, 0, len(f.node.Attrs))
			for _, a := range f.node.Attrs {
				attrs = append(attrs, attr(a.Name, a.Value))
			}
			start := xml.StartElement{Name: name, Attr: attrs}
			if err := checkToken(start); err != nil {
				return err
			}
			if err := enc.EncodeToken(start); err != nil {
				return err
			}
			stack = append(stack, frame{node: f.node, exit: true})
			for i := len(f.node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: f.node.Children[i]})
			}
		}
	}
	return enc.Flush()
}
