package domain

import "strings"

// MarkupNode is one node of an embedded XHTML fragment.
// An element node has a non-empty Element; a text node has only Text.
type MarkupNode struct {
	// Element is the local XHTML element name (e.g. "p", "em").
	Element string

	// Attrs are the element's attributes in source order.
	Attrs []MarkupAttr

	// Text is the character data of a text node.
	Text string

	// Children are the element's child nodes.
	Children []MarkupNode
}

// MarkupAttr is one attribute on a MarkupNode element.
type MarkupAttr struct {
	Name  string
	Value string
}

// IsText reports whether the node is a text node.
func (n MarkupNode) IsText() bool {
	return n.Element == ""
}

// XHTMLValue is the content of an embedded-markup attribute value.
// When Markup is non-empty it is rendered inside the wrapping div;
// otherwise Text is written as escaped character data.
type XHTMLValue struct {
	Text   string
	Markup []MarkupNode
}

// PlainText wraps text as an XHTML value with no markup.
func PlainText(text string) XHTMLValue {
	return XHTMLValue{Text: text}
}

// IsMarkup reports whether the value carries a markup fragment.
func (v XHTMLValue) IsMarkup() bool {
	return len(v.Markup) > 0
}

// String returns the text content of the value with all markup stripped.
func (v XHTMLValue) String() string {
	if !v.IsMarkup() {
		return v.Text
	}
	var b strings.Builder
	stack := make([]MarkupNode, 0, len(v.Markup))
	for i := len(v.Markup) - 1; i >= 0; i-- {
		stack = append(stack, v.Markup[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsText() {
			b.WriteString(n.Text)
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return b.String()
}
