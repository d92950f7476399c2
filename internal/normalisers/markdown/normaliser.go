package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// The goldmark instance is configured once; Convert keeps per-call state.
var (
	converter     goldmark.Markdown
	converterOnce sync.Once
)

func getConverter() goldmark.Markdown {
	converterOnce.Do(func() {
		converter = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		)
	})
	return converter
}

// Normaliser renders Markdown requirement text into XHTML markup.
// Raw HTML in the source is omitted by the renderer.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns the text format this normaliser handles.
func (n *Normaliser) Format() string {
	return domain.TextFormatMarkdown.String()
}

// Normalise converts Markdown text into markup nodes.
func (n *Normaliser) Normalise(ctx context.Context, text string) (domain.XHTMLValue, error) {
	if err := ctx.Err(); err != nil {
		return domain.XHTMLValue{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.PlainText(""), nil
	}

	var buf bytes.Buffer
	if err := getConverter().Convert([]byte(text), &buf); err != nil {
		return domain.XHTMLValue{}, fmt.Errorf("render markdown: %w", err)
	}

	nodes, err := parseFragment(buf.Bytes())
	if err != nil {
		return domain.XHTMLValue{}, fmt.Errorf("parse rendered markdown: %w", err)
	}
	if len(nodes) == 0 {
		return domain.PlainText(""), nil
	}
	return domain.XHTMLValue{Markup: nodes}, nil
}

// parseFragment turns rendered XHTML into markup nodes. Comments are
// skipped; adjacent text is merged.
func parseFragment(fragment []byte) ([]domain.MarkupNode, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}
	return convertNodes(nodes), nil
}

// childNodes lists the children of n in document order.
func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// convertNodes converts a run of sibling nodes. Whitespace-only text that
// sits next to a block element is renderer layout and is dropped; all other
// text, including spaces between inline elements, is kept.
func convertNodes(nodes []*html.Node) []domain.MarkupNode {
	var out []domain.MarkupNode
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			if last := len(out) - 1; last >= 0 && out[last].IsText() {
				out[last].Text += n.Data
				continue
			}
			out = append(out, domain.MarkupNode{Text: n.Data})
		case html.ElementNode:
			node := domain.MarkupNode{Element: n.Data}
			for _, a := range n.Attr {
				node.Attrs = append(node.Attrs, domain.MarkupAttr{Name: a.Key, Value: a.Val})
			}
			node.Children = convertNodes(childNodes(n))
			out = append(out, node)
		}
	}

	var kept []domain.MarkupNode
	for i, n := range out {
		if n.IsText() && strings.TrimSpace(n.Text) == "" &&
			((i > 0 && isBlock(out[i-1])) || (i+1 < len(out) && isBlock(out[i+1]))) {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

// blockElements are the elements the renderer separates with newlines.
var blockElements = map[string]bool{
	"address": true, "blockquote": true, "dd": true, "div": true, "dl": true,
	"dt": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "hr": true, "li": true, "ol": true, "p": true, "pre": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true,
	"th": true, "td": true, "ul": true,
}

func isBlock(n domain.MarkupNode) bool {
	return blockElements[n.Element]
}
