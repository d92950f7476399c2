// Package markdown reads requirements from markdown files.
//
// Every top-level heading starts a requirement: the heading text is the
// title, the heading level gives the depth ("#" is the top level) and the
// markdown up to the next heading is the body. A heading may carry an
// explicit identifier with the attribute syntax "## Title {#REQ-7}";
// otherwise identifiers are numbered "<prefix>-<n>" in document order.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reqif-cli/internal/logger"
)

// ConnectorType is the source type handled by this package.
const ConnectorType = "markdown"

// Defaults for the connector options.
const (
	DefaultPrefix  = "REQ"
	DefaultInclude = "**/*.md"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector reads a markdown file, or every matching file under a directory.
type Connector struct {
	path    string
	prefix  string
	include string
	md      goldmark.Markdown
}

// Option configures a Connector.
type Option func(*Connector)

// WithPrefix sets the prefix of generated identifiers.
func WithPrefix(prefix string) Option {
	return func(c *Connector) {
		c.prefix = prefix
	}
}

// WithInclude sets the glob used to find files when the path is a directory.
func WithInclude(pattern string) Option {
	return func(c *Connector) {
		c.include = pattern
	}
}

// New creates a connector for path.
func New(path string, opts ...Option) *Connector {
	c := &Connector{
		path:    path,
		prefix:  DefaultPrefix,
		include: DefaultInclude,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAttribute()),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Validate checks the path exists and the include pattern is well formed.
func (c *Connector) Validate(_ context.Context) error {
	if _, err := os.Stat(c.path); err != nil {
		return fmt.Errorf("markdown source: %w", err)
	}
	if !doublestar.ValidatePattern(c.include) {
		return fmt.Errorf("%w: include pattern %q", domain.ErrInvalidInput, c.include)
	}
	return nil
}

// Load parses every file in order and returns one item per heading.
func (c *Connector) Load(ctx context.Context) (*domain.Outline, error) {
	files, err := c.files()
	if err != nil {
		return nil, err
	}

	outline := &domain.Outline{Name: strings.TrimSuffix(filepath.Base(c.path), filepath.Ext(c.path))}
	counter := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		rel, err := filepath.Rel(c.path, file)
		if err != nil || rel == "." {
			rel = filepath.Base(file)
		}
		outline.Items = append(outline.Items, c.parse(src, filepath.ToSlash(rel), &counter)...)
	}
	return outline, nil
}

// WatchPaths returns the directory holding the source.
func (c *Connector) WatchPaths() []string {
	info, err := os.Stat(c.path)
	if err == nil && info.IsDir() {
		return []string{c.path}
	}
	return []string{filepath.Dir(c.path)}
}

// Close releases resources.
func (c *Connector) Close() error {
	return nil
}

// files lists the markdown files to read, in sorted order.
func (c *Connector) files() ([]string, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, fmt.Errorf("markdown source: %w", err)
	}
	if !info.IsDir() {
		return []string{c.path}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(c.path), c.include, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: include pattern %q: %v", domain.ErrInvalidInput, c.include, err)
	}
	sort.Strings(matches)

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(c.path, filepath.FromSlash(m)))
	}
	return files, nil
}

// section is the byte range of one heading and its body.
type section struct {
	heading   *ast.Heading
	lineStart int
	bodyStart int
}

// parse splits src into items at its top-level headings.
func (c *Connector) parse(src []byte, origin string, counter *int) []domain.OutlineItem {
	doc := c.md.Parser().Parse(text.NewReader(src))

	var sections []section
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		first := h.Lines().At(0)
		last := h.Lines().At(h.Lines().Len() - 1)

		s := section{heading: h, lineStart: lineStart(src, first.Start)}
		s.bodyStart = lineEnd(src, max(last.Stop-1, first.Start))
		if !isATX(src[s.lineStart:first.Start]) {
			// Setext headings are followed by their underline.
			s.bodyStart = lineEnd(src, s.bodyStart)
		}
		sections = append(sections, s)
	}

	preamble := len(src)
	if len(sections) > 0 {
		preamble = sections[0].lineStart
	}
	if len(bytes.TrimSpace(src[:preamble])) > 0 {
		if len(sections) == 0 {
			logger.Warn("%s: no headings, file contributes no requirements", origin)
		} else {
			logger.Warn("%s: text before the first heading is not part of any requirement", origin)
		}
	}

	items := make([]domain.OutlineItem, 0, len(sections))
	for i, s := range sections {
		end := len(src)
		if i+1 < len(sections) {
			end = sections[i+1].lineStart
		}
		body := ""
		if s.bodyStart < end {
			body = strings.Trim(string(src[s.bodyStart:end]), "\r\n")
		}

		*counter++
		id, ok := attributeID(s.heading)
		if !ok {
			id = fmt.Sprintf("%s-%d", c.prefix, *counter)
		}

		items = append(items, domain.OutlineItem{
			ID:     id,
			Title:  plainText(s.heading, src),
			Text:   body,
			Depth:  s.heading.Level - 1,
			Origin: fmt.Sprintf("%s:%d", origin, bytes.Count(src[:s.lineStart], []byte("\n"))+1),
		})
	}
	return items
}

func attributeID(h *ast.Heading) (string, bool) {
	v, ok := h.AttributeString("id")
	if !ok {
		return "", false
	}
	switch id := v.(type) {
	case []byte:
		return string(id), len(id) > 0
	case string:
		return id, id != ""
	}
	return "", false
}

// plainText flattens the inline content of n.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

func lineEnd(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	i := bytes.IndexByte(src[pos:], '\n')
	if i < 0 {
		return len(src)
	}
	return pos + i + 1
}

func isATX(prefix []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(prefix, " "), []byte("#"))
}
