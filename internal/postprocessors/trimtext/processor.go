// Package trimtext tidies whitespace in outline titles and text.
package trimtext

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

// Name is the processor name used in configuration.
const Name = "trim-text"

var blankRuns = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+\n`)

// Processor trims titles and text and collapses runs of blank lines.
// It implements the PostProcessor interface.
type Processor struct {
	collapseBlankLines bool
	dropEmpty          bool
}

// Option configures the processor.
type Option func(*Processor)

// WithCollapseBlankLines enables or disables collapsing blank-line runs.
func WithCollapseBlankLines(v bool) Option {
	return func(p *Processor) {
		p.collapseBlankLines = v
	}
}

// WithDropEmpty drops items whose title and text are both empty.
// Run depth-clamp afterwards if dropped items had children.
func WithDropEmpty(v bool) Option {
	return func(p *Processor) {
		p.dropEmpty = v
	}
}

// New creates a new text trimmer.
func New(opts ...Option) *Processor {
	p := &Processor{collapseBlankLines: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process returns the tidied items.
func (p *Processor) Process(_ context.Context, items []domain.OutlineItem) ([]domain.OutlineItem, error) {
	out := make([]domain.OutlineItem, 0, len(items))
	for _, item := range items {
		item.Title = strings.Join(strings.Fields(item.Title), " ")
		item.Text = strings.TrimSpace(strings.ReplaceAll(item.Text, "\r\n", "\n"))
		if p.collapseBlankLines {
			item.Text = blankRuns.ReplaceAllString(item.Text, "\n\n")
		}
		if p.dropEmpty && item.Title == "" && item.Text == "" {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
