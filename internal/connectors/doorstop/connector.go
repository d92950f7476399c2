// Package doorstop reads requirements from a Doorstop document tree.
//
// A Doorstop document is a directory holding a .doorstop.yml settings file
// and one YAML file per item, named after the item UID. Items are ordered
// by their level ("1.2.3"). A heading has a level ending in ".0" and is
// non-normative; an explicit "normative: true" keeps a ".0" item a
// requirement.
package doorstop

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// ConnectorType is the source type handled by this package.
const ConnectorType = "doorstop"

// settingsFile is the per-document configuration file.
const settingsFile = ".doorstop.yml"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector reads one Doorstop document.
type Connector struct {
	root   string
	prefix string
}

// Option configures a Connector.
type Option func(*Connector)

// WithPrefix selects the document by prefix when the root holds a tree of
// documents. Without it the root document (the one without a parent) is used.
func WithPrefix(prefix string) Option {
	return func(c *Connector) {
		c.prefix = prefix
	}
}

// New creates a connector for the Doorstop tree under root.
func New(root string, opts ...Option) *Connector {
	c := &Connector{root: root}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Validate checks that root is a directory holding a Doorstop document.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.root)
	if err != nil {
		return fmt.Errorf("doorstop root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: doorstop root %s is not a directory", domain.ErrInvalidInput, c.root)
	}
	_, err = c.locate()
	return err
}

// Load reads every active item of the document in level order.
func (c *Connector) Load(ctx context.Context) (*domain.Outline, error) {
	doc, err := c.locate()
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(filepath.Join(c.root, filepath.FromSlash(doc.dir)))
	names, err := doublestar.Glob(fsys, "*.yml")
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	sort.Strings(names)

	var entries []entry
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(name, ".") {
			continue
		}

		e, ok, err := readItem(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", path.Join(doc.dir, name), err)
		}
		if !ok {
			continue
		}
		e.origin = path.Join(doc.dir, name)
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].less(entries[j])
	})

	outline := &domain.Outline{Name: doc.prefix, Items: make([]domain.OutlineItem, 0, len(entries))}
	for _, e := range entries {
		outline.Items = append(outline.Items, e.outlineItem())
	}
	return outline, nil
}

// WatchPaths returns the document directory.
func (c *Connector) WatchPaths() []string {
	doc, err := c.locate()
	if err != nil {
		return []string{c.root}
	}
	return []string{filepath.Join(c.root, filepath.FromSlash(doc.dir))}
}

// Close releases resources.
func (c *Connector) Close() error {
	return nil
}

// document is one .doorstop.yml found under the root.
type document struct {
	dir    string
	prefix string
	parent string
}

type settings struct {
	Settings struct {
		Prefix string `yaml:"prefix"`
		Parent string `yaml:"parent"`
	} `yaml:"settings"`
}

// locate finds the document to read under the root.
func (c *Connector) locate() (document, error) {
	fsys := os.DirFS(c.root)
	matches, err := doublestar.Glob(fsys, "**/"+settingsFile)
	if err != nil {
		return document{}, fmt.Errorf("finding documents: %w", err)
	}
	sort.Strings(matches)

	var roots []document
	for _, m := range matches {
		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			return document{}, fmt.Errorf("reading %s: %w", m, err)
		}
		var s settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return document{}, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, m, err)
		}
		doc := document{dir: path.Dir(m), prefix: s.Settings.Prefix, parent: s.Settings.Parent}

		if c.prefix != "" {
			if doc.prefix == c.prefix {
				return doc, nil
			}
			continue
		}
		if doc.parent == "" {
			roots = append(roots, doc)
		}
	}

	if c.prefix != "" {
		return document{}, fmt.Errorf("doorstop document %q: %w", c.prefix, domain.ErrNotFound)
	}
	if len(roots) == 0 {
		return document{}, fmt.Errorf("doorstop document under %s: %w", c.root, domain.ErrNotFound)
	}
	return roots[0], nil
}

// item is the subset of a Doorstop item file that becomes a requirement.
type item struct {
	Active    *bool     `yaml:"active"`
	Header    string    `yaml:"header"`
	Level     yaml.Node `yaml:"level"`
	Normative *bool     `yaml:"normative"`
	Text      string    `yaml:"text"`
}

// entry is a parsed item ready for ordering.
type entry struct {
	uid     string
	header  string
	text    string
	level   []int
	heading bool
	origin  string
}

// readItem parses one item file. ok is false for inactive items.
func readItem(fsys fs.FS, name string) (entry, bool, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return entry{}, false, err
	}

	var it item
	if err := yaml.Unmarshal(data, &it); err != nil {
		return entry{}, false, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if it.Active != nil && !*it.Active {
		return entry{}, false, nil
	}

	// The raw scalar keeps "1.10" distinct from "1.1".
	level, err := parseLevel(it.Level.Value)
	if err != nil {
		return entry{}, false, err
	}

	e := entry{
		uid:    strings.TrimSuffix(name, path.Ext(name)),
		header: strings.TrimSpace(it.Header),
		text:   it.Text,
		level:  level,
	}
	// Files written before the normative field existed mark headings by level alone.
	if headingLevel(level) {
		e.heading = it.Normative == nil || !*it.Normative
	}
	return e, true, nil
}

// parseLevel splits a dotted level into its numeric parts.
// An unset level sorts as "1".
func parseLevel(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int{1}, nil
	}

	parts := strings.Split(raw, ".")
	level := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: level %q", domain.ErrInvalidInput, raw)
		}
		level[i] = n
	}
	return level, nil
}

func (e entry) less(o entry) bool {
	for i := 0; i < len(e.level) && i < len(o.level); i++ {
		if e.level[i] != o.level[i] {
			return e.level[i] < o.level[i]
		}
	}
	if len(e.level) != len(o.level) {
		return len(e.level) < len(o.level)
	}
	return e.uid < o.uid
}

// headingLevel reports whether level ends in the ".0" heading marker.
func headingLevel(level []int) bool {
	n := len(level)
	return n > 1 && level[n-1] == 0
}

// depth is the number of level parts below the top, ignoring the heading marker.
func (e entry) depth() int {
	n := len(e.level)
	if headingLevel(e.level) {
		n--
	}
	return n - 1
}

func (e entry) outlineItem() domain.OutlineItem {
	title, text := e.header, e.text

	// Older heading items carry their title on the first line of text.
	if title == "" && e.heading {
		first, rest, _ := strings.Cut(strings.TrimSpace(text), "\n")
		title, text = strings.TrimSpace(first), rest
	}
	if title == "" {
		title = e.uid
	}

	return domain.OutlineItem{
		ID:     e.uid,
		Title:  title,
		Text:   text,
		Depth:  e.depth(),
		Origin: e.origin,
	}
}
