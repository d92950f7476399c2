package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// ConnectorType is the source type served by Connector.
const ConnectorType = "memory"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector is an in-memory requirement source, used by tests and by
// callers that assemble an outline programmatically.
type Connector struct {
	mu      sync.RWMutex
	outline domain.Outline
	loadErr error
	closed  bool
}

// NewConnector creates a connector that serves outline.
func NewConnector(outline domain.Outline) *Connector {
	return &Connector{outline: outline}
}

// SetOutline replaces the outline returned by Load.
func (c *Connector) SetOutline(outline domain.Outline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outline = outline
}

// FailWith makes subsequent loads return err.
func (c *Connector) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadErr = err
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Validate always succeeds for an open connector.
func (c *Connector) Validate(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return fmt.Errorf("memory connector is closed")
	}
	return nil
}

// Load returns a copy of the stored outline.
func (c *Connector) Load(ctx context.Context) (*domain.Outline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	return &domain.Outline{
		Name:  c.outline.Name,
		Items: append([]domain.OutlineItem(nil), c.outline.Items...),
	}, nil
}

// WatchPaths returns nothing; memory sources cannot be watched.
func (c *Connector) WatchPaths() []string {
	return nil
}

// Close marks the connector closed.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
