package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// ConnectorType is the source type for SQLite databases.
const ConnectorType = "sqlite"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector reads the outline stored in an existing database file.
// The database is opened read-only on first load and kept until Close.
type Connector struct {
	path string

	mu    sync.Mutex
	store *Store
}

// NewConnector creates a connector for the database at path.
func NewConnector(path string) *Connector {
	return &Connector{path: path}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Validate checks the database file exists.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.path)
	if err != nil {
		return fmt.Errorf("sqlite source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: sqlite source %s is a directory", domain.ErrInvalidInput, c.path)
	}
	return nil
}

// Load reads the stored outline.
func (c *Connector) Load(ctx context.Context) (*domain.Outline, error) {
	store, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	return store.Outline(ctx)
}

// WatchPaths returns the directory holding the database, since writes
// land in the WAL file next to it.
func (c *Connector) WatchPaths() []string {
	return []string{filepath.Dir(c.path)}
}

// Close releases the database connection if one was opened.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func (c *Connector) open(ctx context.Context) (*Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		return c.store, nil
	}
	// Opening would create an empty database; a source must already exist.
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	store, err := OpenReadOnly(ctx, c.path)
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}
