package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

// nameKey is the metadata key holding the outline name.
const nameKey = "name"

// Store is an SQLite database holding one requirement outline.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at path and applies
// pending migrations.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenReadOnly opens an existing database for reading. The file is neither
// created nor migrated, and its journal mode is left as it is.
// A database whose schema is not the current one is rejected.
func OpenReadOnly(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	dsn := url.URL{
		Scheme:   "file",
		Path:     slashed,
		RawQuery: "mode=ro&_pragma=busy_timeout(5000)&_pragma=query_only(1)",
	}

	db, err := sql.Open("sqlite", dsn.String())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db, path: path}

	want, err := latestVersion(migrations.FS)
	if err != nil {
		db.Close()
		return nil, err
	}
	got, err := s.SchemaVersion(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s is not a requirements database: %v", domain.ErrInvalidInput, path, err)
	}
	if got != want {
		db.Close()
		return nil, fmt.Errorf("%w: %s has schema version %d, expected %d", domain.ErrInvalidInput, path, got, want)
	}

	return s, nil
}

// latestVersion returns the highest migration version in fsys.
func latestVersion(fsys fs.FS) (int, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, fmt.Errorf("reading migrations directory: %w", err)
	}

	latest := 0
	for _, entry := range entries {
		var version int
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			continue
		}
		latest = max(latest, version)
	}
	return latest, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_requirements.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ReplaceOutline stores outline, replacing whatever the database held.
// The items keep their order through the position column.
func (s *Store) ReplaceOutline(ctx context.Context, outline *domain.Outline) error {
	if outline == nil {
		return fmt.Errorf("%w: nil outline", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM requirements"); err != nil {
		return fmt.Errorf("clearing requirements: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO requirements (uid, title, body, depth, position, last_change)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range outline.Items {
		if _, err := stmt.ExecContext(ctx, item.ID, item.Title, item.Text, item.Depth, i, item.LastChange); err != nil {
			return fmt.Errorf("saving requirement %s: %w", item.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, nameKey, outline.Name)
	if err != nil {
		return fmt.Errorf("saving outline name: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing outline: %w", err)
	}
	return nil
}

// Outline reads the stored outline in position order.
func (s *Store) Outline(ctx context.Context) (*domain.Outline, error) {
	outline := &domain.Outline{}

	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", nameKey).Scan(&outline.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading outline name: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT uid, title, body, depth, position, last_change
		FROM requirements
		ORDER BY position, uid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying requirements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item     domain.OutlineItem
			position int
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Text, &item.Depth, &position, &item.LastChange); err != nil {
			return nil, fmt.Errorf("scanning requirement: %w", err)
		}
		item.Origin = fmt.Sprintf("%s#%d", filepath.Base(s.path), position)
		outline.Items = append(outline.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requirements: %w", err)
	}

	return outline, nil
}
