package domain

import (
	"fmt"
	"path/filepath"
)

// Source represents a configured requirement source.
// Each source produces an outline via a connector.
type Source struct {
	// Type identifies the connector type (e.g., "doorstop", "sqlite").
	Type string

	// Path is the directory, file or database the connector reads.
	Path string

	// Config contains connector-specific configuration.
	Config map[string]string
}

// DisplayName returns a short human-readable description of the source.
func (s Source) DisplayName() string {
	if s.Path == "" {
		return s.Type
	}
	return fmt.Sprintf("%s (%s)", s.Type, filepath.Base(s.Path))
}

// Option returns a connector-specific option, or def when unset.
func (s Source) Option(key, def string) string {
	if v, ok := s.Config[key]; ok && v != "" {
		return v
	}
	return def
}
