// Package file provides file-backed configuration for the reqif CLI.
//
// Settings are stored in reqif.toml. Nested tables are exposed as
// dot-notation keys ("header.title") and written back as tables.
package file
