// Package sqlite keeps a requirement outline in an SQLite database.
//
// Store writes a processed outline (reqif snapshot) and reads it back;
// Connector exposes a database as a requirement source of type "sqlite".
// The driver is modernc.org/sqlite, so no CGO is needed.
//
// A database holds exactly one outline. Rows in the requirements table
// carry their position in document order, and the metadata table keeps
// the outline name. Schema changes ship as numbered migration pairs in
// migrations/ and are tracked in schema_migrations.
//
// The store opens the database in WAL mode with a busy timeout, so a
// snapshot can run while another process reads the file.
package sqlite
