// Package connectors provides implementations of the Connector interface
// for the supported requirement sources. Each connector knows how to read
// an ordered outline of requirements from one source type (a Doorstop
// document tree, a markdown file, an SQLite database).
//
// Connectors are registered with the Factory at startup.
package connectors
