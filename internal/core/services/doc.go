// Package services implements the driving port interfaces.
//
// ExportService drives a requirement source through the outline pipeline
// into a domain.Document and hands the rendered bytes to a sink.
// SettingsService maps reqif.toml keys onto domain.AppSettings.
//
// Services only see driven ports; adapters are injected by the caller.
package services
