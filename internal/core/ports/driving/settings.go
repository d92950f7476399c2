package driving

import "github.com/custodia-labs/reqif-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults applied
	// for every key the configuration does not set.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for a known key and persists it.
	// Returns ErrInvalidInput for unknown keys or unparsable values.
	Set(key, value string) error

	// Unset removes a stored key so its default applies again.
	// Returns ErrInvalidInput for unknown keys.
	Unset(key string) error

	// Entries returns every known key with its effective value.
	Entries() []SettingEntry

	// Validate checks that settings can drive an export.
	Validate(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}

// SettingEntry is one key/value pair shown by `reqif config show`.
type SettingEntry struct {
	Key   string
	Value string

	// Default is true when the value comes from the defaults.
	Default bool
}
