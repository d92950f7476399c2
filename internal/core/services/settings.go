package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyHeaderID         = "header.identifier"
	keyHeaderRepository = "header.repository_id"
	keyHeaderTool       = "header.tool_id"
	keyHeaderSourceTool = "header.source_tool_id"
	keyHeaderTitle      = "header.title"
	keySpecID           = "specification.identifier"
	keySpecName         = "specification.name"
	keySourceType       = "source.type"
	keySourcePath       = "source.path"
	keyTextFormat       = "text.format"
	keyOutputPath       = "output.path"
	keyOutputIndent     = "output.indent"
	keyStrict           = "validation.strict"
	keyProcessors       = "pipeline.processors"
	keyFixedClock       = "clock.fixed"

	sourceOptionPrefix   = "source."
	pipelineOptionPrefix = "pipeline."
)

// knownKeys lists the settings keys in display order.
var knownKeys = []string{
	keyHeaderID,
	keyHeaderRepository,
	keyHeaderTool,
	keyHeaderSourceTool,
	keyHeaderTitle,
	keySpecID,
	keySpecName,
	keySourceType,
	keySourcePath,
	keyTextFormat,
	keyOutputPath,
	keyOutputIndent,
	keyStrict,
	keyProcessors,
	keyFixedClock,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Header: domain.HeaderSettings{
			Identifier:   s.configStore.GetString(keyHeaderID), // No default - derived at export time
			RepositoryID: s.getString(keyHeaderRepository, defaults.Header.RepositoryID),
			ToolID:       s.getString(keyHeaderTool, defaults.Header.ToolID),
			SourceToolID: s.getString(keyHeaderSourceTool, defaults.Header.SourceToolID),
			Title:        s.getString(keyHeaderTitle, defaults.Header.Title),
		},
		Specification: domain.SpecificationSettings{
			Identifier: s.getString(keySpecID, defaults.Specification.Identifier),
			Name:       s.getString(keySpecName, defaults.Specification.Name),
		},
		Source: domain.Source{
			Type:   s.getString(keySourceType, defaults.Source.Type),
			Path:   s.getString(keySourcePath, defaults.Source.Path),
			Config: s.sourceOptions(),
		},
		TextFormat: s.getTextFormat(defaults.TextFormat),
		Output: domain.OutputSettings{
			Path:   s.getString(keyOutputPath, defaults.Output.Path),
			Indent: s.getBool(keyOutputIndent, defaults.Output.Indent),
		},
		Strict:           s.getBool(keyStrict, defaults.Strict),
		Processors:       defaults.Processors,
		ProcessorConfigs: s.processorConfigs(),
		FixedClock:       s.configStore.GetString(keyFixedClock),
	}

	if _, exists := s.configStore.Get(keyProcessors); exists {
		settings.Processors = s.configStore.GetStringSlice(keyProcessors)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyHeaderID, settings.Header.Identifier},
		{keyHeaderRepository, settings.Header.RepositoryID},
		{keyHeaderTool, settings.Header.ToolID},
		{keyHeaderSourceTool, settings.Header.SourceToolID},
		{keyHeaderTitle, settings.Header.Title},
		{keySpecID, settings.Specification.Identifier},
		{keySpecName, settings.Specification.Name},
		{keySourceType, settings.Source.Type},
		{keySourcePath, settings.Source.Path},
		{keyTextFormat, settings.TextFormat.String()},
		{keyOutputPath, settings.Output.Path},
		{keyOutputIndent, settings.Output.Indent},
		{keyStrict, settings.Strict},
		{keyProcessors, append([]string{}, settings.Processors...)},
		{keyFixedClock, settings.FixedClock},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	for name, cfg := range settings.ProcessorConfigs {
		for opt, value := range cfg {
			key := pipelineOptionPrefix + name + "." + opt
			if err := s.configStore.Set(key, value); err != nil {
				return fmt.Errorf("save %s: %w", key, err)
			}
		}
	}

	for name, value := range settings.Source.Config {
		if err := s.configStore.Set(sourceOptionPrefix+name, value); err != nil {
			return fmt.Errorf("save %s%s: %w", sourceOptionPrefix, name, err)
		}
	}

	return nil
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	var parsed any = value

	switch key {
	case keyOutputIndent, keyStrict:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = b
	case keyProcessors:
		parsed = splitList(value)
	case keyTextFormat:
		if !domain.TextFormat(value).IsValid() {
			return fmt.Errorf("%w: unknown text format %q", domain.ErrInvalidInput, value)
		}
	case keyFixedClock:
		if value != "" {
			if _, err := time.Parse(time.RFC3339, value); err != nil {
				return fmt.Errorf("%w: %s must be an RFC3339 timestamp: %w", domain.ErrInvalidInput, key, err)
			}
		}
	default:
		if _, _, ok := splitProcessorOption(key); ok {
			parsed = parseScalar(value)
			break
		}
		if !isKnownKey(key) && !isSourceOption(key) {
			return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
		}
	}

	return s.configStore.Set(key, parsed)
}

// Unset removes a stored key.
func (s *SettingsService) Unset(key string) error {
	if _, _, ok := splitProcessorOption(key); !ok && !isKnownKey(key) && !isSourceOption(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Entries returns every known key with its effective value.
func (s *SettingsService) Entries() []driving.SettingEntry {
	settings, _ := s.Get()

	values := map[string]string{
		keyHeaderID:         settings.Header.Identifier,
		keyHeaderRepository: settings.Header.RepositoryID,
		keyHeaderTool:       settings.Header.ToolID,
		keyHeaderSourceTool: settings.Header.SourceToolID,
		keyHeaderTitle:      settings.Header.Title,
		keySpecID:           settings.Specification.Identifier,
		keySpecName:         settings.Specification.Name,
		keySourceType:       settings.Source.Type,
		keySourcePath:       settings.Source.Path,
		keyTextFormat:       settings.TextFormat.String(),
		keyOutputPath:       settings.Output.Path,
		keyOutputIndent:     strconv.FormatBool(settings.Output.Indent),
		keyStrict:           strconv.FormatBool(settings.Strict),
		keyProcessors:       strings.Join(settings.Processors, ","),
		keyFixedClock:       settings.FixedClock,
	}

	entries := make([]driving.SettingEntry, 0, len(knownKeys)+len(settings.Source.Config))
	for _, key := range knownKeys {
		_, exists := s.configStore.Get(key)
		entries = append(entries, driving.SettingEntry{Key: key, Value: values[key], Default: !exists})
	}

	names := make([]string, 0, len(settings.Source.Config))
	for name := range settings.Source.Config {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entries = append(entries, driving.SettingEntry{Key: sourceOptionPrefix + name, Value: settings.Source.Config[name]})
	}

	return entries
}

// Validate checks that settings can drive an export.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: no settings", domain.ErrInvalidInput)
	}
	if !settings.TextFormat.IsValid() {
		return fmt.Errorf("%w: invalid text format: %s", domain.ErrInvalidInput, settings.TextFormat)
	}
	if strings.TrimSpace(settings.Source.Type) == "" {
		return fmt.Errorf("%w: source type is not set", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(settings.Source.Path) == "" {
		return fmt.Errorf("%w: source path is not set", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(settings.Specification.Identifier) == "" {
		return fmt.Errorf("%w: specification identifier is not set", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(settings.Specification.Name) == "" {
		return fmt.Errorf("%w: specification name is not set", domain.ErrInvalidInput)
	}
	if settings.FixedClock != "" {
		if _, err := time.Parse(time.RFC3339, settings.FixedClock); err != nil {
			return fmt.Errorf("%w: clock.fixed must be an RFC3339 timestamp: %w", domain.ErrInvalidInput, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getTextFormat(defaultVal domain.TextFormat) domain.TextFormat {
	val := s.configStore.GetString(keyTextFormat)
	if val == "" {
		return defaultVal
	}
	format := domain.TextFormat(val)
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

// sourceOptions collects connector options stored under source.* other
// than the source type and path.
func (s *SettingsService) sourceOptions() map[string]string {
	opts := make(map[string]string)
	for _, key := range s.configStore.Keys() {
		if !isSourceOption(key) {
			continue
		}
		if val := s.configStore.GetString(key); val != "" {
			opts[strings.TrimPrefix(key, sourceOptionPrefix)] = val
		}
	}
	return opts
}

// processorConfigs collects pipeline.<processor>.<option> keys.
func (s *SettingsService) processorConfigs() map[string]map[string]any {
	var cfgs map[string]map[string]any
	for _, key := range s.configStore.Keys() {
		name, opt, ok := splitProcessorOption(key)
		if !ok {
			continue
		}
		val, _ := s.configStore.Get(key)
		if cfgs == nil {
			cfgs = make(map[string]map[string]any)
		}
		if cfgs[name] == nil {
			cfgs[name] = make(map[string]any)
		}
		cfgs[name][opt] = val
	}
	return cfgs
}

// splitProcessorOption splits "pipeline.depth-clamp.max_depth" into
// processor and option names.
func splitProcessorOption(key string) (name, opt string, ok bool) {
	if key == keyProcessors || !strings.HasPrefix(key, pipelineOptionPrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(key, pipelineOptionPrefix)
	name, opt, ok = strings.Cut(rest, ".")
	if !ok || name == "" || opt == "" {
		return "", "", false
	}
	return name, opt, true
}

// parseScalar turns a command-line value into a bool, int or string.
func parseScalar(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func isKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func isSourceOption(key string) bool {
	return strings.HasPrefix(key, sourceOptionPrefix) &&
		key != keySourceType && key != keySourcePath &&
		len(key) > len(sourceOptionPrefix)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
