package domain

const unknownDescription = "Unknown"

// TextFormat identifies how requirement text is written in a source.
type TextFormat string

const (
	// TextFormatPlain treats requirement text as literal characters.
	TextFormatPlain TextFormat = "plain"

	// TextFormatMarkdown renders requirement text to XHTML markup.
	TextFormatMarkdown TextFormat = "markdown"
)

// IsValid checks if the text format is a known value.
func (f TextFormat) IsValid() bool {
	switch f {
	case TextFormatPlain, TextFormatMarkdown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f TextFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f TextFormat) Description() string {
	switch f {
	case TextFormatPlain:
		return "Plain text (escaped, no markup)"
	case TextFormatMarkdown:
		return "Markdown (rendered to XHTML elements)"
	default:
		return unknownDescription
	}
}

// AllTextFormats returns all available text formats.
func AllTextFormats() []TextFormat {
	return []TextFormat{
		TextFormatPlain,
		TextFormatMarkdown,
	}
}

// HeaderSettings holds the document header values written into THE-HEADER.
type HeaderSettings struct {
	// Identifier is the document identifier. Empty means derive one
	// deterministically from the specification identifier.
	Identifier   string
	RepositoryID string
	ToolID       string
	SourceToolID string
	Title        string
}

// SpecificationSettings names the single specification built per export.
type SpecificationSettings struct {
	Identifier string
	Name       string
}

// OutputSettings controls where and how the document is written.
type OutputSettings struct {
	// Path is the destination file. A ".reqifz" suffix produces an archive.
	Path string

	// Indent pretty-prints the XML.
	Indent bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Header        HeaderSettings
	Specification SpecificationSettings

	// Source is the requirement source to read.
	Source Source

	// TextFormat is the format of requirement text in the source.
	TextFormat TextFormat

	Output OutputSettings

	// Strict runs full document validation before serializing.
	Strict bool

	// Processors is the ordered list of outline post-processors.
	Processors []string

	// ProcessorConfigs holds per-processor options keyed by processor name.
	ProcessorConfigs map[string]map[string]any

	// FixedClock pins every timestamp when non-empty.
	FixedClock string
}

// ProcessorConfig returns options for a processor, or nil if none are set.
func (s *AppSettings) ProcessorConfig(name string) map[string]any {
	if s.ProcessorConfigs == nil {
		return nil
	}
	return s.ProcessorConfigs[name]
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Header: HeaderSettings{
			RepositoryID: "reqif",
			ToolID:       "reqif",
			SourceToolID: "doorstop",
			Title:        "Requirements",
		},
		Specification: SpecificationSettings{
			Identifier: "SPEC-1",
			Name:       "Requirements",
		},
		Source: Source{
			Type: "doorstop",
			Path: ".",
		},
		TextFormat: TextFormatPlain,
		Output: OutputSettings{
			Path:   "requirements.reqif",
			Indent: true,
		},
		Strict:     true,
		Processors: []string{"depth-clamp", "trim-text"},
	}
}
