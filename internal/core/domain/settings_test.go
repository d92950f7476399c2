package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTextFormat_IsValid tests valid and invalid text formats
func TestTextFormat_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		format   TextFormat
		expected bool
	}{
		{
			name:     "plain is valid",
			format:   TextFormatPlain,
			expected: true,
		},
		{
			name:     "markdown is valid",
			format:   TextFormatMarkdown,
			expected: true,
		},
		{
			name:     "empty string is invalid",
			format:   TextFormat(""),
			expected: false,
		},
		{
			name:     "html is invalid",
			format:   TextFormat("html"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.IsValid())
		})
	}
}

// TestTextFormat_Description tests descriptions for known and unknown formats
func TestTextFormat_Description(t *testing.T) {
	assert.Contains(t, TextFormatPlain.Description(), "Plain")
	assert.Contains(t, TextFormatMarkdown.Description(), "Markdown")
	assert.Equal(t, unknownDescription, TextFormat("rst").Description())
	assert.Equal(t, "markdown", TextFormatMarkdown.String())
}

// TestAllTextFormats tests that every listed format is valid
func TestAllTextFormats(t *testing.T) {
	formats := AllTextFormats()
	assert.Len(t, formats, 2)
	for _, f := range formats {
		assert.True(t, f.IsValid(), "format %q", f)
	}
}

// TestDefaultAppSettings tests the default configuration
func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, TextFormatPlain, s.TextFormat)
	assert.True(t, s.Strict)
	assert.True(t, s.Output.Indent)
	assert.Equal(t, "requirements.reqif", s.Output.Path)
	assert.Equal(t, "doorstop", s.Source.Type)
	assert.Empty(t, s.Header.Identifier, "identifier is derived at export time")
	assert.NotEmpty(t, s.Specification.Identifier)
	assert.NotEmpty(t, s.Specification.Name)
	assert.Empty(t, s.FixedClock)
}
