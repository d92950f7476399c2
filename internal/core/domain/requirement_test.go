package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequirement(t *testing.T) {
	reg := NewTypeRegistry(testStamp)

	req, err := NewRequirement("REQS-1", testStamp, "First requirement", "The system shall start.", reg)

	require.NoError(t, err)
	assert.Equal(t, "REQS-1", req.Identifier())
	assert.Equal(t, testStamp, req.LastChange())
	assert.Equal(t, "First requirement", req.LongName())
	assert.Equal(t, RequirementTypeID, req.TypeRef())
	assert.Equal(t, "The system shall start.", req.Text())

	values := req.Values()
	require.Len(t, values, 2)
	assert.Equal(t, ExternalIDAttributeID, values[0].DefinitionRef)
	assert.Equal(t, "REQS-1", values[0].Value.Text)
	assert.Equal(t, TextAttributeID, values[1].DefinitionRef)
	assert.Equal(t, "The system shall start.", values[1].Value.Text)
}

func TestNewRequirement_InvalidInput(t *testing.T) {
	reg := NewTypeRegistry(testStamp)

	tests := []struct {
		name string
		id   string
		long string
		reg  *TypeRegistry
	}{
		{"empty id", "", "Name", reg},
		{"blank id", "   ", "Name", reg},
		{"empty name", "R-1", "", reg},
		{"nil registry", "R-1", "Name", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequirement(tt.id, testStamp, tt.long, "text", tt.reg)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNewRichRequirement_Markup(t *testing.T) {
	reg := NewTypeRegistry(testStamp)
	body := XHTMLValue{Markup: []MarkupNode{
		{Element: "p", Children: []MarkupNode{
			{Text: "Shall be "},
			{Element: "strong", Children: []MarkupNode{{Text: "fast"}}},
			{Text: "."},
		}},
	}}

	req, err := NewRichRequirement("R-1", testStamp, "Speed", body, reg)

	require.NoError(t, err)
	assert.True(t, req.Values()[1].Value.IsMarkup())
	assert.False(t, req.Values()[0].Value.IsMarkup())
	assert.Equal(t, "Shall be fast.", req.Text())
}

func TestRequirement_ValuesReturnsCopy(t *testing.T) {
	req, err := NewRequirement("R-1", testStamp, "Name", "text", NewTypeRegistry(testStamp))
	require.NoError(t, err)

	values := req.Values()
	values[0].DefinitionRef = "tampered"

	assert.Equal(t, ExternalIDAttributeID, req.Values()[0].DefinitionRef)
}
