package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() Header {
	return Header{
		Identifier:   "DOC-1",
		CreationTime: testStamp,
		RepositoryID: "repo-1",
		ReqIFToolID:  "reqif",
		SourceToolID: "Doorstop",
		Title:        "T",
	}
}

func mustRequirement(t *testing.T, reg *TypeRegistry, id string) Requirement {
	t.Helper()
	req, err := NewRequirement(id, testStamp, "Title "+id, "Text "+id, reg)
	require.NoError(t, err)
	return req
}

func TestNewDocument_DefaultsVersion(t *testing.T) {
	doc := NewDocument(testHeader(), NewTypeRegistry(testStamp))

	assert.Equal(t, FormatVersion, doc.Header().ReqIFVersion)
	assert.Equal(t, "DOC-1", doc.Header().Identifier)
	assert.NotNil(t, doc.Registry())
	assert.Empty(t, doc.Requirements())
	assert.Empty(t, doc.Specifications())
}

func TestNewDocument_KeepsExplicitVersion(t *testing.T) {
	h := testHeader()
	h.ReqIFVersion = "1.2"

	doc := NewDocument(h, NewTypeRegistry(testStamp))

	assert.Equal(t, "1.2", doc.Header().ReqIFVersion)
}

func TestDocument_AddRequirementPreservesOrder(t *testing.T) {
	reg := NewTypeRegistry(testStamp)
	doc := NewDocument(testHeader(), reg)

	require.NoError(t, doc.AddRequirement(mustRequirement(t, reg, "REQS-1")))
	require.NoError(t, doc.AddRequirement(mustRequirement(t, reg, "REQS-2")))

	reqs := doc.Requirements()
	require.Len(t, reqs, 2)
	assert.Equal(t, "REQS-1", reqs[0].Identifier())
	assert.Equal(t, "REQS-2", reqs[1].Identifier())

	found, err := doc.Requirement("REQS-2")
	require.NoError(t, err)
	assert.Equal(t, "Title REQS-2", found.LongName())

	_, err = doc.Requirement("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocument_RejectsDuplicateIdentifiers(t *testing.T) {
	reg := NewTypeRegistry(testStamp)
	doc := NewDocument(testHeader(), reg)
	require.NoError(t, doc.AddRequirement(mustRequirement(t, reg, "R-1")))

	tests := []struct {
		name string
		add  func() error
	}{
		{"requirement twice", func() error { return doc.AddRequirement(mustRequirement(t, reg, "R-1")) }},
		{"header id", func() error { return doc.AddRequirement(mustRequirement(t, reg, "DOC-1")) }},
		{"catalogue id", func() error { return doc.AddRequirement(mustRequirement(t, reg, RequirementTypeID)) }},
		{"specification reuses requirement id", func() error {
			spec, err := NewSpecification("R-1", testStamp, "Spec", reg)
			require.NoError(t, err)
			return doc.AddSpecification(spec)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.add(), ErrDuplicateIdentifier)
		})
	}
	assert.Len(t, doc.Requirements(), 1)
	assert.Empty(t, doc.Specifications())
}

func TestDocument_RejectsZeroValues(t *testing.T) {
	doc := NewDocument(testHeader(), NewTypeRegistry(testStamp))

	assert.ErrorIs(t, doc.AddRequirement(Requirement{}), ErrInvalidInput)
	assert.ErrorIs(t, doc.AddSpecification(nil), ErrInvalidInput)
	assert.ErrorIs(t, doc.AddSpecification(&Specification{}), ErrInvalidInput)
}

func TestNewSpecification(t *testing.T) {
	reg := NewTypeRegistry(testStamp)

	spec, err := NewSpecification("REQS", testStamp, "Project User Requirements", reg)

	require.NoError(t, err)
	assert.Equal(t, "REQS", spec.Identifier())
	assert.Equal(t, testStamp, spec.LastChange())
	assert.Equal(t, "Project User Requirements", spec.LongName())
	assert.Equal(t, ModuleSpecificationID, spec.TypeRef())
	assert.Equal(t, 0, spec.Hierarchy().Len())

	_, err = NewSpecification("", testStamp, "Name", reg)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewSpecification("S", testStamp, " ", reg)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewSpecification("S", testStamp, "Name", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDocument_ValidateAcceptsConsistentDocument(t *testing.T) {
	reg := NewTypeRegistry(testStamp)
	doc := NewDocument(testHeader(), reg)
	require.NoError(t, doc.AddRequirement(mustRequirement(t, reg, "REQS-1")))
	require.NoError(t, doc.AddRequirement(mustRequirement(t, reg, "REQS-2")))

	spec, err := NewSpecification("REQS", testStamp, "Spec", reg)
	require.NoError(t, err)
	require.NoError(t, spec.Insert(NewHierarchyNode("h1", testStamp, "REQS-1"), 0))
	require.NoError(t, spec.Insert(NewHierarchyNode("h2", testStamp, "REQS-2"), 1))
	require.NoError(t, doc.AddSpecification(spec))

	assert.NoError(t, doc.Validate())
}

func TestDocument_ValidateReportsDanglingReference(t *testing.T) {
	reg := NewTypeRegistry(testStamp)
	doc := NewDocument(testHeader(), reg)
	require.NoError(t, doc.AddRequirement(mustRequirement(t, reg, "REQS-1")))

	spec, err := NewSpecification("REQS", testStamp, "Spec", reg)
	require.NoError(t, err)
	require.NoError(t, spec.Insert(NewHierarchyNode("h1", testStamp, "REQS-9"), 0))
	require.NoError(t, doc.AddSpecification(spec))

	err = doc.Validate()
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.Contains(t, err.Error(), "REQS-9")
}

func TestDocument_ValidateReportsDuplicateNodeIDs(t *testing.T) {
	reg := NewTypeRegistry(testStamp)
	doc := NewDocument(testHeader(), reg)
	require.NoError(t, doc.AddRequirement(mustRequirement(t, reg, "REQS-1")))

	spec, err := NewSpecification("REQS", testStamp, "Spec", reg)
	require.NoError(t, err)
	require.NoError(t, spec.Insert(NewHierarchyNode("h1", testStamp, "REQS-1"), 0))
	require.NoError(t, spec.Insert(NewHierarchyNode("h1", testStamp, "REQS-1"), 0))
	require.NoError(t, spec.Insert(NewHierarchyNode("REQS-1", testStamp, "REQS-1"), 0))
	require.NoError(t, doc.AddSpecification(spec))

	err = doc.Validate()
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)
	assert.Contains(t, err.Error(), `"h1"`)
	assert.Contains(t, err.Error(), `"REQS-1"`)
}

func TestDocument_ValidateReportsEmptyHeaderIdentifier(t *testing.T) {
	h := testHeader()
	h.Identifier = ""

	err := NewDocument(h, NewTypeRegistry(testStamp)).Validate()

	assert.ErrorIs(t, err, ErrInvalidInput)
}
