package markdown

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reqif-cli/internal/logger"
)

const sample = `Preamble before the first heading.

# Overview {#OV}

Intro para.

## Start

The system shall **start**.

` + "```sh\n# not a heading\n```" + `

Setext Title
------------

Body of setext.

### Deep
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNew(t *testing.T) {
	c := New("reqs.md")

	assert.Equal(t, DefaultPrefix, c.prefix)
	assert.Equal(t, DefaultInclude, c.include)
	assert.Equal(t, ConnectorType, c.Type())

	c = New("reqs.md", WithPrefix("SYS"), WithInclude("*.markdown"))
	assert.Equal(t, "SYS", c.prefix)
	assert.Equal(t, "*.markdown", c.include)

	var _ driven.Connector = c
}

func TestConnector_Load_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.md")
	writeFile(t, path, sample)

	outline, err := New(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "system", outline.Name)
	require.Len(t, outline.Items, 4)

	overview := outline.Items[0]
	assert.Equal(t, "OV", overview.ID)
	assert.Equal(t, "Overview", overview.Title)
	assert.Equal(t, "Intro para.", overview.Text)
	assert.Equal(t, 0, overview.Depth)
	assert.Equal(t, "system.md:3", overview.Origin)

	start := outline.Items[1]
	assert.Equal(t, "REQ-2", start.ID)
	assert.Equal(t, "Start", start.Title)
	assert.Equal(t, "The system shall **start**.\n\n```sh\n# not a heading\n```", start.Text)
	assert.Equal(t, 1, start.Depth)

	setext := outline.Items[2]
	assert.Equal(t, "REQ-3", setext.ID)
	assert.Equal(t, "Setext Title", setext.Title)
	assert.Equal(t, "Body of setext.", setext.Text)
	assert.Equal(t, 1, setext.Depth)

	deep := outline.Items[3]
	assert.Equal(t, "REQ-4", deep.ID)
	assert.Equal(t, "", deep.Text)
	assert.Equal(t, 2, deep.Depth)
}

func TestConnector_Load_InlineTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inline.md")
	writeFile(t, path, "# The `run` *command*\n\nText.\n")

	outline, err := New(path, WithPrefix("CMD")).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, outline.Items, 1)
	assert.Equal(t, "CMD-1", outline.Items[0].ID)
	assert.Equal(t, "The run command", outline.Items[0].Title)
}

func TestConnector_Load_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "# Second\n")
	writeFile(t, filepath.Join(dir, "a.md"), "# First\n")
	writeFile(t, filepath.Join(dir, "nested", "c.md"), "# Third\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "# Ignored\n")

	outline, err := New(dir).Load(context.Background())
	require.NoError(t, err)

	var titles, ids, origins []string
	for _, it := range outline.Items {
		titles = append(titles, it.Title)
		ids = append(ids, it.ID)
		origins = append(origins, it.Origin)
	}
	assert.Equal(t, []string{"First", "Second", "Third"}, titles)
	assert.Equal(t, []string{"REQ-1", "REQ-2", "REQ-3"}, ids)
	assert.Equal(t, []string{"a.md:1", "b.md:1", "nested/c.md:1"}, origins)
}

func TestConnector_Load_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.md")).Load(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad include pattern", func(t *testing.T) {
		_, err := New(t.TempDir(), WithInclude("[")).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x.md")
		writeFile(t, path, "# X\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(path).Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// captureLog routes verbose log output to a buffer for the duration of a test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})
	return &buf
}

func TestConnector_Load_WarnsOnTextOutsideRequirements(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), sample)
	writeFile(t, filepath.Join(dir, "b.md"), "Notes only, no headings.\n")
	writeFile(t, filepath.Join(dir, "c.md"), "\n\n# Clean {#C}\n\nBody.\n")
	logs := captureLog(t)

	outline, err := New(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "a.md: text before the first heading is not part of any requirement")
	assert.Contains(t, logs.String(), "b.md: no headings, file contributes no requirements")
	assert.NotContains(t, logs.String(), "c.md")

	for _, item := range outline.Items {
		assert.NotContains(t, item.Text, "Preamble")
	}
}

func TestConnector_Validate(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, New(dir).Validate(context.Background()))
	assert.ErrorIs(t, New(filepath.Join(dir, "nope")).Validate(context.Background()), os.ErrNotExist)
	assert.ErrorIs(t, New(dir, WithInclude("[")).Validate(context.Background()), domain.ErrInvalidInput)
}

func TestConnector_WatchPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "reqs.md")
	writeFile(t, file, "# R\n")

	assert.Equal(t, []string{dir}, New(dir).WatchPaths())
	assert.Equal(t, []string{dir}, New(file).WatchPaths())
}
