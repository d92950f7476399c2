package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

func TestConfigCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(configCmd.Commands()))
	for _, cmd := range configCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "show")
	assert.Contains(t, names, "set")
	assert.Contains(t, names, "unset")
	assert.Contains(t, names, "init")
}

func TestConfigShow_MarksDefaults(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "config", "show")
	require.NoError(t, err)

	assert.Regexp(t, `source\.type\s+= markdown\n`, out)
	assert.Regexp(t, `specification\.name\s+= Requirements  \(default\)`, out)
}

func TestConfigSet_StoresValue(t *testing.T) {
	f := setupCLITest(t)

	out, err := runCLI(t, "config", "set", "specification.name", "System")
	require.NoError(t, err)

	assert.Contains(t, out, "specification.name = System")
	assert.Equal(t, "System", f.store.GetString("specification.name"))
}

func TestConfigSet_RejectsUnknownKey(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "config", "set", "search.mode", "hybrid")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet_RequiresTwoArgs(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "config", "set", "output.path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigUnset_RestoresDefault(t *testing.T) {
	f := setupCLITest(t)

	out, err := runCLI(t, "config", "unset", "source.type")
	require.NoError(t, err)
	assert.Contains(t, out, "source.type reset to default")

	_, ok := f.store.Get("source.type")
	assert.False(t, ok)

	out, err = runCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Regexp(t, `source\.type\s+= doorstop  \(default\)`, out)
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	f := setupCLITest(t)

	_, err := runCLI(t, "config", "init")
	require.NoError(t, err)

	assert.Equal(t, "doorstop", f.store.GetString("source.type"))
	assert.Equal(t, "SPEC-1", f.store.GetString("specification.identifier"))
}
