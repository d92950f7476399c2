package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := runCLI(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "reqif version test-version-1.0.0 (ReqIF 1.0)")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	out, err := runCLI(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "reqif version dev")
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := runCLI(t, "version", "extra")
	assert.Error(t, err)
}
