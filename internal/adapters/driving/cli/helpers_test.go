package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/clock"
	filesink "github.com/custodia-labs/reqif-cli/internal/adapters/driven/sink/file"
	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reqif-cli/internal/connectors"
	"github.com/custodia-labs/reqif-cli/internal/core/services"
	"github.com/custodia-labs/reqif-cli/internal/normalisers"
	"github.com/custodia-labs/reqif-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/reqif-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/reqif-cli/internal/postprocessors"
	"github.com/custodia-labs/reqif-cli/internal/reqifxml"
)

const testRequirements = `# Intro

Scope of the system.

## Start {#R-START}

The system shall start.
`

type cliFixture struct {
	sourceDir string
	outDir    string
	output    string
	store     *memory.ConfigStore
}

// setupCLITest wires real services over a markdown source in a temp dir.
// Settings live in an in-memory config store.
func setupCLITest(t *testing.T) *cliFixture {
	t.Helper()

	f := &cliFixture{
		sourceDir: t.TempDir(),
		outDir:    t.TempDir(),
	}
	f.output = filepath.Join(f.outDir, "reqs.reqif")
	require.NoError(t, os.WriteFile(filepath.Join(f.sourceDir, "reqs.md"), []byte(testRequirements), 0o644))

	f.store = memory.NewConfigStore(map[string]any{
		"source.type": "markdown",
		"source.path": f.sourceDir,
		"output.path": f.output,
		"clock.fixed": "2024-05-01T10:00:00Z",
	})

	pipelines := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(pipelines)

	oldExport, oldSettings := exportService, settingsService
	exportService = services.NewExportService(
		connectors.NewDefaultFactory(),
		normalisers.NewRegistry(plaintext.New(), markdown.New()),
		pipelines,
		reqifxml.NewEncoder(reqifxml.DefaultIndent),
		filesink.New(),
		clock.New,
	)
	settingsService = services.NewSettingsService(f.store)

	t.Cleanup(func() {
		exportService, settingsService = oldExport, oldSettings
		resetFlags()
	})
	return f
}

// resetFlags restores flag values and Changed state, which cobra keeps
// across Execute calls.
func resetFlags() {
	sets := []*pflag.FlagSet{rootCmd.PersistentFlags()}
	for _, cmd := range rootCmd.Commands() {
		sets = append(sets, cmd.Flags())
	}
	for _, fs := range sets {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
