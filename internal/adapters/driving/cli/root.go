// Package cli implements the reqif command line.
//
// Commands call the core through the driving ports held in package
// variables. Execute wires them for the selected configuration directory
// before any command runs; tests assign them directly.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driving"
	"github.com/custodia-labs/reqif-cli/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Services holds the core services the commands call.
type Services struct {
	Export   driving.ExportService
	Settings driving.SettingsService
}

// ServiceBuilder wires services for a configuration directory.
type ServiceBuilder func(configDir string) (*Services, error)

var (
	buildServices   ServiceBuilder
	exportService   driving.ExportService
	settingsService driving.SettingsService
)

// Persistent flag values.
var (
	verbose    bool
	configDir  string
	sourcePath string
	sourceType string
)

var rootCmd = &cobra.Command{
	Use:   "reqif",
	Short: "Export requirements as ReqIF documents",
	Long: `reqif reads requirements from a Doorstop tree, markdown files or an
SQLite database and writes them as a ReqIF interchange document.

Settings come from reqif.toml in the configuration directory; flags
override them for a single run.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print progress to stderr")
	flags.StringVar(&configDir, "config", "", "Directory holding reqif.toml (default: current directory)")
	flags.StringVarP(&sourcePath, "source", "s", "", "Requirement source path (overrides source.path)")
	flags.StringVarP(&sourceType, "source-type", "t", "", "Requirement source type: doorstop, markdown or sqlite")
}

// Execute wires services with builder and runs the root command.
func Execute(builder ServiceBuilder) error {
	buildServices = builder
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if buildServices == nil {
		return nil
	}
	services, err := buildServices(configDir)
	if err != nil {
		return err
	}
	exportService = services.Export
	settingsService = services.Settings
	return nil
}

// loadSettings returns the stored settings with the persistent flag
// overrides applied.
func loadSettings() (domain.AppSettings, error) {
	if settingsService == nil {
		return domain.AppSettings{}, errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return domain.AppSettings{}, err
	}
	if sourcePath != "" {
		settings.Source.Path = sourcePath
	}
	if sourceType != "" {
		settings.Source.Type = sourceType
	}
	return *settings, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
