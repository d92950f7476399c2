package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driving"
)

// Export flag values.
var (
	exportOut    string
	exportIndent bool
	exportStdout bool
	exportWatch  bool
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the requirements as a ReqIF document",
	Long: `Load the configured requirement source and write it as a ReqIF document.

The output path decides the container: a .reqifz path is written as a zip
archive holding one .reqif file. An output file that already holds the same
document is left untouched.

With --watch the source is exported again whenever its files change.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	flags := exportCmd.Flags()
	flags.StringVarP(&exportOut, "out", "o", "", "Output file (overrides output.path)")
	flags.BoolVar(&exportIndent, "indent", true, "Pretty-print the XML (overrides output.indent)")
	flags.BoolVar(&exportStdout, "stdout", false, "Write the document to stdout instead of a file")
	flags.BoolVarP(&exportWatch, "watch", "w", false, "Re-export whenever the source changes")
	flags.StringVarP(&exportFormat, "format", "f", "", "Requirement text format: plain or markdown (overrides text.format)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}
	if exportStdout && exportWatch {
		return errors.New("--stdout and --watch cannot be combined")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if exportOut != "" {
		settings.Output.Path = exportOut
	}
	if cmd.Flags().Changed("indent") {
		settings.Output.Indent = exportIndent
	}
	if exportFormat != "" {
		format := domain.TextFormat(exportFormat)
		if !format.IsValid() {
			return fmt.Errorf("%w: unknown text format %q", domain.ErrInvalidInput, exportFormat)
		}
		settings.TextFormat = format
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if exportStdout {
		doc, err := exportService.Build(ctx, settings)
		if err != nil {
			return err
		}
		data, err := exportService.Render(doc, settings.Output.Indent)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	result, err := exportService.Export(ctx, settings)
	if err != nil {
		return err
	}
	printExportResult(cmd, result)

	if !exportWatch {
		return nil
	}
	return watchExport(ctx, cmd, settings)
}

func watchExport(ctx context.Context, cmd *cobra.Command, settings domain.AppSettings) error {
	paths, err := exportService.WatchPaths(ctx, settings)
	if err != nil {
		return err
	}

	w, err := watcher.New(paths, watcher.WithIgnore(settings.Output.Path))
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", settings.Source.DisplayName())
	return w.Run(ctx, func(ctx context.Context) error {
		result, err := exportService.Export(ctx, settings)
		if err != nil {
			return err
		}
		printExportResult(cmd, result)
		return nil
	})
}

func printExportResult(cmd *cobra.Command, result *driving.ExportResult) {
	digest := result.Digest
	if len(digest) > 12 {
		digest = digest[:12]
	}
	if !result.Written {
		cmd.Printf("%s is up to date (%d requirements, %s)\n", result.Destination, result.Requirements, digest)
		return
	}
	cmd.Printf("Exported %d requirements to %s (%d bytes, %s)\n",
		result.Requirements, result.Destination, result.Bytes, digest)
}
