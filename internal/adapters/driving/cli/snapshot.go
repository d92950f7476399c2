package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/storage/sqlite"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <database>",
	Short: "Store the processed outline in an SQLite database",
	Long: `Load the configured source, run the outline pipeline and replace the
contents of the SQLite database with the result. The database can then be
used as a source with --source-type sqlite.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outline, err := exportService.Outline(ctx, settings)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceOutline(ctx, outline); err != nil {
		return err
	}
	cmd.Printf("Stored %d requirements in %s\n", len(outline.Items), args[0])
	return nil
}
