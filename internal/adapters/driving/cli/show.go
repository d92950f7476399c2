package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the ReqIF document without writing it",
	Long: `Build the document from the configured source and print it to stdout.
Output to a terminal is syntax highlighted.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
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
	doc, err := exportService.Build(ctx, settings)
	if err != nil {
		return err
	}
	data, err := exportService.Render(doc, true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isTerminal(out) {
		return quick.Highlight(out, string(data), "xml", "terminal256", "monokai")
	}
	_, err = out.Write(data)
	return err
}
