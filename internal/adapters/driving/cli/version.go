package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "Print the reqif version and the ReqIF format version it writes.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("reqif version %s (ReqIF %s)\n", version, domain.FormatVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
