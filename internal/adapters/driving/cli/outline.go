package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
)

var (
	outlineIDStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	outlineRootStyle = lipgloss.NewStyle().Bold(true)
	outlineEnumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Show the specification tree the export would build",
	Long: `Load the configured source, run the outline pipeline and print the
resulting specification hierarchy without writing anything.`,
	Args: cobra.NoArgs,
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, _ []string) error {
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

	cmd.Println(renderOutline(settings.Specification, outline, isTerminal(cmd.OutOrStdout())))
	return nil
}

// renderOutline draws the items as a tree under the specification.
// Items deeper than their predecessor allows hang off the deepest open node.
func renderOutline(spec domain.SpecificationSettings, outline *domain.Outline, styled bool) string {
	idStyle, rootStyle, enumStyle := lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	if styled {
		idStyle, rootStyle, enumStyle = outlineIDStyle, outlineRootStyle, outlineEnumStyle
	}

	root := tree.Root(spec.Name + " [" + spec.Identifier + "]").
		RootStyle(rootStyle).
		EnumeratorStyle(enumStyle)

	open := []*tree.Tree{root}
	for _, item := range outline.Items {
		depth := item.Depth
		if depth < 0 {
			depth = 0
		}
		if depth >= len(open) {
			depth = len(open) - 1
		}

		node := tree.Root(idStyle.Render(item.ID) + " " + item.Title).EnumeratorStyle(enumStyle)
		open[depth].Child(node)
		open = append(open[:depth+1], node)
	}
	return root.String()
}
