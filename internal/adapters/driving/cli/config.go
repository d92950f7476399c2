package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reqif.toml settings",
	Long: `View and change the settings stored in reqif.toml.

Keys use dotted names such as output.path or specification.name. Source
options are written as source.<option> and post-processor options as
pipeline.<processor>.<option>.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to reqif.toml",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	entries := settingsService.Entries()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	for _, e := range entries {
		line := fmt.Sprintf("%-*s = %s", width, e.Key, e.Value)
		if e.Default {
			line += "  (default)"
		}
		cmd.Println(line)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return err
	}
	cmd.Printf("%s reset to default\n", args[0])
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return err
	}
	cmd.Println("Default settings written.")
	return nil
}
