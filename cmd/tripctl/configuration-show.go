package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripdesk/tripdesk/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration attributes and their sources",
	Long: `Show configuration attributes and their sources.

The values displayed reflect the configuration file and environment of this
shell, which may differ from those of a running server. Secrets are reported
as set or unset, never printed.

Config file location: /etc/tripdesk/tripdesk.yml (or TRIPDESK_CONFIG_PATH)

Example:
  tripctl configuration show
  tripctl configuration show --json`,
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		if err := showConfiguration(asJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().Bool("json", false, "print JSON instead of a table")
}

func showConfiguration(asJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if asJSON {
		out, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Print(cfg.FormatText())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "\nwarning: %v\n", err)
	}
	return nil
}
