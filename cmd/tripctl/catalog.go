package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the destination and package catalog",
	Long:  `Load destinations and packages from a YAML catalog file.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'catalog' requires a subcommand (load, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.PersistentFlags().String("currency", "", "currency for packages that do not name one (default from configuration)")
}
