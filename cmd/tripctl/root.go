package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tripctl",
	Short: "Run and manage the tripdesk server",
	Long: `tripctl runs the tripdesk API server and the operator tasks around it:
database migrations, catalog loading, admin accounts and key generation.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
