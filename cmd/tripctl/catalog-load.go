package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripdesk/tripdesk/pkg/catalog"
	"github.com/tripdesk/tripdesk/pkg/config"
	"github.com/tripdesk/tripdesk/pkg/db"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// catalogLoadCmd represents the catalog load command
var catalogLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a catalog file",
	Long: `Load a YAML catalog file into the database.

Destinations and packages are matched by slug: existing rows are updated
and new ones created. Nothing is deleted. The whole file is applied in one
transaction, so a failure leaves the catalog untouched.

Example:
  tripctl catalog load catalog.yml
  tripctl catalog load --dry-run catalog.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		currency, _ := cmd.Flags().GetString("currency")

		result, err := loadCatalogFile(cmd.Context(), args[0], currency, dryRun)
		if err != nil {
			if fields, ok := validation.AsErrors(err); ok {
				fmt.Fprintln(os.Stderr, "Catalog is invalid:")
				for field, msg := range fields {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
				}
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
			os.Exit(1)
		}

		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
	},
}

func init() {
	catalogCmd.AddCommand(catalogLoadCmd)
	catalogLoadCmd.Flags().Bool("dry-run", false, "validate and apply inside a transaction that is rolled back")
}

// newCatalogLoader connects to the database and builds a loader using the
// configured default currency unless currency is set
func newCatalogLoader(currency string) (*catalog.Loader, error) {
	if currency == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		currency = cfg.DefaultCurrency
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}
	return catalog.NewLoader(database).WithCurrency(currency), nil
}

func loadCatalogFile(ctx context.Context, filename, currency string, dryRun bool) (*catalog.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	loader, err := newCatalogLoader(currency)
	if err != nil {
		return nil, err
	}

	result, err := catalog.LoadFile(ctx, filename, loader.WithDryRun(dryRun))
	if err != nil {
		return nil, err
	}

	if dryRun {
		fmt.Fprintln(os.Stderr, "Dry run: no changes were committed")
	}
	return result, nil
}
