package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tripdesk/tripdesk/pkg/catalog"
	"github.com/tripdesk/tripdesk/pkg/logging"
)

// catalogWatchCmd represents the catalog watch command
var catalogWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a catalog file and reload it when it changes",
	Long: `Load a catalog file, then reload it every time it is written or replaced.

A reload that fails validation is logged and the previous catalog stays in
place. Stop with Ctrl-C.

Example:
  tripctl catalog watch /srv/tripdesk/catalog.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		currency, _ := cmd.Flags().GetString("currency")

		if err := watchCatalog(args[0], currency); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch catalog: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	catalogCmd.AddCommand(catalogWatchCmd)
}

func watchCatalog(filename, currency string) error {
	logger, err := logging.New(logging.ConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loader, err := newCatalogLoader(currency)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return catalog.Watch(ctx, filename, loader.WithLogger(logger), logger)
}
