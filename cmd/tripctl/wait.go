package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until a tripdesk API reports healthy",
	Long: `Poll GET /healthz until the API answers 200, which means it is
serving requests and can reach its database. Exits non-zero when the
timeout passes first, printing the last failure seen.

Useful as a readiness gate in container entrypoints and CI jobs that
start the server in the background.

Example:
  tripctl wait
  tripctl wait --port 3000 --timeout 2m
  tripctl wait --url https://api.staging.example.com`,
	Run: func(cmd *cobra.Command, args []string) {
		baseURL, _ := cmd.Flags().GetString("url")
		if baseURL == "" {
			port, _ := cmd.Flags().GetInt("port")
			baseURL = "http://localhost:" + strconv.Itoa(port)
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")
		interval, _ := cmd.Flags().GetDuration("interval")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		fmt.Fprintf(os.Stderr, "waiting up to %s for %s/healthz\n", timeout, baseURL)
		if err := waitForHealthy(ctx, baseURL, interval); err != nil {
			fmt.Fprintf(os.Stderr, "tripdesk did not become healthy: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "tripdesk is healthy")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "port of a local server")
	waitCmd.Flags().String("url", "", "base URL of the API; overrides --port")
	waitCmd.Flags().Duration("timeout", 90*time.Second, "how long to keep polling")
	waitCmd.Flags().Duration("interval", time.Second, "pause between attempts")
}

// waitForHealthy polls baseURL/healthz every interval until it answers 200 or
// ctx is done. The returned error carries the last failed attempt.
func waitForHealthy(ctx context.Context, baseURL string, interval time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		err := checkHealth(ctx, client, baseURL+"/healthz")
		if err == nil {
			return nil
		}
		// an attempt cut short by ctx says nothing about the server
		if ctx.Err() == nil || lastErr == nil {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last attempt: %v)", ctx.Err(), lastErr)
		case <-ticker.C:
		}
	}
}

func checkHealth(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New(resp.Status)
	}
	return nil
}
