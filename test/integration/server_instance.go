package integration

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk/pkg/app"
	"github.com/tripdesk/tripdesk/pkg/config"
)

// testConfig is the configuration both server modes run with
func testConfig(gatewayURL string) *config.TripdeskConfig {
	cfg := config.Default()
	cfg.PublicBaseURL = "http://127.0.0.1:18080"
	cfg.RazorpayKeyID = razorpayKeyID
	cfg.RazorpayBaseURL = gatewayURL
	cfg.ContactRateLimit = 1000
	cfg.Secrets.RazorpayKeySecret = razorpayKeySecret
	cfg.Secrets.RazorpayWebhookSecret = razorpayWebhookSecret
	cfg.Secrets.SessionKey = sessionKey
	return cfg
}

// startInlineServer starts the server in-process (no binary needed)
func startInlineServer(db *gorm.DB, gatewayURL, port string) (*app.App, context.CancelFunc, error) {
	a, err := app.New(testConfig(gatewayURL), nil, db, "127.0.0.1", port)
	if err != nil {
		return nil, nil, err
	}

	go func() {
		if err := a.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "inline server stopped: %v\n", err)
		}
	}()

	cancel := func() {
		ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = a.Server.Shutdown(ctx)
	}
	return a, cancel, nil
}

// startBinary starts the tripctl server binary
func startBinary(binaryPath, dbURL, gatewayURL, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := testConfig(gatewayURL)

	// Migrations already ran in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"TRIPDESK_CONFIG_PATH="+os.TempDir(),
		"TRIPDESK_PUBLIC_BASE_URL="+cfg.PublicBaseURL,
		"TRIPDESK_SESSION_KEY="+base64.StdEncoding.EncodeToString(sessionKey),
		"TRIPDESK_CONTACT_RATE_LIMIT=1000",
		"RAZORPAY_KEY_ID="+razorpayKeyID,
		"RAZORPAY_KEY_SECRET="+razorpayKeySecret,
		"RAZORPAY_WEBHOOK_SECRET="+razorpayWebhookSecret,
		"RAZORPAY_BASE_URL="+gatewayURL,
		"TRIPDESK_AUDIT_ENABLED=false",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}
