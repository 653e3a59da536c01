// Command tripctl runs the tripdesk travel booking API.
//
// # Quick Start
//
//	# Generate keys for sessions and OAuth state
//	export TRIPDESK_SESSION_KEY=$(tripctl data-key generate)
//	export TRIPDESK_SEAL_KEY=$(tripctl data-key generate)
//
//	# Run database migrations
//	tripctl db migrate
//
//	# Create the first admin and load the catalog
//	tripctl admin create --email ops@example.com
//	tripctl catalog load catalog.yml
//
//	# Start the server
//	tripctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - TRIPDESK_SESSION_KEY: Base64 key (at least 32 bytes) signing session tokens
//   - TRIPDESK_SEAL_KEY: Base64 32-byte key sealing OAuth state cookies
//   - RAZORPAY_KEY_SECRET, RAZORPAY_WEBHOOK_SECRET: payment gateway credentials
//   - FLIGHT_API_CLIENT_ID, FLIGHT_API_CLIENT_SECRET: flight search credentials
//   - GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET: Google login
//   - SMTP_PASSWORD: mail relay password
//   - TRIPDESK_LOG_LEVEL: Log level (debug, info, warn, error)
//   - PORT: Server port (default: 8000)
//
// The remaining settings are read from tripdesk.yml in /etc/tripdesk (or the
// directory named by TRIPDESK_CONFIG_PATH); run "tripctl configuration show"
// to list them.
package main
