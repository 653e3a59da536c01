// Package config provides configuration management for tripdesk.
//
// Configuration is read from an optional YAML file and then overridden by
// environment variables. Every attribute remembers where its value came from
// so that `tripctl configuration show` can explain the effective settings.
//
// # Configuration Sources
//
//   - $TRIPDESK_CONFIG_PATH/tripdesk.yml (default /etc/tripdesk/tripdesk.yml)
//   - TRIPDESK_* and provider specific environment variables (take precedence)
//
// # Secrets
//
// Credentials are only read from the environment and are never included in
// Attributes, FormatText or FormatJSON:
//
//   - RAZORPAY_KEY_SECRET, RAZORPAY_WEBHOOK_SECRET
//   - SMTP_PASSWORD
//   - GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET
//   - FLIGHT_API_CLIENT_ID, FLIGHT_API_CLIENT_SECRET
//   - TRIPDESK_SESSION_KEY, TRIPDESK_SEAL_KEY (base64)
package config
