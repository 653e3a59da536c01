package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/tripdesk"
	ConfigFileName    = "tripdesk.yml"
)

// TripdeskConfig holds all non-secret tripdesk settings
type TripdeskConfig struct {
	// PublicBaseURL is the externally visible URL of the API, used for OAuth redirects and cookies
	PublicBaseURL string `yaml:"public_base_url" json:"public_base_url"`

	// CORSAllowedOrigins lists the marketing site origins allowed to call the API
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// TrustedProxies lists the addresses or CIDR ranges of reverse proxies whose
	// forwarding headers are honoured. Empty means the peer address is the client.
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// APIListLimitMax is the maximum page size for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// SessionTTLSeconds is the lifetime of a session token
	SessionTTLSeconds int `yaml:"session_ttl" json:"session_ttl"`

	// DuplicateOrderWindowSeconds is how long an identical pending order is reused
	DuplicateOrderWindowSeconds int `yaml:"duplicate_order_window" json:"duplicate_order_window"`

	// DefaultCurrency is used by flight search and new packages without a currency
	DefaultCurrency string `yaml:"default_currency" json:"default_currency"`

	// RazorpayKeyID is the public Razorpay key, handed to the checkout widget
	RazorpayKeyID string `yaml:"razorpay_key_id" json:"razorpay_key_id"`

	// RazorpayBaseURL is the Razorpay REST endpoint
	RazorpayBaseURL string `yaml:"razorpay_base_url" json:"razorpay_base_url"`

	// FlightAPIBaseURL is the flight offers API endpoint
	FlightAPIBaseURL string `yaml:"flight_api_base_url" json:"flight_api_base_url"`

	// FlightCacheTTLSeconds is how long flight search results are cached
	FlightCacheTTLSeconds int `yaml:"flight_cache_ttl" json:"flight_cache_ttl"`

	// FlightCacheDir is the Badger directory for the flight cache; empty keeps it in memory
	FlightCacheDir string `yaml:"flight_cache_dir" json:"flight_cache_dir"`

	// FlightRateLimit is the maximum number of upstream flight API calls per second
	FlightRateLimit float64 `yaml:"flight_rate_limit" json:"flight_rate_limit"`

	// ContactRateLimit is the number of contact form submissions allowed per IP per minute
	ContactRateLimit int `yaml:"contact_rate_limit" json:"contact_rate_limit"`

	// SMTPHost is the mail relay host; empty disables SMTP delivery
	SMTPHost string `yaml:"smtp_host" json:"smtp_host"`

	// SMTPPort is the mail relay port
	SMTPPort int `yaml:"smtp_port" json:"smtp_port"`

	// SMTPUsername is the relay login
	SMTPUsername string `yaml:"smtp_username" json:"smtp_username"`

	// MailFrom is the sender address for all outgoing mail
	MailFrom string `yaml:"mail_from" json:"mail_from"`

	// AdminNotifyEmail receives new lead notifications
	AdminNotifyEmail string `yaml:"admin_notify_email" json:"admin_notify_email"`

	// OAuthSuccessRedirect is where the browser lands after an OAuth login
	OAuthSuccessRedirect string `yaml:"oauth_success_redirect" json:"oauth_success_redirect"`

	// MetricsEnabled exposes /metrics
	MetricsEnabled bool `yaml:"metrics_enabled" json:"metrics_enabled"`

	// Secrets are only ever read from the environment
	Secrets Secrets `yaml:"-" json:"-"`

	sources        map[string]string
	configFilePath string
}

// Secrets holds credentials that must not come from the config file or be printed
type Secrets struct {
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
	SMTPPassword          string
	GoogleClientID        string
	GoogleClientSecret    string
	FlightAPIClientID     string
	FlightAPIClientSecret string
	SessionKey            []byte
	SealKey               []byte
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var (
	globalConfig *TripdeskConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *TripdeskConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// Default returns a config holding only default values
func Default() *TripdeskConfig {
	return newDefault()
}

func newDefault() *TripdeskConfig {
	return &TripdeskConfig{
		PublicBaseURL:               "http://localhost:8000",
		CORSAllowedOrigins:          []string{},
		TrustedProxies:              []string{},
		APIListLimitMax:             100,
		SessionTTLSeconds:           86400,
		DuplicateOrderWindowSeconds: 60,
		DefaultCurrency:             "INR",
		RazorpayBaseURL:             "https://api.razorpay.com",
		FlightAPIBaseURL:            "https://test.api.amadeus.com",
		FlightCacheTTLSeconds:       600,
		FlightRateLimit:             5,
		ContactRateLimit:            5,
		SMTPPort:                    587,
		MailFrom:                    "no-reply@tripdesk.local",
		OAuthSuccessRedirect:        "/",
		MetricsEnabled:              true,
		sources:                     make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*TripdeskConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("TRIPDESK_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig TripdeskConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	secrets, err := loadSecrets()
	if err != nil {
		return nil, err
	}
	config.Secrets = secrets

	return config, nil
}

func attributeNames() []string {
	return []string{
		"public_base_url", "cors_allowed_origins", "trusted_proxies", "api_list_limit_max",
		"session_ttl", "duplicate_order_window", "default_currency",
		"razorpay_key_id", "razorpay_base_url",
		"flight_api_base_url", "flight_cache_ttl", "flight_cache_dir", "flight_rate_limit",
		"contact_rate_limit",
		"smtp_host", "smtp_port", "smtp_username", "mail_from", "admin_notify_email",
		"oauth_success_redirect", "metrics_enabled",
	}
}

func (c *TripdeskConfig) applyFileConfig(file *TripdeskConfig) {
	setString := func(name string, dst *string, v string) {
		if v != "" {
			*dst = v
			c.sources[name] = "file"
		}
	}
	setInt := func(name string, dst *int, v int) {
		if v != 0 {
			*dst = v
			c.sources[name] = "file"
		}
	}

	setString("public_base_url", &c.PublicBaseURL, file.PublicBaseURL)
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	setInt("api_list_limit_max", &c.APIListLimitMax, file.APIListLimitMax)
	setInt("session_ttl", &c.SessionTTLSeconds, file.SessionTTLSeconds)
	setInt("duplicate_order_window", &c.DuplicateOrderWindowSeconds, file.DuplicateOrderWindowSeconds)
	setString("default_currency", &c.DefaultCurrency, file.DefaultCurrency)
	setString("razorpay_key_id", &c.RazorpayKeyID, file.RazorpayKeyID)
	setString("razorpay_base_url", &c.RazorpayBaseURL, file.RazorpayBaseURL)
	setString("flight_api_base_url", &c.FlightAPIBaseURL, file.FlightAPIBaseURL)
	setInt("flight_cache_ttl", &c.FlightCacheTTLSeconds, file.FlightCacheTTLSeconds)
	setString("flight_cache_dir", &c.FlightCacheDir, file.FlightCacheDir)
	if file.FlightRateLimit != 0 {
		c.FlightRateLimit = file.FlightRateLimit
		c.sources["flight_rate_limit"] = "file"
	}
	setInt("contact_rate_limit", &c.ContactRateLimit, file.ContactRateLimit)
	setString("smtp_host", &c.SMTPHost, file.SMTPHost)
	setInt("smtp_port", &c.SMTPPort, file.SMTPPort)
	setString("smtp_username", &c.SMTPUsername, file.SMTPUsername)
	setString("mail_from", &c.MailFrom, file.MailFrom)
	setString("admin_notify_email", &c.AdminNotifyEmail, file.AdminNotifyEmail)
	setString("oauth_success_redirect", &c.OAuthSuccessRedirect, file.OAuthSuccessRedirect)
}

func (c *TripdeskConfig) applyEnvConfig() {
	envString := func(env, name string, dst *string) {
		if val := os.Getenv(env); val != "" {
			*dst = val
			c.sources[name] = "environment"
		}
	}
	envInt := func(env, name string, dst *int) {
		if val := os.Getenv(env); val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				*dst = i
				c.sources[name] = "environment"
			}
		}
	}

	envString("TRIPDESK_PUBLIC_BASE_URL", "public_base_url", &c.PublicBaseURL)
	if val := os.Getenv("TRIPDESK_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("TRIPDESK_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	envInt("TRIPDESK_API_LIST_LIMIT_MAX", "api_list_limit_max", &c.APIListLimitMax)
	envInt("TRIPDESK_SESSION_TTL", "session_ttl", &c.SessionTTLSeconds)
	envInt("TRIPDESK_DUPLICATE_ORDER_WINDOW", "duplicate_order_window", &c.DuplicateOrderWindowSeconds)
	envString("TRIPDESK_DEFAULT_CURRENCY", "default_currency", &c.DefaultCurrency)
	envString("RAZORPAY_KEY_ID", "razorpay_key_id", &c.RazorpayKeyID)
	envString("RAZORPAY_BASE_URL", "razorpay_base_url", &c.RazorpayBaseURL)
	envString("TRIPDESK_FLIGHT_API_BASE_URL", "flight_api_base_url", &c.FlightAPIBaseURL)
	envInt("TRIPDESK_FLIGHT_CACHE_TTL", "flight_cache_ttl", &c.FlightCacheTTLSeconds)
	envString("TRIPDESK_FLIGHT_CACHE_DIR", "flight_cache_dir", &c.FlightCacheDir)
	if val := os.Getenv("TRIPDESK_FLIGHT_RATE_LIMIT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.FlightRateLimit = f
			c.sources["flight_rate_limit"] = "environment"
		}
	}
	envInt("TRIPDESK_CONTACT_RATE_LIMIT", "contact_rate_limit", &c.ContactRateLimit)
	envString("SMTP_HOST", "smtp_host", &c.SMTPHost)
	envInt("SMTP_PORT", "smtp_port", &c.SMTPPort)
	envString("SMTP_USERNAME", "smtp_username", &c.SMTPUsername)
	envString("TRIPDESK_MAIL_FROM", "mail_from", &c.MailFrom)
	envString("TRIPDESK_ADMIN_NOTIFY_EMAIL", "admin_notify_email", &c.AdminNotifyEmail)
	envString("TRIPDESK_OAUTH_SUCCESS_REDIRECT", "oauth_success_redirect", &c.OAuthSuccessRedirect)
	if val := os.Getenv("TRIPDESK_METRICS_ENABLED"); val != "" {
		c.MetricsEnabled = val == "true" || val == "1"
		c.sources["metrics_enabled"] = "environment"
	}
}

func loadSecrets() (Secrets, error) {
	s := Secrets{
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		SMTPPassword:          os.Getenv("SMTP_PASSWORD"),
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
		FlightAPIClientID:     os.Getenv("FLIGHT_API_CLIENT_ID"),
		FlightAPIClientSecret: os.Getenv("FLIGHT_API_CLIENT_SECRET"),
	}

	if val := os.Getenv("TRIPDESK_SESSION_KEY"); val != "" {
		key, err := base64.StdEncoding.DecodeString(val)
		if err != nil {
			return s, fmt.Errorf("invalid TRIPDESK_SESSION_KEY: %w", err)
		}
		s.SessionKey = key
	}
	if val := os.Getenv("TRIPDESK_SEAL_KEY"); val != "" {
		key, err := base64.StdEncoding.DecodeString(val)
		if err != nil {
			return s, fmt.Errorf("invalid TRIPDESK_SEAL_KEY: %w", err)
		}
		s.SealKey = key
	}
	return s, nil
}

// ConfigFilePath returns the path to the config file
func (c *TripdeskConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *TripdeskConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session lifetime as a duration
func (c *TripdeskConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// DuplicateOrderWindow returns the duplicate order window as a duration
func (c *TripdeskConfig) DuplicateOrderWindow() time.Duration {
	return time.Duration(c.DuplicateOrderWindowSeconds) * time.Second
}

// FlightCacheTTL returns the flight cache TTL as a duration
func (c *TripdeskConfig) FlightCacheTTL() time.Duration {
	return time.Duration(c.FlightCacheTTLSeconds) * time.Second
}

// SecureCookies reports whether cookies should carry the Secure flag
func (c *TripdeskConfig) SecureCookies() bool {
	return strings.HasPrefix(c.PublicBaseURL, "https://")
}

// PaymentsEnabled reports whether Razorpay credentials are present
func (c *TripdeskConfig) PaymentsEnabled() bool {
	return c.RazorpayKeyID != "" && c.Secrets.RazorpayKeySecret != ""
}

// FlightSearchEnabled reports whether flight API credentials are present
func (c *TripdeskConfig) FlightSearchEnabled() bool {
	return c.Secrets.FlightAPIClientID != "" && c.Secrets.FlightAPIClientSecret != ""
}

// GoogleOAuthEnabled reports whether Google login is configured
func (c *TripdeskConfig) GoogleOAuthEnabled() bool {
	return c.Secrets.GoogleClientID != "" && c.Secrets.GoogleClientSecret != ""
}

// TrustedProxyNets returns the parsed trusted_proxies entries. A bare address
// becomes a single host network. Entries that do not parse are skipped;
// Validate reports them.
func (c *TripdeskConfig) TrustedProxyNets() []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, proxy := range c.TrustedProxies {
		if n, err := parseProxy(proxy); err == nil {
			nets = append(nets, n)
		}
	}
	return nets
}

func parseProxy(s string) (*net.IPNet, error) {
	if strings.Contains(s, "/") {
		_, n, err := net.ParseCIDR(s)
		return n, err
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("not an IP address: %s", s)
	}
	bits := 8 * net.IPv6len
	if v4 := ip.To4(); v4 != nil {
		ip, bits = v4, 8*net.IPv4len
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}

// Validate validates the configuration
func (c *TripdeskConfig) Validate() error {
	for name, raw := range map[string]string{
		"public_base_url":     c.PublicBaseURL,
		"razorpay_base_url":   c.RazorpayBaseURL,
		"flight_api_base_url": c.FlightAPIBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s value: %q", name, raw)
		}
	}

	for _, origin := range c.CORSAllowedOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid cors_allowed_origins value: %s", origin)
		}
	}

	for _, proxy := range c.TrustedProxies {
		if _, err := parseProxy(proxy); err != nil {
			return fmt.Errorf("invalid trusted_proxies value: %s", proxy)
		}
	}

	if c.APIListLimitMax <= 0 {
		return fmt.Errorf("api_list_limit_max must be positive")
	}
	if c.SessionTTLSeconds <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.DuplicateOrderWindowSeconds < 0 {
		return fmt.Errorf("duplicate_order_window must not be negative")
	}
	if c.FlightCacheTTLSeconds < 0 {
		return fmt.Errorf("flight_cache_ttl must not be negative")
	}
	if c.FlightRateLimit <= 0 {
		return fmt.Errorf("flight_rate_limit must be positive")
	}
	if c.ContactRateLimit <= 0 {
		return fmt.Errorf("contact_rate_limit must be positive")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid smtp_port value: %d", c.SMTPPort)
	}
	if len(c.DefaultCurrency) != 3 {
		return fmt.Errorf("invalid default_currency value: %s", c.DefaultCurrency)
	}
	if len(c.Secrets.SessionKey) > 0 && len(c.Secrets.SessionKey) < 32 {
		return fmt.Errorf("TRIPDESK_SESSION_KEY must be at least 32 bytes")
	}
	if len(c.Secrets.SealKey) > 0 && len(c.Secrets.SealKey) != 32 {
		return fmt.Errorf("TRIPDESK_SEAL_KEY must be exactly 32 bytes")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *TripdeskConfig) Attributes() []Attribute {
	attr := func(name, value string) Attribute {
		return Attribute{Name: name, Value: value, Source: c.Source(name)}
	}
	return []Attribute{
		attr("public_base_url", c.PublicBaseURL),
		attr("cors_allowed_origins", strings.Join(c.CORSAllowedOrigins, ",")),
		attr("trusted_proxies", strings.Join(c.TrustedProxies, ",")),
		attr("api_list_limit_max", strconv.Itoa(c.APIListLimitMax)),
		attr("session_ttl", strconv.Itoa(c.SessionTTLSeconds)),
		attr("duplicate_order_window", strconv.Itoa(c.DuplicateOrderWindowSeconds)),
		attr("default_currency", c.DefaultCurrency),
		attr("razorpay_key_id", c.RazorpayKeyID),
		attr("razorpay_base_url", c.RazorpayBaseURL),
		attr("flight_api_base_url", c.FlightAPIBaseURL),
		attr("flight_cache_ttl", strconv.Itoa(c.FlightCacheTTLSeconds)),
		attr("flight_cache_dir", c.FlightCacheDir),
		attr("flight_rate_limit", strconv.FormatFloat(c.FlightRateLimit, 'f', -1, 64)),
		attr("contact_rate_limit", strconv.Itoa(c.ContactRateLimit)),
		attr("smtp_host", c.SMTPHost),
		attr("smtp_port", strconv.Itoa(c.SMTPPort)),
		attr("smtp_username", c.SMTPUsername),
		attr("mail_from", c.MailFrom),
		attr("admin_notify_email", c.AdminNotifyEmail),
		attr("oauth_success_redirect", c.OAuthSuccessRedirect),
		attr("metrics_enabled", strconv.FormatBool(c.MetricsEnabled)),
	}
}

// FormatText returns a text representation of the configuration
func (c *TripdeskConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-28s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-28s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-28s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *TripdeskConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
