// Package app assembles a tripdesk server from configuration: stores,
// authenticators, payment gateway, mailer, flight search and routes.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk/pkg/authenticator/oauth"
	"github.com/tripdesk/tripdesk/pkg/authenticator/password"
	"github.com/tripdesk/tripdesk/pkg/booking"
	"github.com/tripdesk/tripdesk/pkg/config"
	"github.com/tripdesk/tripdesk/pkg/content"
	"github.com/tripdesk/tripdesk/pkg/flights"
	"github.com/tripdesk/tripdesk/pkg/leads"
	"github.com/tripdesk/tripdesk/pkg/mailer"
	"github.com/tripdesk/tripdesk/pkg/metrics"
	"github.com/tripdesk/tripdesk/pkg/payment/razorpay"
	"github.com/tripdesk/tripdesk/pkg/seal"
	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/server/endpoints"
	gormstore "github.com/tripdesk/tripdesk/pkg/server/store/gorm"
	"github.com/tripdesk/tripdesk/pkg/session"
)

const (
	cacheGCInterval = 5 * time.Minute
	merchantName    = "tripdesk"
)

// App is a fully wired server plus the resources it owns
type App struct {
	Server *server.Server

	cache  *flights.Cache
	stopGC chan struct{}
}

// New wires a server listening on host:port. Call Close after the server
// has shut down.
func New(cfg *config.TripdeskConfig, logger *zap.Logger, database *gorm.DB, host, port string) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mx := metrics.New()
	a := &App{Server: server.NewServer(cfg, logger, mx, host, port)}
	if err := a.wire(database); err != nil {
		a.Close()
		return nil, err
	}
	endpoints.RegisterAll(a.Server)
	return a, nil
}

// Close releases the flight cache
func (a *App) Close() {
	if a.stopGC != nil {
		close(a.stopGC)
		a.stopGC = nil
	}
	if a.cache != nil {
		_ = a.cache.Close()
		a.cache = nil
	}
}

func (a *App) wire(database *gorm.DB) error {
	s := a.Server
	cfg, logger, mx := s.Config, s.Logger, s.Metrics

	users := gormstore.NewUsersStore(database)
	catalog := gormstore.NewCatalogStore(database)
	blog := gormstore.NewBlogStore(database)
	s.HealthStore = gormstore.NewHealthStore(database)
	s.UsersStore = users
	s.CatalogStore = catalog
	s.BlogStore = blog

	sessionKey, err := keyOrEphemeral(cfg.Secrets.SessionKey)
	if err != nil {
		return err
	}
	if len(cfg.Secrets.SessionKey) == 0 {
		logger.Warn("TRIPDESK_SESSION_KEY is not set; sessions will not survive a restart")
	}
	sessions, err := session.NewManager(sessionKey, cfg.SessionTTL(), cfg.SecureCookies())
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	s.Sessions = sessions

	sealKey, err := keyOrEphemeral(cfg.Secrets.SealKey)
	if err != nil {
		return err
	}
	sealer, err := seal.New(sealKey)
	if err != nil {
		return fmt.Errorf("failed to create sealer: %w", err)
	}
	s.OAuthState = oauth.NewStateCodec(sealer, cfg.SecureCookies())

	s.Passwords = password.NewAuthenticator(users)
	s.Authenticators.Register(s.Passwords)
	if err := s.Authenticators.Enable(password.Name); err != nil {
		return err
	}
	if cfg.GoogleOAuthEnabled() {
		google := oauth.NewAuthenticator(oauth.Google(cfg.Secrets.GoogleClientID, cfg.Secrets.GoogleClientSecret, cfg.PublicBaseURL), users)
		s.Authenticators.Register(google)
		if err := s.Authenticators.Enable(google.Name()); err != nil {
			return err
		}
	}

	notifier, err := newNotifier(cfg, logger, mx)
	if err != nil {
		return err
	}
	s.Notifier = notifier

	s.Content = content.NewService(catalog, blog, cfg.DefaultCurrency)
	s.Leads = leads.NewService(
		gormstore.NewLeadsStore(database), catalog, notifier, mx,
		leads.NewIPLimiter(cfg.ContactRateLimit), cfg.AdminNotifyEmail,
	)

	var gateway booking.Gateway
	if cfg.PaymentsEnabled() {
		gateway = razorpay.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.Secrets.RazorpayKeySecret, cfg.Secrets.RazorpayWebhookSecret)
	} else {
		logger.Info("payments disabled: razorpay_key_id and RAZORPAY_KEY_SECRET are required")
	}
	s.Booking = booking.NewService(gormstore.NewOrdersStore(database), catalog, gateway, notifier, mx, booking.Options{
		KeyID:           cfg.RazorpayKeyID,
		MerchantName:    merchantName,
		DuplicateWindow: cfg.DuplicateOrderWindow(),
	})

	if !cfg.FlightSearchEnabled() {
		logger.Info("flight search disabled: FLIGHT_API_CLIENT_ID and FLIGHT_API_CLIENT_SECRET are not set")
		s.Flights = flights.NewService(nil, nil, cfg.FlightRateLimit, mx)
		return nil
	}
	cache, err := flights.OpenCache(cfg.FlightCacheDir, cfg.FlightCacheTTL(), logger)
	if err != nil {
		return err
	}
	a.cache = cache
	a.stopGC = make(chan struct{})
	go cache.RunGC(a.stopGC, cacheGCInterval)

	client := flights.NewClient(cfg.FlightAPIBaseURL, cfg.Secrets.FlightAPIClientID, cfg.Secrets.FlightAPIClientSecret)
	s.Flights = flights.NewService(client, cache, cfg.FlightRateLimit, mx)
	return nil
}

func keyOrEphemeral(key []byte) ([]byte, error) {
	if len(key) > 0 {
		return key, nil
	}
	return seal.GenerateKey()
}

func newNotifier(cfg *config.TripdeskConfig, logger *zap.Logger, mx *metrics.Metrics) (*mailer.Notifier, error) {
	templates, err := mailer.LoadTemplates()
	if err != nil {
		return nil, err
	}

	var m mailer.Mailer
	if cfg.SMTPHost == "" {
		logger.Info("smtp_host is not set; emails are logged instead of sent")
		m = mailer.NewLogMailer(logger)
	} else {
		smtp, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.Secrets.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create smtp mailer: %w", err)
		}
		m = smtp
	}
	return mailer.NewNotifier(m, templates, mx), nil
}
