package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/tripdesk/tripdesk/pkg/audit"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/metrics"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/payment/razorpay"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

var (
	ErrPaymentsDisabled  = errors.New("payments are not configured")
	ErrPackageNotFound   = errors.New("package not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderMismatch     = errors.New("payment does not belong to this order")
	ErrSignatureMismatch = errors.New("payment verification failed")
	ErrInvalidWebhook    = errors.New("malformed webhook payload")
	ErrGateway           = errors.New("payment gateway request failed")
)

// Payment outcomes reported to metrics
const (
	OutcomeCaptured          = "captured"
	OutcomeFailed            = "failed"
	OutcomeSignatureMismatch = "signature_mismatch"
)

// Gateway is the subset of the Razorpay client used by Service
type Gateway interface {
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
}

// Notifier sends templated email
type Notifier interface {
	Notify(ctx context.Context, name string, data any, to ...string) error
}

// Options configures a Service
type Options struct {
	// KeyID is the public gateway key handed to the checkout widget
	KeyID string
	// MerchantName is shown in the checkout widget
	MerchantName string
	// DuplicateWindow is how far back a pending order is reused
	DuplicateWindow time.Duration
}

// Service runs the order and payment reconciliation flow
type Service struct {
	orders   store.OrdersStore
	catalog  store.CatalogStore
	gateway  Gateway
	notifier Notifier
	metrics  *metrics.Metrics
	opts     Options

	audit func(audit.Event)
	now   func() time.Time
}

// NewService creates a booking service. gateway may be nil when payments are
// not configured; order creation and payment calls then fail with
// ErrPaymentsDisabled while listings keep working.
func NewService(orders store.OrdersStore, catalog store.CatalogStore, gateway Gateway, notifier Notifier, mx *metrics.Metrics, opts Options) *Service {
	if opts.MerchantName == "" {
		opts.MerchantName = "tripdesk"
	}
	return &Service{
		orders:   orders,
		catalog:  catalog,
		gateway:  gateway,
		notifier: notifier,
		metrics:  mx,
		opts:     opts,
		audit:    audit.Log,
		now:      time.Now,
	}
}

// Enabled reports whether a payment gateway is configured
func (s *Service) Enabled() bool {
	return s.gateway != nil
}

// CreateOrderRequest is the body of POST /orders
type CreateOrderRequest struct {
	PackageSlug  string `json:"package_slug" validate:"required,slug"`
	TravelDate   string `json:"travel_date" validate:"required,isodate,notpast"`
	Travellers   int    `json:"travellers" validate:"required,min=1,max=20"`
	ContactName  string `json:"contact_name" validate:"required,max=100"`
	ContactEmail string `json:"contact_email" validate:"required,email,max=254"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,phone"`
	Notes        string `json:"notes" validate:"max=1000"`
}

// Prefill seeds the checkout widget's contact form
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact,omitempty"`
}

// Checkout is everything the browser needs to open the payment widget.
// Amount is in minor units as the widget expects.
type Checkout struct {
	KeyID          string  `json:"key_id"`
	GatewayOrderID string  `json:"gateway_order_id"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Prefill        Prefill `json:"prefill"`
}

// CreateOrderResult is returned by CreateOrder
type CreateOrderResult struct {
	Order     *model.Order
	Checkout  Checkout
	Duplicate bool
}

// CreateOrder validates the request, reuses a recent pending order for the
// same trip or creates a new gateway order, and persists it.
func (s *Service) CreateOrder(ctx context.Context, id *identity.Identity, req CreateOrderRequest) (*CreateOrderResult, error) {
	req.PackageSlug = strings.TrimSpace(req.PackageSlug)
	req.ContactName = strings.TrimSpace(req.ContactName)
	req.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	req.ContactPhone = strings.TrimSpace(req.ContactPhone)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !s.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	event := audit.OrderEvent{UserID: id.UserID, ClientIP: id.ClientIP, PackageSlug: req.PackageSlug}

	pkg, err := s.catalog.GetPackageBySlug(ctx, req.PackageSlug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	travelDate, _ := validation.ParseDate(req.TravelDate)

	existing, err := s.orders.FindPendingOrder(ctx, id.UserID, pkg.ID, travelDate, s.now().Add(-s.opts.DuplicateWindow))
	switch {
	case err == nil:
		existing.Package = pkg
		event.Reference = existing.Reference
		event.Duplicate = true
		event.Success = true
		s.audit(event)
		return &CreateOrderResult{Order: existing, Checkout: s.checkout(existing, pkg), Duplicate: true}, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("failed to check pending orders: %w", err)
	}

	amount := pkg.PriceMinor * int64(req.Travellers)
	reference := uuid.NewString()
	event.Reference = reference
	event.Amount = model.FormatMinor(amount)
	event.Currency = pkg.Currency

	gwOrder, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   amount,
		Currency: pkg.Currency,
		Receipt:  reference,
		Notes: map[string]string{
			"package": pkg.Slug,
			"user_id": strconv.FormatUint(uint64(id.UserID), 10),
		},
	})
	if err != nil {
		event.ErrorMessage = err.Error()
		s.audit(event)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	order := &model.Order{
		Reference:      reference,
		UserID:         id.UserID,
		PackageID:      pkg.ID,
		TravelDate:     datatypes.Date(travelDate),
		Travellers:     req.Travellers,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Notes:          strings.TrimSpace(req.Notes),
		AmountMinor:    amount,
		Currency:       pkg.Currency,
		GatewayOrderID: gwOrder.ID,
		Status:         model.OrderStatusCreated,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		event.ErrorMessage = err.Error()
		s.audit(event)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	order.Package = pkg

	s.metrics.OrderCreated()
	event.Success = true
	s.audit(event)

	logging.FromContext(ctx).Info("order created",
		zap.String("reference", reference),
		zap.String("gateway_order_id", gwOrder.ID),
		zap.Int64("amount_minor", amount))

	return &CreateOrderResult{Order: order, Checkout: s.checkout(order, pkg)}, nil
}

func (s *Service) checkout(order *model.Order, pkg *model.Package) Checkout {
	return Checkout{
		KeyID:          s.opts.KeyID,
		GatewayOrderID: order.GatewayOrderID,
		Amount:         order.AmountMinor,
		Currency:       order.Currency,
		Name:           s.opts.MerchantName,
		Description:    fmt.Sprintf("%s x %d", pkg.Title, order.Travellers),
		Prefill: Prefill{
			Name:    order.ContactName,
			Email:   order.ContactEmail,
			Contact: order.ContactPhone,
		},
	}
}

// GetOrder loads an order the caller may see. Customers only see their own.
func (s *Service) GetOrder(ctx context.Context, id *identity.Identity, reference string) (*model.Order, error) {
	order, err := s.orders.GetOrderByReference(ctx, reference)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != id.UserID && !id.IsAdmin() {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns the caller's orders, newest first
func (s *Service) ListOrders(ctx context.Context, id *identity.Identity, p store.Page) ([]model.Order, int64, error) {
	return s.orders.ListOrders(ctx, store.OrderFilter{UserID: id.UserID, Page: p})
}

// ListAllOrders returns every order, optionally filtered by status
func (s *Service) ListAllOrders(ctx context.Context, status *model.OrderStatus, p store.Page) ([]model.Order, int64, error) {
	return s.orders.ListOrders(ctx, store.OrderFilter{Status: status, Page: p})
}

// ListBookings returns the caller's bookings, newest first
func (s *Service) ListBookings(ctx context.Context, id *identity.Identity, p store.Page) ([]model.Booking, int64, error) {
	return s.orders.ListBookings(ctx, id.UserID, p)
}

// NewBookingReference returns a short human friendly booking reference
func NewBookingReference() string {
	u := uuid.New()
	return fmt.Sprintf("TD-%X", u[:4])
}
