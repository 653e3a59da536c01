package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/tripdesk/tripdesk/pkg/audit"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/mailer"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/payment/razorpay"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

const (
	sourceVerify  = "verify"
	sourceWebhook = "webhook"
)

// VerifyRequest is the body the checkout widget hands back after payment
type VerifyRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature        string `json:"razorpay_signature" validate:"required"`
}

// VerifyResult is returned by VerifyPayment
type VerifyResult struct {
	Order   *model.Order
	Booking *model.Booking
	// AlreadyPaid is set when the order had been settled before this call
	AlreadyPaid bool
}

// VerifyPayment checks the checkout signature for the caller's order and
// records the booking. Calling it again for a paid order returns the
// existing booking.
func (s *Service) VerifyPayment(ctx context.Context, id *identity.Identity, reference string, req VerifyRequest) (*VerifyResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !s.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	order, err := s.orders.GetOrderByReference(ctx, reference)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.UserID != id.UserID {
		return nil, ErrOrderNotFound
	}

	if order.Status == model.OrderStatusPaid {
		booking, err := s.orders.GetBookingByOrderID(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load booking: %w", err)
		}
		return &VerifyResult{Order: order, Booking: booking, AlreadyPaid: true}, nil
	}

	if req.GatewayOrderID != order.GatewayOrderID {
		return nil, ErrOrderMismatch
	}

	event := audit.PaymentEvent{
		UserID:           id.UserID,
		ClientIP:         id.ClientIP,
		Reference:        order.Reference,
		GatewayPaymentID: req.GatewayPaymentID,
		Source:           sourceVerify,
	}

	if !s.gateway.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		failed := &model.Payment{
			GatewayPaymentID: req.GatewayPaymentID,
			GatewaySignature: req.Signature,
			AmountMinor:      order.AmountMinor,
			Currency:         order.Currency,
			Status:           model.PaymentStatusFailed,
			ErrorDescription: "signature mismatch",
		}
		if err := s.orders.RecordFailedPayment(ctx, order, failed); err != nil {
			logging.FromContext(ctx).Error("failed to record rejected payment", zap.String("reference", order.Reference), zap.Error(err))
		}
		s.metrics.Payment(OutcomeSignatureMismatch)
		event.ErrorMessage = "signature mismatch"
		s.audit(event)
		return nil, ErrSignatureMismatch
	}

	payment := &model.Payment{
		GatewayPaymentID: req.GatewayPaymentID,
		GatewaySignature: req.Signature,
		AmountMinor:      order.AmountMinor,
		Currency:         order.Currency,
		Status:           model.PaymentStatusCaptured,
	}
	if err := s.applyGatewayDetails(ctx, order, payment); err != nil {
		event.ErrorMessage = payment.ErrorDescription
		s.audit(event)
		return nil, err
	}
	booking, already, err := s.complete(ctx, order, payment, event)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Order: order, Booking: booking, AlreadyPaid: already}, nil
}

// applyGatewayDetails copies the payment method from the gateway's record of
// the payment. The signature already proves the payment, so a failed lookup
// only costs the method. A gateway record for another order or amount fails
// the payment.
func (s *Service) applyGatewayDetails(ctx context.Context, order *model.Order, payment *model.Payment) error {
	remote, err := s.gateway.FetchPayment(ctx, payment.GatewayPaymentID)
	if err != nil {
		logging.FromContext(ctx).Warn("failed to fetch payment details",
			zap.String("reference", order.Reference),
			zap.String("payment", payment.GatewayPaymentID),
			zap.Error(err))
		return nil
	}
	payment.Method = remote.Method

	if remote.OrderID == order.GatewayOrderID && remote.Amount == order.AmountMinor {
		return nil
	}
	payment.Status = model.PaymentStatusFailed
	payment.AmountMinor = remote.Amount
	payment.ErrorDescription = fmt.Sprintf("gateway reports order %s amount %d, expected order %s amount %d",
		remote.OrderID, remote.Amount, order.GatewayOrderID, order.AmountMinor)
	if err := s.orders.RecordFailedPayment(ctx, order, payment); err != nil {
		logging.FromContext(ctx).Error("failed to record rejected payment", zap.String("reference", order.Reference), zap.Error(err))
	}
	s.metrics.Payment(OutcomeFailed)
	return ErrSignatureMismatch
}

// complete settles an order. When another request settled it first the
// existing booking is returned with already set.
func (s *Service) complete(ctx context.Context, order *model.Order, payment *model.Payment, event audit.PaymentEvent) (*model.Booking, bool, error) {
	logger := logging.FromContext(ctx)

	booking := &model.Booking{
		Reference:  NewBookingReference(),
		UserID:     order.UserID,
		PackageID:  order.PackageID,
		TravelDate: order.TravelDate,
		Travellers: order.Travellers,
		Snapshot:   datatypes.NewJSONType(snapshot(order)),
	}

	err := s.orders.CompletePayment(ctx, order, payment, booking)
	if errors.Is(err, store.ErrAlreadySettled) {
		existing, lookupErr := s.orders.GetBookingByOrderID(ctx, order.ID)
		if lookupErr != nil {
			return nil, false, fmt.Errorf("failed to load booking: %w", lookupErr)
		}
		order.Status = model.OrderStatusPaid
		return existing, true, nil
	}
	if errors.Is(err, store.ErrConflict) {
		event.ErrorMessage = err.Error()
		s.audit(event)
		return nil, false, fmt.Errorf("%w: %v", ErrOrderMismatch, err)
	}
	if err != nil {
		event.ErrorMessage = err.Error()
		s.audit(event)
		return nil, false, fmt.Errorf("failed to record payment: %w", err)
	}

	s.metrics.Payment(OutcomeCaptured)
	event.Success = true
	s.audit(event)
	logger.Info("payment captured",
		zap.String("reference", order.Reference),
		zap.String("booking", booking.Reference),
		zap.String("source", event.Source))

	s.sendConfirmation(ctx, order, booking)
	return booking, false, nil
}

func (s *Service) sendConfirmation(ctx context.Context, order *model.Order, booking *model.Booking) {
	if s.notifier == nil {
		return
	}
	snap := booking.Snapshot.Data()
	data := mailer.BookingConfirmation{
		Name:         order.ContactName,
		Reference:    booking.Reference,
		OrderRef:     order.Reference,
		PackageTitle: snap.PackageTitle,
		Destination:  snap.DestinationName,
		TravelDate:   time.Time(order.TravelDate).Format(validation.DateLayout),
		Travellers:   order.Travellers,
		DurationDays: snap.DurationDays,
		Amount:       model.FormatMinor(order.AmountMinor),
		Currency:     order.Currency,
	}
	// failures are logged and counted by the notifier
	_ = s.notifier.Notify(ctx, mailer.TemplateBookingConfirmation, data, order.ContactEmail)
}

func snapshot(order *model.Order) model.BookingSnapshot {
	snap := model.BookingSnapshot{
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
	}
	if order.Travellers > 0 {
		snap.UnitPriceMinor = order.AmountMinor / int64(order.Travellers)
	}
	if p := order.Package; p != nil {
		snap.PackageSlug = p.Slug
		snap.PackageTitle = p.Title
		snap.DurationDays = p.DurationDays
		if p.Destination != nil {
			snap.DestinationName = p.Destination.Name
		}
	}
	return snap
}

// WebhookOutcome describes what HandleWebhook did with an event
type WebhookOutcome string

const (
	WebhookProcessed WebhookOutcome = "processed"
	WebhookIgnored   WebhookOutcome = "ignored"
)

// HandleWebhook authenticates a gateway webhook and applies it
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (WebhookOutcome, error) {
	if !s.Enabled() {
		return "", ErrPaymentsDisabled
	}
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		s.metrics.Payment(OutcomeSignatureMismatch)
		return "", ErrSignatureMismatch
	}

	ev, err := razorpay.ParseWebhook(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	logger := logging.FromContext(ctx).With(zap.String("event", ev.Event))

	switch ev.Event {
	case razorpay.EventPaymentCaptured, razorpay.EventOrderPaid, razorpay.EventPaymentFailed:
	default:
		logger.Debug("ignoring webhook event")
		return WebhookIgnored, nil
	}

	entity := ev.PaymentEntity()
	gatewayOrderID := ev.GatewayOrderID()
	if entity == nil || entity.ID == "" || gatewayOrderID == "" {
		logger.Warn("webhook event without payment entity")
		return WebhookIgnored, nil
	}

	order, err := s.orders.GetOrderByGatewayID(ctx, gatewayOrderID)
	if errors.Is(err, store.ErrNotFound) {
		logger.Info("webhook for unknown order", zap.String("gateway_order_id", gatewayOrderID))
		return WebhookIgnored, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load order: %w", err)
	}
	if order.Status == model.OrderStatusPaid {
		return WebhookIgnored, nil
	}

	event := audit.PaymentEvent{
		UserID:           order.UserID,
		Reference:        order.Reference,
		GatewayPaymentID: entity.ID,
		Source:           sourceWebhook,
	}
	payment := &model.Payment{
		GatewayPaymentID: entity.ID,
		AmountMinor:      entity.Amount,
		Currency:         entity.Currency,
		Method:           entity.Method,
		ErrorDescription: entity.ErrorDescription,
	}

	if ev.Event == razorpay.EventPaymentFailed || entity.Amount != order.AmountMinor {
		if ev.Event != razorpay.EventPaymentFailed {
			payment.ErrorDescription = fmt.Sprintf("amount %d does not match order amount %d", entity.Amount, order.AmountMinor)
		}
		payment.Status = model.PaymentStatusFailed
		if err := s.orders.RecordFailedPayment(ctx, order, payment); err != nil {
			return "", fmt.Errorf("failed to record failed payment: %w", err)
		}
		s.metrics.Payment(OutcomeFailed)
		event.ErrorMessage = payment.ErrorDescription
		s.audit(event)
		return WebhookProcessed, nil
	}

	payment.Status = model.PaymentStatusCaptured
	if _, _, err := s.complete(ctx, order, payment, event); err != nil {
		return "", err
	}
	return WebhookProcessed, nil
}
