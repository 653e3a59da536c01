package store

import (
	"context"
	"time"

	"github.com/tripdesk/tripdesk/pkg/model"
)

// OrderFilter narrows an order listing
type OrderFilter struct {
	// UserID limits results to one customer; zero lists every order
	UserID uint
	Status *model.OrderStatus
	Page
}

// OrdersStore abstracts orders, payments and bookings
type OrdersStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error

	// FindPendingOrder returns the newest order in status created for the same
	// user, package and travel date created at or after since.
	// Returns ErrNotFound when there is none.
	FindPendingOrder(ctx context.Context, userID, packageID uint, travelDate time.Time, since time.Time) (*model.Order, error)

	// GetOrderByReference loads an order with its package
	GetOrderByReference(ctx context.Context, reference string) (*model.Order, error)

	GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (*model.Order, error)

	// ListOrders returns orders newest first
	ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, int64, error)

	// RecordFailedPayment stores a failed payment and marks a created order failed
	RecordFailedPayment(ctx context.Context, order *model.Order, payment *model.Payment) error

	// CompletePayment stores the payment, marks the order paid and creates the
	// booking in one transaction. A payment id previously recorded as failed for
	// the same order is upgraded in place. Returns ErrAlreadySettled if the order
	// is already paid and ErrConflict if the payment id belongs to another order.
	CompletePayment(ctx context.Context, order *model.Order, payment *model.Payment, booking *model.Booking) error

	GetBookingByOrderID(ctx context.Context, orderID uint) (*model.Booking, error)

	// ListBookings returns a customer's bookings newest first
	ListBookings(ctx context.Context, userID uint, p Page) ([]model.Booking, int64, error)
}
