package gorm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

var _ store.OrdersStore = (*OrdersStore)(nil)

// OrdersStore implements store.OrdersStore using GORM
type OrdersStore struct {
	db *gorm.DB
}

func NewOrdersStore(db *gorm.DB) *OrdersStore {
	return &OrdersStore{db: db}
}

func (s *OrdersStore) CreateOrder(ctx context.Context, order *model.Order) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

func (s *OrdersStore) FindPendingOrder(ctx context.Context, userID, packageID uint, travelDate time.Time, since time.Time) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND package_id = ? AND travel_date = ? AND status = ? AND created_at >= ?",
			userID, packageID, datatypes.Date(travelDate), model.OrderStatusCreated, since).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrdersStore) GetOrderByReference(ctx context.Context, reference string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Package.Destination").
		Where("reference = ?", reference).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrdersStore) GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Package.Destination").
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrdersStore) ListOrders(ctx context.Context, f store.OrderFilter) ([]model.Order, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Order{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var out []model.Order
	total, err := paginate(q.Preload("Package"), f.Page, "created_at DESC, id DESC", &out)
	return out, total, err
}

func (s *OrdersStore) RecordFailedPayment(ctx context.Context, order *model.Order, payment *model.Payment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment.OrderID = order.ID
		err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "gateway_payment_id"}}, DoNothing: true}).
			Create(payment).Error
		if err != nil {
			return err
		}
		return tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", order.ID, model.OrderStatusCreated).
			Update("status", model.OrderStatusFailed).Error
	})
	if err != nil {
		return translate(err)
	}
	if order.Status == model.OrderStatusCreated {
		order.Status = model.OrderStatusFailed
	}
	return nil
}

func (s *OrdersStore) CompletePayment(ctx context.Context, order *model.Order, payment *model.Payment, booking *model.Booking) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status <> ?", order.ID, model.OrderStatusPaid).
			Update("status", model.OrderStatusPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrAlreadySettled
		}

		payment.OrderID = order.ID
		res = tx.Clauses(settlePayment(order.ID)).Create(payment)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: payment %s is recorded against another order", store.ErrConflict, payment.GatewayPaymentID)
		}
		booking.OrderID = order.ID
		return tx.Create(booking).Error
	})
	if err != nil {
		return translate(err)
	}
	order.Status = model.OrderStatusPaid
	return nil
}

// settlePayment turns a failed attempt with the same gateway payment id into
// the captured payment, as long as it was recorded for the same order.
func settlePayment(orderID uint) clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "gateway_payment_id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "payments", Name: "order_id"}, Value: orderID},
		}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "amount_minor", "currency", "method", "error_description", "gateway_signature",
		}),
	}
}

func (s *OrdersStore) GetBookingByOrderID(ctx context.Context, orderID uint) (*model.Booking, error) {
	var booking model.Booking
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&booking).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *OrdersStore) ListBookings(ctx context.Context, userID uint, p store.Page) ([]model.Booking, int64, error) {
	var out []model.Booking
	q := s.db.WithContext(ctx).Model(&model.Booking{}).Where("user_id = ?", userID)
	total, err := paginate(q, p, "created_at DESC, id DESC", &out)
	return out, total, err
}
