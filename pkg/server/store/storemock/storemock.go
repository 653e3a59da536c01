// Package storemock provides testify mocks of the store interfaces.
package storemock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

var (
	_ store.HealthStore  = (*HealthStore)(nil)
	_ store.UsersStore   = (*UsersStore)(nil)
	_ store.CatalogStore = (*CatalogStore)(nil)
	_ store.BlogStore    = (*BlogStore)(nil)
	_ store.LeadsStore   = (*LeadsStore)(nil)
	_ store.OrdersStore  = (*OrdersStore)(nil)
)

// HealthStore implements store.HealthStore for testing using testify/mock
type HealthStore struct {
	mock.Mock
}

func (m *HealthStore) CheckConnectivity(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// UsersStore implements store.UsersStore for testing using testify/mock
type UsersStore struct {
	mock.Mock
}

func (m *UsersStore) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *UsersStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	return user(args, 0), args.Error(1)
}

func (m *UsersStore) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	return user(args, 0), args.Error(1)
}

func (m *UsersStore) LinkOAuth(ctx context.Context, userID uint, provider, subject string) error {
	return m.Called(ctx, userID, provider, subject).Error(0)
}

// CatalogStore implements store.CatalogStore for testing using testify/mock
type CatalogStore struct {
	mock.Mock
}

func (m *CatalogStore) ListDestinations(ctx context.Context, f store.DestinationFilter) ([]model.Destination, int64, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.Destination)
	return out, int64(args.Int(1)), args.Error(2)
}

func (m *CatalogStore) GetDestinationBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	args := m.Called(ctx, slug)
	out, _ := args.Get(0).(*model.Destination)
	return out, args.Error(1)
}

func (m *CatalogStore) GetDestination(ctx context.Context, id uint) (*model.Destination, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Destination)
	return out, args.Error(1)
}

func (m *CatalogStore) CreateDestination(ctx context.Context, d *model.Destination) error {
	args := m.Called(ctx, d)
	if args.Error(0) == nil && d.ID == 0 {
		d.ID = 1
	}
	return args.Error(0)
}

func (m *CatalogStore) UpdateDestination(ctx context.Context, d *model.Destination) error {
	return m.Called(ctx, d).Error(0)
}

func (m *CatalogStore) DeleteDestination(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CatalogStore) ListPackages(ctx context.Context, f store.PackageFilter) ([]model.Package, int64, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.Package)
	return out, int64(args.Int(1)), args.Error(2)
}

func (m *CatalogStore) GetPackageBySlug(ctx context.Context, slug string) (*model.Package, error) {
	args := m.Called(ctx, slug)
	out, _ := args.Get(0).(*model.Package)
	return out, args.Error(1)
}

func (m *CatalogStore) GetPackage(ctx context.Context, id uint) (*model.Package, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.Package)
	return out, args.Error(1)
}

func (m *CatalogStore) CreatePackage(ctx context.Context, p *model.Package) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil && p.ID == 0 {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *CatalogStore) UpdatePackage(ctx context.Context, p *model.Package) error {
	return m.Called(ctx, p).Error(0)
}

func (m *CatalogStore) DeletePackage(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// BlogStore implements store.BlogStore for testing using testify/mock
type BlogStore struct {
	mock.Mock
}

func (m *BlogStore) ListPosts(ctx context.Context, f store.PostFilter) ([]model.BlogPost, int64, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.BlogPost)
	return out, int64(args.Int(1)), args.Error(2)
}

func (m *BlogStore) GetPublishedPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	out, _ := args.Get(0).(*model.BlogPost)
	return out, args.Error(1)
}

func (m *BlogStore) GetPost(ctx context.Context, id uint) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*model.BlogPost)
	return out, args.Error(1)
}

func (m *BlogStore) CreatePost(ctx context.Context, p *model.BlogPost) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil && p.ID == 0 {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *BlogStore) UpdatePost(ctx context.Context, p *model.BlogPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *BlogStore) DeletePost(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// LeadsStore implements store.LeadsStore for testing using testify/mock
type LeadsStore struct {
	mock.Mock
}

func (m *LeadsStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	args := m.Called(ctx, lead)
	if args.Error(0) == nil && lead.ID == 0 {
		lead.ID = 1
	}
	return args.Error(0)
}

func (m *LeadsStore) ListLeads(ctx context.Context, f store.LeadFilter) ([]model.Lead, int64, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.Lead)
	return out, int64(args.Int(1)), args.Error(2)
}

func (m *LeadsStore) UpdateLeadStatus(ctx context.Context, id uint, status model.LeadStatus) (*model.Lead, error) {
	args := m.Called(ctx, id, status)
	out, _ := args.Get(0).(*model.Lead)
	return out, args.Error(1)
}

func (m *LeadsStore) Subscribe(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *LeadsStore) ListSubscribers(ctx context.Context, p store.Page) ([]model.Subscriber, int64, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).([]model.Subscriber)
	return out, int64(args.Int(1)), args.Error(2)
}

// OrdersStore implements store.OrdersStore for testing using testify/mock
type OrdersStore struct {
	mock.Mock
}

func (m *OrdersStore) CreateOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil && order.ID == 0 {
		order.ID = 1
	}
	return args.Error(0)
}

func (m *OrdersStore) FindPendingOrder(ctx context.Context, userID, packageID uint, travelDate time.Time, since time.Time) (*model.Order, error) {
	args := m.Called(ctx, userID, packageID, travelDate, since)
	out, _ := args.Get(0).(*model.Order)
	return out, args.Error(1)
}

func (m *OrdersStore) GetOrderByReference(ctx context.Context, reference string) (*model.Order, error) {
	args := m.Called(ctx, reference)
	out, _ := args.Get(0).(*model.Order)
	return out, args.Error(1)
}

func (m *OrdersStore) GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	args := m.Called(ctx, gatewayOrderID)
	out, _ := args.Get(0).(*model.Order)
	return out, args.Error(1)
}

func (m *OrdersStore) ListOrders(ctx context.Context, f store.OrderFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]model.Order)
	return out, int64(args.Int(1)), args.Error(2)
}

func (m *OrdersStore) RecordFailedPayment(ctx context.Context, order *model.Order, payment *model.Payment) error {
	return m.Called(ctx, order, payment).Error(0)
}

func (m *OrdersStore) CompletePayment(ctx context.Context, order *model.Order, payment *model.Payment, booking *model.Booking) error {
	args := m.Called(ctx, order, payment, booking)
	if args.Error(0) == nil {
		order.Status = model.OrderStatusPaid
		payment.OrderID = order.ID
		booking.OrderID = order.ID
	}
	return args.Error(0)
}

func (m *OrdersStore) GetBookingByOrderID(ctx context.Context, orderID uint) (*model.Booking, error) {
	args := m.Called(ctx, orderID)
	out, _ := args.Get(0).(*model.Booking)
	return out, args.Error(1)
}

func (m *OrdersStore) ListBookings(ctx context.Context, userID uint, p store.Page) ([]model.Booking, int64, error) {
	args := m.Called(ctx, userID, p)
	out, _ := args.Get(0).([]model.Booking)
	return out, int64(args.Int(1)), args.Error(2)
}

func user(args mock.Arguments, i int) *model.User {
	out, _ := args.Get(i).(*model.User)
	return out
}
