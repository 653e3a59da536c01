package gorm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestHealthStore_CheckConnectivity(t *testing.T) {
	db, mock := setupTestDB(t)
	mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewHealthStore(db).CheckConnectivity(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_GetUserByEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewUsersStore(db)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "role"}).
		AddRow(7, "asha@example.com", "Asha", "customer")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(rows)

	user, err := s.GetUserByEmail(context.Background(), "Asha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, model.UserRoleCustomer, user.Role)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = s.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_CreateUserConflict(t *testing.T) {
	db, mock := setupTestDB(t)
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(gorm.ErrDuplicatedKey)

	err := NewUsersStore(db).CreateUser(context.Background(), &model.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_ListDestinations(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewCatalogStore(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "destinations" WHERE region = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "destinations" WHERE region = \$1 ORDER BY featured DESC, name ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name"}).
			AddRow(1, "kerala", "Kerala").
			AddRow(2, "goa", "Goa"))

	out, total, err := s.ListDestinations(context.Background(), store.DestinationFilter{
		Region: "south-india",
		Page:   store.Page{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, out, 2)
	assert.Equal(t, "kerala", out[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_ListDestinationsEmptySkipsPage(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "destinations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	out, total, err := NewCatalogStore(db).ListDestinations(context.Background(), store.DestinationFilter{Page: store.Page{Limit: 10}})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_DeleteDestinationWithPackages(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "packages" WHERE destination_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectRollback()

	err := NewCatalogStore(db).DeleteDestination(context.Background(), 3)
	assert.ErrorIs(t, err, store.ErrHasDependents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_DeleteDestinationMissing(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM "destinations" WHERE "destinations"."id" = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewCatalogStore(db).DeleteDestination(context.Background(), 3)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogStore_DeletePackageReferencedByOrders(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectExec(`DELETE FROM "packages" WHERE "packages"."id" = \$1`).
		WithArgs(7).
		WillReturnError(gorm.ErrForeignKeyViolated)

	err := NewCatalogStore(db).DeletePackage(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrHasDependents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadsStore_Subscribe(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewLeadsStore(db)

	mock.ExpectQuery(`INSERT INTO "subscribers" .* ON CONFLICT \("email"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	created, err := s.Subscribe(context.Background(), "Reader@Example.com")
	require.NoError(t, err)
	assert.True(t, created)

	mock.ExpectQuery(`INSERT INTO "subscribers" .* ON CONFLICT \("email"\) DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	created, err = s.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.False(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadsStore_UpdateLeadStatusMissing(t *testing.T) {
	db, mock := setupTestDB(t)
	mock.ExpectExec(`UPDATE "leads" SET "status"=\$1`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := NewLeadsStore(db).UpdateLeadStatus(context.Background(), 42, model.LeadStatusContacted)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersStore_FindPendingOrder(t *testing.T) {
	db, mock := setupTestDB(t)
	since := time.Now().Add(-time.Minute)
	travel := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE \(user_id = \$1 AND package_id = \$2 AND travel_date = \$3 AND status = \$4 AND created_at >= \$5\) ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "status"}).AddRow(9, "ref-9", "created"))

	order, err := NewOrdersStore(db).FindPendingOrder(context.Background(), 1, 2, travel, since)
	require.NoError(t, err)
	assert.Equal(t, "ref-9", order.Reference)
	assert.Equal(t, model.OrderStatusCreated, order.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersStore_CompletePayment(t *testing.T) {
	db, mock := setupTestDB(t)
	order := &model.Order{ID: 5, Status: model.OrderStatusCreated}
	payment := &model.Payment{GatewayPaymentID: "pay_1", Status: model.PaymentStatusCaptured}
	booking := &model.Booking{Reference: "TD-ABCDEF12"}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET "status"=\$1,"updated_at"=\$2 WHERE \(id = \$3 AND status <> \$4\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "payments" .* ON CONFLICT \("gateway_payment_id"\) DO UPDATE SET .*"status"="excluded"."status".* WHERE "payments"."order_id" = \$\d+ RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	err := NewOrdersStore(db).CompletePayment(context.Background(), order, payment, booking)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	assert.Equal(t, uint(5), payment.OrderID)
	assert.Equal(t, uint(5), booking.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersStore_CompletePaymentUpgradesFailedAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	order := &model.Order{ID: 5, Status: model.OrderStatusFailed}
	payment := &model.Payment{GatewayPaymentID: "pay_1", Status: model.PaymentStatusCaptured, Method: "upi"}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	// the row recorded by the rejected verify is updated in place and keeps its id
	mock.ExpectQuery(`INSERT INTO "payments" .* ON CONFLICT \("gateway_payment_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	err := NewOrdersStore(db).CompletePayment(context.Background(), order, payment, &model.Booking{Reference: "TD-ABCDEF12"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	assert.Equal(t, uint(3), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersStore_CompletePaymentIDOfAnotherOrder(t *testing.T) {
	db, mock := setupTestDB(t)
	order := &model.Order{ID: 5, Status: model.OrderStatusCreated}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "payments"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := NewOrdersStore(db).CompletePayment(context.Background(), order,
		&model.Payment{GatewayPaymentID: "pay_1", Status: model.PaymentStatusCaptured}, &model.Booking{})
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.NotErrorIs(t, err, store.ErrAlreadySettled)
	assert.Equal(t, model.OrderStatusCreated, order.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersStore_CompletePaymentAlreadyPaid(t *testing.T) {
	db, mock := setupTestDB(t)
	order := &model.Order{ID: 5, Status: model.OrderStatusCreated}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewOrdersStore(db).CompletePayment(context.Background(), order, &model.Payment{}, &model.Booking{})
	assert.ErrorIs(t, err, store.ErrAlreadySettled)
	assert.NotErrorIs(t, err, store.ErrConflict)
	assert.Equal(t, model.OrderStatusCreated, order.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), store.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), store.ErrConflict)
	assert.ErrorIs(t, translate(gorm.ErrForeignKeyViolated), store.ErrHasDependents)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%50\% off\_now%`, containsPattern("50% off_now"))
}
