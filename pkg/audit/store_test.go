package audit

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStoreWithDB(db), mock
}

func TestStoreSave(t *testing.T) {
	store, mock := newMockStore(t)

	event := LeadEvent{LeadID: 12, Source: "contact", ClientIP: "10.0.0.1"}

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(
			sqlmock.AnyArg(),  // occurred_at
			"lead",            // event
			FacilityUser,      // facility
			int(SeverityInfo), // severity
			"lead 12 captured from contact form",
			sqlmock.AnyArg(), // details
			sqlmock.AnyArg(), // host
			sqlmock.AnyArg(), // pid
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(event); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveFailedPayment(t *testing.T) {
	store, mock := newMockStore(t)

	event := PaymentEvent{
		UserID:           3,
		ClientIP:         "10.0.0.1",
		Reference:        "ord-1",
		GatewayPaymentID: "pay_1",
		Source:           "verify",
		ErrorMessage:     "signature mismatch",
	}

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(
			sqlmock.AnyArg(),
			"payment",
			FacilityAuthPriv,
			int(SeverityWarning),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(event); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveError(t *testing.T) {
	store, mock := newMockStore(t)
	cause := errors.New("connection refused")
	mock.ExpectExec(`INSERT INTO audit_events`).WillReturnError(cause)

	err := store.Save(LeadEvent{LeadID: 1, Source: "contact"})
	if !errors.Is(err, cause) {
		t.Fatalf("Save() error = %v, want wrapped %v", err, cause)
	}
	if !strings.Contains(err.Error(), "append lead event") {
		t.Errorf("Save() error = %q, want the event name", err)
	}
}

func TestStoreSaveGivesUpAfterDeadline(t *testing.T) {
	store, mock := newMockStore(t)
	store.deadline = 10 * time.Millisecond

	mock.ExpectExec(`INSERT INTO audit_events`).
		WillDelayFor(time.Second).
		WillReturnResult(sqlmock.NewResult(1, 1))

	start := time.Now()
	if err := store.Save(LeadEvent{LeadID: 1, Source: "contact"}); err == nil {
		t.Error("expected Save() to fail once the deadline passed")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Save() took %v, want it bounded by the deadline", elapsed)
	}
}

func TestNilStore(t *testing.T) {
	t.Setenv("TRIPDESK_AUDIT_DATABASE_URL", "")
	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if store != nil {
		t.Error("expected nil store without TRIPDESK_AUDIT_DATABASE_URL")
	}
	if err := store.Save(LeadEvent{}); err != nil {
		t.Errorf("Save() on nil store error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() on nil store error = %v", err)
	}

	empty := &Store{}
	if err := empty.Save(LeadEvent{}); err != nil {
		t.Errorf("Save() on empty store error = %v", err)
	}
}
