package leads

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/pkg/audit"
	"github.com/tripdesk/tripdesk/pkg/mailer"
	"github.com/tripdesk/tripdesk/pkg/metrics"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/server/store/storemock"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, name string, data any, to ...string) error {
	return m.Called(ctx, name, data, to).Error(0)
}

func (m *mockNotifier) NotifyWithReplyTo(ctx context.Context, name string, data any, replyTo string, to ...string) error {
	return m.Called(ctx, name, data, replyTo, to).Error(0)
}

func newTestService(leads *storemock.LeadsStore, catalog *storemock.CatalogStore, n *mockNotifier, perMinute int) (*Service, *[]audit.Event) {
	var events []audit.Event
	s := NewService(leads, catalog, n, metrics.New(), NewIPLimiter(perMinute), "sales@tripdesk.example")
	s.audit = func(e audit.Event) { events = append(events, e) }
	return s, &events
}

func contact() ContactRequest {
	return ContactRequest{
		Name:    " Asha ",
		Email:   "Asha@Example.com",
		Subject: "Honeymoon",
		Message: "We would like a quote for two people in December.",
	}
}

func TestSubmit(t *testing.T) {
	leads := &storemock.LeadsStore{}
	n := &mockNotifier{}
	leads.On("CreateLead", mock.Anything, mock.MatchedBy(func(l *model.Lead) bool {
		return l.Name == "Asha" && l.Email == "asha@example.com" && l.Status == model.LeadStatusNew &&
			l.Source == model.LeadSourceContact && l.ClientIP == "10.0.0.1"
	})).Return(nil)
	n.On("Notify", mock.Anything, mailer.TemplateContactAck, mock.Anything, []string{"asha@example.com"}).Return(nil)
	n.On("NotifyWithReplyTo", mock.Anything, mailer.TemplateLeadNotification, mock.Anything,
		"asha@example.com", []string{"sales@tripdesk.example"}).Return(nil)

	s, events := newTestService(leads, &storemock.CatalogStore{}, n, 5)
	lead, err := s.Submit(context.Background(), "10.0.0.1", contact())
	require.NoError(t, err)
	assert.Equal(t, uint(1), lead.ID)

	require.Len(t, *events, 1)
	assert.Equal(t, "contact", (*events)[0].(audit.LeadEvent).Source)
	n.AssertExpectations(t)
}

func TestSubmitMailFailureStillSucceeds(t *testing.T) {
	leads := &storemock.LeadsStore{}
	n := &mockNotifier{}
	leads.On("CreateLead", mock.Anything, mock.Anything).Return(nil)
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	n.On("NotifyWithReplyTo", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	s, _ := newTestService(leads, &storemock.CatalogStore{}, n, 5)
	_, err := s.Submit(context.Background(), "10.0.0.1", contact())
	assert.NoError(t, err)
}

func TestSubmitWithPackage(t *testing.T) {
	leads := &storemock.LeadsStore{}
	catalog := &storemock.CatalogStore{}
	n := &mockNotifier{}

	catalog.On("GetPackageBySlug", mock.Anything, "kerala-backwaters").Return(&model.Package{ID: 3, Title: "Kerala Backwaters"}, nil)
	catalog.On("GetPackageBySlug", mock.Anything, "atlantis").Return(nil, store.ErrNotFound)
	leads.On("CreateLead", mock.Anything, mock.MatchedBy(func(l *model.Lead) bool {
		return l.Source == model.LeadSourcePackage && l.PackageID != nil && *l.PackageID == 3
	})).Return(nil)
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	n.On("NotifyWithReplyTo", mock.Anything, mailer.TemplateLeadNotification, mock.MatchedBy(func(d mailer.LeadNotification) bool {
		return d.Package == "Kerala Backwaters"
	}), mock.Anything, mock.Anything).Return(nil)

	s, _ := newTestService(leads, catalog, n, 5)

	req := contact()
	req.PackageSlug = "kerala-backwaters"
	_, err := s.Submit(context.Background(), "10.0.0.1", req)
	require.NoError(t, err)

	req.PackageSlug = "atlantis"
	_, err = s.Submit(context.Background(), "10.0.0.1", req)
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "unknown package", fields["package_slug"])
}

func TestSubmitValidation(t *testing.T) {
	s, _ := newTestService(&storemock.LeadsStore{}, &storemock.CatalogStore{}, &mockNotifier{}, 5)

	_, err := s.Submit(context.Background(), "10.0.0.1", ContactRequest{
		Email:   "bad",
		Phone:   "abc",
		Message: "short",
		Source:  "billboard",
	})
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	for _, f := range []string{"name", "email", "phone", "message", "source"} {
		assert.Contains(t, fields, f)
	}

	req := contact()
	req.Message = strings.Repeat("x", 5001)
	_, err = s.Submit(context.Background(), "10.0.0.2", req)
	fields, ok = validation.AsErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "message")
}

func TestSubmitRateLimited(t *testing.T) {
	leads := &storemock.LeadsStore{}
	n := &mockNotifier{}
	leads.On("CreateLead", mock.Anything, mock.Anything).Return(nil)
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	n.On("NotifyWithReplyTo", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	s, _ := newTestService(leads, &storemock.CatalogStore{}, n, 2)

	for i := 0; i < 2; i++ {
		_, err := s.Submit(context.Background(), "10.0.0.1", contact())
		require.NoError(t, err)
	}
	_, err := s.Submit(context.Background(), "10.0.0.1", contact())
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = s.Submit(context.Background(), "10.0.0.9", contact())
	assert.NoError(t, err)
}

func TestSubscribe(t *testing.T) {
	leads := &storemock.LeadsStore{}
	leads.On("Subscribe", mock.Anything, "reader@example.com").Return(true, nil).Once()
	leads.On("Subscribe", mock.Anything, "reader@example.com").Return(false, nil).Once()

	s, _ := newTestService(leads, &storemock.CatalogStore{}, &mockNotifier{}, 5)

	created, err := s.Subscribe(context.Background(), NewsletterRequest{Email: " Reader@Example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Subscribe(context.Background(), NewsletterRequest{Email: "reader@example.com"})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = s.Subscribe(context.Background(), NewsletterRequest{Email: "nope"})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)
}

func TestUpdateStatus(t *testing.T) {
	leads := &storemock.LeadsStore{}
	leads.On("UpdateLeadStatus", mock.Anything, uint(4), model.LeadStatusConverted).
		Return(&model.Lead{ID: 4, Status: model.LeadStatusConverted}, nil)

	s, _ := newTestService(leads, &storemock.CatalogStore{}, &mockNotifier{}, 5)

	lead, err := s.UpdateStatus(context.Background(), 4, "converted")
	require.NoError(t, err)
	assert.Equal(t, model.LeadStatusConverted, lead.Status)

	_, err = s.UpdateStatus(context.Background(), 4, "lost")
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields["status"], "contacted")
}

func TestIPLimiter(t *testing.T) {
	l := NewIPLimiter(1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("a"))

	now = now.Add(idleTimeout + time.Second)
	assert.True(t, l.Allow("c"))
	assert.Equal(t, 1, l.size())

	unlimited := NewIPLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, unlimited.Allow("a"))
	}
	var nilLimiter *IPLimiter
	assert.True(t, nilLimiter.Allow("a"))
}
