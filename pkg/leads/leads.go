package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/pkg/audit"
	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/mailer"
	"github.com/tripdesk/tripdesk/pkg/metrics"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

var ErrRateLimited = errors.New("too many requests, please try again later")

// Notifier sends templated email
type Notifier interface {
	Notify(ctx context.Context, name string, data any, to ...string) error
	NotifyWithReplyTo(ctx context.Context, name string, data any, replyTo string, to ...string) error
}

// ContactRequest is the body of POST /contact
type ContactRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Subject     string `json:"subject" validate:"max=200"`
	Message     string `json:"message" validate:"required,min=10,max=5000"`
	Source      string `json:"source" validate:"omitempty,oneof=contact package flight"`
	PackageSlug string `json:"package_slug" validate:"omitempty,slug"`
}

// NewsletterRequest is the body of POST /newsletter
type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// Service captures contact form leads and newsletter signups
type Service struct {
	leads      store.LeadsStore
	catalog    store.CatalogStore
	notifier   Notifier
	metrics    *metrics.Metrics
	limiter    *IPLimiter
	adminEmail string

	audit func(audit.Event)
}

func NewService(leads store.LeadsStore, catalog store.CatalogStore, notifier Notifier, mx *metrics.Metrics, limiter *IPLimiter, adminEmail string) *Service {
	return &Service{
		leads:      leads,
		catalog:    catalog,
		notifier:   notifier,
		metrics:    mx,
		limiter:    limiter,
		adminEmail: adminEmail,
		audit:      audit.Log,
	}
}

// Submit stores a contact form lead and notifies the visitor and the sales
// inbox. Email failures do not fail the submission.
func (s *Service) Submit(ctx context.Context, clientIP string, req ContactRequest) (*model.Lead, error) {
	if !s.limiter.Allow(clientIP) {
		return nil, ErrRateLimited
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	req.PackageSlug = strings.TrimSpace(req.PackageSlug)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	source := model.LeadSourceContact
	if req.PackageSlug != "" {
		source = model.LeadSourcePackage
	}
	if req.Source != "" {
		source, _ = model.LeadSourceString(req.Source)
	}

	lead := &model.Lead{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		Source:   source,
		Status:   model.LeadStatusNew,
		ClientIP: clientIP,
	}

	var pkgTitle string
	if req.PackageSlug != "" {
		pkg, err := s.catalog.GetPackageBySlug(ctx, req.PackageSlug)
		if errors.Is(err, store.ErrNotFound) {
			return nil, validation.Errors{"package_slug": "unknown package"}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load package: %w", err)
		}
		lead.PackageID = &pkg.ID
		pkgTitle = pkg.Title
	}

	if err := s.leads.CreateLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	s.metrics.Lead(source.String())
	s.audit(audit.LeadEvent{LeadID: lead.ID, Source: source.String(), ClientIP: clientIP})
	logging.FromContext(ctx).Info("lead captured", zap.Uint("lead_id", lead.ID), zap.String("source", source.String()))

	s.notify(ctx, lead, pkgTitle)
	return lead, nil
}

func (s *Service) notify(ctx context.Context, lead *model.Lead, pkgTitle string) {
	if s.notifier == nil {
		return
	}

	// failures are logged and counted by the notifier
	_ = s.notifier.Notify(ctx, mailer.TemplateContactAck, mailer.ContactAck{
		Name:    lead.Name,
		Subject: lead.Subject,
		Message: lead.Message,
	}, lead.Email)

	if s.adminEmail == "" {
		return
	}
	_ = s.notifier.NotifyWithReplyTo(ctx, mailer.TemplateLeadNotification, mailer.LeadNotification{
		LeadID:  lead.ID,
		Name:    lead.Name,
		Email:   lead.Email,
		Phone:   lead.Phone,
		Source:  lead.Source.String(),
		Package: pkgTitle,
		Subject: lead.Subject,
		Message: lead.Message,
	}, lead.Email, s.adminEmail)
}

// Subscribe adds an email to the newsletter list. created is false when it
// was already subscribed.
func (s *Service) Subscribe(ctx context.Context, req NewsletterRequest) (created bool, err error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Struct(req); err != nil {
		return false, err
	}
	created, err = s.leads.Subscribe(ctx, req.Email)
	if err != nil {
		return false, fmt.Errorf("failed to subscribe: %w", err)
	}
	return created, nil
}

// ListLeads returns leads newest first, optionally filtered by status
func (s *Service) ListLeads(ctx context.Context, status *model.LeadStatus, p store.Page) ([]model.Lead, int64, error) {
	return s.leads.ListLeads(ctx, store.LeadFilter{Status: status, Page: p})
}

// UpdateStatus moves a lead through the sales pipeline
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*model.Lead, error) {
	st, err := model.LeadStatusString(status)
	if err != nil {
		return nil, validation.Errors{"status": "must be one of: " + strings.Join(model.LeadStatusStrings(), ", ")}
	}
	return s.leads.UpdateLeadStatus(ctx, id, st)
}

// ListSubscribers returns newsletter subscribers newest first
func (s *Service) ListSubscribers(ctx context.Context, p store.Page) ([]model.Subscriber, int64, error) {
	return s.leads.ListSubscribers(ctx, p)
}
