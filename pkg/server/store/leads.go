package store

import (
	"context"

	"github.com/tripdesk/tripdesk/pkg/model"
)

// LeadFilter narrows a lead listing
type LeadFilter struct {
	Status *model.LeadStatus
	Page
}

// LeadsStore abstracts contact leads and newsletter subscribers
type LeadsStore interface {
	CreateLead(ctx context.Context, lead *model.Lead) error

	// ListLeads returns leads newest first
	ListLeads(ctx context.Context, f LeadFilter) ([]model.Lead, int64, error)

	UpdateLeadStatus(ctx context.Context, id uint, status model.LeadStatus) (*model.Lead, error)

	// Subscribe inserts the email unless present and reports whether it was new
	Subscribe(ctx context.Context, email string) (bool, error)

	ListSubscribers(ctx context.Context, p Page) ([]model.Subscriber, int64, error)
}
