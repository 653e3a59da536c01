package gorm

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

var _ store.LeadsStore = (*LeadsStore)(nil)

// LeadsStore implements store.LeadsStore using GORM
type LeadsStore struct {
	db *gorm.DB
}

func NewLeadsStore(db *gorm.DB) *LeadsStore {
	return &LeadsStore{db: db}
}

func (s *LeadsStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	return translate(s.db.WithContext(ctx).Create(lead).Error)
}

func (s *LeadsStore) ListLeads(ctx context.Context, f store.LeadFilter) ([]model.Lead, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Lead{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var out []model.Lead
	total, err := paginate(q, f.Page, "created_at DESC, id DESC", &out)
	return out, total, err
}

func (s *LeadsStore) UpdateLeadStatus(ctx context.Context, id uint, status model.LeadStatus) (*model.Lead, error) {
	res := s.db.WithContext(ctx).Model(&model.Lead{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	var lead model.Lead
	if err := s.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return nil, translate(err)
	}
	return &lead, nil
}

func (s *LeadsStore) Subscribe(ctx context.Context, email string) (bool, error) {
	sub := model.Subscriber{Email: strings.ToLower(email)}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&sub)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *LeadsStore) ListSubscribers(ctx context.Context, p store.Page) ([]model.Subscriber, int64, error) {
	var out []model.Subscriber
	total, err := paginate(s.db.WithContext(ctx).Model(&model.Subscriber{}), p, "created_at DESC, id DESC", &out)
	return out, total, err
}
