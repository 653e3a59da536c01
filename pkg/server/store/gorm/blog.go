package gorm

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

var _ store.BlogStore = (*BlogStore)(nil)

// BlogStore implements store.BlogStore using GORM
type BlogStore struct {
	db *gorm.DB
}

func NewBlogStore(db *gorm.DB) *BlogStore {
	return &BlogStore{db: db}
}

func (s *BlogStore) ListPosts(ctx context.Context, f store.PostFilter) ([]model.BlogPost, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.BlogPost{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Tag != "" {
		q = q.Where("tags @> ?", datatypes.JSONSlice[string]{f.Tag})
	}

	var out []model.BlogPost
	total, err := paginate(q, f.Page, "published_at DESC NULLS LAST, created_at DESC", &out)
	return out, total, err
}

func (s *BlogStore) GetPublishedPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	var p model.BlogPost
	err := s.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, model.PostStatusPublished).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *BlogStore) GetPost(ctx context.Context, id uint) (*model.BlogPost, error) {
	var p model.BlogPost
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *BlogStore) CreatePost(ctx context.Context, p *model.BlogPost) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *BlogStore) UpdatePost(ctx context.Context, p *model.BlogPost) error {
	return translate(s.db.WithContext(ctx).Save(p).Error)
}

func (s *BlogStore) DeletePost(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.BlogPost{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
