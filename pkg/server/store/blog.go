package store

import (
	"context"

	"github.com/tripdesk/tripdesk/pkg/model"
)

// PostFilter narrows a blog listing
type PostFilter struct {
	Tag string
	// Status limits results to one status; nil returns every status
	Status *model.PostStatus
	Page
}

// BlogStore abstracts blog post storage
type BlogStore interface {
	// ListPosts returns posts newest first (by published_at, then created_at)
	ListPosts(ctx context.Context, f PostFilter) ([]model.BlogPost, int64, error)

	// GetPublishedPost returns ErrNotFound for drafts and archived posts
	GetPublishedPost(ctx context.Context, slug string) (*model.BlogPost, error)

	GetPost(ctx context.Context, id uint) (*model.BlogPost, error)
	CreatePost(ctx context.Context, p *model.BlogPost) error
	UpdatePost(ctx context.Context, p *model.BlogPost) error
	DeletePost(ctx context.Context, id uint) error
}
