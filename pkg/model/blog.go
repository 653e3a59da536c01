package model

import (
	"time"

	"gorm.io/datatypes"
)

type BlogPost struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Slug        string                      `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string                      `gorm:"not null" json:"title"`
	Excerpt     string                      `json:"excerpt"`
	Body        string                      `json:"body"`
	BodyHTML    string                      `gorm:"column:body_html" json:"body_html"`
	AuthorID    *uint                       `json:"author_id,omitempty"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Status      PostStatus                  `gorm:"type:text;not null" json:"status"`
	PublishedAt *time.Time                  `json:"published_at,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// Publish marks the post published, keeping the original publication time on republish
func (p *BlogPost) Publish(now time.Time) {
	p.Status = PostStatusPublished
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}
