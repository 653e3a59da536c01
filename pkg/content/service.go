package content

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/pkg/audit"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// Audit kinds for admin content changes
const (
	KindDestination = "destination"
	KindPackage     = "package"
	KindBlogPost    = "blog_post"
)

// DestinationRequest is the admin create/update body for a destination
type DestinationRequest struct {
	Slug         string `json:"slug" validate:"omitempty,slug,max=100"`
	Name         string `json:"name" validate:"required,max=200"`
	Region       string `json:"region" validate:"max=100"`
	Country      string `json:"country" validate:"max=100"`
	Summary      string `json:"summary" validate:"max=500"`
	Description  string `json:"description" validate:"max=20000"`
	HeroImageURL string `json:"hero_image_url" validate:"omitempty,url,max=500"`
	Featured     bool   `json:"featured"`
}

// PackageRequest is the admin create/update body for a package. Price is in major units.
type PackageRequest struct {
	Slug          string   `json:"slug" validate:"omitempty,slug,max=100"`
	DestinationID uint     `json:"destination_id" validate:"required"`
	Title         string   `json:"title" validate:"required,max=200"`
	Summary       string   `json:"summary" validate:"max=500"`
	Description   string   `json:"description" validate:"max=20000"`
	DurationDays  int      `json:"duration_days" validate:"required,min=1,max=60"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	Currency      string   `json:"currency" validate:"omitempty,len=3,alpha"`
	Highlights    []string `json:"highlights" validate:"max=20,dive,max=200"`
	Active        *bool    `json:"active"`
}

// PostRequest is the admin create/update body for a blog post
type PostRequest struct {
	Slug    string   `json:"slug" validate:"omitempty,slug,max=100"`
	Title   string   `json:"title" validate:"required,max=200"`
	Excerpt string   `json:"excerpt" validate:"max=500"`
	Body    string   `json:"body" validate:"required,max=100000"`
	Tags    []string `json:"tags" validate:"max=10,dive,slug,max=50"`
}

// Service applies admin changes to destinations, packages and blog posts
type Service struct {
	catalog  store.CatalogStore
	blog     store.BlogStore
	currency string

	audit func(audit.Event)
	now   func() time.Time
}

func NewService(catalog store.CatalogStore, blog store.BlogStore, defaultCurrency string) *Service {
	if defaultCurrency == "" {
		defaultCurrency = "INR"
	}
	return &Service{
		catalog:  catalog,
		blog:     blog,
		currency: defaultCurrency,
		audit:    audit.Log,
		now:      time.Now,
	}
}

func (s *Service) CreateDestination(ctx context.Context, id *identity.Identity, req DestinationRequest) (*model.Destination, error) {
	d := &model.Destination{}
	if err := applyDestination(d, req); err != nil {
		return nil, err
	}
	err := s.catalog.CreateDestination(ctx, d)
	s.record(ctx, id, KindDestination, d.Slug, "create", err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) UpdateDestination(ctx context.Context, id *identity.Identity, destID uint, req DestinationRequest) (*model.Destination, error) {
	d, err := s.catalog.GetDestination(ctx, destID)
	if err != nil {
		return nil, err
	}
	if req.Slug == "" {
		req.Slug = d.Slug
	}
	if err := applyDestination(d, req); err != nil {
		return nil, err
	}
	err = s.catalog.UpdateDestination(ctx, d)
	s.record(ctx, id, KindDestination, d.Slug, "update", err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDestination removes a destination; it fails with store.ErrHasDependents while packages reference it
func (s *Service) DeleteDestination(ctx context.Context, id *identity.Identity, destID uint) error {
	err := s.catalog.DeleteDestination(ctx, destID)
	s.record(ctx, id, KindDestination, strconv.FormatUint(uint64(destID), 10), "delete", err)
	return err
}

func applyDestination(d *model.Destination, req DestinationRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		req.Slug = Slugify(req.Name)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	if req.Slug == "" {
		return validation.Errors{"slug": "could not be derived from name"}
	}

	d.Slug = req.Slug
	d.Name = req.Name
	d.Region = strings.TrimSpace(req.Region)
	d.Country = strings.TrimSpace(req.Country)
	d.Summary = strings.TrimSpace(req.Summary)
	d.Description = req.Description
	d.HeroImageURL = req.HeroImageURL
	d.Featured = req.Featured
	return nil
}

func (s *Service) CreatePackage(ctx context.Context, id *identity.Identity, req PackageRequest) (*model.Package, error) {
	p := &model.Package{Active: true}
	if err := s.applyPackage(ctx, p, req); err != nil {
		return nil, err
	}
	err := s.catalog.CreatePackage(ctx, p)
	s.record(ctx, id, KindPackage, p.Slug, "create", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePackage(ctx context.Context, id *identity.Identity, pkgID uint, req PackageRequest) (*model.Package, error) {
	p, err := s.catalog.GetPackage(ctx, pkgID)
	if err != nil {
		return nil, err
	}
	if req.Slug == "" {
		req.Slug = p.Slug
	}
	if err := s.applyPackage(ctx, p, req); err != nil {
		return nil, err
	}
	err = s.catalog.UpdatePackage(ctx, p)
	s.record(ctx, id, KindPackage, p.Slug, "update", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePackage(ctx context.Context, id *identity.Identity, pkgID uint) error {
	err := s.catalog.DeletePackage(ctx, pkgID)
	s.record(ctx, id, KindPackage, strconv.FormatUint(uint64(pkgID), 10), "delete", err)
	return err
}

func (s *Service) applyPackage(ctx context.Context, p *model.Package, req PackageRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		req.Slug = Slugify(req.Title)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	if model.ToMinor(req.Price) <= 0 {
		return validation.Errors{"price": "must be at least 0.01"}
	}

	dest, err := s.catalog.GetDestination(ctx, req.DestinationID)
	if errors.Is(err, store.ErrNotFound) {
		return validation.Errors{"destination_id": "unknown destination"}
	}
	if err != nil {
		return fmt.Errorf("failed to load destination: %w", err)
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.currency
	}

	p.Slug = req.Slug
	p.DestinationID = dest.ID
	p.Title = req.Title
	p.Summary = strings.TrimSpace(req.Summary)
	p.Description = req.Description
	p.DurationDays = req.DurationDays
	p.PriceMinor = model.ToMinor(req.Price)
	p.Currency = currency
	p.Highlights = req.Highlights
	if req.Active != nil {
		p.Active = *req.Active
	}
	return nil
}

func (s *Service) CreatePost(ctx context.Context, id *identity.Identity, req PostRequest) (*model.BlogPost, error) {
	p := &model.BlogPost{Status: model.PostStatusDraft}
	if id != nil {
		author := id.UserID
		p.AuthorID = &author
	}
	if err := applyPost(p, req); err != nil {
		return nil, err
	}
	err := s.blog.CreatePost(ctx, p)
	s.record(ctx, id, KindBlogPost, p.Slug, "create", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePost(ctx context.Context, id *identity.Identity, postID uint, req PostRequest) (*model.BlogPost, error) {
	p, err := s.blog.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if req.Slug == "" {
		req.Slug = p.Slug
	}
	if err := applyPost(p, req); err != nil {
		return nil, err
	}
	err = s.blog.UpdatePost(ctx, p)
	s.record(ctx, id, KindBlogPost, p.Slug, "update", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Publish makes a post public. The first publication time is kept on republish.
func (s *Service) Publish(ctx context.Context, id *identity.Identity, postID uint) (*model.BlogPost, error) {
	p, err := s.blog.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	p.Publish(s.now().UTC())
	err = s.blog.UpdatePost(ctx, p)
	s.record(ctx, id, KindBlogPost, p.Slug, "publish", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Unpublish returns a post to draft
func (s *Service) Unpublish(ctx context.Context, id *identity.Identity, postID uint) (*model.BlogPost, error) {
	p, err := s.blog.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	p.Status = model.PostStatusDraft
	err = s.blog.UpdatePost(ctx, p)
	s.record(ctx, id, KindBlogPost, p.Slug, "unpublish", err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePost(ctx context.Context, id *identity.Identity, postID uint) error {
	err := s.blog.DeletePost(ctx, postID)
	s.record(ctx, id, KindBlogPost, strconv.FormatUint(uint64(postID), 10), "delete", err)
	return err
}

func applyPost(p *model.BlogPost, req PostRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Excerpt = strings.TrimSpace(req.Excerpt)
	if req.Slug == "" {
		req.Slug = Slugify(req.Title)
	}
	for i, tag := range req.Tags {
		req.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	html, err := Render(req.Body)
	if err != nil {
		return fmt.Errorf("failed to render body: %w", err)
	}
	if req.Excerpt == "" {
		req.Excerpt = Excerpt(req.Body, ExcerptLength)
	}

	p.Slug = req.Slug
	p.Title = req.Title
	p.Excerpt = req.Excerpt
	p.Body = req.Body
	p.BodyHTML = html
	p.Tags = req.Tags
	return nil
}

func (s *Service) record(ctx context.Context, id *identity.Identity, kind, resource, op string, err error) {
	event := audit.ContentEvent{
		Kind:       kind,
		ResourceID: resource,
		Operation:  op,
		Success:    err == nil,
	}
	if id != nil {
		event.UserID = id.UserID
		event.ClientIP = id.ClientIP
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	} else {
		logging.FromContext(ctx).Info("content changed",
			zap.String("kind", kind), zap.String("resource", resource), zap.String("operation", op))
	}
	s.audit(event)
}
