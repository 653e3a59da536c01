package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/pkg/audit"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/server/store/storemock"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

type fixture struct {
	catalog *storemock.CatalogStore
	blog    *storemock.BlogStore
	events  []audit.Event
	svc     *Service
	admin   *identity.Identity
}

func newFixture() *fixture {
	f := &fixture{
		catalog: &storemock.CatalogStore{},
		blog:    &storemock.BlogStore{},
		admin:   &identity.Identity{UserID: 9, Email: "ops@tripdesk.test", Role: model.UserRoleAdmin, ClientIP: "10.0.0.1"},
	}
	f.svc = NewService(f.catalog, f.blog, "INR")
	f.svc.audit = func(e audit.Event) { f.events = append(f.events, e) }
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return f
}

func TestCreateDestinationDerivesSlug(t *testing.T) {
	f := newFixture()
	f.catalog.On("CreateDestination", mock.Anything, mock.MatchedBy(func(d *model.Destination) bool {
		return d.Slug == "kerala-backwaters" && d.Name == "Kerala Backwaters"
	})).Return(nil)

	d, err := f.svc.CreateDestination(context.Background(), f.admin, DestinationRequest{Name: "  Kerala Backwaters "})
	require.NoError(t, err)
	assert.Equal(t, uint(1), d.ID)

	require.Len(t, f.events, 1)
	ev := f.events[0].(audit.ContentEvent)
	assert.True(t, ev.Success)
	assert.Equal(t, "create", ev.Operation)
	assert.Equal(t, uint(9), ev.UserID)
}

func TestCreateDestinationConflict(t *testing.T) {
	f := newFixture()
	f.catalog.On("CreateDestination", mock.Anything, mock.Anything).Return(store.ErrConflict)

	_, err := f.svc.CreateDestination(context.Background(), f.admin, DestinationRequest{Name: "Goa"})
	assert.ErrorIs(t, err, store.ErrConflict)
	require.Len(t, f.events, 1)
	assert.False(t, f.events[0].(audit.ContentEvent).Success)
}

func TestCreateDestinationValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateDestination(context.Background(), f.admin, DestinationRequest{Name: "Goa", Slug: "Not A Slug"})
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "slug")

	_, err = f.svc.CreateDestination(context.Background(), f.admin, DestinationRequest{})
	fields, ok = validation.AsErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "name")

	f.catalog.AssertNotCalled(t, "CreateDestination", mock.Anything, mock.Anything)
}

func TestUpdateDestinationKeepsSlug(t *testing.T) {
	f := newFixture()
	f.catalog.On("GetDestination", mock.Anything, uint(4)).
		Return(&model.Destination{ID: 4, Slug: "goa", Name: "Goa"}, nil)
	f.catalog.On("UpdateDestination", mock.Anything, mock.MatchedBy(func(d *model.Destination) bool {
		return d.Slug == "goa" && d.Name == "Goa Beaches" && d.Featured
	})).Return(nil)

	d, err := f.svc.UpdateDestination(context.Background(), f.admin, 4, DestinationRequest{Name: "Goa Beaches", Featured: true})
	require.NoError(t, err)
	assert.Equal(t, "goa", d.Slug)
}

func TestDeleteDestinationWithPackages(t *testing.T) {
	f := newFixture()
	f.catalog.On("DeleteDestination", mock.Anything, uint(4)).Return(store.ErrHasDependents)

	err := f.svc.DeleteDestination(context.Background(), f.admin, 4)
	assert.ErrorIs(t, err, store.ErrHasDependents)
}

func TestCreatePackage(t *testing.T) {
	f := newFixture()
	f.catalog.On("GetDestination", mock.Anything, uint(4)).Return(&model.Destination{ID: 4, Slug: "goa"}, nil)
	f.catalog.On("CreatePackage", mock.Anything, mock.MatchedBy(func(p *model.Package) bool {
		return p.Slug == "goa-beach-week" && p.PriceMinor == 1999950 && p.Currency == "INR" && p.Active
	})).Return(nil)

	p, err := f.svc.CreatePackage(context.Background(), f.admin, PackageRequest{
		DestinationID: 4,
		Title:         "Goa Beach Week",
		DurationDays:  7,
		Price:         19999.50,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(4), p.DestinationID)
}

func TestCreatePackageUnknownDestination(t *testing.T) {
	f := newFixture()
	f.catalog.On("GetDestination", mock.Anything, uint(99)).Return(nil, store.ErrNotFound)

	_, err := f.svc.CreatePackage(context.Background(), f.admin, PackageRequest{
		DestinationID: 99, Title: "Lost", DurationDays: 2, Price: 100,
	})
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "unknown destination", fields["destination_id"])
}

func TestCreatePackageRejectsBadPriceAndDuration(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePackage(context.Background(), f.admin, PackageRequest{
		DestinationID: 4, Title: "Trip", DurationDays: 61, Price: -5,
	})
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "duration_days")
}

func TestCreatePostRendersMarkdown(t *testing.T) {
	f := newFixture()
	f.blog.On("CreatePost", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.CreatePost(context.Background(), f.admin, PostRequest{
		Title: "Monsoon in Munnar",
		Body:  "# Why go\n\nThe hills are **green** and quiet.",
		Tags:  []string{" Kerala ", "monsoon"},
	})
	require.NoError(t, err)
	assert.Equal(t, "monsoon-in-munnar", p.Slug)
	assert.Equal(t, model.PostStatusDraft, p.Status)
	assert.Contains(t, p.BodyHTML, "<strong>green</strong>")
	assert.Equal(t, "Why go The hills are green and quiet.", p.Excerpt)
	assert.Equal(t, []string{"kerala", "monsoon"}, []string(p.Tags))
	require.NotNil(t, p.AuthorID)
	assert.Equal(t, uint(9), *p.AuthorID)
	assert.Nil(t, p.PublishedAt)
}

func TestPublishKeepsFirstPublicationTime(t *testing.T) {
	f := newFixture()
	first := time.Date(2025, 12, 24, 8, 0, 0, 0, time.UTC)
	post := &model.BlogPost{ID: 3, Slug: "winter", Status: model.PostStatusDraft, PublishedAt: &first}
	f.blog.On("GetPost", mock.Anything, uint(3)).Return(post, nil)
	f.blog.On("UpdatePost", mock.Anything, post).Return(nil)

	p, err := f.svc.Publish(context.Background(), f.admin, 3)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, p.Status)
	assert.Equal(t, first, *p.PublishedAt)

	p, err = f.svc.Unpublish(context.Background(), f.admin, 3)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, p.Status)
	assert.Len(t, f.events, 2)
}

func TestPublishSetsPublicationTime(t *testing.T) {
	f := newFixture()
	post := &model.BlogPost{ID: 5, Slug: "new", Status: model.PostStatusDraft}
	f.blog.On("GetPost", mock.Anything, uint(5)).Return(post, nil)
	f.blog.On("UpdatePost", mock.Anything, post).Return(nil)

	p, err := f.svc.Publish(context.Background(), f.admin, 5)
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, f.svc.now(), *p.PublishedAt)
}

func TestUpdatePostMissing(t *testing.T) {
	f := newFixture()
	f.blog.On("GetPost", mock.Anything, uint(77)).Return(nil, store.ErrNotFound)

	_, err := f.svc.UpdatePost(context.Background(), f.admin, 77, PostRequest{Title: "x", Body: "y"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
