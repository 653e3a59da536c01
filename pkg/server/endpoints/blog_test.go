package endpoints

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

func monsoonPost() model.BlogPost {
	published := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	return model.BlogPost{
		ID:          4,
		Slug:        "monsoon-in-munnar",
		Title:       "Monsoon in Munnar",
		Excerpt:     "Mist over the tea gardens",
		Body:        "Mist over the *tea* gardens.",
		BodyHTML:    "<p>Mist over the <em>tea</em> gardens.</p>",
		Status:      model.PostStatusPublished,
		PublishedAt: &published,
	}
}

func TestPublicBlogList(t *testing.T) {
	e := newTestEnv(t)
	published := model.PostStatusPublished
	e.blog.On("ListPosts", mock.Anything, store.PostFilter{
		Tag:    "kerala",
		Status: &published,
		Page:   store.Page{Limit: defaultListLimit},
	}).Return([]model.BlogPost{monsoonPost()}, 1, nil)

	w := e.do("GET", "/blog?tag=Kerala&status=draft", nil, "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := decodeBody(t, w)["items"].([]any)
	require.Len(t, items, 1)
	post := items[0].(map[string]any)
	assert.Equal(t, "Mist over the tea gardens", post["excerpt"])
	assert.Empty(t, post["body"])
	assert.Empty(t, post["body_html"])
}

func TestPublicBlogPost(t *testing.T) {
	e := newTestEnv(t)
	post := monsoonPost()
	e.blog.On("GetPublishedPost", mock.Anything, "monsoon-in-munnar").Return(&post, nil)
	e.blog.On("GetPublishedPost", mock.Anything, "secret-draft").Return(nil, store.ErrNotFound)

	w := e.do("GET", "/blog/monsoon-in-munnar", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, post.BodyHTML, decodeBody(t, w)["body_html"])

	w = e.do("GET", "/blog/secret-draft", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminBlogList(t *testing.T) {
	e := newTestEnv(t)
	admin := e.token(t, 1, model.UserRoleAdmin)
	draft := model.PostStatusDraft
	e.blog.On("ListPosts", mock.Anything, store.PostFilter{
		Status: &draft,
		Page:   store.Page{Limit: defaultListLimit},
	}).Return([]model.BlogPost{}, 0, nil)

	w := e.do("GET", "/admin/blog?status=draft", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do("GET", "/admin/blog?status=lost", nil, admin)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, errorFields(t, w), "status")
}

func TestAdminCreatePost(t *testing.T) {
	e := newTestEnv(t)
	e.blog.On("CreatePost", mock.Anything, mock.MatchedBy(func(p *model.BlogPost) bool {
		return p.Status == model.PostStatusDraft &&
			p.Slug == "five-days-in-hampi" &&
			p.AuthorID != nil && *p.AuthorID == 1 &&
			p.BodyHTML != ""
	})).Return(nil)

	w := e.do("POST", "/admin/blog", map[string]any{
		"title": "Five days in Hampi",
		"body":  "Boulders, temples and the **Tungabhadra**.",
		"tags":  []string{"Karnataka", "heritage"},
	}, e.token(t, 1, model.UserRoleAdmin))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "draft", body["status"])
	assert.Equal(t, []any{"karnataka", "heritage"}, body["tags"])
	assert.NotEmpty(t, body["excerpt"])
}

func TestAdminPublishPost(t *testing.T) {
	e := newTestEnv(t)
	post := monsoonPost()
	post.Status = model.PostStatusDraft
	post.PublishedAt = nil
	e.blog.On("GetPost", mock.Anything, uint(4)).Return(&post, nil)
	e.blog.On("UpdatePost", mock.Anything, mock.Anything).Return(nil)

	w := e.do("POST", "/admin/blog/4/publish", nil, e.token(t, 1, model.UserRoleAdmin))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "published", body["status"])
	assert.NotEmpty(t, body["published_at"])
}
