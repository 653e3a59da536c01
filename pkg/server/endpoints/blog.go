package endpoints

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tripdesk/tripdesk/pkg/content"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// RegisterBlogEndpoints registers the public blog and the admin editor routes
func RegisterBlogEndpoints(s *server.Server) {
	blog := s.BlogStore
	maxLimit := listLimitMax(s)

	s.Router.HandleFunc("/blog", handleListPosts(blog, maxLimit, false)).Methods("GET")
	s.Router.HandleFunc("/blog/{slug}", handleGetPublishedPost(blog)).Methods("GET")

	admin := adminRouter(s)
	admin.HandleFunc("/blog", handleListPosts(blog, maxLimit, true)).Methods("GET")
	admin.HandleFunc("/blog", handleCreatePost(s.Content)).Methods("POST")
	admin.HandleFunc("/blog/{id:[0-9]+}", handleGetPost(blog)).Methods("GET")
	admin.HandleFunc("/blog/{id:[0-9]+}", handleUpdatePost(s.Content)).Methods("PUT")
	admin.HandleFunc("/blog/{id:[0-9]+}", handleDeletePost(s.Content)).Methods("DELETE")
	admin.HandleFunc("/blog/{id:[0-9]+}/publish", handlePublishPost(s.Content, true)).Methods("POST")
	admin.HandleFunc("/blog/{id:[0-9]+}/unpublish", handlePublishPost(s.Content, false)).Methods("POST")
}

// handleListPosts lists published posts, or posts of any status for admins
func handleListPosts(blog store.BlogStore, maxLimit int, admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		q := r.URL.Query()
		filter := store.PostFilter{
			Tag:  strings.ToLower(strings.TrimSpace(q.Get("tag"))),
			Page: page,
		}
		if admin {
			if v := q.Get("status"); v != "" {
				status, err := model.PostStatusString(v)
				if err != nil {
					respondWithServiceError(w, r, validation.Errors{"status": "must be one of " + strings.Join(model.PostStatusStrings(), ", ")})
					return
				}
				filter.Status = &status
			}
		} else {
			published := model.PostStatusPublished
			filter.Status = &published
		}

		posts, total, err := blog.ListPosts(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		if !admin {
			for i := range posts {
				posts[i].Body = ""
				posts[i].BodyHTML = ""
			}
		}
		respondWithList(w, posts, total, page)
	}
}

func handleGetPublishedPost(blog store.BlogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := blog.GetPublishedPost(r.Context(), mux.Vars(r)["slug"])
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, post)
	}
}

func handleGetPost(blog store.BlogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		post, err := blog.GetPost(r.Context(), postID)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, post)
	}
}

func handleCreatePost(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req content.PostRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		post, err := svc.CreatePost(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, post)
	}
}

func handleUpdatePost(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		var req content.PostRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		post, err := svc.UpdatePost(r.Context(), id, postID, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, post)
	}
}

func handleDeletePost(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		if err := svc.DeletePost(r.Context(), id, postID); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handlePublishPost(svc *content.Service, publish bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		var post *model.BlogPost
		if publish {
			post, err = svc.Publish(r.Context(), id, postID)
		} else {
			post, err = svc.Unpublish(r.Context(), id, postID)
		}
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, post)
	}
}
