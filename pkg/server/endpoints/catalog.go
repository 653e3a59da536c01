package endpoints

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tripdesk/tripdesk/pkg/content"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// RegisterCatalogEndpoints registers the public destination and package listings
// and their admin management routes
func RegisterCatalogEndpoints(s *server.Server) {
	catalog := s.CatalogStore
	maxLimit := listLimitMax(s)

	s.Router.HandleFunc("/destinations", handleListDestinations(catalog, maxLimit)).Methods("GET")
	s.Router.HandleFunc("/destinations/{slug}", handleGetDestination(catalog)).Methods("GET")
	s.Router.HandleFunc("/packages", handleListPackages(catalog, maxLimit)).Methods("GET")
	s.Router.HandleFunc("/packages/{slug}", handleGetPackage(catalog)).Methods("GET")

	admin := adminRouter(s)
	admin.HandleFunc("/destinations", handleCreateDestination(s.Content)).Methods("POST")
	admin.HandleFunc("/destinations/{id:[0-9]+}", handleUpdateDestination(s.Content)).Methods("PUT")
	admin.HandleFunc("/destinations/{id:[0-9]+}", handleDeleteDestination(s.Content)).Methods("DELETE")
	admin.HandleFunc("/packages", handleCreatePackage(s.Content)).Methods("POST")
	admin.HandleFunc("/packages/{id:[0-9]+}", handleUpdatePackage(s.Content)).Methods("PUT")
	admin.HandleFunc("/packages/{id:[0-9]+}", handleDeletePackage(s.Content)).Methods("DELETE")
}

func handleListDestinations(catalog store.CatalogStore, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		q := r.URL.Query()
		filter := store.DestinationFilter{
			Region: strings.TrimSpace(q.Get("region")),
			Query:  strings.TrimSpace(q.Get("q")),
			Page:   page,
		}
		if v := q.Get("featured"); v != "" {
			featured, err := strconv.ParseBool(v)
			if err != nil {
				respondWithServiceError(w, r, validation.Errors{"featured": "must be true or false"})
				return
			}
			filter.Featured = &featured
		}

		dests, total, err := catalog.ListDestinations(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithList(w, destinationViews(dests), total, page)
	}
}

func handleGetDestination(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := catalog.GetDestinationBySlug(r.Context(), mux.Vars(r)["slug"])
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, newDestinationView(d, true))
	}
}

func handleListPackages(catalog store.CatalogStore, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		q := r.URL.Query()
		filter := store.PackageFilter{
			DestinationSlug: strings.TrimSpace(q.Get("destination")),
			Query:           strings.TrimSpace(q.Get("q")),
			Page:            page,
		}

		errs := validation.Errors{}
		if v := q.Get("min_price"); v != "" {
			if minor, err := model.ParseMajor(v); err != nil || minor < 0 {
				errs.Add("min_price", "must be a non-negative amount")
			} else {
				filter.MinPrice = &minor
			}
		}
		if v := q.Get("max_price"); v != "" {
			if minor, err := model.ParseMajor(v); err != nil || minor < 0 {
				errs.Add("max_price", "must be a non-negative amount")
			} else {
				filter.MaxPrice = &minor
			}
		}
		if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
			errs.Add("max_price", "must not be below min_price")
		}
		if err := errs.Err(); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		pkgs, total, err := catalog.ListPackages(r.Context(), filter)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithList(w, packageViews(pkgs), total, page)
	}
}

func handleGetPackage(catalog store.CatalogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := catalog.GetPackageBySlug(r.Context(), mux.Vars(r)["slug"])
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, newPackageView(p, true))
	}
}

func handleCreateDestination(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req content.DestinationRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		d, err := svc.CreateDestination(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, newDestinationView(d, false))
	}
}

func handleUpdateDestination(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		destID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		var req content.DestinationRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		d, err := svc.UpdateDestination(r.Context(), id, destID, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, newDestinationView(d, false))
	}
}

func handleDeleteDestination(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		destID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		if err := svc.DeleteDestination(r.Context(), id, destID); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCreatePackage(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req content.PackageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		p, err := svc.CreatePackage(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, newPackageView(p, false))
	}
}

func handleUpdatePackage(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		var req content.PackageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		p, err := svc.UpdatePackage(r.Context(), id, pkgID, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, newPackageView(p, false))
	}
}

func handleDeletePackage(svc *content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		if err := svc.DeletePackage(r.Context(), id, pkgID); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
