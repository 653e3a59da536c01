package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tripdesk/tripdesk/pkg/leads"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/server/middleware"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// RegisterLeadsEndpoints registers the contact form, newsletter signup and lead admin routes
func RegisterLeadsEndpoints(s *server.Server) {
	svc := s.Leads
	maxLimit := listLimitMax(s)

	s.Router.HandleFunc("/contact", handleContact(svc)).Methods("POST")
	s.Router.HandleFunc("/newsletter", handleNewsletter(svc)).Methods("POST")

	admin := adminRouter(s)
	admin.HandleFunc("/leads", handleListLeads(svc, maxLimit)).Methods("GET")
	admin.HandleFunc("/leads/{id:[0-9]+}", handleUpdateLead(svc)).Methods("PATCH")
	admin.HandleFunc("/subscribers", handleListSubscribers(svc, maxLimit)).Methods("GET")
}

func handleContact(svc *leads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req leads.ContactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		lead, err := svc.Submit(r.Context(), middleware.ClientIP(r), req)
		if err != nil {
			if errors.Is(err, leads.ErrRateLimited) {
				w.Header().Set("Retry-After", "60")
			}
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, map[string]uint{"id": lead.ID})
	}
}

func handleNewsletter(svc *leads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req leads.NewsletterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		created, err := svc.Subscribe(r.Context(), req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		if created {
			respondWithJSON(w, http.StatusCreated, map[string]string{"status": "subscribed"})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "already_subscribed"})
	}
}

func handleListLeads(svc *leads.Service, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		var status *model.LeadStatus
		if v := r.URL.Query().Get("status"); v != "" {
			st, err := model.LeadStatusString(v)
			if err != nil {
				respondWithServiceError(w, r, validation.Errors{"status": "must be one of " + strings.Join(model.LeadStatusStrings(), ", ")})
				return
			}
			status = &st
		}

		items, total, err := svc.ListLeads(r.Context(), status, page)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithList(w, items, total, page)
	}
}

type updateLeadRequest struct {
	Status string `json:"status"`
}

func handleUpdateLead(svc *leads.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leadID, err := idFromPath(r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		var req updateLeadRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		lead, err := svc.UpdateStatus(r.Context(), leadID, req.Status)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, lead)
	}
}

func handleListSubscribers(svc *leads.Service, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		items, total, err := svc.ListSubscribers(r.Context(), page)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithList(w, items, total, page)
	}
}
