package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/pkg/authenticator"
	"github.com/tripdesk/tripdesk/pkg/authenticator/oauth"
	"github.com/tripdesk/tripdesk/pkg/authenticator/password"
	"github.com/tripdesk/tripdesk/pkg/booking"
	"github.com/tripdesk/tripdesk/pkg/flights"
	"github.com/tripdesk/tripdesk/pkg/leads"
	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

const (
	defaultListLimit = 20
	maxBodyBytes     = 1 << 20
)

var errMalformedBody = errors.New("malformed request body")

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type listResponse struct {
	Items  any   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithError(w, code, errorBody{Message: message})
}

func respondWithList(w http.ResponseWriter, items any, total int64, page store.Page) {
	respondWithJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset})
}

// respondWithServiceError maps domain errors onto status codes. Anything
// unrecognised is logged and reported as a 500 without detail.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := validation.AsErrors(err); ok {
		respondWithError(w, http.StatusUnprocessableEntity, errorBody{Message: "validation failed", Fields: fields})
		return
	}

	code, message := statusFor(err)
	if code == http.StatusInternalServerError || code == http.StatusBadGateway {
		logging.FromContext(r.Context()).Error("request failed", zap.Int("status", code), zap.Error(err))
	}
	respondWithMessage(w, code, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, booking.ErrOrderNotFound),
		errors.Is(err, booking.ErrPackageNotFound),
		errors.Is(err, authenticator.ErrNotEnabled):
		return http.StatusNotFound, "not found"
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "a record with this slug or email already exists"
	case errors.Is(err, store.ErrHasDependents):
		return http.StatusConflict, "record is still referenced by other records"
	case errors.Is(err, password.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, authenticator.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, oauth.ErrInvalidState),
		errors.Is(err, errOAuthDenied),
		errors.Is(err, oauth.ErrMissingCode),
		errors.Is(err, oauth.ErrEmailNotVerified),
		errors.Is(err, booking.ErrOrderMismatch),
		errors.Is(err, booking.ErrSignatureMismatch),
		errors.Is(err, booking.ErrInvalidWebhook):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, flights.ErrInvalidSearch):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, leads.ErrRateLimited):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, flights.ErrUpstream),
		errors.Is(err, booking.ErrGateway),
		errors.Is(err, oauth.ErrExchange):
		return http.StatusBadGateway, "upstream service failed"
	case errors.Is(err, flights.ErrNotConfigured),
		errors.Is(err, booking.ErrPaymentsDisabled):
		return http.StatusServiceUnavailable, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// decodeJSON reads a JSON body into v, rejecting unknown fields and trailing data
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", errMalformedBody)
	}
	return nil
}

// pageFromRequest reads limit and offset, applying the default and the configured cap
func pageFromRequest(r *http.Request, maxLimit int) (store.Page, error) {
	page := store.Page{Limit: defaultListLimit}
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, validation.Errors{"limit": "must be a positive integer"}
		}
		page.Limit = n
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, validation.Errors{"offset": "must be zero or a positive integer"}
		}
		page.Offset = n
	}
	return page, nil
}

func idFromPath(r *http.Request) (uint, error) {
	n, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || n == 0 {
		return 0, store.ErrNotFound
	}
	return uint(n), nil
}
