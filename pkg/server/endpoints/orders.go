package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tripdesk/tripdesk/pkg/booking"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// WebhookSignatureHeader carries the gateway's HMAC of the raw webhook body
const WebhookSignatureHeader = "X-Razorpay-Signature"

// CreateOrderResponse is returned by POST /orders
type CreateOrderResponse struct {
	Order     orderView        `json:"order"`
	Checkout  booking.Checkout `json:"checkout"`
	Duplicate bool             `json:"duplicate"`
}

// VerifyPaymentResponse is returned by POST /orders/{reference}/verify
type VerifyPaymentResponse struct {
	Order       orderView    `json:"order"`
	Booking     *bookingView `json:"booking,omitempty"`
	AlreadyPaid bool         `json:"already_paid"`
}

// RegisterOrdersEndpoints registers checkout, payment verification, the
// gateway webhook and the booking listings
func RegisterOrdersEndpoints(s *server.Server) {
	svc := s.Booking
	maxLimit := listLimitMax(s)

	s.Router.HandleFunc("/payments/webhook", handlePaymentWebhook(svc)).Methods("POST")

	customer := authRouter(s)
	customer.HandleFunc("/orders", handleCreateOrder(svc)).Methods("POST")
	customer.HandleFunc("/orders", handleListOrders(svc, maxLimit)).Methods("GET")
	customer.HandleFunc("/orders/{reference}", handleGetOrder(svc)).Methods("GET")
	customer.HandleFunc("/orders/{reference}/verify", handleVerifyPayment(svc)).Methods("POST")
	customer.HandleFunc("/bookings", handleListBookings(svc, maxLimit)).Methods("GET")

	adminRouter(s).HandleFunc("/orders", handleListAllOrders(svc, maxLimit)).Methods("GET")
}

func handleCreateOrder(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.CreateOrderRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		result, err := svc.CreateOrder(r.Context(), id, req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		code := http.StatusCreated
		if result.Duplicate {
			code = http.StatusOK
		}
		respondWithJSON(w, code, CreateOrderResponse{
			Order:     newOrderView(result.Order),
			Checkout:  result.Checkout,
			Duplicate: result.Duplicate,
		})
	}
}

func handleListOrders(svc *booking.Service, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		orders, total, err := svc.ListOrders(r.Context(), id, page)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithList(w, orderViews(orders), total, page)
	}
}

func handleGetOrder(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity.Get(r.Context())

		order, err := svc.GetOrder(r.Context(), id, mux.Vars(r)["reference"])
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, newOrderView(order))
	}
}

func handleVerifyPayment(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.VerifyRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		result, err := svc.VerifyPayment(r.Context(), id, mux.Vars(r)["reference"], req)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		resp := VerifyPaymentResponse{Order: newOrderView(result.Order), AlreadyPaid: result.AlreadyPaid}
		if result.Booking != nil {
			bv := newBookingView(result.Booking)
			resp.Booking = &bv
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleListBookings(svc *booking.Service, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		id, _ := identity.Get(r.Context())

		bookings, total, err := svc.ListBookings(r.Context(), id, page)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithList(w, bookingViews(bookings), total, page)
	}
}

func handleListAllOrders(svc *booking.Service, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromRequest(r, maxLimit)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		var status *model.OrderStatus
		if v := r.URL.Query().Get("status"); v != "" {
			st, err := model.OrderStatusString(v)
			if err != nil {
				respondWithServiceError(w, r, validation.Errors{"status": "must be one of " + strings.Join(model.OrderStatusStrings(), ", ")})
				return
			}
			status = &st
		}

		orders, total, err := svc.ListAllOrders(r.Context(), status, page)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithList(w, orderViews(orders), total, page)
	}
}

// handlePaymentWebhook needs the body byte for byte, so it cannot go
// through decodeJSON
func handlePaymentWebhook(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			respondWithServiceError(w, r, fmt.Errorf("%w: %v", errMalformedBody, err))
			return
		}

		outcome, err := svc.HandleWebhook(r.Context(), body, r.Header.Get(WebhookSignatureHeader))
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": string(outcome)})
	}
}
