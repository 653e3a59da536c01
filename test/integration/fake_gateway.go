package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/tripdesk/tripdesk/pkg/payment/razorpay"
)

// FakeGateway serves the subset of the Razorpay Orders and Payments APIs the server calls
type FakeGateway struct {
	srv *httptest.Server

	mu       sync.Mutex
	seq      int
	orders   map[string]razorpay.Order
	payments map[string]razorpay.Payment
}

func NewFakeGateway() *FakeGateway {
	g := &FakeGateway{
		orders:   make(map[string]razorpay.Order),
		payments: make(map[string]razorpay.Payment),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/orders", g.createOrder)
	mux.HandleFunc("GET /v1/payments/{id}", g.fetchPayment)
	g.srv = httptest.NewServer(mux)
	return g
}

func (g *FakeGateway) URL() string {
	return g.srv.URL
}

func (g *FakeGateway) Close() {
	g.srv.Close()
}

// Reset forgets every order and payment
func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders = make(map[string]razorpay.Order)
	g.payments = make(map[string]razorpay.Payment)
}

// Capture records a captured card payment for the full amount of orderID, as
// the checkout widget would before handing the ids to the browser
func (g *FakeGateway) Capture(orderID, paymentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order := g.orders[orderID]
	g.payments[paymentID] = razorpay.Payment{
		ID:        paymentID,
		Entity:    "payment",
		Amount:    order.Amount,
		Currency:  order.Currency,
		Status:    "captured",
		OrderID:   orderID,
		Method:    "card",
		Captured:  true,
		CreatedAt: time.Now().Unix(),
	}
}

// Orders returns the number of orders created since the last Reset
func (g *FakeGateway) Orders() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.orders)
}

func (g *FakeGateway) createOrder(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != razorpayKeyID || pass != razorpayKeySecret {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
		return
	}

	var req razorpay.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	g.seq++
	order := razorpay.Order{
		ID:        fmt.Sprintf("order_int%06d", g.seq),
		Entity:    "order",
		Amount:    req.Amount,
		Currency:  req.Currency,
		Receipt:   req.Receipt,
		Status:    "created",
		Notes:     req.Notes,
		CreatedAt: time.Now().Unix(),
	}
	g.orders[order.ID] = order
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(order)
}

func (g *FakeGateway) fetchPayment(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	payment, ok := g.payments[r.PathValue("id")]
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The id provided does not exist"}}`))
		return
	}
	_ = json.NewEncoder(w).Encode(payment)
}
