package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(4999800), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "ord-ref", req.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_9A33XWu170gUtm","entity":"order","amount":4999800,"amount_paid":0,"currency":"INR","receipt":"ord-ref","status":"created","attempts":0,"created_at":1700000000}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "rzp_test_key", "secret", "")
	order, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 4999800, Currency: "INR", Receipt: "ord-ref"})
	require.NoError(t, err)
	assert.Equal(t, "order_9A33XWu170gUtm", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00","field":"amount"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "s", "")
	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 10, Currency: "INR"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "BAD_REQUEST_ERROR", apiErr.Code)
	assert.Equal(t, "amount", apiErr.Field)
}

func TestAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", "s", "").FetchPayment(context.Background(), "pay_1")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Bad Gateway", apiErr.Description)
}

func TestFetchPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/pay_29QQoUBi66xm2f", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"pay_29QQoUBi66xm2f","amount":4999800,"currency":"INR","status":"captured","order_id":"order_1","method":"upi","captured":true}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL, "k", "s", "").FetchPayment(context.Background(), "pay_29QQoUBi66xm2f")
	require.NoError(t, err)
	assert.Equal(t, "captured", p.Status)
	assert.Equal(t, "upi", p.Method)
	assert.True(t, p.Captured)
}

func TestVerifyPaymentSignature(t *testing.T) {
	c := NewClient("", "k", "secret", "")
	sig := Sign("secret", []byte("order_1|pay_1"))

	assert.True(t, c.VerifyPaymentSignature("order_1", "pay_1", sig))
	assert.False(t, c.VerifyPaymentSignature("order_1", "pay_2", sig))
	assert.False(t, c.VerifyPaymentSignature("order_1", "pay_1", "zz"))
	assert.False(t, c.VerifyPaymentSignature("order_1", "pay_1", ""))

	noSecret := NewClient("", "k", "", "")
	assert.False(t, noSecret.VerifyPaymentSignature("order_1", "pay_1", Sign("", []byte("order_1|pay_1"))))
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := NewClient("", "k", "secret", "whsec")
	body := []byte(`{"event":"payment.captured"}`)

	assert.True(t, c.VerifyWebhookSignature(body, Sign("whsec", body)))
	assert.False(t, c.VerifyWebhookSignature(body, Sign("secret", body)))
	assert.False(t, c.VerifyWebhookSignature([]byte(`{}`), Sign("whsec", body)))
}

func TestTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "k", "s", "")
	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"})
	assert.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
