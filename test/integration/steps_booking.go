package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/payment/razorpay"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// placedOrder is what the checkout widget would hold after POST /orders
type placedOrder struct {
	Reference      string
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
}

var paymentSeq int

func (s *StepsContext) registerBookingSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I order "([^"]*)" for (\d+) travellers? departing in (\d+) days$`, s.iOrder)
	sc.Step(`^I complete checkout for the last order$`, s.iCompleteCheckout)
	sc.Step(`^I complete checkout for the last order with a forged signature$`, s.iCompleteCheckoutForged)
	sc.Step(`^the gateway sends a "([^"]*)" webhook for the last order$`, s.theGatewaySendsAWebhook)
	sc.Step(`^the gateway sends a "([^"]*)" webhook for the last order for (\d+) paise$`, s.theGatewaySendsAWebhookForAmount)
	sc.Step(`^the gateway sends a webhook with a bad signature$`, s.theGatewaySendsABadWebhook)
	sc.Step(`^the gateway should have received (\d+) orders?$`, s.theGatewayShouldHaveReceived)
	sc.Step(`^the last order should be "([^"]*)" in the database$`, s.theLastOrderShouldBe)
	sc.Step(`^(\d+) bookings? should exist for the last order$`, s.bookingsShouldExist)
	sc.Step(`^the captured payment for the last order should have method "([^"]*)"$`, s.theCapturedPaymentShouldHaveMethod)
}

func (s *StepsContext) iOrder(slug string, travellers, days int) error {
	err := s.send("POST", "/orders", map[string]any{
		"package_slug":  slug,
		"travel_date":   validation.Today().AddDate(0, 0, days).Format(validation.DateLayout),
		"travellers":    travellers,
		"contact_name":  "Asha Menon",
		"contact_email": "asha@example.com",
	})
	if err != nil || s.response.StatusCode >= 300 {
		return err
	}

	var body struct {
		Order struct {
			Reference string `json:"reference"`
		} `json:"order"`
		Checkout struct {
			GatewayOrderID string `json:"gateway_order_id"`
			Amount         int64  `json:"amount"`
			Currency       string `json:"currency"`
		} `json:"checkout"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse order response: %w", err)
	}
	s.lastOrder = &placedOrder{
		Reference:      body.Order.Reference,
		GatewayOrderID: body.Checkout.GatewayOrderID,
		AmountMinor:    body.Checkout.Amount,
		Currency:       body.Checkout.Currency,
	}
	s.vars["reference"] = body.Order.Reference
	return nil
}

func (s *StepsContext) requireOrder() (*placedOrder, error) {
	if s.lastOrder == nil {
		return nil, fmt.Errorf("no order has been placed in this scenario")
	}
	return s.lastOrder, nil
}

func nextPaymentID() string {
	paymentSeq++
	return fmt.Sprintf("pay_int%06d", paymentSeq)
}

func (s *StepsContext) iCompleteCheckout() error {
	o, err := s.requireOrder()
	if err != nil {
		return err
	}
	paymentID := nextPaymentID()
	s.tc.Gateway.Capture(o.GatewayOrderID, paymentID)
	signature := razorpay.Sign(razorpayKeySecret, []byte(o.GatewayOrderID+"|"+paymentID))
	return s.verify(o, paymentID, signature)
}

func (s *StepsContext) iCompleteCheckoutForged() error {
	o, err := s.requireOrder()
	if err != nil {
		return err
	}
	paymentID := nextPaymentID()
	signature := razorpay.Sign("not-the-key-secret", []byte(o.GatewayOrderID+"|"+paymentID))
	return s.verify(o, paymentID, signature)
}

func (s *StepsContext) verify(o *placedOrder, paymentID, signature string) error {
	return s.send("POST", "/orders/"+o.Reference+"/verify", map[string]string{
		"razorpay_order_id":   o.GatewayOrderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	})
}

func (s *StepsContext) theGatewaySendsAWebhook(event string) error {
	o, err := s.requireOrder()
	if err != nil {
		return err
	}
	return s.theGatewaySendsAWebhookForAmount(event, int(o.AmountMinor))
}

func (s *StepsContext) theGatewaySendsAWebhookForAmount(event string, amount int) error {
	o, err := s.requireOrder()
	if err != nil {
		return err
	}
	body, err := webhookBody(event, o, int64(amount))
	if err != nil {
		return err
	}
	return s.postWebhook(body, razorpay.Sign(razorpayWebhookSecret, body))
}

func (s *StepsContext) theGatewaySendsABadWebhook() error {
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	return s.postWebhook(body, razorpay.Sign("wrong-secret", body))
}

func webhookBody(event string, o *placedOrder, amount int64) ([]byte, error) {
	status := "captured"
	if event == razorpay.EventPaymentFailed {
		status = "failed"
	}
	return json.Marshal(map[string]any{
		"entity":   "event",
		"event":    event,
		"contains": []string{"payment"},
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": razorpay.Payment{
					ID:       nextPaymentID(),
					Entity:   "payment",
					Amount:   amount,
					Currency: o.Currency,
					Status:   status,
					OrderID:  o.GatewayOrderID,
					Method:   "upi",
					Captured: status == "captured",
				},
			},
		},
	})
}

func (s *StepsContext) postWebhook(body []byte, signature string) error {
	req, err := http.NewRequest("POST", s.tc.ServerURL+"/payments/webhook", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Razorpay-Signature", signature)
	return s.do(req)
}

func (s *StepsContext) theGatewayShouldHaveReceived(n int) error {
	if got := s.tc.Gateway.Orders(); got != n {
		return fmt.Errorf("expected the gateway to have %d orders, got %d", n, got)
	}
	return nil
}

func (s *StepsContext) theLastOrderShouldBe(status string) error {
	o, err := s.requireOrder()
	if err != nil {
		return err
	}
	var order model.Order
	if err := s.tc.DB.Where("reference = ?", o.Reference).First(&order).Error; err != nil {
		return err
	}
	if order.Status.String() != status {
		return fmt.Errorf("expected order %s to be %s, got %s", o.Reference, status, order.Status)
	}
	return nil
}

func (s *StepsContext) bookingsShouldExist(n int) error {
	o, err := s.requireOrder()
	if err != nil {
		return err
	}
	var count int64
	err = s.tc.DB.Raw(`SELECT COUNT(*) FROM bookings b JOIN orders o ON o.id = b.order_id WHERE o.reference = ?`, o.Reference).
		Scan(&count).Error
	if err != nil {
		return err
	}
	if count != int64(n) {
		return fmt.Errorf("expected %d bookings for order %s, got %d", n, o.Reference, count)
	}
	return nil
}

func (s *StepsContext) theCapturedPaymentShouldHaveMethod(method string) error {
	o, err := s.requireOrder()
	if err != nil {
		return err
	}
	var got string
	err = s.tc.DB.Raw(`SELECT p.method FROM payments p JOIN orders o ON o.id = p.order_id
		WHERE o.reference = ? AND p.status = 'captured'`, o.Reference).Scan(&got).Error
	if err != nil {
		return err
	}
	if got != method {
		return fmt.Errorf("expected the captured payment for %s to have method %q, got %q", o.Reference, method, got)
	}
	return nil
}
