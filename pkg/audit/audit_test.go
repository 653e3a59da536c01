package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)
	logger.hostname = "web-1"
	logger.pid = 42
	logger.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	logger.Log(AuthenticateEvent{
		Email:    "asha@example.com",
		ClientIP: "192.168.1.1",
		Provider: "password",
		Action:   "login",
		Success:  true,
	})

	want := `<86>1 2026-03-01T10:00:00.000Z web-1 tripdesk 42 authn ` +
		`[action@32473 operation="login" result="success"]` +
		`[auth@32473 provider="password" user="asha@example.com"]` +
		`[client@32473 ip="192.168.1.1"] asha@example.com completed login with provider password` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("Log() =\n%q\nwant\n%q", got, want)
	}
}

func TestAuthenticateEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     AuthenticateEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "successful signup",
			event: AuthenticateEvent{
				Email:    "asha@example.com",
				ClientIP: "10.0.0.1",
				Provider: "password",
				Action:   "signup",
				Success:  true,
			},
			wantMsg:   "completed signup",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
		{
			name: "failed login",
			event: AuthenticateEvent{
				Email:        "asha@example.com",
				ClientIP:     "10.0.0.1",
				Provider:     "password",
				Action:       "login",
				ErrorMessage: "invalid email or password",
			},
			wantMsg:   "failed login with provider password: invalid email or password",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "authn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestOrderEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   OrderEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name:    "created",
			event:   OrderEvent{UserID: 7, Reference: "ord-1", PackageSlug: "goa-escape", Amount: "49998.00", Currency: "INR", Success: true},
			wantMsg: "user 7 created order ord-1 for goa-escape (49998.00 INR)",
			wantSev: SeverityInfo,
		},
		{
			name:    "duplicate",
			event:   OrderEvent{UserID: 7, Reference: "ord-1", PackageSlug: "goa-escape", Duplicate: true, Success: true},
			wantMsg: "user 7 reused pending order ord-1 for goa-escape",
			wantSev: SeverityInfo,
		},
		{
			name:    "gateway failure",
			event:   OrderEvent{UserID: 7, PackageSlug: "goa-escape", ErrorMessage: "gateway unavailable"},
			wantMsg: "user 7 failed to create an order for goa-escape: gateway unavailable",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Message(); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
		})
	}

	sd := OrderEvent{UserID: 7, Reference: "ord-1", Duplicate: true, Success: true}.StructuredData()
	if sd[SDIDAction]["duplicate"] != "true" {
		t.Errorf("expected duplicate flag in structured data, got %v", sd[SDIDAction])
	}
	if sd[SDIDSubject]["order"] != "ord-1" {
		t.Errorf("expected order reference in structured data, got %v", sd[SDIDSubject])
	}
}

func TestPaymentEventWebhookOmitsClient(t *testing.T) {
	e := PaymentEvent{Reference: "ord-1", GatewayPaymentID: "pay_1", Source: "webhook", Success: true}
	sd := e.StructuredData()
	if _, ok := sd[SDIDClient]; ok {
		t.Error("webhook events should not carry client data")
	}
	if _, ok := sd[SDIDAuth]; ok {
		t.Error("webhook events should not carry a user")
	}
	if sd[SDIDPayment]["payment"] != "pay_1" {
		t.Errorf("payment id = %q", sd[SDIDPayment]["payment"])
	}
	if e.Severity() != SeverityNotice {
		t.Errorf("Severity() = %v, want %v", e.Severity(), SeverityNotice)
	}
}

func TestContentEvent(t *testing.T) {
	e := ContentEvent{UserID: 1, Kind: "blog_post", ResourceID: "monsoon-in-goa", Operation: "publish", Success: true}
	if got := e.Message(); got != "user 1 performed publish on blog_post monsoon-in-goa" {
		t.Errorf("Message() = %q", got)
	}
	if e.StructuredData()[SDIDSubject]["blog_post"] != "monsoon-in-goa" {
		t.Error("expected resource keyed by kind")
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`a"b`, `"a\"b"`},
		{`a]b`, `"a\]b"`},
		{`a\b`, `"a\\b"`},
	}
	for _, tt := range tests {
		if got := escapeSDValue(tt.in); got != tt.want {
			t.Errorf("escapeSDValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	DefaultLogger.SetWriter(&buf)
	SetEnabled(false)
	defer SetEnabled(true)

	Log(LeadEvent{LeadID: 1, Source: "contact", ClientIP: "10.0.0.1"})

	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %q", buf.String())
	}
}
