package audit

import (
	"fmt"
	"strconv"
)

// AuthenticateEvent records a signup, login or OAuth callback
type AuthenticateEvent struct {
	Email        string
	ClientIP     string
	Provider     string // password, google
	Action       string // signup, login, oauth
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s completed %s with provider %s", e.Email, e.Action, e.Provider)
	}
	return withError(fmt.Sprintf("%s failed %s with provider %s", e.Email, e.Action, e.Provider), e.ErrorMessage)
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"provider": e.Provider,
			"user":     e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Action,
			"result":    result(e.Success),
		},
	}
}

// OrderEvent records an order creation attempt
type OrderEvent struct {
	UserID       uint
	ClientIP     string
	Reference    string
	PackageSlug  string
	Amount       string
	Currency     string
	Duplicate    bool
	Success      bool
	ErrorMessage string
}

func (e OrderEvent) MessageID() string {
	return "order"
}

func (e OrderEvent) Message() string {
	switch {
	case e.Success && e.Duplicate:
		return fmt.Sprintf("user %d reused pending order %s for %s", e.UserID, e.Reference, e.PackageSlug)
	case e.Success:
		return fmt.Sprintf("user %d created order %s for %s (%s %s)", e.UserID, e.Reference, e.PackageSlug, e.Amount, e.Currency)
	default:
		return withError(fmt.Sprintf("user %d failed to create an order for %s", e.UserID, e.PackageSlug), e.ErrorMessage)
	}
}

func (e OrderEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e OrderEvent) Facility() int {
	return FacilityUser
}

func (e OrderEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatUint(uint64(e.UserID), 10),
		},
		SDIDSubject: {
			"package": e.PackageSlug,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "create-order",
			"result":    result(e.Success),
		},
	}
	if e.Reference != "" {
		sd[SDIDSubject]["order"] = e.Reference
	}
	if e.Duplicate {
		sd[SDIDAction]["duplicate"] = "true"
	}
	return sd
}

// PaymentEvent records the outcome of a payment verification or webhook
type PaymentEvent struct {
	UserID           uint
	ClientIP         string
	Reference        string
	GatewayPaymentID string
	Source           string // verify, webhook
	Success          bool
	ErrorMessage     string
}

func (e PaymentEvent) MessageID() string {
	return "payment"
}

func (e PaymentEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("payment %s captured for order %s via %s", e.GatewayPaymentID, e.Reference, e.Source)
	}
	return withError(fmt.Sprintf("payment %s for order %s rejected via %s", e.GatewayPaymentID, e.Reference, e.Source), e.ErrorMessage)
}

func (e PaymentEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e PaymentEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PaymentEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDPayment: {
			"order":   e.Reference,
			"payment": e.GatewayPaymentID,
		},
		SDIDAction: {
			"operation": e.Source,
			"result":    result(e.Success),
		},
	}
	if e.UserID != 0 {
		sd[SDIDAuth] = map[string]string{"user": strconv.FormatUint(uint64(e.UserID), 10)}
	}
	if e.ClientIP != "" {
		sd[SDIDClient] = map[string]string{"ip": e.ClientIP}
	}
	return sd
}

// LeadEvent records a captured contact form submission
type LeadEvent struct {
	LeadID   uint
	Source   string
	ClientIP string
}

func (e LeadEvent) MessageID() string {
	return "lead"
}

func (e LeadEvent) Message() string {
	return fmt.Sprintf("lead %d captured from %s form", e.LeadID, e.Source)
}

func (e LeadEvent) Severity() Severity {
	return SeverityInfo
}

func (e LeadEvent) Facility() int {
	return FacilityUser
}

func (e LeadEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"lead":   strconv.FormatUint(uint64(e.LeadID), 10),
			"source": e.Source,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}

// ContentEvent records an admin change to destinations, packages or blog posts
type ContentEvent struct {
	UserID       uint
	ClientIP     string
	Kind         string // destination, package, blog_post
	ResourceID   string
	Operation    string // create, update, delete, publish, unpublish
	Success      bool
	ErrorMessage string
}

func (e ContentEvent) MessageID() string {
	return "content"
}

func (e ContentEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %d performed %s on %s %s", e.UserID, e.Operation, e.Kind, e.ResourceID)
	}
	return withError(fmt.Sprintf("user %d failed %s on %s %s", e.UserID, e.Operation, e.Kind, e.ResourceID), e.ErrorMessage)
}

func (e ContentEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ContentEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ContentEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatUint(uint64(e.UserID), 10),
		},
		SDIDSubject: {
			e.Kind: e.ResourceID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
}
