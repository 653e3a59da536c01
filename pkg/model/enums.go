package model

//go:generate go run github.com/dmarkham/enumer -type=UserRole -trimprefix=UserRole -transform=snake -json -sql -output=user_role.gen.go
//go:generate go run github.com/dmarkham/enumer -type=PostStatus -trimprefix=PostStatus -transform=snake -json -sql -output=post_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type=LeadStatus -trimprefix=LeadStatus -transform=snake -json -sql -output=lead_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type=LeadSource -trimprefix=LeadSource -transform=snake -json -sql -output=lead_source.gen.go
//go:generate go run github.com/dmarkham/enumer -type=OrderStatus -trimprefix=OrderStatus -transform=snake -json -sql -output=order_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type=PaymentStatus -trimprefix=PaymentStatus -transform=snake -json -sql -output=payment_status.gen.go

// UserRole is the authorization level of a user account
type UserRole int

const (
	UserRoleCustomer UserRole = iota
	UserRoleAdmin
)

// PostStatus is the publication state of a blog post
type PostStatus int

const (
	PostStatusDraft PostStatus = iota
	PostStatusPublished
	PostStatusArchived
)

// LeadStatus tracks how far sales has taken a captured lead
type LeadStatus int

const (
	LeadStatusNew LeadStatus = iota
	LeadStatusContacted
	LeadStatusConverted
	LeadStatusClosed
)

// LeadSource records which form produced a lead
type LeadSource int

const (
	LeadSourceContact LeadSource = iota
	LeadSourcePackage
	LeadSourceFlight
)

// OrderStatus is the payment state of an order
type OrderStatus int

const (
	OrderStatusCreated OrderStatus = iota
	OrderStatusPaid
	OrderStatusFailed
	OrderStatusCancelled
)

// PaymentStatus mirrors the gateway's payment state
type PaymentStatus int

const (
	PaymentStatusAuthorized PaymentStatus = iota
	PaymentStatusCaptured
	PaymentStatusFailed
)
