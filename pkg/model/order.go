package model

import (
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	Reference      string         `gorm:"uniqueIndex;not null" json:"reference"`
	UserID         uint           `gorm:"not null" json:"user_id"`
	PackageID      uint           `gorm:"not null" json:"package_id"`
	Package        *Package       `json:"package,omitempty"`
	TravelDate     datatypes.Date `gorm:"not null" json:"travel_date"`
	Travellers     int            `gorm:"not null" json:"travellers"`
	ContactName    string         `gorm:"not null" json:"contact_name"`
	ContactEmail   string         `gorm:"not null" json:"contact_email"`
	ContactPhone   string         `json:"contact_phone,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	AmountMinor    int64          `gorm:"not null" json:"-"`
	Currency       string         `gorm:"not null" json:"currency"`
	GatewayOrderID string         `gorm:"uniqueIndex" json:"gateway_order_id"`
	Status         OrderStatus    `gorm:"type:text;not null" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type Payment struct {
	ID               uint          `gorm:"primaryKey" json:"-"`
	OrderID          uint          `gorm:"not null" json:"-"`
	GatewayPaymentID string        `gorm:"uniqueIndex;not null" json:"gateway_payment_id"`
	GatewaySignature string        `json:"-"`
	AmountMinor      int64         `gorm:"not null" json:"-"`
	Currency         string        `gorm:"not null" json:"currency"`
	Status           PaymentStatus `gorm:"type:text;not null" json:"status"`
	Method           string        `json:"method,omitempty"`
	ErrorDescription string        `json:"error_description,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// BookingSnapshot freezes what the customer bought at payment time
type BookingSnapshot struct {
	PackageSlug     string `json:"package_slug"`
	PackageTitle    string `json:"package_title"`
	DestinationName string `json:"destination_name"`
	DurationDays    int    `json:"duration_days"`
	UnitPriceMinor  int64  `json:"unit_price_minor"`
	AmountMinor     int64  `json:"amount_minor"`
	Currency        string `json:"currency"`
}

type Booking struct {
	ID         uint                                `gorm:"primaryKey" json:"-"`
	Reference  string                              `gorm:"uniqueIndex;not null" json:"reference"`
	OrderID    uint                                `gorm:"uniqueIndex;not null" json:"-"`
	UserID     uint                                `gorm:"not null" json:"user_id"`
	PackageID  uint                                `gorm:"not null" json:"package_id"`
	TravelDate datatypes.Date                      `gorm:"not null" json:"travel_date"`
	Travellers int                                 `gorm:"not null" json:"travellers"`
	Snapshot   datatypes.JSONType[BookingSnapshot] `gorm:"type:jsonb" json:"snapshot"`
	CreatedAt  time.Time                           `json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
