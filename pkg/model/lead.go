package model

import "time"

type Lead struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"not null" json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	Message   string     `gorm:"not null" json:"message"`
	Source    LeadSource `gorm:"type:text;not null" json:"source"`
	PackageID *uint      `json:"package_id,omitempty"`
	Status    LeadStatus `gorm:"type:text;not null" json:"status"`
	ClientIP  string     `gorm:"column:client_ip" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Lead) TableName() string {
	return "leads"
}

type Subscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
