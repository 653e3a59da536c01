package model

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Name          string    `json:"name"`
	PasswordHash  *string   `json:"-"`
	Role          UserRole  `gorm:"type:text;not null" json:"role"`
	OAuthProvider *string   `gorm:"column:oauth_provider" json:"oauth_provider,omitempty"`
	OAuthSubject  *string   `gorm:"column:oauth_subject" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may use the admin API
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
