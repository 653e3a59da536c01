package model

import (
	"time"

	"gorm.io/datatypes"
)

type Destination struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name         string    `gorm:"not null" json:"name"`
	Region       string    `json:"region"`
	Country      string    `json:"country"`
	Summary      string    `json:"summary"`
	Description  string    `json:"description"`
	HeroImageURL string    `gorm:"column:hero_image_url" json:"hero_image_url"`
	Featured     bool      `json:"featured"`
	Packages     []Package `gorm:"foreignKey:DestinationID" json:"packages,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Destination) TableName() string {
	return "destinations"
}

// Package is a bookable tour product attached to a destination
type Package struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Slug          string                      `gorm:"uniqueIndex;not null" json:"slug"`
	DestinationID uint                        `gorm:"not null" json:"destination_id"`
	Destination   *Destination                `json:"destination,omitempty"`
	Title         string                      `gorm:"not null" json:"title"`
	Summary       string                      `json:"summary"`
	Description   string                      `json:"description"`
	DurationDays  int                         `gorm:"not null" json:"duration_days"`
	PriceMinor    int64                       `gorm:"not null" json:"-"`
	Currency      string                      `gorm:"not null" json:"currency"`
	Highlights    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"highlights"`
	Active        bool                        `json:"active"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (Package) TableName() string {
	return "packages"
}
