package models

import "time"

// Business is a bookable resource in its own right and the owner of its
// employees and services.
type Business struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	OwnerUserID string `gorm:"type:uuid;index;not null" json:"owner_user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
