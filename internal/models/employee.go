package models

import "time"

type Employee struct {
	ID         string   `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID string   `gorm:"type:uuid;index;not null" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// UserID links the employee to a login so they can manage their own schedule.
	UserID *string `gorm:"type:uuid;index" json:"user_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
