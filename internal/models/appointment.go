package models

import (
	"time"

	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// Appointment is a Booking Ledger entry. Rows are never deleted; cancellation
// is a status change.
type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ResourceID string `gorm:"type:uuid;index:idx_appointments_resource_date;not null" json:"resource_id"`
	ServiceID  string `gorm:"type:varchar(36);index" json:"service_id,omitempty"`
	CustomerID string `gorm:"type:uuid;index;not null" json:"customer_id"`

	Service  *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Customer *User    `gorm:"foreignKey:CustomerID" json:"-"`

	Date wallclock.Date      `gorm:"type:varchar(10);index:idx_appointments_resource_date;not null" json:"date"`
	Time wallclock.TimeOfDay `gorm:"type:varchar(8);not null" json:"time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes        string     `gorm:"size:255" json:"notes"`
	CancelReason string     `gorm:"size:255" json:"cancel_reason,omitempty"`
	ConfirmedAt  *time.Time `json:"confirmed_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
