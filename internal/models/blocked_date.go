package models

import (
	"time"

	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// BlockedDate suppresses every slot of a resource on one calendar date.
type BlockedDate struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	ResourceID string         `gorm:"type:uuid;uniqueIndex:ux_blocked_resource_date;not null" json:"resource_id"`
	Date       wallclock.Date `gorm:"type:varchar(10);uniqueIndex:ux_blocked_resource_date;not null" json:"date"`
	Reason     string         `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
