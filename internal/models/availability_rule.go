package models

import (
	"time"

	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// AvailabilityRule is a recurring weekly window for one resource
// (business or employee).
type AvailabilityRule struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ResourceID string `gorm:"type:uuid;index:idx_rules_resource_day;not null" json:"resource_id"`

	// 0 = Sunday
	DayOfWeek int `gorm:"index:idx_rules_resource_day" json:"day_of_week"`

	StartTime    wallclock.TimeOfDay `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime      wallclock.TimeOfDay `gorm:"type:varchar(8);not null" json:"end_time"`
	SlotDuration int                 `gorm:"not null" json:"slot_duration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
