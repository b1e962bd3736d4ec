package availability

import (
	"strings"

	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// MaxSlotDuration is one day in minutes.
const MaxSlotDuration = 24 * 60

// NewRule builds a rule from wire values, rejecting anything the generator
// would silently drop.
func NewRule(
	resourceID string,
	dayOfWeek int,
	startTime string,
	endTime string,
	slotDuration int,
) (models.AvailabilityRule, error) {

	if strings.TrimSpace(resourceID) == "" {
		return models.AvailabilityRule{}, httperr.ErrValidation("resource_id", "is required")
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return models.AvailabilityRule{}, httperr.ErrValidation("day_of_week", "must be between 0 (Sunday) and 6")
	}

	start, err := wallclock.ParseTimeOfDay(startTime)
	if err != nil {
		return models.AvailabilityRule{}, httperr.ErrValidation("start_time", "must be HH:MM or HH:MM:SS")
	}
	end, err := wallclock.ParseTimeOfDay(endTime)
	if err != nil {
		return models.AvailabilityRule{}, httperr.ErrValidation("end_time", "must be HH:MM or HH:MM:SS")
	}
	if start >= end {
		return models.AvailabilityRule{}, httperr.ErrValidation("end_time", "must be after start_time")
	}
	if slotDuration <= 0 {
		return models.AvailabilityRule{}, httperr.ErrValidation("slot_duration", "must be a positive number of minutes")
	}
	if slotDuration > MaxSlotDuration {
		return models.AvailabilityRule{}, httperr.ErrValidation("slot_duration", "must be at most 1440 minutes")
	}

	return models.AvailabilityRule{
		ResourceID:   resourceID,
		DayOfWeek:    dayOfWeek,
		StartTime:    start,
		EndTime:      end,
		SlotDuration: slotDuration,
	}, nil
}

func NewBlockedDate(resourceID string, date string, reason string) (models.BlockedDate, error) {
	if strings.TrimSpace(resourceID) == "" {
		return models.BlockedDate{}, httperr.ErrValidation("resource_id", "is required")
	}

	d, err := wallclock.ParseDate(date)
	if err != nil {
		return models.BlockedDate{}, httperr.ErrValidation("date", "must be YYYY-MM-DD")
	}

	reason = strings.TrimSpace(reason)
	if len(reason) > 255 {
		return models.BlockedDate{}, httperr.ErrValidation("reason", "must be at most 255 characters")
	}

	return models.BlockedDate{
		ResourceID: resourceID,
		Date:       d,
		Reason:     reason,
	}, nil
}
