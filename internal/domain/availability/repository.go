package availability

import (
	"context"

	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// Reader is everything slot computation reads. An absent row set is an empty
// slice, never an error.
type Reader interface {
	GetAvailabilityRules(
		ctx context.Context,
		resourceID string,
	) ([]models.AvailabilityRule, error)

	GetBlockedDates(
		ctx context.Context,
		resourceID string,
	) ([]models.BlockedDate, error)

	GetAppointments(
		ctx context.Context,
		resourceID string,
		date wallclock.Date,
	) ([]models.Appointment, error)

	GetEligibleResources(
		ctx context.Context,
		serviceID string,
	) ([]string, error)
}

// RuleStore is the rule editor's write side.
type RuleStore interface {
	// -------- Ownership --------
	IsResourceOwner(
		ctx context.Context,
		resourceID string,
		userID string,
	) (bool, error)

	// -------- Rules --------
	GetRule(ctx context.Context, id string) (*models.AvailabilityRule, error)
	ListRules(ctx context.Context, resourceID string) ([]models.AvailabilityRule, error)
	CreateRule(ctx context.Context, r *models.AvailabilityRule) error
	UpdateRule(ctx context.Context, r *models.AvailabilityRule) error
	DeleteRule(ctx context.Context, id string) error

	// -------- Blocked dates --------
	GetBlockedDate(ctx context.Context, id string) (*models.BlockedDate, error)
	FindBlockedDate(ctx context.Context, resourceID string, date wallclock.Date) (*models.BlockedDate, error)
	ListBlockedDates(ctx context.Context, resourceID string) ([]models.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, b *models.BlockedDate) error
	DeleteBlockedDate(ctx context.Context, id string) error
}
