package appointment

import (
	"context"

	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

type Repository interface {
	// -------- Ownership --------
	IsResourceOwner(
		ctx context.Context,
		resourceID string,
		userID string,
	) (bool, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		serviceID string,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment inserts ap atomically with respect to the
	// (resource, date, time) slot: if a non-cancelled appointment already
	// holds it, nothing is written and an httperr.ConflictError is returned.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID string,
	) (*models.Appointment, error)

	// UpdateAppointment writes ap's lifecycle fields only while the stored
	// status is still from. A row that moved on in the meantime is left
	// untouched and httperr "invalid_state" is returned.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		resourceID string,
		from wallclock.Date,
		to wallclock.Date,
	) ([]models.Appointment, error)
}
