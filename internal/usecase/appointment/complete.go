package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
)

type CompleteAppointment struct {
	repo    domain.Repository
	effects Effects
}

func NewCompleteAppointment(
	repo domain.Repository,
	effects Effects,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		effects: effects.withDefaults(),
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	callerID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := requireOwner(ctx, uc.repo, ap.ResourceID, callerID); err != nil {
		return nil, err
	}

	prev := domain.Status(ap.Status)
	if err := domain.Complete(ap, uc.effects.Clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, prev); err != nil {
		return nil, err
	}

	uc.effects.after(ctx, ap, callerID, "appointment_completed", events.BookingCompleted)
	return ap, nil
}
