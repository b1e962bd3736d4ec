package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
)

type ConfirmAppointment struct {
	repo    domain.Repository
	effects Effects
}

func NewConfirmAppointment(
	repo domain.Repository,
	effects Effects,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:    repo,
		effects: effects.withDefaults(),
	}
}

func (uc *ConfirmAppointment) Execute(
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
	if err := domain.Confirm(ap, uc.effects.Clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, prev); err != nil {
		return nil, err
	}

	uc.effects.after(ctx, ap, callerID, "appointment_confirmed", events.BookingConfirmed)
	return ap, nil
}

// requireOwner rejects callers that do not own resourceID.
func requireOwner(ctx context.Context, repo domain.Repository, resourceID, callerID string) error {
	ok, err := repo.IsResourceOwner(ctx, resourceID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness("forbidden")
	}
	return nil
}
