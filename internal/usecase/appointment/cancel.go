package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/booking-slots/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
)

type CancelAppointment struct {
	repo    domain.Repository
	effects Effects
}

func NewCancelAppointment(
	repo domain.Repository,
	effects Effects,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		effects: effects.withDefaults(),
	}
}

// Execute cancels on behalf of the appointment's customer or the resource
// owner. Cancelling frees the slot.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	callerID string,
	appointmentID string,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.CustomerID != callerID {
		if err := requireOwner(ctx, uc.repo, ap.ResourceID, callerID); err != nil {
			return nil, err
		}
	}

	prev := domain.Status(ap.Status)
	if err := domain.Cancel(ap, strings.TrimSpace(reason), uc.effects.Clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, prev); err != nil {
		return nil, err
	}

	uc.effects.after(ctx, ap, callerID, "appointment_cancelled", events.BookingCancelled)
	return ap, nil
}
